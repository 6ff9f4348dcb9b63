package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lhagemann/symred/pkg/config"
	"github.com/lhagemann/symred/pkg/observability"
)

var (
	version string // semantic version (e.g., "v1.2.3")
	commit  string // git commit SHA
	date    string // build timestamp
)

// SetVersion sets the version information displayed by --version,
// typically injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// flags shared by all commands, applied on top of the config file.
type rootFlags struct {
	configPath  string
	schreier    string
	transversal string
	method      string
	guaranteed  bool
	seed        uint64
	store       string
	storeDir    string
	redisAddr   string
	mongoURI    string
	batch       string
}

// loadConfig merges the config file (if any) with the flag overrides.
func (f *rootFlags) loadConfig() (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	if f.schreier != "" {
		cfg.Solver.SchreierSims = f.schreier
	}
	if f.transversal != "" {
		cfg.Solver.TransversalStorage = f.transversal
	}
	if f.method != "" {
		cfg.Solver.ReprMethod = f.method
	}
	if f.guaranteed {
		cfg.Solver.Guaranteed = true
	}
	if f.seed != 0 {
		cfg.Solver.Seed = f.seed
	}
	if f.store != "" {
		cfg.Store.Backend = f.store
	}
	if f.storeDir != "" {
		cfg.Store.Dir = f.storeDir
	}
	if f.redisAddr != "" {
		cfg.Store.RedisAddr = f.redisAddr
	}
	if f.mongoURI != "" {
		cfg.Store.MongoURI = f.mongoURI
	}
	if f.batch != "" {
		cfg.Store.Batch = f.batch
	}
	return cfg, nil
}

// Execute runs the symred CLI and returns an error if any command fails.
func Execute() error {
	var verbose bool
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:          "symred",
		Short:        "symred canonicalizes task allocations under architecture symmetries",
		Long:         `symred derives the automorphism group of a hierarchical processor/interconnect architecture and maps task allocations to canonical orbit representatives, so symmetry-equivalent allocations are analyzed only once.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			observability.SetGroupHooks(&logGroupHooks{logger: logger})
			observability.SetReprHooks(&logReprHooks{logger: logger})
			observability.SetStoreHooks(&logStoreHooks{logger: logger})
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("symred %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "TOML configuration file")
	root.PersistentFlags().StringVar(&flags.schreier, "schreier-sims", "", "construction: deterministic|random")
	root.PersistentFlags().StringVar(&flags.transversal, "transversal-storage", "", "explicit|schreier-trees|shallow-schreier-trees")
	root.PersistentFlags().StringVar(&flags.method, "repr-method", "", "iterate|local-search|orbits")
	root.PersistentFlags().BoolVar(&flags.guaranteed, "guaranteed", false, "verify random constructions deterministically")
	root.PersistentFlags().Uint64Var(&flags.seed, "seed", 0, "pseudo-random generator seed")
	root.PersistentFlags().StringVar(&flags.store, "store", "", "orbit store backend: none|memory|file|redis|mongo")
	root.PersistentFlags().StringVar(&flags.storeDir, "store-dir", "", "directory of the file store")
	root.PersistentFlags().StringVar(&flags.redisAddr, "redis-addr", "", "address of the redis store")
	root.PersistentFlags().StringVar(&flags.mongoURI, "mongo-uri", "", "connection string of the mongo store")
	root.PersistentFlags().StringVar(&flags.batch, "batch", "", "batch identifier namespacing store records")

	root.AddCommand(newAutomCmd(flags))
	root.AddCommand(newReprCmd(flags))
	root.AddCommand(newProfileCmd(flags))

	return root.ExecuteContext(context.Background())
}

// Logger bridges for the observability hooks.

type logGroupHooks struct{ logger *charmlog.Logger }

func (h *logGroupHooks) OnAutomorphismSearchStart(numProcessors, numChannels int) {
	h.logger.Debug("automorphism search", "processors", numProcessors, "channels", numChannels)
}

func (h *logGroupHooks) OnAutomorphismSearchComplete(numProcessors int, order string) {
	h.logger.Debug("automorphism group derived", "processors", numProcessors, "order", order)
}

type logReprHooks struct{ logger *charmlog.Logger }

func (h *logReprHooks) OnReprStart(method string, numTasks int) {
	h.logger.Debug("canonicalizing", "method", method, "tasks", numTasks)
}

func (h *logReprHooks) OnReprComplete(method string, numTasks int) {
	h.logger.Debug("canonicalized", "method", method, "tasks", numTasks)
}

func (h *logReprHooks) OnOrbitCacheHit(numTasks int) {
	h.logger.Debug("orbit cache hit", "tasks", numTasks)
}

type logStoreHooks struct{ logger *charmlog.Logger }

func (h *logStoreHooks) OnStoreHit(backend string)    { h.logger.Debug("store hit", "backend", backend) }
func (h *logStoreHooks) OnStoreMiss(backend string)   { h.logger.Debug("store miss", "backend", backend) }
func (h *logStoreHooks) OnStoreInsert(backend string) { h.logger.Debug("store insert", "backend", backend) }
