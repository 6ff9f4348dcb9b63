package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lhagemann/symred/pkg/arch"
	"github.com/lhagemann/symred/pkg/config"
	"github.com/lhagemann/symred/pkg/orbitstore"
	"github.com/lhagemann/symred/pkg/task"
)

func newReprCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repr <description.json> [allocations-file]",
		Short: "Canonicalize task allocations into orbit representatives",
		Long: `repr reads one task allocation per line (either whitespace-separated
indices or a bracketed comma-separated list), maps each to the
lexicographically smallest allocation in its orbit under the architecture's
automorphism group, and prints representative and orbit index per line.
Allocations are read from the given file, or stdin when omitted.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			reprOpts, err := cfg.Solver.ReprOptions()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			system, err := arch.ParseDescription(data)
			if err != nil {
				return err
			}

			var input io.Reader = cmd.InOrStdin()
			if len(args) == 2 {
				f, err := os.Open(args[1])
				if err != nil {
					return err
				}
				defer f.Close()
				input = f
			}
			allocations, err := task.ParseAllocations(input)
			if err != nil {
				return err
			}
			logger.Debug("allocations parsed", "count", len(allocations))

			orbits := task.NewOrbits()
			store, err := openStore(cmd.Context(), cfg.Store)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
				if err := orbitstore.Seed(cmd.Context(), store, orbits); err != nil {
					return err
				}
			}

			for _, allocation := range allocations {
				representative, err := system.Repr(allocation, reprOpts, orbits)
				if err != nil {
					return err
				}
				index, _ := orbits.Lookup(representative)
				fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s orbit %d\n",
					allocation, representative, index)
			}

			if store != nil {
				if err := orbitstore.Drain(cmd.Context(), store, orbits); err != nil {
					return err
				}
			}
			printSuccess("%d allocations in %s distinct orbits",
				len(allocations), styleValue.Render(fmt.Sprint(orbits.Len())))
			return nil
		},
	}
	return cmd
}

// openStore builds the configured orbit-store backend, or nil for "none".
func openStore(ctx context.Context, cfg config.StoreConfig) (orbitstore.Store, error) {
	batch := cfg.Batch
	if batch == "" {
		batch = orbitstore.NewBatchID()
	}

	switch cfg.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		return orbitstore.NewMemoryStore(), nil
	case "file":
		dir := cfg.Dir
		if dir == "" {
			dir = ".symred-orbits"
		}
		return orbitstore.NewFileStore(dir, batch)
	case "redis":
		return orbitstore.NewRedisStore(ctx, orbitstore.RedisConfig{Addr: cfg.RedisAddr}, batch)
	case "mongo":
		return orbitstore.NewMongoStore(ctx, orbitstore.MongoConfig{URI: cfg.MongoURI}, batch)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
