// Package config loads TOML run configuration for the symred driver:
// solver settings (Schreier-Sims variant, transversal storage, repr
// strategy, RNG seed) and orbit-store backend selection. CLI flags
// override file values.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lhagemann/symred/pkg/arch"
	"github.com/lhagemann/symred/pkg/perm"
)

// Config is the full driver configuration. Zero values select defaults.
type Config struct {
	Solver SolverConfig `toml:"solver"`
	Store  StoreConfig  `toml:"store"`
}

// SolverConfig selects the group-construction and canonicalization
// algorithms.
type SolverConfig struct {
	// SchreierSims is "deterministic" (default) or "random".
	SchreierSims string `toml:"schreier_sims"`

	// TransversalStorage is "explicit" (default), "schreier-trees" or
	// "shallow-schreier-trees".
	TransversalStorage string `toml:"transversal_storage"`

	// ReprMethod is "iterate" (default), "local-search" or "orbits".
	ReprMethod string `toml:"repr_method"`

	// Guaranteed verifies a random construction deterministically.
	Guaranteed bool `toml:"guaranteed"`

	// Seed of the pseudo-random generator; 0 selects the built-in stable
	// default.
	Seed uint64 `toml:"seed"`
}

// StoreConfig selects and configures the orbit-store backend.
type StoreConfig struct {
	// Backend is "none" (default), "memory", "file", "redis" or "mongo".
	Backend string `toml:"backend"`

	// Dir is the directory of the file backend.
	Dir string `toml:"dir"`

	// RedisAddr is the host:port of the redis backend.
	RedisAddr string `toml:"redis_addr"`

	// MongoURI is the connection string of the mongo backend.
	MongoURI string `toml:"mongo_uri"`

	// Batch namespaces records in shared backends; empty generates a
	// fresh batch identifier per run.
	Batch string `toml:"batch"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			SchreierSims:       "deterministic",
			TransversalStorage: "explicit",
			ReprMethod:         "iterate",
		},
		Store: StoreConfig{Backend: "none"},
	}
}

// Load reads a TOML configuration file, filling unset fields with
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// BSGSOptions converts the solver settings into permutation group
// construction options.
func (c SolverConfig) BSGSOptions() (*perm.Options, error) {
	opts := &perm.Options{Guaranteed: c.Guaranteed, Seed: c.Seed}

	switch c.SchreierSims {
	case "", "deterministic":
		opts.Construction = perm.Deterministic
	case "random":
		opts.Construction = perm.MonteCarlo
	default:
		return nil, fmt.Errorf("unknown schreier-sims variant %q", c.SchreierSims)
	}

	switch c.TransversalStorage {
	case "", "explicit":
		opts.Transversals = perm.ExplicitTransversals
	case "schreier-trees":
		opts.Transversals = perm.SchreierTrees
	case "shallow-schreier-trees":
		opts.Transversals = perm.ShallowSchreierTrees
	default:
		return nil, fmt.Errorf("unknown transversal storage %q", c.TransversalStorage)
	}

	return opts, nil
}

// ReprOptions converts the solver settings into canonicalization options.
func (c SolverConfig) ReprOptions() (*arch.ReprOptions, error) {
	bsgs, err := c.BSGSOptions()
	if err != nil {
		return nil, err
	}

	opts := &arch.ReprOptions{Automorphisms: &arch.AutomorphismOptions{BSGS: bsgs}}
	switch c.ReprMethod {
	case "", "iterate":
		opts.Method = arch.ReprIterate
	case "local-search":
		opts.Method = arch.ReprLocalSearch
	case "orbits":
		opts.Method = arch.ReprOrbits
	default:
		return nil, fmt.Errorf("unknown repr method %q", c.ReprMethod)
	}
	return opts, nil
}
