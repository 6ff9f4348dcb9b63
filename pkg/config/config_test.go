package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lhagemann/symred/pkg/arch"
	"github.com/lhagemann/symred/pkg/perm"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	opts, err := cfg.Solver.BSGSOptions()
	require.NoError(t, err)
	assert.Equal(t, perm.Deterministic, opts.Construction)
	assert.Equal(t, perm.ExplicitTransversals, opts.Transversals)

	reprOpts, err := cfg.Solver.ReprOptions()
	require.NoError(t, err)
	assert.Equal(t, arch.ReprIterate, reprOpts.Method)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symred.toml")
	content := `
[solver]
schreier_sims = "random"
transversal_storage = "shallow-schreier-trees"
repr_method = "local-search"
guaranteed = true
seed = 42

[store]
backend = "redis"
redis_addr = "cache:6379"
batch = "exynos-batch"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	opts, err := cfg.Solver.BSGSOptions()
	require.NoError(t, err)
	assert.Equal(t, perm.MonteCarlo, opts.Construction)
	assert.Equal(t, perm.ShallowSchreierTrees, opts.Transversals)
	assert.True(t, opts.Guaranteed)
	assert.Equal(t, uint64(42), opts.Seed)

	reprOpts, err := cfg.Solver.ReprOptions()
	require.NoError(t, err)
	assert.Equal(t, arch.ReprLocalSearch, reprOpts.Method)

	assert.Equal(t, "redis", cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.RedisAddr)
	assert.Equal(t, "exynos-batch", cfg.Store.Batch)
}

func TestUnknownSettingsFail(t *testing.T) {
	cfg := Default()

	cfg.Solver.SchreierSims = "quantum"
	_, err := cfg.Solver.BSGSOptions()
	assert.Error(t, err)

	cfg = Default()
	cfg.Solver.TransversalStorage = "linked-lists"
	_, err = cfg.Solver.BSGSOptions()
	assert.Error(t, err)

	cfg = Default()
	cfg.Solver.ReprMethod = "simulated-annealing"
	_, err = cfg.Solver.ReprOptions()
	assert.Error(t, err)
}
