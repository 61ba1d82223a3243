package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advisor.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
simulation {
  workers = 4
}

charts {
  dir = "/tmp/charts"
}

table {
  payout_structure = "9_player_sng"
  prize_pool       = 900
}

log {
  level = "debug"
}
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 50000, cfg.Simulation.Trials, "unset trials keep the default")
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, "/tmp/charts", cfg.Charts.Dir)
	assert.Equal(t, "6max", cfg.Table.Format)
	assert.Equal(t, "9_player_sng", cfg.Table.PayoutStructure)
	assert.Equal(t, 900.0, cfg.Table.PrizePool)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "advisor.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`simulation {`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Log.Level = "loud"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Simulation.Trials = -1
	assert.Error(t, cfg.Validate())
}
