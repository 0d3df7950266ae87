package simulation

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 4, cfg.MaxTier())

	costs := make([]int, 0, len(cfg.Chests.Tiers))
	for _, tier := range cfg.Chests.Tiers {
		costs = append(costs, tier.Cost)
	}
	assert.Equal(t, []int{0, 5, 10, 20, 50}, costs)
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().World.Width, cfg.World.Width)
}

func TestLoadConfigOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := []byte("seed: 42\nclock:\n  day_length_ms: 1000\nfireflies:\n  count: 12\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, time.Second, cfg.Clock.DayLength.Duration())
	assert.Equal(t, 12, cfg.Fireflies.Count)
	// untouched sections keep their defaults
	assert.Equal(t, 180.0, cfg.Player.Speed)
	assert.Len(t, cfg.Chests.Tiers, 5)
}

func TestLoadConfigRejectsBrokenTierTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	data := []byte("chests:\n  tiers:\n    - color: purple\n      min_companions: 3\n      max_companions: 1\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
