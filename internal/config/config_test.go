package config

import (
	"os"
	"path/filepath"
	"testing"

	"backorder/domain/order"
	"backorder/internal"
	"backorder/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "report_history", cfg.HistoryDir)
	assert.Equal(t, 7, cfg.LookbackDays)
	assert.Equal(t, "MANUEL ORTEGA", cfg.Military.Salesperson)
	assert.Equal(t, []string{"dla", "dfas", "navsup"}, cfg.Military.Keywords)
	assert.Equal(t, "Lisa Miller", cfg.Dedup.Primary)
	assert.Equal(t, "Sara Burrell", cfg.Dedup.Secondary)
	assert.Equal(t, "logs", cfg.LogDir)
	assert.Equal(t, internal.LogLevelInfo, cfg.Level())
	assert.True(t, cfg.Living.DropDuplicateKeys)
	assert.Equal(t, order.SortByOrderNumber, cfg.ParsedSortKey())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backorder.yaml")
	yaml := `history_dir: archive
lookback_days: 3
sort_key: due-date
military:
  keywords: [dla]
dedup:
  primary: Alice
  secondary: Bob
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "archive", cfg.HistoryDir)
	assert.Equal(t, 3, cfg.LookbackDays)
	assert.Equal(t, order.SortByDueDate, cfg.ParsedSortKey())
	assert.Equal(t, []string{"dla"}, cfg.Military.Keywords)
	assert.Equal(t, "MANUEL ORTEGA", cfg.Military.Salesperson)
	assert.Equal(t, "Alice", cfg.Dedup.Primary)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BACKORDER_HISTORY_DIR", "/tmp/history")
	t.Setenv("BACKORDER_LOOKBACK_DAYS", "2")
	t.Setenv("BACKORDER_MILITARY_KEYWORDS", "dla, navsup")

	cfg, err := Load(writeConfig(t, "log_dir: out\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/history", cfg.HistoryDir)
	assert.Equal(t, 2, cfg.LookbackDays)
	assert.Equal(t, []string{"dla", "navsup"}, cfg.Military.Keywords)
	assert.Equal(t, "out", cfg.LogDir)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty salesperson", func(c *Config) { c.Military.Salesperson = " " }},
		{"no keywords", func(c *Config) { c.Military.Keywords = nil }},
		{"zero lookback", func(c *Config) { c.LookbackDays = 0 }},
		{"same dedup names", func(c *Config) { c.Dedup.Secondary = c.Dedup.Primary }},
		{"unknown sort key", func(c *Config) { c.SortKey = "price" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "backorder.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}
