package config

import (
	"strings"

	"backorder/domain/order"
	"backorder/internal"
	"backorder/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. BACKORDER_HISTORY_DIR.
const EnvPrefix = "BACKORDER"

// Config represents the complete application configuration
type Config struct {
	InputFile    string `mapstructure:"input_file"`
	OutputFile   string `mapstructure:"output_file"`
	OutputDir    string `mapstructure:"output_dir"`
	HistoryDir   string `mapstructure:"history_dir"`
	LookbackDays int    `mapstructure:"lookback_days"`
	SortKey      string `mapstructure:"sort_key"`
	LogDir       string `mapstructure:"log_dir"`
	LogLevel     string `mapstructure:"log_level"`

	Military MilitaryConfig `mapstructure:"military"`
	Dedup    DedupConfig    `mapstructure:"dedup"`
	Living   LivingConfig   `mapstructure:"living"`
}

// MilitaryConfig holds the classification rule
type MilitaryConfig struct {
	Salesperson string   `mapstructure:"salesperson"`
	Keywords    []string `mapstructure:"keywords"`
}

// DedupConfig names the salesperson pair whose duplicated lines are removed
type DedupConfig struct {
	Primary   string `mapstructure:"primary"`
	Secondary string `mapstructure:"secondary"`
}

// LivingConfig holds living-report settings
type LivingConfig struct {
	DropDuplicateKeys bool `mapstructure:"drop_duplicate_keys"`
}

var defaults = map[string]interface{}{
	"input_file":                 "",
	"output_file":                "",
	"output_dir":                 ".",
	"history_dir":                "report_history",
	"lookback_days":              7,
	"sort_key":                   string(order.DefaultSortKey),
	"log_dir":                    "logs",
	"log_level":                  "INFO",
	"military.salesperson":       "MANUEL ORTEGA",
	"military.keywords":          []string{"dla", "dfas", "navsup"},
	"dedup.primary":              "Lisa Miller",
	"dedup.secondary":            "Sara Burrell",
	"living.drop_duplicate_keys": true,
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		// defaults always decode
		panic(err)
	}
	return cfg
}

// Load reads configuration from an optional YAML file and BACKORDER_*
// environment variables, then validates it. An empty configFile searches
// for backorder.yaml in the working directory and ./configs.
func Load(configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("backorder")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
	}

	if err := v.ReadInConfig(); err != nil {
		// searched config file is optional, an explicit one is not
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound || configFile != "" {
			return nil, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "failed to read config file")
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, errors.Wrap(errors.WithCode(errors.CodeConfigInvalid, err), "failed to decode configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Military.Keywords = normalizeKeywords(cfg.Military.Keywords)
	return cfg, nil
}

// keywords may arrive as one comma-separated env value
func normalizeKeywords(in []string) []string {
	var out []string
	for _, k := range in {
		for _, part := range strings.Split(k, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks the settings the pipeline depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Military.Salesperson) == "" {
		return errors.ConfigInvalid("military.salesperson is required")
	}
	if len(c.Military.Keywords) == 0 {
		return errors.ConfigInvalid("military.keywords must not be empty")
	}
	if c.LookbackDays < 1 {
		return errors.ConfigInvalid("lookback_days must be at least 1")
	}
	if strings.TrimSpace(c.Dedup.Primary) == "" || strings.TrimSpace(c.Dedup.Secondary) == "" {
		return errors.ConfigInvalid("dedup.primary and dedup.secondary are required")
	}
	if c.Dedup.Primary == c.Dedup.Secondary {
		return errors.ConfigInvalid("dedup.primary and dedup.secondary must differ")
	}
	if _, err := order.ParseSortKey(c.SortKey); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	if _, ok := internal.ParseLogLevel(c.LogLevel); !ok {
		return errors.ConfigInvalid("log_level must be ERROR, WARN, INFO or DEBUG")
	}
	return nil
}

// Level returns the parsed log level.
func (c *Config) Level() internal.LogLevel {
	level, _ := internal.ParseLogLevel(c.LogLevel)
	return level
}

// ParsedSortKey returns the validated sort key.
func (c *Config) ParsedSortKey() order.SortKey {
	k, err := order.ParseSortKey(c.SortKey)
	if err != nil {
		return order.DefaultSortKey
	}
	return k
}
