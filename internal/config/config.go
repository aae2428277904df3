package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. ELECTRABASE_DATABASE_PATH
const EnvPrefix = "ELECTRABASE"

// Configuration is the application configuration. The JSON layout matches
// config.json files written by earlier releases.
type Configuration struct {
	Database Database `mapstructure:"database" json:"database"`
	UI       UI       `mapstructure:"ui" json:"ui"`
	Features Features `mapstructure:"features" json:"features"`
	Log      Log      `mapstructure:"log" json:"log"`
}

// Database locates the inventory file
type Database struct {
	Path string `mapstructure:"path" json:"path" default:"inventory.db"`
}

// UI holds presentation thresholds consumed by the CLI and MCP tools
type UI struct {
	LowStockThreshold    int  `mapstructure:"lowStockThreshold" json:"lowStockThreshold" default:"10"`
	ShowLowStockWarnings bool `mapstructure:"showLowStockWarnings" json:"showLowStockWarnings" default:"true"`
}

// Features toggles optional behavior
type Features struct {
	EnableSampleData bool `mapstructure:"enableSampleData" json:"enableSampleData" default:"true"`
}

// Log configures the zap logger
type Log struct {
	Level  string `mapstructure:"level" json:"level" default:"info"`
	Format string `mapstructure:"format" json:"format" default:"console"`
}

// keys lists every setting so viper binds an environment variable for each
var keys = []string{
	"database.path",
	"ui.lowStockThreshold",
	"ui.showLowStockWarnings",
	"features.enableSampleData",
	"log.level",
	"log.format",
}

// NewConfiguration returns a configuration populated with defaults
func NewConfiguration() *Configuration {
	cfg := &Configuration{}
	if err := defaults.Set(cfg); err != nil {
		// Only reachable with a malformed default tag
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Load reads configuration from v. A config file that does not exist is
// not an error; defaults apply. v may already carry bound command flags.
func Load(v *viper.Viper, path string) (*Configuration, error) {
	cfg := NewConfiguration()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the inventory cannot start with
func (c *Configuration) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database.path must not be empty")
	}
	if c.UI.LowStockThreshold < 0 {
		return fmt.Errorf("ui.lowStockThreshold must not be negative, got %d", c.UI.LowStockThreshold)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}
	return nil
}
