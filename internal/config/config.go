package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/icsuite/wireplan/internal/engine"
)

type Config struct {
	Server  ServerConfig     `mapstructure:"server"`
	Engine  EngineConfig     `mapstructure:"engine"`
	Tags    engine.TagConfig `mapstructure:"tags"`
	Catalog CatalogConfig    `mapstructure:"catalogs"`
}

type ServerConfig struct {
	HTTPPort        int           `mapstructure:"http_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type EngineConfig struct {
	SparePercent  float64 `mapstructure:"spare_percent"`
	Vendor        string  `mapstructure:"vendor"`
	PreferredSize string  `mapstructure:"preferred_jb_size"`
	MaxPairsPerTB int     `mapstructure:"max_pairs_per_tb"`
}

type CatalogConfig struct {
	SearchPaths []string `mapstructure:"search_paths"`
}

func Load(path string) (*Config, error) {
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	setDefaults()

	viper.AutomaticEnv()
	viper.SetEnvPrefix("WIREPLAN")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// LoadOrDefault behaves like Load but falls back to the built-in defaults
// when no config file exists, so the binaries run without one.
func LoadOrDefault(path string) (*Config, error) {
	config, err := Load(path)
	if err == nil {
		return config, nil
	}

	viper.Reset()
	setDefaults()
	viper.AutomaticEnv()
	viper.SetEnvPrefix("WIREPLAN")

	var fallback Config
	if uerr := viper.Unmarshal(&fallback); uerr != nil {
		return nil, fmt.Errorf("failed to build default config: %w", uerr)
	}
	return &fallback, nil
}

func setDefaults() {
	viper.SetDefault("server.http_port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	viper.SetDefault("engine.spare_percent", 0.20)
	viper.SetDefault("engine.vendor", "Yokogawa")
	viper.SetDefault("engine.preferred_jb_size", "")
	viper.SetDefault("engine.max_pairs_per_tb", 20)

	viper.SetDefault("tags.plant_code", "PP01")
	viper.SetDefault("tags.area_code", "601")
	viper.SetDefault("tags.jb_sequence_start", 1)
	viper.SetDefault("tags.cable_sequence_start", 1)
	viper.SetDefault("tags.tb_sequence_start", 1)

	viper.SetDefault("catalogs.search_paths", []string{"./catalogs"})
}

// PreferredJBSize maps the configured size name to the engine type. Empty
// or unknown values mean auto-select.
func (e *EngineConfig) PreferredJBSize() engine.JBSize {
	switch e.PreferredSize {
	case string(engine.JBSmall):
		return engine.JBSmall
	case string(engine.JBStandard):
		return engine.JBStandard
	case string(engine.JBLarge):
		return engine.JBLarge
	}
	return ""
}
