package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Port           int     `mapstructure:"port"`
	LogLevel       string  `mapstructure:"log_level"`
	CacheSize      int     `mapstructure:"cache_size"`
	LogoDir        string  `mapstructure:"logo_dir"`
	ModuleWidth    int     `mapstructure:"qr_module_width"`
	BorderWidth    int     `mapstructure:"qr_border_width"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	AuthUser       string  `mapstructure:"auth_user"`
	AuthPass       string  `mapstructure:"auth_pass"`
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "INFO")
	v.SetDefault("cache_size", 256)
	v.SetDefault("logo_dir", "./logos")
	v.SetDefault("qr_module_width", 20)
	v.SetDefault("qr_border_width", 20)
	v.SetDefault("rate_limit_rps", 10.0)
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("auth_user", "")
	v.SetDefault("auth_pass", "")
}

// LoadConfig reads defaults, an optional YAML file and environment variables
// (PORT, LOG_LEVEL, LOGO_DIR, ...), later sources overriding earlier ones.
// An empty configPath searches for wifiqr.yaml in . and /etc/wifiqr.
func LoadConfig(configPath string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("wifiqr")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/wifiqr")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}

	if cfg.ModuleWidth < 1 || cfg.ModuleWidth > 255 {
		return Config{}, fmt.Errorf("qr_module_width must be within 1..255, got %d", cfg.ModuleWidth)
	}
	if cfg.BorderWidth < 0 {
		return Config{}, fmt.Errorf("qr_border_width must not be negative, got %d", cfg.BorderWidth)
	}

	return cfg, nil
}
