package config

import (
	"fmt"

	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	Port          string `mapstructure:"PORT"`
	Env           string `mapstructure:"ENV"`
	StoreDriver   string `mapstructure:"STORE_DRIVER"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	DBMaxConns    int32  `mapstructure:"DB_MAX_CONNS"`
	DBMinConns    int32  `mapstructure:"DB_MIN_CONNS"`
	MongoURL      string `mapstructure:"MONGO_URL"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`
	TemplatesDir  string `mapstructure:"TEMPLATES_DIR"`
	StaticDir     string `mapstructure:"STATIC_DIR"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "3001")
	v.SetDefault("ENV", "development")
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("MONGO_DATABASE", "maternity")
	v.SetDefault("TEMPLATES_DIR", "./web/templates")
	v.SetDefault("STATIC_DIR", "./web/static")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("STORE_DRIVER")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("MONGO_URL")
	v.BindEnv("MONGO_DATABASE")
	v.BindEnv("TEMPLATES_DIR")
	v.BindEnv("STATIC_DIR")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is complete for the selected
// store driver. The server refuses to start without a reachable store,
// so a missing connection URL is caught here rather than at first request.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is %q", DriverPostgres)
		}
	case DriverMongo:
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required when STORE_DRIVER is %q", DriverMongo)
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", DriverPostgres, DriverMongo, c.StoreDriver)
	}
	return nil
}
