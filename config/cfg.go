package config

import (
	"fmt"
	"os"
	"strings"

	httpapi "github.com/nutrishop/shop-manager/internal/api/http"
	"github.com/nutrishop/shop-manager/internal/analytics"
	"github.com/nutrishop/shop-manager/internal/apisrv/auth"
	"github.com/nutrishop/shop-manager/internal/store"
	"github.com/nutrishop/shop-manager/log"
	"github.com/spf13/viper"
)

// Config represents the global configuration for the service.
type Config struct {
	DB        store.Config     `mapstructure:"db"`
	Logger    log.Config       `mapstructure:"logger"`
	HTTP      httpapi.Config   `mapstructure:"http"`
	Auth      auth.Config      `mapstructure:"auth"`
	Analytics analytics.Config `mapstructure:"analytics"`
}

// LoadConfig loads the configuration from a file and/or environment variables.
// Environment variables take precedence over config file values.
// Flat env vars use underscores and uppercase, e.g. DB_DSN, AUTH_JWT_SECRET.
// Nested config keys use double underscore, e.g. DB__DSN for db.dsn.
func LoadConfig(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__", "-", "__"))

	setDefaults(v)
	bindEnvVars(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %v", err)
			}
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/config/shop-manager")
		v.AddConfigPath("/etc/shop-manager")
		// Config file is optional.
		_ = v.ReadInConfig()
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config into struct: %v", err)
	}

	// Build the MySQL DSN from discrete env vars when it is not set.
	if config.DB.DSN == "" && config.DB.Driver == store.DriverMySQL {
		host := os.Getenv("MYSQL_HOST")
		port := os.Getenv("MYSQL_PORT")
		user := os.Getenv("MYSQL_USER")
		password := os.Getenv("MYSQL_PASSWORD")
		database := os.Getenv("MYSQL_DATABASE")
		if host != "" && user != "" && password != "" && database != "" {
			if port == "" {
				port = "3306"
			}
			config.DB.DSN = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8&parseTime=true",
				user, password, host, port, database)
		}
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", store.DriverMySQL)
	v.SetDefault("db.automigrate", true)
	v.SetDefault("db.max_open_connections", 10)
	v.SetDefault("db.max_idle_connections", 5)

	v.SetDefault("http.port", "8081")
	v.SetDefault("http.address", "0.0.0.0")
	v.SetDefault("http.rate_limit_window", "1m")
	v.SetDefault("http.rate_limit_max", 120)

	v.SetDefault("auth.admin_role", "ADMIN")

	v.SetDefault("analytics.timezone", "UTC")
	v.SetDefault("analytics.top_products_limit", analytics.DefaultTopN)
	v.SetDefault("analytics.top_sellers_limit", analytics.DefaultTopN)
}

// bindEnvVars binds environment variables to config keys
// This allows using both nested keys (DB__DSN) and flat keys (DB_DSN)
func bindEnvVars(v *viper.Viper) {
	// DB
	v.BindEnv("db.driver", "DB_DRIVER")
	v.BindEnv("db.dsn", "DB_DSN")
	v.BindEnv("db.automigrate", "DB_AUTOMIGRATE")
	v.BindEnv("db.max_open_connections", "DB_MAX_OPEN_CONNECTIONS")
	v.BindEnv("db.max_idle_connections", "DB_MAX_IDLE_CONNECTIONS")

	// Logger
	v.BindEnv("logger.level", "LOG_LEVEL")
	v.BindEnv("logger.add_source", "LOG_ADD_SOURCE")

	// HTTP
	v.BindEnv("http.port", "HTTP_PORT")
	v.BindEnv("http.address", "HTTP_ADDRESS")
	v.BindEnv("http.allowed_origins", "HTTP_ALLOWED_ORIGINS")
	v.BindEnv("http.rate_limit_window", "HTTP_RATE_LIMIT_WINDOW")
	v.BindEnv("http.rate_limit_max", "HTTP_RATE_LIMIT_MAX")

	// Auth
	v.BindEnv("auth.jwt_secret", "AUTH_JWT_SECRET")
	v.BindEnv("auth.admin_role", "AUTH_ADMIN_ROLE")

	// Analytics
	v.BindEnv("analytics.timezone", "ANALYTICS_TIMEZONE")
	v.BindEnv("analytics.top_products_limit", "ANALYTICS_TOP_PRODUCTS_LIMIT")
	v.BindEnv("analytics.top_sellers_limit", "ANALYTICS_TOP_SELLERS_LIMIT")
}
