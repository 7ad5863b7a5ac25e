package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

//go:embed config.yml
var embeddedConfig []byte

type Config struct {
	Mode   string `mapstructure:"mode"`
	Server struct {
		HTTPPort    string        `mapstructure:"HTTPPort"`
		MetricsPort string        `mapstructure:"metricsPort"`
		Timeout     time.Duration `mapstructure:"HTTPTimeout"`
	} `mapstructure:"server"`
	Repositories struct {
		Postgres struct {
			Host     string `mapstructure:"host"`
			Password string `mapstructure:"password"`
			Port     string `mapstructure:"port"`
			Username string `mapstructure:"username"`
			DB       string `mapstructure:"db"`
			SSLMode  string `mapstructure:"sslmode"`
		} `mapstructure:"postgres"`
	} `mapstructure:"repositories"`
	JWT JWTConfig `mapstructure:"jwt"`
}

// JWTConfig holds the process-wide signing secret and token lifetime.
// Both are sourced from the environment (App_secret, Expiry) and loaded
// once at startup; there is no key rotation.
type JWTConfig struct {
	SecretKey string        `mapstructure:"secretKey"`
	Expiry    time.Duration `mapstructure:"expiry"`
}

func InitConfig() (Config, error) {
	var config Config
	v := viper.New()

	// Add file-based config paths
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.AddConfigPath("/app/config")

	v.SetConfigName("config")
	v.SetConfigType("yml")

	// Environment variables keep the names the original deployment used.
	_ = v.BindEnv("jwt.secretKey", "App_secret")
	_ = v.BindEnv("jwt.expiry", "Expiry")
	_ = v.BindEnv("repositories.postgres.db", "DB_NAME")
	_ = v.BindEnv("repositories.postgres.username", "DB_USER")
	_ = v.BindEnv("repositories.postgres.password", "DB_PASSWORD")
	_ = v.BindEnv("repositories.postgres.host", "DB_HOST")
	_ = v.BindEnv("repositories.postgres.port", "DB_PORT")
	_ = v.BindEnv("server.HTTPPort", "PORT")

	// Try to load file-based config
	err := v.ReadInConfig()
	if err != nil {
		fmt.Printf("Warning: Failed to find file-based config: %s. Falling back to embedded config.\n", err)
		if err = v.ReadConfig(bytes.NewReader(embeddedConfig)); err != nil {
			return Config{}, fmt.Errorf("failed to read embedded config: %s", err)
		}
	}

	// Unmarshal the config into the Config struct
	if err = v.Unmarshal(&config); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %s", err)
	}

	if config.JWT.SecretKey == "" {
		return Config{}, fmt.Errorf("App_secret is not configured")
	}
	return config, nil
}
