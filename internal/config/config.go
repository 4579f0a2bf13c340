package config

import (
	"time"

	"github.com/rutacostera/service-routes/internal/platform/config"
)

// ServiceConfig holds all configuration for the routes service.
type ServiceConfig struct {
	Port             string
	AppEnv           string
	DBConfig         config.DatabaseConfig
	JWTConfig        config.JWTConfig
	KafkaConfig      config.KafkaConfig
	GoogleMapsAPIKey string
	ProviderTimeout  time.Duration
}

// Load reads configuration from environment variables.
func Load() (*ServiceConfig, error) {
	v, err := config.Load("ROUTES")
	if err != nil {
		return nil, err
	}

	return &ServiceConfig{
		Port:             config.GetServicePort(v, "SERVICE_PORT"),
		AppEnv:           config.GetAppEnv(v),
		DBConfig:         config.LoadDatabaseConfig(v, "DB_NAME"),
		JWTConfig:        config.LoadJWTConfig(v),
		KafkaConfig:      config.LoadKafkaConfig(v),
		GoogleMapsAPIKey: v.GetString("GOOGLE_MAPS_API_KEY"),
		ProviderTimeout:  config.GetDuration(v, "PROVIDER_TIMEOUT", 5*time.Second),
	}, nil
}
