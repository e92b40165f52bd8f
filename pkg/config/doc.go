// Package config loads configuration structs from environment variables.
//
// A .env file in the working directory is loaded once, then struct fields are
// populated from `env` tags via github.com/caarlos0/env. Missing required
// variables fail loading rather than surfacing later at first use.
//
// # Usage
//
//	type APIConfig struct {
//	    BaseURL string `env:"RT07_API_BASE_URL" envDefault:"https://rt07-api.michaeljip.com/api"`
//	}
//
//	var cfg APIConfig
//	if err := config.Load(&cfg); err != nil {
//	    // Handle error
//	}
package config
