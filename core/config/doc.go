// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is read once on first use (missing
// files are ignored), then caarlos0/env parses the environment into the
// target struct. Each configuration type is parsed once and cached; later
// calls for the same type copy the cached value.
//
//	type Config struct {
//		APIBaseURL string `env:"API_BASE_URL,required"`
//		LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
//	// Or panic during startup:
//	config.MustLoad(&cfg)
package config
