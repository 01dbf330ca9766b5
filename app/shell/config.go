package shell

import (
	"time"

	"github.com/dmitrymomot/spakit/integration/storage/redis"
)

// Storage drivers.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
)

type Config struct {
	Redis redis.Config

	AppName       string `env:"APP_NAME" envDefault:"spakit"`
	Env           string `env:"APP_ENV" envDefault:"development"`
	LogLevel      string `env:"LOG_LEVEL" envDefault:"info"`
	APIBaseURL    string `env:"API_BASE_URL" envDefault:"http://localhost:3000"`
	Origin        string `env:"APP_ORIGIN" envDefault:"http://localhost:3000"`
	StartPath     string `env:"START_PATH" envDefault:"/"`
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"file"`
	StoragePath   string `env:"STORAGE_PATH" envDefault:".spakit"`

	HealthInterval time.Duration `env:"STORAGE_HEALTH_INTERVAL" envDefault:"30s"`
}
