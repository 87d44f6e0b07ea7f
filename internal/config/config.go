// Package config loads process configuration from the environment, once at
// startup.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Addr string `env:"ADDR" envDefault:":8080"`

	// StoreBackend selects the kv adapter: redis, postgres or memory.
	StoreBackend string `env:"STORE_BACKEND" envDefault:"redis"`
	RedisAddr    string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	DatabaseURL  string `env:"DATABASE_URL"`

	// UpstreamURL is the content-API endpoint returning the full article set.
	// Read once here and never revalidated.
	UpstreamURL     string        `env:"UPSTREAM_URL,required"`
	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"30s"`
}

func Load() (Config, error) {
	return env.ParseAs[Config]()
}
