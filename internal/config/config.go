package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

const EnvDevelopment = "development"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort       string        `env:"HTTP_PORT" envDefault:"3000"`
	AppEnv         string        `env:"APP_ENV" envDefault:"production"`
	CORSOrigins    []string      `env:"CORS_ORIGIN" envSeparator:"," envDefault:"https://poehali.dev,http://localhost:3000,http://localhost:5173,http://localhost:8080"`
	WeightsFile    string        `env:"WEIGHTS_FILE"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	RedisPassword  string        `env:"REDIS_PASSWORD"`
	RedisDB        int           `env:"REDIS_DB" envDefault:"0"`
	ResultCacheTTL time.Duration `env:"RESULT_CACHE_TTL" envDefault:"10m"`
}

// IsDevelopment habilita CORS abierto y logs de desarrollo.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == EnvDevelopment
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
