package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type CollectorConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	APIBase    string `env:"HELLDIVERS_API_BASE" envDefault:"https://api.helldivers2.dev"`
	ClientName string `env:"HELLDIVERS_API_CLIENT_NAME" envDefault:"high-command"`
	Contact    string `env:"HELLDIVERS_API_CONTACT"`

	ScrapeIntervalSecs int `env:"SCRAPE_INTERVAL" envDefault:"300"`
	APITimeoutSecs     int `env:"API_TIMEOUT" envDefault:"30"`

	PoolMaxConns int `env:"POOL_MAX_CONN" envDefault:"50"`
}

func LoadCollector() (CollectorConfig, error) {
	var cfg CollectorConfig
	err := env.Parse(&cfg)
	return cfg, err
}

func (c CollectorConfig) ScrapeInterval() time.Duration {
	if c.ScrapeIntervalSecs <= 0 {
		return 300 * time.Second
	}
	return time.Duration(c.ScrapeIntervalSecs) * time.Second
}

func (c CollectorConfig) APITimeout() time.Duration {
	if c.APITimeoutSecs <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.APITimeoutSecs) * time.Second
}
