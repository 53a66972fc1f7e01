package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":5000"`

	PoolMaxConns int `env:"POOL_MAX_CONN" envDefault:"50"`

	// Key for the Claude reverse proxy. Requests to /claude/* are answered
	// with 503 when unset.
	ClaudeAPIKey string `env:"CLAUDE_API_KEY"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
