package config

import "github.com/caarlos0/env/v11"

// TestConfig points integration tests at a disposable Postgres database.
// Parsing fails when TEST_POSTGRES_DSN is unset; callers turn that into
// a test skip rather than an error.
type TestConfig struct {
	TestPostgresDSN string `env:"TEST_POSTGRES_DSN,required,notEmpty"`
}

func LoadTest() (TestConfig, error) {
	cfg := TestConfig{}
	if err := env.Parse(&cfg); err != nil {
		return TestConfig{}, err
	}
	return cfg, nil
}
