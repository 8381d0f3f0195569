package config

import "github.com/caarlos0/env/v11"

type ServerConfig struct {
	PostgresDSN string `env:"POSTGRES_DSN,required,notEmpty"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`

	AdminAPIKey string `env:"ADMIN_API_KEY"`

	// LockRetryMax bounds how often a ledger operation is retried when the
	// target pool row is held by a concurrent operation.
	LockRetryMax int `env:"LOCK_RETRY_MAX" envDefault:"3"`

	WalletURL         string `env:"WALLET_URL"`
	WalletAPIKey      string `env:"WALLET_API_KEY"`
	WalletPollSeconds int    `env:"WALLET_POLL_SECONDS" envDefault:"5"`
	WalletBatchSize   int    `env:"WALLET_BATCH_SIZE" envDefault:"50"`
	WalletRetryMax    int    `env:"WALLET_RETRY_MAX" envDefault:"8"`
	WalletRetryBaseMS int    `env:"WALLET_RETRY_BASE_MS" envDefault:"500"`
	WalletTimeoutSecs int    `env:"WALLET_TIMEOUT_SECONDS" envDefault:"5"`
}

func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	err := env.Parse(&cfg)
	return cfg, err
}
