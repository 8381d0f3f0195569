package main

import (
	"context"
	"net/http"
	"time"

	"bbj-ledger/internal/config"
	"bbj-ledger/internal/ledger"
	"bbj-ledger/internal/logging"
	"bbj-ledger/internal/rake"
	"bbj-ledger/internal/store"
	httptransport "bbj-ledger/internal/transport/http"
	"bbj-ledger/internal/wallet"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	logCfg, err := config.LoadLog()
	if err != nil {
		panic(err)
	}
	logging.Init(logCfg)

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("load server config failed")
	}

	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	svc := ledger.NewService(st, cfg.LockRetryMax)
	router := rake.NewRouter(st, svc, st, rake.NopSettler{})

	if cfg.WalletURL != "" {
		creditor := wallet.NewHTTPCreditor(cfg.WalletURL, cfg.WalletAPIKey, time.Duration(cfg.WalletTimeoutSecs)*time.Second)
		outbox := wallet.NewOutbox(st, creditor, wallet.OutboxConfig{
			PollInterval: time.Duration(cfg.WalletPollSeconds) * time.Second,
			BatchSize:    cfg.WalletBatchSize,
			RetryMax:     cfg.WalletRetryMax,
			RetryBase:    time.Duration(cfg.WalletRetryBaseMS) * time.Millisecond,
		})
		outbox.Start(context.Background())
		log.Info().Str("wallet_url", cfg.WalletURL).Msg("wallet credit outbox started")
	} else {
		log.Warn().Msg("WALLET_URL unset, wallet credit outbox disabled")
	}

	r := httptransport.NewRouter(st, svc, router, cfg)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}
