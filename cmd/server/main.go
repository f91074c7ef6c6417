package main

import (
	"net/http"
	"os"

	"midtrans-go/internal/config"
	"midtrans-go/internal/logger"
	"midtrans-go/internal/webhook"
	"midtrans-go/pkg/midtrans"

	"go.uber.org/zap"
)

var startServerFunc = func(addr string, handler http.Handler) error {
	return http.ListenAndServe(addr, handler)
}

func main() {
	if err := run(); err != nil {
		logger.L().Error("server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	router, err := newServer(cfg)
	if err != nil {
		return err
	}

	logger.L().Info("webhook receiver listening",
		zap.String("port", cfg.AppPort),
		zap.Bool("production", cfg.MidtransProduction),
	)
	return startServerFunc(":"+cfg.AppPort, router)
}

func newServer(cfg *config.Config) (http.Handler, error) {
	client, err := midtrans.NewClient(cfg.Midtrans(),
		midtrans.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		midtrans.WithLogger(logger.L().Named("midtrans")),
	)
	if err != nil {
		return nil, err
	}

	h := webhook.NewWebhookHandler(client.Verifier, client.Transaction)
	return setupRouter(h.WebhookHandler), nil
}

func setupRouter(webhookHandler http.HandlerFunc) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.Handle("/webhook/midtrans", webhookHandler)

	return logger.RequestIDMiddleware(logger.LoggingMiddleware(mux))
}
