package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"sellerkit/internal/http/handlers"
	httpapi "sellerkit/internal/http/httpapi"
	"sellerkit/internal/infra"
	providers "sellerkit/internal/providers/image"
	"sellerkit/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	store, err := storage.NewFileStore(cfg.OutputDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare output directory")
	}
	uploads, err := storage.NewFileStore(cfg.UploadDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare upload directory")
	}

	registry := providers.NewDefaultRegistry(providers.Endpoints{
		OpenAI:      cfg.OpenAIBaseURL,
		Stability:   cfg.StabilityBaseURL,
		Baidu:       cfg.BaiduBaseURL,
		Tongyi:      cfg.TongyiBaseURL,
		Hunyuan:     cfg.HunyuanBaseURL,
		Zhipu:       cfg.ZhipuBaseURL,
		Minimax:     cfg.MinimaxBaseURL,
		Replicate:   cfg.ReplicateBaseURL,
		HuggingFace: cfg.HFBaseURL,
		Yitu:        cfg.YituBaseURL,
	})
	dispatcher := providers.NewDispatcher(registry, store)

	app := handlers.NewApp(logger, registry, dispatcher, store, uploads, cfg.PublicBaseURL)
	router := httpapi.NewRouter(app)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
