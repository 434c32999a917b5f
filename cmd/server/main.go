// @title           Budaya Nusantara API
// @version         1.0
// @description     Search Indonesian regions and their cultural heritage by text or image, and chat with a cultural assistant.

// @contact.name   API Support
// @contact.url    https://github.com/akozadaev/budaya_nusantara

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @schemes   http https
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akozadaev/budaya_nusantara/docs"
	"github.com/akozadaev/budaya_nusantara/internal/ai"
	"github.com/akozadaev/budaya_nusantara/internal/chat"
	"github.com/akozadaev/budaya_nusantara/internal/config"
	"github.com/akozadaev/budaya_nusantara/internal/handlers"
	"github.com/akozadaev/budaya_nusantara/internal/search"
	"github.com/akozadaev/budaya_nusantara/internal/storage"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	fallback := storage.NewFallbackStorage()

	// Interfaces stay nil while the store is unavailable; a typed nil
	// pointer would make them look configured.
	var (
		regionStore  search.RegionStore
		regionReader handlers.RegionReader
	)
	if cfg.StoreState() == config.StoreOK {
		pgStorage, err := storage.NewPostgresStorage(cfg.DatabaseURL)
		if err != nil {
			logger.Error("creating PostgreSQL client", "err", err)
			os.Exit(1)
		}
		defer pgStorage.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := pgStorage.Ping(pingCtx); err != nil {
			logger.Warn("PostgreSQL not reachable at startup, requests will recover from fallback data", "err", err)
		} else {
			logger.Info("connected to PostgreSQL")
		}
		cancel()

		regionStore = pgStorage
		regionReader = pgStorage
	} else {
		logger.Warn("DATABASE_URL missing or not a postgres:// URL, serving offline fallback data only",
			"store", config.StoreUnavailable)
	}

	model, err := ai.NewModel(context.Background(), cfg)
	if err != nil {
		logger.Warn("language model unavailable, semantic search and chatbot will fail", "err", err)
	}

	searchService, err := search.NewService(regionStore, fallback, model, search.WithLogger(logger.With("component", "search")))
	if err != nil {
		logger.Error("creating search service", "err", err)
		os.Exit(1)
	}
	assistant := chat.NewAssistant(model, logger)

	h := handlers.NewHandlers(searchService, regionReader, fallback, assistant, cfg.MaxUploadBytes(), logger)

	router := mux.NewRouter()
	h.Register(router)

	docs.SwaggerInfo.Host = "localhost:" + cfg.AppPort
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	router.Use(handlers.RequestLogger(logger))
	router.Use(handlers.CORS)
	// Preflight requests have no matching route; let the CORS middleware see them.
	router.Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // chatbot streams and model calls
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.AppPort, "store", cfg.StoreState(), "ai_provider", cfg.AIProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed to start", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "err", err)
		os.Exit(1)
	}

	logger.Info("server exited")
}
