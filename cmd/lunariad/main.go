package main

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deathdaycome/Lunaria1-sub000/internal/adapters/decks"
	httpadapter "github.com/deathdaycome/Lunaria1-sub000/internal/adapters/http"
	"github.com/deathdaycome/Lunaria1-sub000/internal/adapters/llm/openrouter"
	"github.com/deathdaycome/Lunaria1-sub000/internal/app"
	"github.com/deathdaycome/Lunaria1-sub000/internal/config"
)

// stdRNG delegates to math/rand/v2 (auto-seeded, safe for concurrent use).
type stdRNG struct{}

func (stdRNG) Intn(n int) int { return rand.IntN(n) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	var deckFiles []string
	if cfg.DeckFile != "" {
		deckFiles = append(deckFiles, cfg.DeckFile)
	}
	deckStore := decks.NewEmbeddedStore(deckFiles...)
	// Fail at startup rather than on the first request.
	if _, err := deckStore.GetDeck(context.Background(), app.DefaultDeckID); err != nil {
		logger.Error("failed to load decks", "error", err)
		os.Exit(1)
	}

	llmClient := openrouter.NewClient(
		&http.Client{Timeout: cfg.LLMTimeout},
		cfg.OpenRouterAPIKey,
		cfg.OpenRouterBaseURL,
		cfg.LLMModel,
		cfg.LLMFallbackModels,
		logger,
	)

	svc := app.NewReadingService(deckStore, llmClient, stdRNG{}, cfg.LLMModel, app.Options{
		MaxAttempts:  cfg.ReadingMaxAttempts,
		AliasFolding: cfg.CardAliasFolding,
	}, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(httpadapter.RequestIDMiddleware())
	e.Use(httpadapter.LoggingMiddleware(logger))

	handler := httpadapter.NewHandler(svc)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server", "addr", cfg.HTTPAddr)
		if err := e.Start(cfg.HTTPAddr); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
