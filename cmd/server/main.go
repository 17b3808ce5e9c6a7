// Package main runs the analysis HTTP server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"insight-alpha/config"
	"insight-alpha/engine"
	"insight-alpha/internal/api"
	"insight-alpha/internal/app"
	"insight-alpha/observability"
	"insight-alpha/report"
	"insight-alpha/sentiment"
	"insight-alpha/services"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables; a missing .env is fine in deployed environments
	_ = godotenv.Load()

	production := os.Getenv("ENV") == "production"
	observability.InitLogger(production)
	observability.InitMetrics()

	cfg, err := config.Load()
	if err != nil {
		observability.Fatal("invalid configuration", "error", err)
	}

	if !cfg.HasAlpaca() {
		observability.Fatal("ALPACA_API_KEY and ALPACA_API_SECRET are required")
	}

	ctx := context.Background()

	// Market data and fundamentals services
	alpacaService := services.NewAlpacaService(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret)
	yahooService := services.NewYahooService(cfg.Yahoo.BaseURL, cfg.Yahoo.UserAgent)

	// Sentiment classifier degrades to no-data when Bedrock is not configured
	var classifier sentiment.Classifier
	if cfg.HasBedrock() {
		bedrockService, err := services.NewBedrockService(ctx, cfg.Bedrock.Region, cfg.Bedrock.ModelID, cfg.Bedrock.MaxTokens)
		if err != nil {
			observability.Warn("failed to initialize Bedrock service, sentiment disabled", "error", err)
		} else {
			classifier = sentiment.NewModelClassifier(bedrockService)
		}
	} else {
		observability.Warn("AWS_REGION or BEDROCK_MODEL_ID not set, sentiment disabled")
	}

	analyzer := engine.NewAnalyzer(alpacaService, yahooService, sentiment.NewAggregator(classifier), cfg)
	application := app.New(cfg, analyzer, report.NewGenerator())

	handler := api.NewHandler(application, cfg)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: time.Duration(cfg.Analysis.TimeoutSeconds+30) * time.Second,
	}

	go func() {
		observability.Info("starting analysis server", "port", cfg.HTTP.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			observability.Fatal("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	observability.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		observability.Fatal("server forced to shutdown", "error", err)
	}

	observability.Info("server stopped")
}
