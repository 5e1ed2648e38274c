package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/jwaldner/optionsim/internal/alpaca"
	"github.com/jwaldner/optionsim/internal/config"
	"github.com/jwaldner/optionsim/internal/handlers"
	"github.com/jwaldner/optionsim/internal/logger"
	"github.com/jwaldner/optionsim/internal/scenario"
	"github.com/jwaldner/optionsim/internal/treasury"
)

func main() {
	cfg := config.Load()

	if err := logger.InitWithConfig(cfg.Logging.LogLevel, cfg.Logging.LogFile, cfg.Logging.Console); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logger.Close()
	logger.Always.Printf("🚀 Option simulator starting - Port: %s", cfg.Port)

	if cfg.Logging.LogLevel == "verbose" {
		fmt.Printf("⚠️  VERBOSE LOGGING ENABLED - every request will be logged to %s\n", cfg.Logging.LogFile)
	}

	store, err := scenario.New(cfg.Store)
	if err != nil {
		log.Fatalf("Failed to open scenario store: %v", err)
	}
	defer store.Close()
	logger.Always.Printf("🗄️ Scenario store: %s", store.Driver())

	rates := treasury.NewRateSource(cfg.Rates)
	if tc, ok := rates.(*treasury.TreasuryClient); ok {
		tc.Warm(context.Background())
	}
	logger.Always.Printf("🏛️ Risk-free rate source: %s", rates.Name())

	// Placeholder keys are treated as missing; symbol lookup is optional
	apiKey, secretKey := cfg.AlpacaAPIKey, cfg.AlpacaSecretKey
	if isPlaceholder(apiKey) || isPlaceholder(secretKey) {
		logger.Warn.Printf("❌ Alpaca credentials look like placeholders, symbol lookup disabled")
		apiKey, secretKey = "", ""
	}
	spot := alpaca.NewSpotSource(apiKey, secretKey)
	if pw, ok := spot.(*alpaca.PerformanceWrapper); ok {
		defer pw.Close()
	}

	pricingHandler := handlers.NewPricingHandler(cfg, store, rates, spot)
	r := handlers.NewRouter(pricingHandler)

	fmt.Printf("🌐 Server starting on http://localhost:%s\n", cfg.Port)
	logger.Always.Printf("🌐 Server starting on http://localhost:%s", cfg.Port)

	if err := http.ListenAndServe("0.0.0.0:"+cfg.Port, r); err != nil {
		logger.Error.Printf("Server failed: %v", err)
		log.Fatal("Server failed to start:", err)
	}
}

func isPlaceholder(key string) bool {
	return strings.Contains(key, "<") || strings.Contains(key, ">") ||
		key == "YOUR_API_KEY" || key == "YOUR_SECRET_KEY" || key == "REPLACE_ME"
}
