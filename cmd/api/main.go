package main

import (
	"fmt"
	"os"

	"tally/internal/config"
	"tally/internal/database"
	"tally/internal/logger"
	"tally/internal/provider"
	"tally/internal/repository"
	"tally/internal/server"
	"tally/internal/services"
	"tally/internal/validator"

	_ "tally/internal/docs" // Import swagger docs
)

// @title           Tally API
// @version         1.0
// @description     Tally values a multi-asset portfolio in one display currency from captured price and FX snapshots.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the owner token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Pipeline API key.

func main() {
	logger.Init(os.Getenv("ENV"), os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("closing database", "error", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	catalog, err := config.LoadCatalog(appConfig.TickersFile)
	if err != nil {
		return fmt.Errorf("failed to load ticker catalog: %w", err)
	}

	httpClient := provider.NewHTTPClient(appConfig.RequestTimeout)
	quotes, err := provider.NewQuoteSource(appConfig.QuoteSource, httpClient)
	if err != nil {
		return err
	}
	rates, err := provider.NewRateSource(appConfig.FxSource, httpClient)
	if err != nil {
		return err
	}

	db := dbManager.DB()
	store := repository.NewGormStore(db)
	svcs := server.Services{
		Portfolio: services.NewPortfolioService(db, store, appConfig.PivotCurrency),
		Price:     services.NewPriceService(store),
		Ticker:    services.NewTickerService(store),
		Capture: services.NewCaptureService(store, quotes, rates, services.CaptureOptions{
			PivotCurrency:     appConfig.PivotCurrency,
			FxQuoteCurrencies: appConfig.FxQuoteCurrencies,
			Concurrency:       appConfig.CaptureConcurrency,
		}, logger.Named("capture")),
	}

	validator.Register()

	router := server.NewRouter(svcs, server.Options{
		JWTSecret:      appConfig.JWTSecret,
		PipelineAPIKey: appConfig.PipelineAPIKey,
		CaptureAllowed: appConfig.CaptureAllowed,
		Catalog:        catalog,
		SeedSymbols:    appConfig.SeedSymbols,
		Swagger:        !appConfig.IsProduction(),
	})

	if appConfig.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set; owner routes are open")
	}
	log.Infow("starting tally api",
		"port", appConfig.Port,
		"env", appConfig.Env,
		"quote_source", appConfig.QuoteSource,
		"fx_source", appConfig.FxSource,
		"capture_allowed", appConfig.CaptureAllowed(),
	)
	return router.Run(":" + appConfig.Port)
}
