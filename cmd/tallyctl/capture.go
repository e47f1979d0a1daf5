package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tally/internal/config"
	"tally/internal/database"
	"tally/internal/logger"
	"tally/internal/provider"
	"tally/internal/repository"
	"tally/internal/services"
)

func newCaptureCmd() *cobra.Command {
	var symbols string
	var skipFx bool

	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Capture today's prices and FX rates once",
		Long: "Capture today's price snapshot for the given symbols, or for every tracked ticker,\n" +
			"then the FX rates. Exits 2 when nothing at all was captured.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			svc, closeDB, err := newCaptureService(cfg)
			if err != nil {
				return err
			}
			defer closeDB()

			req := services.CaptureRequest{Symbols: config.SplitSymbols(symbols), SkipFx: skipFx}
			if len(req.Symbols) == 0 {
				if req.SeedSymbols, err = cfg.SeedSymbols(); err != nil {
					return err
				}
			}
			return runCapture(cmd.Context(), svc, req, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&symbols, "symbols", "", "comma-separated symbols to capture instead of the tracked tickers")
	cmd.Flags().BoolVar(&skipFx, "skip-fx", false, "skip the FX capture")
	return cmd
}

// runCapture performs the run and prints its summary as JSON.
func runCapture(ctx context.Context, svc services.CaptureServicer, req services.CaptureRequest, out io.Writer) error {
	result, err := svc.Run(ctx, req)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	if result.Captured == 0 && result.FxCount == 0 {
		return errNothingCaptured
	}
	return nil
}

func newCaptureService(cfg *config.Config) (services.CaptureServicer, func(), error) {
	dbConfig, err := database.NewConfig()
	if err != nil {
		return nil, nil, err
	}
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return nil, nil, err
	}
	closeDB := func() {
		if err := dbManager.Close(); err != nil {
			logger.Get().Warnw("closing database", "error", err)
		}
	}
	if err := dbManager.RunMigrations(); err != nil {
		closeDB()
		return nil, nil, err
	}

	httpClient := provider.NewHTTPClient(cfg.RequestTimeout)
	quotes, err := provider.NewQuoteSource(cfg.QuoteSource, httpClient)
	if err != nil {
		closeDB()
		return nil, nil, err
	}
	rates, err := provider.NewRateSource(cfg.FxSource, httpClient)
	if err != nil {
		closeDB()
		return nil, nil, err
	}

	svc := services.NewCaptureService(repository.NewGormStore(dbManager.DB()), quotes, rates, services.CaptureOptions{
		PivotCurrency:     cfg.PivotCurrency,
		FxQuoteCurrencies: cfg.FxQuoteCurrencies,
		Concurrency:       cfg.CaptureConcurrency,
	}, logger.Named("capture"))
	return svc, closeDB, nil
}
