package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapScope/internal/config"
	"swapScope/internal/model"
	"swapScope/internal/quoter"
	"swapScope/internal/storage"
)

func runBatch(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadBatch(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Requests == "" {
		return fmt.Errorf("requests path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	book, err := loadBook(cfg.Pools, cfg.Chains, logger)
	if err != nil {
		return err
	}

	qcfg, err := quoterConfig(cfg.MaxHops, cfg.MaxResults, cfg.Concurrency, cfg.Slippage)
	if err != nil {
		return err
	}
	q := quoter.New(book, qcfg, logger)

	lines, decodeErrs, err := storage.ReadRequests(cfg.Requests)
	if err != nil {
		return err
	}

	// results are appended, so start from empty files
	for _, path := range []string{cfg.Out, cfg.Errors} {
		if path == "" {
			continue
		}
		writer, err := storage.NewJSONLWriter(path, false)
		if err != nil {
			return err
		}
		if err := writer.Close(); err != nil {
			return err
		}
	}
	sink := storage.NewJsonlStorage(cfg.Out, cfg.Errors)

	logger.Info("batch start",
		zap.String("pools", cfg.Pools),
		zap.String("requests", cfg.Requests),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
		zap.Int("concurrency", qcfg.Concurrency),
	)

	reqs := make([]model.QuoteRequest, 0, len(lines))
	for _, line := range lines {
		reqs = append(reqs, line.Request)
	}

	outcomes, err := q.Run(ctx, reqs)
	if err != nil {
		return fmt.Errorf("run batch: %w", err)
	}

	results := make([]model.QuoteResult, 0, len(outcomes))
	failed := decodeErrs
	for i, outcome := range outcomes {
		if outcome.Err != nil {
			failed = append(failed, quoteErrorFromRequest(lines[i], outcome.Err))
			continue
		}
		results = append(results, outcome.Result)
	}

	if err := writeOutcomes(sink, sink, results, failed); err != nil {
		return err
	}

	var routes int
	for _, result := range results {
		routes += len(result.Routes)
	}

	logger.Info("batch complete",
		zap.Int("total", len(lines)+len(decodeErrs)),
		zap.Int("quoted", len(results)),
		zap.Int("routes", routes),
		zap.Int("failed", len(failed)),
	)

	return nil
}

func writeOutcomes(results storage.Storage, errs storage.ErrorSink, quoted []model.QuoteResult, failed []model.QuoteError) error {
	if err := results.PutResultBatch(quoted); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	if err := errs.PutErrorBatch(failed); err != nil {
		return fmt.Errorf("write errors: %w", err)
	}
	return nil
}

func quoteErrorFromRequest(line storage.RequestLine, err error) model.QuoteError {
	return model.QuoteError{
		ID:      line.Request.ID,
		Line:    line.Line,
		ChainID: line.Request.ChainID,
		Error:   err.Error(),
	}
}
