package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"swapScope/internal/config"
	"swapScope/internal/fraction"
	"swapScope/internal/quoter"
	"swapScope/internal/storage"
)

func main() {
	root := &cobra.Command{
		Use:          "quoter",
		Short:        "Off-chain constant-product AMM quoter",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a single swap against pool snapshots",
		RunE:  runQuote,
	}

	quoteCmd.Flags().String("pools", "", "pool snapshots JSONL")
	quoteCmd.Flags().Uint64("chain-id", 56, "chain id")
	quoteCmd.Flags().String("token-in", "", "input token address or \"native\"")
	quoteCmd.Flags().String("token-out", "", "output token address or \"native\"")
	quoteCmd.Flags().String("amount", "", "raw amount in smallest units")
	quoteCmd.Flags().String("trade-type", "exact_in", "exact_in or exact_out")
	quoteCmd.Flags().StringSlice("path", nil, "explicit token path (comma-separated addresses)")
	quoteCmd.Flags().Int("max-hops", 3, "maximum pools per route")
	quoteCmd.Flags().Int("max-results", 3, "maximum routes returned")
	quoteCmd.Flags().String("slippage", "0.5", "slippage tolerance in percent")
	quoteCmd.Flags().String("out", "", "output JSONL path, stdout when empty")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	batchCmd := &cobra.Command{
		Use:   "batch",
		Short: "Quote a JSONL file of requests",
		RunE:  runBatch,
	}

	batchCmd.Flags().String("pools", "", "pool snapshots JSONL")
	batchCmd.Flags().String("requests", "", "quote requests JSONL")
	batchCmd.Flags().String("out", "./data/quotes.jsonl", "output results JSONL")
	batchCmd.Flags().String("errors", "./data/quote_errors.jsonl", "rejected requests JSONL")
	batchCmd.Flags().Int("concurrency", 4, "requests quoted in parallel")
	batchCmd.Flags().Int("max-hops", 3, "default maximum pools per route")
	batchCmd.Flags().Int("max-results", 3, "default maximum routes returned")
	batchCmd.Flags().String("slippage", "0.5", "default slippage tolerance in percent")
	batchCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(batchCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadBook builds the chain registry and fills a pool book from a snapshot file.
func loadBook(pools string, specs []config.ChainSpec, logger *zap.Logger) (*quoter.Book, error) {
	if pools == "" {
		return nil, fmt.Errorf("pools path is required")
	}

	registry, err := config.NewRegistry(specs)
	if err != nil {
		return nil, err
	}

	snapshots, err := storage.ReadPoolSnapshots(pools)
	if err != nil {
		return nil, err
	}

	book := quoter.NewBook(registry, logger)
	loaded, skipped := book.Load(snapshots)
	logger.Info("pools loaded",
		zap.String("pools", pools),
		zap.Int("snapshots", len(snapshots)),
		zap.Int("loaded", loaded),
		zap.Int("skipped", skipped),
		zap.Uint64s("chains", registry.IDs()),
	)
	return book, nil
}

func quoterConfig(maxHops, maxResults, concurrency int, slippage string) (quoter.Config, error) {
	cfg := quoter.DefaultConfig()
	cfg.MaxHops = maxHops
	cfg.MaxResults = maxResults
	if concurrency > 0 {
		cfg.Concurrency = concurrency
	}
	if slippage != "" {
		tolerance, err := fraction.ParsePercent(slippage)
		if err != nil {
			return quoter.Config{}, fmt.Errorf("slippage: %w", err)
		}
		cfg.Slippage = tolerance
	}
	return cfg, nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
