package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"swapScope/internal/config"
	"swapScope/internal/model"
	"swapScope/internal/quoter"
	"swapScope/internal/storage"
)

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadQuote(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.TokenIn == "" || cfg.TokenOut == "" {
		return fmt.Errorf("token-in and token-out are required")
	}
	if cfg.Amount == "" {
		return fmt.Errorf("amount is required")
	}

	book, err := loadBook(cfg.Pools, cfg.Chains, logger)
	if err != nil {
		return err
	}

	qcfg, err := quoterConfig(cfg.MaxHops, cfg.MaxResults, 1, cfg.Slippage)
	if err != nil {
		return err
	}
	q := quoter.New(book, qcfg, logger)

	req := model.QuoteRequest{
		ChainID:   cfg.ChainID,
		TokenIn:   cfg.TokenIn,
		TokenOut:  cfg.TokenOut,
		Amount:    cfg.Amount,
		TradeType: cfg.TradeType,
		Path:      cfg.Path,
	}

	logger.Info("quote start",
		zap.Uint64("chain_id", req.ChainID),
		zap.String("token_in", req.TokenIn),
		zap.String("token_out", req.TokenOut),
		zap.String("amount", req.Amount),
		zap.String("trade_type", req.TradeType),
		zap.Strings("path", req.Path),
	)

	result, err := q.Quote(req)
	if err != nil {
		return fmt.Errorf("quote: %w", err)
	}

	if cfg.Out == "" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(result); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	} else {
		writer, err := storage.NewJSONLWriter(cfg.Out, false)
		if err != nil {
			return err
		}
		if err := writer.Write(result); err != nil {
			writer.Close()
			return err
		}
		if err := writer.Close(); err != nil {
			return err
		}
	}

	logger.Info("quote complete",
		zap.Int("routes", len(result.Routes)),
		zap.String("out", cfg.Out),
	)

	return nil
}
