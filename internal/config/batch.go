package config

import (
	"github.com/spf13/pflag"
)

// BatchConfig holds configuration for the batch command.
type BatchConfig struct {
	Pools       string
	Requests    string
	Out         string
	Errors      string
	Concurrency int
	MaxHops     int
	MaxResults  int
	Slippage    string
	LogLevel    string
	Chains      []ChainSpec
}

// LoadBatch merges config file, environment variables, and flags into BatchConfig.
func LoadBatch(cfgFile string, flags *pflag.FlagSet) (BatchConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"out":         "./data/quotes.jsonl",
		"errors":      "./data/quote_errors.jsonl",
		"concurrency": 4,
		"max-hops":    3,
		"max-results": 3,
		"slippage":    "0.5",
		"log-level":   "info",
	})
	if err != nil {
		return BatchConfig{}, err
	}

	specs, err := getChainSpecs(v)
	if err != nil {
		return BatchConfig{}, err
	}

	cfg := BatchConfig{
		Pools:       v.GetString("pools"),
		Requests:    v.GetString("requests"),
		Out:         v.GetString("out"),
		Errors:      v.GetString("errors"),
		Concurrency: v.GetInt("concurrency"),
		MaxHops:     v.GetInt("max-hops"),
		MaxResults:  v.GetInt("max-results"),
		Slippage:    v.GetString("slippage"),
		LogLevel:    v.GetString("log-level"),
		Chains:      specs,
	}

	return cfg, nil
}
