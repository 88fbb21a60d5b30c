package config

import (
	"github.com/spf13/pflag"
)

// QuoteConfig holds configuration for the quote command.
type QuoteConfig struct {
	Pools      string
	ChainID    uint64
	TokenIn    string
	TokenOut   string
	Amount     string
	TradeType  string
	Path       []string
	MaxHops    int
	MaxResults int
	Slippage   string
	Out        string
	LogLevel   string
	Chains     []ChainSpec
}

// LoadQuote merges config file, environment variables, and flags into QuoteConfig.
func LoadQuote(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"chain-id":    uint64(56),
		"trade-type":  "exact_in",
		"max-hops":    3,
		"max-results": 3,
		"slippage":    "0.5",
		"log-level":   "info",
	})
	if err != nil {
		return QuoteConfig{}, err
	}

	specs, err := getChainSpecs(v)
	if err != nil {
		return QuoteConfig{}, err
	}

	cfg := QuoteConfig{
		Pools:      v.GetString("pools"),
		ChainID:    v.GetUint64("chain-id"),
		TokenIn:    v.GetString("token-in"),
		TokenOut:   v.GetString("token-out"),
		Amount:     v.GetString("amount"),
		TradeType:  v.GetString("trade-type"),
		Path:       getStringSlice(v, "path"),
		MaxHops:    v.GetInt("max-hops"),
		MaxResults: v.GetInt("max-results"),
		Slippage:   v.GetString("slippage"),
		Out:        v.GetString("out"),
		LogLevel:   v.GetString("log-level"),
		Chains:     specs,
	}

	return cfg, nil
}
