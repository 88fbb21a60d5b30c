package config

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/viper"

	"swapScope/internal/chains"
)

// ChainSpec is one entry of the config file's chains list. Fields left
// empty keep the built-in value when chain-id names a known chain.
type ChainSpec struct {
	ChainID         uint64 `mapstructure:"chain-id"`
	Name            string `mapstructure:"name"`
	Factory         string `mapstructure:"factory"`
	InitCodeHash    string `mapstructure:"init-code-hash"`
	FeeNumerator    uint64 `mapstructure:"fee-numerator"`
	FeeDenominator  uint64 `mapstructure:"fee-denominator"`
	NativeSymbol    string `mapstructure:"native-symbol"`
	NativeName      string `mapstructure:"native-name"`
	NativeDecimals  uint8  `mapstructure:"native-decimals"`
	WrappedNative   string `mapstructure:"wrapped-native"`
	WrappedSymbol   string `mapstructure:"wrapped-symbol"`
	WrappedName     string `mapstructure:"wrapped-name"`
	WrappedDecimals uint8  `mapstructure:"wrapped-decimals"`
	LPSymbol        string `mapstructure:"lp-symbol"`
	LPName          string `mapstructure:"lp-name"`
}

// Apply overlays the non-empty fields of s onto base.
func (s ChainSpec) Apply(base chains.Config) (chains.Config, error) {
	cfg := base
	cfg.ChainID = s.ChainID

	if s.Name != "" {
		cfg.Name = s.Name
	}
	if s.Factory != "" {
		address, err := parseAddress("factory", s.Factory)
		if err != nil {
			return chains.Config{}, err
		}
		cfg.FactoryAddress = address
	}
	if s.InitCodeHash != "" {
		data, err := hexutil.Decode(strings.TrimSpace(s.InitCodeHash))
		if err != nil {
			return chains.Config{}, fmt.Errorf("invalid init code hash: %s", s.InitCodeHash)
		}
		if len(data) != common.HashLength {
			return chains.Config{}, fmt.Errorf("invalid init code hash length: %s", s.InitCodeHash)
		}
		cfg.InitCodeHash = common.BytesToHash(data)
	}
	if s.FeeNumerator != 0 {
		cfg.FeeNumerator = s.FeeNumerator
	}
	if s.FeeDenominator != 0 {
		cfg.FeeDenominator = s.FeeDenominator
	}
	if s.NativeSymbol != "" {
		cfg.Native.Symbol = s.NativeSymbol
	}
	if s.NativeName != "" {
		cfg.Native.Name = s.NativeName
	}
	if s.NativeDecimals != 0 {
		cfg.Native.Decimals = s.NativeDecimals
	}
	if s.WrappedNative != "" {
		address, err := parseAddress("wrapped native", s.WrappedNative)
		if err != nil {
			return chains.Config{}, err
		}
		cfg.WrappedNative.Address = address
	}
	if s.WrappedSymbol != "" {
		cfg.WrappedNative.Symbol = s.WrappedSymbol
	}
	if s.WrappedName != "" {
		cfg.WrappedNative.Name = s.WrappedName
	}
	if s.WrappedDecimals != 0 {
		cfg.WrappedNative.Decimals = s.WrappedDecimals
	}
	if s.LPSymbol != "" {
		cfg.LPSymbol = s.LPSymbol
	}
	if s.LPName != "" {
		cfg.LPName = s.LPName
	}
	return cfg, nil
}

// NewRegistry returns the built-in chains plus specs, each spec overriding
// the built-in config with the same chain id.
func NewRegistry(specs []ChainSpec) (*chains.Registry, error) {
	registry, err := chains.NewRegistry(chains.Defaults()...)
	if err != nil {
		return nil, err
	}
	for _, spec := range specs {
		if spec.ChainID == 0 {
			return nil, fmt.Errorf("chain spec: %w: chain-id is required", chains.ErrInvalidConfig)
		}
		var base chains.Config
		if known, err := registry.Lookup(spec.ChainID); err == nil {
			base = *known
		}
		cfg, err := spec.Apply(base)
		if err != nil {
			return nil, fmt.Errorf("chain %d: %w", spec.ChainID, err)
		}
		if err := registry.Register(cfg); err != nil {
			return nil, fmt.Errorf("chain %d: %w", spec.ChainID, err)
		}
	}
	return registry, nil
}

func getChainSpecs(v *viper.Viper) ([]ChainSpec, error) {
	if !v.IsSet("chains") {
		return nil, nil
	}
	var specs []ChainSpec
	if err := v.UnmarshalKey("chains", &specs); err != nil {
		return nil, fmt.Errorf("decode chains: %w", err)
	}
	return specs, nil
}

func parseAddress(field, input string) (common.Address, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return common.Address{}, fmt.Errorf("invalid %s address: %s", field, input)
	}
	return common.HexToAddress(input), nil
}
