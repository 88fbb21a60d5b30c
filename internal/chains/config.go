package chains

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

var (
	// ErrUnknownChain is returned when no config is registered for a chain id.
	ErrUnknownChain = errors.New("unknown chain")
	// ErrMissingWrappedNative is returned when a config names no wrapped native token.
	ErrMissingWrappedNative = errors.New("missing wrapped native token")
	// ErrInvalidConfig is returned when a config cannot be used for pools.
	ErrInvalidConfig = errors.New("invalid chain config")
)

const (
	BSCMainnet uint64 = 56
	BSCTestnet uint64 = 97
)

// NativeAsset describes the chain's gas currency.
type NativeAsset struct {
	Decimals uint8
	Symbol   string
	Name     string
}

// Asset describes an ERC20 token deployed on the chain.
type Asset struct {
	Address  common.Address
	Decimals uint8
	Symbol   string
	Name     string
}

// Config is everything the quoting core needs to know about one chain:
// where the pair factory lives, how pair addresses are derived, the swap fee
// and which token wraps the native currency.
type Config struct {
	ChainID        uint64
	Name           string
	FactoryAddress common.Address
	InitCodeHash   common.Hash
	FeeNumerator   uint64
	FeeDenominator uint64
	Native         NativeAsset
	WrappedNative  Asset
	LPSymbol       string
	LPName         string
}

// Validate checks the config is usable for pool construction and routing.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	if c.ChainID == 0 {
		return fmt.Errorf("%w: chain id is zero", ErrInvalidConfig)
	}
	if c.FactoryAddress == (common.Address{}) {
		return fmt.Errorf("%w: chain %d: factory address is empty", ErrInvalidConfig, c.ChainID)
	}
	if c.InitCodeHash == (common.Hash{}) {
		return fmt.Errorf("%w: chain %d: init code hash is empty", ErrInvalidConfig, c.ChainID)
	}
	if c.FeeDenominator == 0 || c.FeeNumerator == 0 || c.FeeNumerator > c.FeeDenominator {
		return fmt.Errorf("%w: chain %d: fee %d/%d", ErrInvalidConfig, c.ChainID, c.FeeNumerator, c.FeeDenominator)
	}
	if c.WrappedNative.Address == (common.Address{}) {
		return fmt.Errorf("%w: chain %d", ErrMissingWrappedNative, c.ChainID)
	}
	return nil
}

var (
	pancakeFactory  = common.HexToAddress("0xb7926c0430afb07aa7defde6da862ae0bde767bc")
	pancakeInitCode = common.HexToHash("0xecba335299a6693cb2ebc4782e74669b84290b6378ea3a3873c7231a8d7d1074")
	wbnb            = common.HexToAddress("0xbb4CdB9CBd36B01bD1cBaEBF2De08d9173bc095c")
)

func bscConfig(chainID uint64, name string) Config {
	return Config{
		ChainID:        chainID,
		Name:           name,
		FactoryAddress: pancakeFactory,
		InitCodeHash:   pancakeInitCode,
		FeeNumerator:   9975,
		FeeDenominator: 10000,
		Native:         NativeAsset{Decimals: 18, Symbol: "BNB", Name: "BNB"},
		WrappedNative: Asset{
			Address:  wbnb,
			Decimals: 18,
			Symbol:   "WBNB",
			Name:     "Wrapped BNB",
		},
		LPSymbol: "Cake-LP",
		LPName:   "Pancake LPs",
	}
}

// Defaults returns the built-in chain configs.
func Defaults() []Config {
	return []Config{
		bscConfig(BSCMainnet, "bsc"),
		bscConfig(BSCTestnet, "bsc-testnet"),
	}
}
