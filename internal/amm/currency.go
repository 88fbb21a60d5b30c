package amm

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"swapScope/internal/chains"
)

// Currency is anything an Amount can be denominated in.
type Currency interface {
	Decimals() uint8
	Symbol() string
	Name() string
	Equal(other Currency) bool
	IsNative() bool
}

// Native is a chain's gas currency. It has no contract address.
type Native struct {
	decimals uint8
	symbol   string
	name     string
}

func NewNative(decimals uint8, symbol, name string) Native {
	return Native{decimals: decimals, symbol: symbol, name: name}
}

// NativeOf returns the native currency configured for a chain.
func NativeOf(cfg *chains.Config) Native {
	return NewNative(cfg.Native.Decimals, cfg.Native.Symbol, cfg.Native.Name)
}

func (n Native) Decimals() uint8 { return n.decimals }
func (n Native) Symbol() string  { return n.symbol }
func (n Native) Name() string    { return n.name }
func (n Native) IsNative() bool  { return true }

// Equal compares all three fields.
func (n Native) Equal(other Currency) bool {
	o, ok := other.(Native)
	return ok && o == n
}

func (n Native) String() string { return n.symbol }

// Token is an ERC20 token. Two tokens are equal when chain and address match;
// decimals, symbol and name do not take part.
type Token struct {
	chainID  uint64
	address  common.Address
	decimals uint8
	symbol   string
	name     string
}

func NewToken(chainID uint64, address common.Address, decimals uint8, symbol, name string) Token {
	return Token{
		chainID:  chainID,
		address:  address,
		decimals: decimals,
		symbol:   symbol,
		name:     name,
	}
}

// WrappedNativeOf returns the token that wraps the chain's native currency.
func WrappedNativeOf(cfg *chains.Config) (Token, error) {
	if cfg.WrappedNative.Address == (common.Address{}) {
		return Token{}, fmt.Errorf("%w: chain %d", chains.ErrMissingWrappedNative, cfg.ChainID)
	}
	w := cfg.WrappedNative
	return NewToken(cfg.ChainID, w.Address, w.Decimals, w.Symbol, w.Name), nil
}

func (t Token) ChainID() uint64         { return t.chainID }
func (t Token) Address() common.Address { return t.address }
func (t Token) Decimals() uint8         { return t.decimals }
func (t Token) Symbol() string          { return t.symbol }
func (t Token) Name() string            { return t.name }
func (t Token) IsNative() bool          { return false }

func (t Token) Equal(other Currency) bool {
	o, ok := other.(Token)
	return ok && o.chainID == t.chainID && o.address == t.address
}

// SortsBefore reports whether t orders before other in a pair.
func (t Token) SortsBefore(other Token) (bool, error) {
	if t.chainID != other.chainID {
		return false, fmt.Errorf("%w: %d != %d", ErrChainMismatch, t.chainID, other.chainID)
	}
	if t.address == other.address {
		return false, fmt.Errorf("%w: %s", ErrIdenticalAddresses, t.address.Hex())
	}
	return bytes.Compare(t.address.Bytes(), other.address.Bytes()) < 0, nil
}

func (t Token) String() string {
	if t.symbol != "" {
		return t.symbol
	}
	return t.address.Hex()
}

// wrap maps a currency onto the token used for path matching on cfg's chain.
// Native currencies must be the chain's own.
func wrap(c Currency, cfg *chains.Config) (Token, error) {
	switch v := c.(type) {
	case Token:
		return v, nil
	case Native:
		if !v.Equal(NativeOf(cfg)) {
			return Token{}, fmt.Errorf("%w: %s is not native on chain %d", ErrCurrencyMismatch, v.symbol, cfg.ChainID)
		}
		return WrappedNativeOf(cfg)
	default:
		return Token{}, fmt.Errorf("%w: unsupported currency %T", ErrCurrencyMismatch, c)
	}
}
