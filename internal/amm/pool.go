package amm

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"swapScope/internal/chains"
)

// reserveBits is the width of a pair contract's reserve slot.
const reserveBits = 112

// Pool is an immutable snapshot of one constant-product pair. Swaps return a
// new Pool and leave the receiver untouched.
type Pool struct {
	cfg      *chains.Config
	address  common.Address
	reserve0 TokenAmount
	reserve1 TokenAmount
}

// NewPool builds a pool using the default chain registry.
func NewPool(a, b TokenAmount) (*Pool, error) {
	cfg, err := chains.Lookup(a.currency.chainID)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}
	return NewPoolWithConfig(cfg, a, b)
}

// NewPoolWithConfig builds a pool on cfg's chain. The amounts may be passed
// in either order.
func NewPoolWithConfig(cfg *chains.Config, a, b TokenAmount) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}
	for _, amount := range []TokenAmount{a, b} {
		if amount.currency.chainID != cfg.ChainID {
			return nil, fmt.Errorf("new pool: %w: token %s on chain %d, config for %d",
				ErrChainMismatch, amount.currency.address.Hex(), amount.currency.chainID, cfg.ChainID)
		}
		if err := checkReserve(amount); err != nil {
			return nil, fmt.Errorf("new pool: %w", err)
		}
	}
	before, err := a.currency.SortsBefore(b.currency)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}
	if !before {
		a, b = b, a
	}
	address, err := cfg.PairAddress(a.currency.address, b.currency.address)
	if err != nil {
		return nil, fmt.Errorf("new pool: %w", err)
	}
	own := *cfg
	return &Pool{
		cfg:      &own,
		address:  address,
		reserve0: TokenAmount{currency: a.currency, raw: a.Raw()},
		reserve1: TokenAmount{currency: b.currency, raw: b.Raw()},
	}, nil
}

func checkReserve(amount TokenAmount) error {
	v, overflow := uint256.FromBig(amount.rawInt())
	if overflow || v.BitLen() > reserveBits {
		return fmt.Errorf("%w: %s %s", ErrReserveOverflow, amount.rawInt(), symbolOf(amount.currency))
	}
	return nil
}

// withReserves returns a pool on the same pair with new reserves, keyed by
// token rather than by slot.
func (p *Pool) withReserves(x, y TokenAmount) (*Pool, error) {
	for _, amount := range []TokenAmount{x, y} {
		if err := checkReserve(amount); err != nil {
			return nil, err
		}
	}
	if x.currency.Equal(p.reserve1.currency) {
		x, y = y, x
	}
	return &Pool{cfg: p.cfg, address: p.address, reserve0: x, reserve1: y}, nil
}

func (p *Pool) ChainID() uint64 { return p.cfg.ChainID }

// Config returns a copy of the pool's chain config.
func (p *Pool) Config() chains.Config { return *p.cfg }

// Address is the deterministic pair contract address.
func (p *Pool) Address() common.Address { return p.address }

// LiquidityToken is the pair's LP token.
func (p *Pool) LiquidityToken() Token {
	return NewToken(p.cfg.ChainID, p.address, 18, p.cfg.LPSymbol, p.cfg.LPName)
}

func (p *Pool) Token0() Token         { return p.reserve0.currency }
func (p *Pool) Token1() Token         { return p.reserve1.currency }
func (p *Pool) Reserve0() TokenAmount { return p.reserve0 }
func (p *Pool) Reserve1() TokenAmount { return p.reserve1 }

// Token0Price is the price of token0 in token1.
func (p *Pool) Token0Price() (Price, error) {
	return NewPrice(p.reserve0.currency, p.reserve1.currency, p.reserve0.rawInt(), p.reserve1.rawInt())
}

// Token1Price is the price of token1 in token0.
func (p *Pool) Token1Price() (Price, error) {
	return NewPrice(p.reserve1.currency, p.reserve0.currency, p.reserve1.rawInt(), p.reserve0.rawInt())
}

// PriceOf returns the price of token in terms of the other token.
func (p *Pool) PriceOf(token Token) (Price, error) {
	switch {
	case token.Equal(p.reserve0.currency):
		return p.Token0Price()
	case token.Equal(p.reserve1.currency):
		return p.Token1Price()
	default:
		return Price{}, fmt.Errorf("price of %s: %w", symbolOf(token), ErrNotInPair)
	}
}

func (p *Pool) ReserveOf(token Token) (TokenAmount, error) {
	switch {
	case token.Equal(p.reserve0.currency):
		return p.reserve0, nil
	case token.Equal(p.reserve1.currency):
		return p.reserve1, nil
	default:
		return TokenAmount{}, fmt.Errorf("reserve of %s: %w", symbolOf(token), ErrNotInPair)
	}
}

func (p *Pool) InvolvesToken(token Token) bool {
	return token.Equal(p.reserve0.currency) || token.Equal(p.reserve1.currency)
}

func (p *Pool) OtherToken(token Token) (Token, error) {
	switch {
	case token.Equal(p.reserve0.currency):
		return p.reserve1.currency, nil
	case token.Equal(p.reserve1.currency):
		return p.reserve0.currency, nil
	default:
		return Token{}, fmt.Errorf("other token of %s: %w", symbolOf(token), ErrNotInPair)
	}
}

// HasLiquidity reports whether both reserves are nonzero.
func (p *Pool) HasLiquidity() bool {
	return !p.reserve0.IsZero() && !p.reserve1.IsZero()
}

// Equal compares tokens and reserves.
func (p *Pool) Equal(other *Pool) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.reserve0.currency.Equal(other.reserve0.currency) &&
		p.reserve1.currency.Equal(other.reserve1.currency) &&
		p.reserve0.rawInt().Cmp(other.reserve0.rawInt()) == 0 &&
		p.reserve1.rawInt().Cmp(other.reserve1.rawInt()) == 0
}

func (p *Pool) String() string {
	return fmt.Sprintf("%s(%s/%s %s/%s)", p.address.Hex(),
		symbolOf(p.reserve0.currency), symbolOf(p.reserve1.currency),
		p.reserve0.rawInt(), p.reserve1.rawInt())
}

// reserves returns the (input, output) reserves for a swap entering with token.
func (p *Pool) reserves(token Token) (TokenAmount, TokenAmount, error) {
	switch {
	case token.Equal(p.reserve0.currency):
		return p.reserve0, p.reserve1, nil
	case token.Equal(p.reserve1.currency):
		return p.reserve1, p.reserve0, nil
	default:
		return TokenAmount{}, TokenAmount{}, fmt.Errorf("%s: %w", symbolOf(token), ErrNotInPair)
	}
}

// GetOutputAmount returns what the pair pays out for input, and the pool
// after the swap:
//
//	out = floor(in*feeNum*reserveOut / (reserveIn*feeDen + in*feeNum))
func (p *Pool) GetOutputAmount(input TokenAmount) (TokenAmount, *Pool, error) {
	reserveIn, reserveOut, err := p.reserves(input.currency)
	if err != nil {
		return TokenAmount{}, nil, fmt.Errorf("get output amount: %w", err)
	}
	if !p.HasLiquidity() {
		return TokenAmount{}, nil, fmt.Errorf("get output amount: %w", ErrInsufficientReserves)
	}

	feeNum := new(big.Int).SetUint64(p.cfg.FeeNumerator)
	feeDen := new(big.Int).SetUint64(p.cfg.FeeDenominator)

	inWithFee := new(big.Int).Mul(input.rawInt(), feeNum)
	numerator := new(big.Int).Mul(inWithFee, reserveOut.rawInt())
	denominator := new(big.Int).Mul(reserveIn.rawInt(), feeDen)
	denominator.Add(denominator, inWithFee)
	out := numerator.Quo(numerator, denominator)
	if out.Sign() == 0 {
		return TokenAmount{}, nil, fmt.Errorf("get output amount: %w", ErrInsufficientInputAmount)
	}

	output := TokenAmount{currency: reserveOut.currency, raw: out}
	next, err := p.withReserves(
		TokenAmount{currency: reserveIn.currency, raw: new(big.Int).Add(reserveIn.rawInt(), input.rawInt())},
		TokenAmount{currency: reserveOut.currency, raw: new(big.Int).Sub(reserveOut.rawInt(), out)},
	)
	if err != nil {
		return TokenAmount{}, nil, fmt.Errorf("get output amount: %w", err)
	}
	return output, next, nil
}

// GetInputAmount returns what the pair charges to pay out output, and the
// pool after the swap. Rounding favours the pool:
//
//	in = floor(reserveIn*out*feeDen / ((reserveOut-out)*feeNum)) + 1
func (p *Pool) GetInputAmount(output TokenAmount) (TokenAmount, *Pool, error) {
	reserveOut, reserveIn, err := p.reserves(output.currency)
	if err != nil {
		return TokenAmount{}, nil, fmt.Errorf("get input amount: %w", err)
	}
	if output.rawInt().Sign() == 0 {
		return TokenAmount{}, nil, fmt.Errorf("get input amount: %w", ErrInsufficientOutputAmount)
	}
	if !p.HasLiquidity() || output.rawInt().Cmp(reserveOut.rawInt()) >= 0 {
		return TokenAmount{}, nil, fmt.Errorf("get input amount: %w", ErrInsufficientReserves)
	}

	feeNum := new(big.Int).SetUint64(p.cfg.FeeNumerator)
	feeDen := new(big.Int).SetUint64(p.cfg.FeeDenominator)

	numerator := new(big.Int).Mul(reserveIn.rawInt(), output.rawInt())
	numerator.Mul(numerator, feeDen)
	remaining := new(big.Int).Sub(reserveOut.rawInt(), output.rawInt())
	denominator := new(big.Int).Mul(remaining, feeNum)
	in := numerator.Quo(numerator, denominator)
	in.Add(in, big.NewInt(1))

	input := TokenAmount{currency: reserveIn.currency, raw: in}
	next, err := p.withReserves(
		TokenAmount{currency: reserveIn.currency, raw: new(big.Int).Add(reserveIn.rawInt(), in)},
		TokenAmount{currency: reserveOut.currency, raw: remaining},
	)
	if err != nil {
		return TokenAmount{}, nil, fmt.Errorf("get input amount: %w", err)
	}
	return input, next, nil
}
