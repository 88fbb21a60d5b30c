package amm

import (
	"fmt"
	"math/big"

	"swapScope/internal/fraction"
)

// Price is the rate of quote units per base unit, in smallest-unit terms.
type Price struct {
	base  Currency
	quote Currency
	raw   fraction.Rational
}

// NewPrice builds numerator/denominator quote units per base unit. The
// denominator is the base-side amount.
func NewPrice(base, quote Currency, denominator, numerator *big.Int) (Price, error) {
	raw, err := fraction.New(numerator, denominator)
	if err != nil {
		return Price{}, fmt.Errorf("new price %s/%s: %w", symbolOf(base), symbolOf(quote), err)
	}
	return Price{base: base, quote: quote, raw: raw}, nil
}

func (p Price) BaseCurrency() Currency  { return p.base }
func (p Price) QuoteCurrency() Currency { return p.quote }

// Raw returns the smallest-unit rate.
func (p Price) Raw() fraction.Rational { return p.raw }

// Scalar is 10^baseDecimals / 10^quoteDecimals.
func (p Price) Scalar() fraction.Rational {
	r, _ := fraction.New(decimalScale(p.base.Decimals()), decimalScale(p.quote.Decimals()))
	return r
}

// Adjusted is the human-readable rate: whole quote units per whole base unit.
func (p Price) Adjusted() fraction.Rational { return p.raw.Mul(p.Scalar()) }

// Invert swaps base and quote.
func (p Price) Invert() (Price, error) {
	inv, err := p.raw.Invert()
	if err != nil {
		return Price{}, fmt.Errorf("invert price: %w", err)
	}
	return Price{base: p.quote, quote: p.base, raw: inv}, nil
}

// Multiply chains p (A->B) with other (B->C) into A->C.
func (p Price) Multiply(other Price) (Price, error) {
	if !p.quote.Equal(other.base) {
		return Price{}, fmt.Errorf("multiply price: %w: %s != %s", ErrCurrencyMismatch, symbolOf(p.quote), symbolOf(other.base))
	}
	return Price{base: p.base, quote: other.quote, raw: p.raw.Mul(other.raw)}, nil
}

// Quote converts an amount of the base currency into the quote currency,
// rounding down.
func (p Price) Quote(amount CurrencyAmount) (CurrencyAmount, error) {
	if !amount.Currency().Equal(p.base) {
		return CurrencyAmount{}, fmt.Errorf("quote: %w: %s != %s", ErrCurrencyMismatch, symbolOf(amount.Currency()), symbolOf(p.base))
	}
	return NewAmount(p.quote, p.raw.MulInt(amount.rawInt()).Quotient())
}

func (p Price) ToSignificant(digits uint, mode fraction.Rounding) (string, error) {
	return p.Adjusted().ToSignificant(digits, mode)
}

func (p Price) ToFixed(places uint, mode fraction.Rounding) string {
	return p.Adjusted().ToFixed(places, mode)
}

func (p Price) String() string {
	s, err := p.ToSignificant(6, fraction.RoundHalfUp)
	if err != nil {
		return p.raw.String()
	}
	return fmt.Sprintf("%s %s/%s", s, symbolOf(p.quote), symbolOf(p.base))
}

// PriceFromPools folds the pool prices along path into one end-to-end rate.
// path[i] is the token entering pools[i].
func PriceFromPools(pools []*Pool, path []Token) (Price, error) {
	if len(pools) == 0 {
		return Price{}, ErrNoPool
	}
	if len(path) < len(pools) {
		return Price{}, fmt.Errorf("%w: %d tokens for %d pools", ErrInvalidPath, len(path), len(pools))
	}
	var out Price
	for i, pool := range pools {
		hop, err := pool.PriceOf(path[i])
		if err != nil {
			return Price{}, err
		}
		if i == 0 {
			out = hop
			continue
		}
		if out, err = out.Multiply(hop); err != nil {
			return Price{}, err
		}
	}
	return out, nil
}

func symbolOf(c Currency) string {
	if c == nil {
		return "<nil>"
	}
	if c.Symbol() != "" {
		return c.Symbol()
	}
	if t, ok := c.(Token); ok {
		return t.address.Hex()
	}
	return "?"
}
