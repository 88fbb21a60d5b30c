package amm

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"swapScope/internal/fraction"
)

// Amount is a non-negative quantity of a currency held in its smallest unit.
// Its value as a ratio is raw / 10^decimals.
type Amount[C Currency] struct {
	currency C
	raw      *big.Int
}

type (
	TokenAmount    = Amount[Token]
	CurrencyAmount = Amount[Currency]
)

// NewAmount binds raw smallest units to c. A nil raw is zero.
func NewAmount[C Currency](c C, raw *big.Int) (Amount[C], error) {
	if any(c) == nil {
		return Amount[C]{}, fmt.Errorf("%w: nil currency", ErrCurrencyMismatch)
	}
	v := new(big.Int)
	if raw != nil {
		if raw.Sign() < 0 {
			return Amount[C]{}, fmt.Errorf("%w: %s", ErrNegativeAmount, raw)
		}
		v.Set(raw)
	}
	return Amount[C]{currency: c, raw: v}, nil
}

// NewAmountInt64 is NewAmount for small literals.
func NewAmountInt64[C Currency](c C, raw int64) (Amount[C], error) {
	return NewAmount(c, big.NewInt(raw))
}

func (a Amount[C]) rawInt() *big.Int {
	if a.raw == nil {
		return new(big.Int)
	}
	return a.raw
}

func (a Amount[C]) Currency() C { return a.currency }

// Raw returns a copy of the smallest-unit value.
func (a Amount[C]) Raw() *big.Int { return new(big.Int).Set(a.rawInt()) }

// Rational returns raw / 10^decimals.
func (a Amount[C]) Rational() fraction.Rational {
	r, _ := fraction.New(a.rawInt(), decimalScale(a.currency.Decimals()))
	return r
}

func (a Amount[C]) IsZero() bool { return a.rawInt().Sign() == 0 }

// Add fails with ErrCurrencyMismatch unless both amounts share a currency.
func (a Amount[C]) Add(other Amount[C]) (Amount[C], error) {
	if !a.currency.Equal(other.currency) {
		return Amount[C]{}, fmt.Errorf("add: %w", ErrCurrencyMismatch)
	}
	return Amount[C]{currency: a.currency, raw: new(big.Int).Add(a.rawInt(), other.rawInt())}, nil
}

// Sub fails with ErrNegativeAmount when other exceeds a.
func (a Amount[C]) Sub(other Amount[C]) (Amount[C], error) {
	if !a.currency.Equal(other.currency) {
		return Amount[C]{}, fmt.Errorf("sub: %w", ErrCurrencyMismatch)
	}
	diff := new(big.Int).Sub(a.rawInt(), other.rawInt())
	if diff.Sign() < 0 {
		return Amount[C]{}, fmt.Errorf("sub: %w: %s - %s", ErrNegativeAmount, a.rawInt(), other.rawInt())
	}
	return Amount[C]{currency: a.currency, raw: diff}, nil
}

// Cmp compares the values as ratios, so differing decimals are honoured.
func (a Amount[C]) Cmp(other Amount[C]) int { return a.Rational().Cmp(other.Rational()) }

func (a Amount[C]) LessThan(other Amount[C]) bool    { return a.Cmp(other) < 0 }
func (a Amount[C]) EqualTo(other Amount[C]) bool     { return a.Cmp(other) == 0 }
func (a Amount[C]) GreaterThan(other Amount[C]) bool { return a.Cmp(other) > 0 }

func (a Amount[C]) ToSignificant(digits uint, mode fraction.Rounding) (string, error) {
	return a.Rational().ToSignificant(digits, mode)
}

// ToFixed renders places fraction digits; places may not exceed the
// currency's decimals.
func (a Amount[C]) ToFixed(places uint, mode fraction.Rounding) (string, error) {
	if places > uint(a.currency.Decimals()) {
		return "", fmt.Errorf("%w: %d places for %d decimals", fraction.ErrInvalidPrecision, places, a.currency.Decimals())
	}
	return a.Rational().ToFixed(places, mode), nil
}

// ToExact renders the full value without rounding or trailing zeros.
func (a Amount[C]) ToExact() string {
	return decimal.NewFromBigInt(a.rawInt(), -int32(a.currency.Decimals())).String()
}

// AsCurrency drops the static currency type.
func (a Amount[C]) AsCurrency() CurrencyAmount {
	var c Currency = a.currency
	return CurrencyAmount{currency: c, raw: a.Raw()}
}

func (a Amount[C]) String() string {
	return a.ToExact() + " " + a.currency.Symbol()
}

// tokenAmount narrows a CurrencyAmount to the token used on the path,
// substituting the wrapped token for a native amount.
func tokenAmount(a CurrencyAmount, token Token) TokenAmount {
	return TokenAmount{currency: token, raw: a.Raw()}
}

// withCurrency rebinds raw units to c.
func withCurrency(a TokenAmount, c Currency) CurrencyAmount {
	return CurrencyAmount{currency: c, raw: a.Raw()}
}

func decimalScale(decimals uint8) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
}
