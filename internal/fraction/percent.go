package fraction

import (
	"fmt"
	"math/big"
)

var hundred = NewInt64(100, 1)

// Percent is a ratio rendered as a percentage: 1/200 formats as "0.5".
type Percent struct {
	value Rational
}

// NewPercent returns num/den as a Percent, so NewPercent(5, 100) is 5%.
func NewPercent(num, den int64) Percent {
	return Percent{value: NewInt64(num, den)}
}

// PercentFromRational wraps r.
func PercentFromRational(r Rational) Percent {
	return Percent{value: r}
}

// ParsePercent parses a percentage such as "0.5" (half a percent).
func ParsePercent(input string) (Percent, error) {
	r, err := ParseDecimal(input)
	if err != nil {
		return Percent{}, fmt.Errorf("parse percent: %w", err)
	}
	ratio, err := r.Div(hundred)
	if err != nil {
		return Percent{}, err
	}
	return Percent{value: ratio}, nil
}

// Rational returns the underlying ratio (5% is 5/100).
func (p Percent) Rational() Rational { return p.value }

// Sign returns -1, 0 or +1.
func (p Percent) Sign() int { return p.value.Sign() }

// Cmp compares two percentages.
func (p Percent) Cmp(other Percent) int { return p.value.Cmp(other.value) }

// LessThan reports p < other.
func (p Percent) LessThan(other Percent) bool { return p.Cmp(other) < 0 }

// EqualTo reports p == other.
func (p Percent) EqualTo(other Percent) bool { return p.Cmp(other) == 0 }

// ApplyTo returns (1 + p) * n as a Rational.
func (p Percent) ApplyTo(n *big.Int) Rational {
	return One().Add(p.value).MulInt(n)
}

// ToSignificant renders the percentage with digits significant digits.
func (p Percent) ToSignificant(digits uint, mode Rounding) (string, error) {
	return p.value.Mul(hundred).ToSignificant(digits, mode)
}

// ToFixed renders the percentage with places fraction digits.
func (p Percent) ToFixed(places uint, mode Rounding) string {
	return p.value.Mul(hundred).ToFixed(places, mode)
}

func (p Percent) String() string {
	return p.ToFixed(2, RoundHalfUp) + "%"
}
