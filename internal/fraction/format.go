package fraction

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidPrecision is returned for a zero significant-digit count or
	// more fraction digits than a currency carries.
	ErrInvalidPrecision = errors.New("invalid precision")
	// ErrInvalidDecimal is returned by ParseDecimal for malformed input.
	ErrInvalidDecimal = errors.New("invalid decimal")
)

// Rounding selects how a value is rounded to the requested precision.
// Modes act on the magnitude, so negative values round symmetrically.
type Rounding int

const (
	// RoundHalfUp rounds to nearest, ties away from zero.
	RoundHalfUp Rounding = iota
	// RoundHalfDown rounds to nearest, ties toward zero.
	RoundHalfDown
	// RoundHalfEven rounds to nearest, ties to the even neighbour.
	RoundHalfEven
	// RoundDown truncates toward zero.
	RoundDown
	// RoundUp rounds away from zero.
	RoundUp
)

func (m Rounding) String() string {
	switch m {
	case RoundHalfUp:
		return "half_up"
	case RoundHalfDown:
		return "half_down"
	case RoundHalfEven:
		return "half_even"
	case RoundDown:
		return "down"
	case RoundUp:
		return "up"
	default:
		return fmt.Sprintf("rounding(%d)", int(m))
	}
}

// ParseRounding maps a rounding name to a Rounding.
func ParseRounding(name string) (Rounding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "half_up", "halfup":
		return RoundHalfUp, nil
	case "half_down", "halfdown":
		return RoundHalfDown, nil
	case "half_even", "halfeven", "bankers":
		return RoundHalfEven, nil
	case "down", "toward_zero":
		return RoundDown, nil
	case "up", "away_from_zero":
		return RoundUp, nil
	default:
		return RoundHalfUp, fmt.Errorf("unsupported rounding mode: %s", name)
	}
}

// roundQuo returns num/den rounded to an integer. den must be positive.
func roundQuo(num, den *big.Int, mode Rounding) *big.Int {
	abs := new(big.Int).Abs(num)
	q, rem := new(big.Int).QuoRem(abs, den, new(big.Int))
	if rem.Sign() != 0 {
		twice := new(big.Int).Lsh(rem, 1)
		half := twice.Cmp(den)
		var up bool
		switch mode {
		case RoundDown:
			up = false
		case RoundUp:
			up = true
		case RoundHalfDown:
			up = half > 0
		case RoundHalfEven:
			up = half > 0 || (half == 0 && q.Bit(0) == 1)
		default:
			up = half >= 0
		}
		if up {
			q.Add(q, bigOne)
		}
	}
	if num.Sign() < 0 {
		q.Neg(q)
	}
	return q
}

// ToFixed renders the value with exactly places fraction digits.
func (r Rational) ToFixed(places uint, mode Rounding) string {
	scaled := new(big.Int).Mul(r.numerator(), pow10(int(places)))
	q := roundQuo(scaled, r.denominator(), mode)
	return decimal.NewFromBigInt(q, -int32(places)).StringFixed(int32(places))
}

// ToSignificant renders the value rounded to digits significant digits.
// Trailing fraction zeros are dropped; integer zeros are kept ("500").
func (r Rational) ToSignificant(digits uint, mode Rounding) (string, error) {
	if digits == 0 {
		return "", fmt.Errorf("%w: significant digits must be positive", ErrInvalidPrecision)
	}
	num := r.numerator()
	den := r.denominator()
	if num.Sign() == 0 {
		return "0", nil
	}

	abs := new(big.Int).Abs(num)
	shift := int(digits) - magnitude(abs, den)

	var m *big.Int
	if shift >= 0 {
		m = roundQuo(new(big.Int).Mul(abs, pow10(shift)), den, mode)
	} else {
		m = roundQuo(abs, new(big.Int).Mul(den, pow10(-shift)), mode)
	}
	// 9.99 -> 10.0 carries into one extra digit.
	if m.Cmp(pow10(int(digits))) >= 0 {
		m.Quo(m, bigTen)
		shift--
	}
	if num.Sign() < 0 {
		m.Neg(m)
	}
	return decimal.NewFromBigInt(m, int32(-shift)).String(), nil
}

// magnitude returns e such that 10^(e-1) <= num/den < 10^e for num, den > 0.
func magnitude(num, den *big.Int) int {
	e := len(num.String()) - len(den.String())
	for cmpPow10(num, den, e) >= 0 {
		e++
	}
	for cmpPow10(num, den, e-1) < 0 {
		e--
	}
	return e
}

// cmpPow10 compares num/den with 10^k.
func cmpPow10(num, den *big.Int, k int) int {
	if k >= 0 {
		return num.Cmp(new(big.Int).Mul(den, pow10(k)))
	}
	return new(big.Int).Mul(num, pow10(-k)).Cmp(den)
}

// ParseDecimal parses a decimal string such as "0.5" or "-12.25e-1" exactly.
func ParseDecimal(input string) (Rational, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(input))
	if err != nil {
		return Rational{}, fmt.Errorf("%w: %s", ErrInvalidDecimal, input)
	}
	coefficient := d.Coefficient()
	exp := int(d.Exponent())
	if exp >= 0 {
		return NewInt(coefficient.Mul(coefficient, pow10(exp))), nil
	}
	return New(coefficient, pow10(-exp))
}
