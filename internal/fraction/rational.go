package fraction

import (
	"errors"
	"fmt"
	"math/big"
)

var (
	// ErrZeroDenominator is returned when a Rational would be built over zero.
	ErrZeroDenominator = errors.New("zero denominator")
	// ErrDivisionByZero is returned by Div and Invert on a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
	bigTen  = big.NewInt(10)
)

// Rational is an exact ratio of two arbitrary-precision integers.
//
// The denominator is always positive; the sign, if any, lives on the numerator.
// Values are never reduced implicitly, so 2/4 and 1/2 are distinct
// representations that compare equal. A Rational is immutable: the integers it
// holds are never modified after construction and accessors return copies.
// The zero value is 0/1.
type Rational struct {
	num *big.Int
	den *big.Int
}

// New builds num/den. A negative denominator moves its sign to the numerator.
func New(num, den *big.Int) (Rational, error) {
	if den == nil || den.Sign() == 0 {
		return Rational{}, ErrZeroDenominator
	}
	n := new(big.Int)
	if num != nil {
		n.Set(num)
	}
	d := new(big.Int).Set(den)
	if d.Sign() < 0 {
		n.Neg(n)
		d.Neg(d)
	}
	return Rational{num: n, den: d}, nil
}

// NewInt returns n/1.
func NewInt(n *big.Int) Rational {
	r, _ := New(n, bigOne)
	return r
}

// NewInt64 returns num/den. Like big.NewRat it panics if den is zero.
func NewInt64(num, den int64) Rational {
	r, err := New(big.NewInt(num), big.NewInt(den))
	if err != nil {
		panic(fmt.Sprintf("fraction: NewInt64(%d, %d): %v", num, den, err))
	}
	return r
}

// Zero returns 0/1.
func Zero() Rational { return NewInt64(0, 1) }

// One returns 1/1.
func One() Rational { return NewInt64(1, 1) }

func (r Rational) numerator() *big.Int {
	if r.num == nil {
		return bigZero
	}
	return r.num
}

func (r Rational) denominator() *big.Int {
	if r.den == nil {
		return bigOne
	}
	return r.den
}

// Num returns a copy of the numerator.
func (r Rational) Num() *big.Int { return new(big.Int).Set(r.numerator()) }

// Den returns a copy of the denominator.
func (r Rational) Den() *big.Int { return new(big.Int).Set(r.denominator()) }

// Sign returns -1, 0 or +1.
func (r Rational) Sign() int { return r.numerator().Sign() }

// IsZero reports whether the value is zero.
func (r Rational) IsZero() bool { return r.Sign() == 0 }

// Add returns r + other.
func (r Rational) Add(other Rational) Rational {
	if r.denominator().Cmp(other.denominator()) == 0 {
		return Rational{
			num: new(big.Int).Add(r.numerator(), other.numerator()),
			den: r.Den(),
		}
	}
	left := new(big.Int).Mul(r.numerator(), other.denominator())
	right := new(big.Int).Mul(other.numerator(), r.denominator())
	return Rational{
		num: left.Add(left, right),
		den: new(big.Int).Mul(r.denominator(), other.denominator()),
	}
}

// Sub returns r - other. The result may be negative.
func (r Rational) Sub(other Rational) Rational {
	if r.denominator().Cmp(other.denominator()) == 0 {
		return Rational{
			num: new(big.Int).Sub(r.numerator(), other.numerator()),
			den: r.Den(),
		}
	}
	left := new(big.Int).Mul(r.numerator(), other.denominator())
	right := new(big.Int).Mul(other.numerator(), r.denominator())
	return Rational{
		num: left.Sub(left, right),
		den: new(big.Int).Mul(r.denominator(), other.denominator()),
	}
}

// Mul returns r * other.
func (r Rational) Mul(other Rational) Rational {
	return Rational{
		num: new(big.Int).Mul(r.numerator(), other.numerator()),
		den: new(big.Int).Mul(r.denominator(), other.denominator()),
	}
}

// MulInt returns r * n.
func (r Rational) MulInt(n *big.Int) Rational {
	return Rational{
		num: new(big.Int).Mul(r.numerator(), n),
		den: r.Den(),
	}
}

// Div returns r / other.
func (r Rational) Div(other Rational) (Rational, error) {
	if other.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	return New(
		new(big.Int).Mul(r.numerator(), other.denominator()),
		new(big.Int).Mul(r.denominator(), other.numerator()),
	)
}

// Invert returns den/num.
func (r Rational) Invert() (Rational, error) {
	if r.IsZero() {
		return Rational{}, ErrDivisionByZero
	}
	return New(r.denominator(), r.numerator())
}

// Quotient returns floor(num/den).
func (r Rational) Quotient() *big.Int {
	q := new(big.Int)
	m := new(big.Int)
	// Euclidean division with a positive divisor is floor division.
	q.DivMod(r.numerator(), r.denominator(), m)
	return q
}

// Ceil returns ceil(num/den).
func (r Rational) Ceil() *big.Int {
	q := new(big.Int)
	m := new(big.Int)
	q.DivMod(r.numerator(), r.denominator(), m)
	if m.Sign() != 0 {
		q.Add(q, bigOne)
	}
	return q
}

// Remainder returns (num mod den)/den.
func (r Rational) Remainder() Rational {
	m := new(big.Int).Mod(r.numerator(), r.denominator())
	return Rational{num: m, den: r.Den()}
}

// Cmp compares r and other by cross-multiplication.
func (r Rational) Cmp(other Rational) int {
	left := new(big.Int).Mul(r.numerator(), other.denominator())
	right := new(big.Int).Mul(other.numerator(), r.denominator())
	return left.Cmp(right)
}

// LessThan reports r < other.
func (r Rational) LessThan(other Rational) bool { return r.Cmp(other) < 0 }

// EqualTo reports r == other as values (2/4 equals 1/2).
func (r Rational) EqualTo(other Rational) bool { return r.Cmp(other) == 0 }

// GreaterThan reports r > other.
func (r Rational) GreaterThan(other Rational) bool { return r.Cmp(other) > 0 }

// String renders "num/den".
func (r Rational) String() string {
	return r.numerator().String() + "/" + r.denominator().String()
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(bigTen, big.NewInt(int64(n)), nil)
}
