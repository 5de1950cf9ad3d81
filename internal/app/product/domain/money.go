package domain

import (
	"fmt"
	"math/big"
)

// Money is an exact monetary amount backed by big.Rat.
// Values are immutable; every operation returns a new Money.
type Money struct {
	amount *big.Rat
}

// NewMoney builds an amount from a fraction, e.g. NewMoney(1999, 100) is 19.99.
func NewMoney(numerator, denominator int64) *Money {
	if denominator == 0 {
		panic("money: denominator cannot be zero")
	}
	return &Money{amount: big.NewRat(numerator, denominator)}
}

// NewMoneyFromCents is shorthand for NewMoney(cents, 100).
func NewMoneyFromCents(cents int64) *Money {
	return NewMoney(cents, 100)
}

// NewMoneyFromDecimal parses strings such as "19.99" or "100".
func NewMoneyFromDecimal(decimal string) (*Money, error) {
	rat := new(big.Rat)
	if _, ok := rat.SetString(decimal); !ok {
		return nil, fmt.Errorf("invalid decimal format: %s", decimal)
	}
	return &Money{amount: rat}, nil
}

// NewMoneyFromFloat converts a JSON number. Binary float noise is removed by
// rounding to cents first.
func NewMoneyFromFloat(f float64) *Money {
	r := new(big.Rat).SetFloat64(f)
	if r == nil {
		return Zero()
	}
	return (&Money{amount: r}).RoundToCents()
}

func Zero() *Money {
	return &Money{amount: big.NewRat(0, 1)}
}

func (m *Money) Add(other *Money) *Money {
	return &Money{amount: new(big.Rat).Add(m.amount, other.amount)}
}

// MultiplyByQuantity returns the line total for qty units.
func (m *Money) MultiplyByQuantity(qty int64) *Money {
	return &Money{amount: new(big.Rat).Mul(m.amount, new(big.Rat).SetInt64(qty))}
}

// MultiplyByFraction is exact, unlike multiplying by a float rate.
func (m *Money) MultiplyByFraction(numerator, denominator int64) *Money {
	return &Money{amount: new(big.Rat).Mul(m.amount, big.NewRat(numerator, denominator))}
}

// RoundToCents rounds half away from zero to two decimal places.
func (m *Money) RoundToCents() *Money {
	scaled := new(big.Rat).Mul(m.amount, big.NewRat(100, 1))
	num := new(big.Int).Set(scaled.Num())
	den := scaled.Denom()

	neg := num.Sign() < 0
	num.Abs(num)
	q, r := new(big.Int).QuoRem(num, den, new(big.Int))
	if new(big.Int).Mul(r, big.NewInt(2)).Cmp(den) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	if neg {
		q.Neg(q)
	}
	return &Money{amount: new(big.Rat).SetFrac(q, big.NewInt(100))}
}

// Cents returns the amount rounded to whole cents.
func (m *Money) Cents() int64 {
	r := m.RoundToCents()
	return new(big.Rat).Mul(r.amount, big.NewRat(100, 1)).Num().Int64()
}

func (m *Money) IsZero() bool {
	return m.amount.Sign() == 0
}

func (m *Money) IsNegative() bool {
	return m.amount.Sign() < 0
}

func (m *Money) Cmp(other *Money) int {
	return m.amount.Cmp(other.amount)
}

func (m *Money) LessThan(other *Money) bool {
	return m.Cmp(other) < 0
}

func (m *Money) Equals(other *Money) bool {
	if other == nil {
		return false
	}
	return m.Cmp(other) == 0
}

// Numerator and Denominator expose the rational form for persistence.
func (m *Money) Numerator() int64 {
	return m.amount.Num().Int64()
}

func (m *Money) Denominator() int64 {
	return m.amount.Denom().Int64()
}

// Float64 is for display and JSON only.
func (m *Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

func (m *Money) String() string {
	return m.amount.FloatString(2)
}
