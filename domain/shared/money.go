package shared

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits every stored amount keeps.
const MoneyPlaces = 2

// Money is an exact decimal amount. Arithmetic never goes through binary
// floating point, so 0.1 * 0.2 is exactly 0.02.
type Money struct {
	amount decimal.Decimal
}

func Zero() Money { return Money{amount: decimal.Zero} }

func NewMoney(amount decimal.Decimal) Money { return Money{amount: amount} }

// MustMoney parses a literal amount and panics on malformed input.
// Intended for constants and tests.
func MustMoney(s string) Money { return Money{amount: decimal.RequireFromString(s)} }

// MaxAmount is the exclusive upper bound of any stored amount: amount
// columns are decimal(12,2).
var MaxAmount = decimal.New(1, 10)

// Exponent range ParseDecimal accepts. Anything outside is read as
// malformed before any digits get expanded.
const (
	minParseExponent = -12
	maxParseExponent = 12
)

// ParseDecimal is the lenient parser used for every raw numeric form field:
// blank or malformed input yields zero instead of an error. The result is
// quantized to MoneyPlaces. An exponent beyond ±12 or a coefficient longer
// than 24 digits counts as malformed. Values that parse but do not fit a
// column are left to WithinLimit checks.
func ParseDecimal(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	if exp := d.Exponent(); exp < minParseExponent || exp > maxParseExponent {
		return decimal.Zero
	}
	if d.Coefficient().BitLen() > coefficientBits {
		return decimal.Zero
	}
	return quantize(d)
}

// coefficientBits holds 24 decimal digits.
const coefficientBits = 80

// WithinLimit reports whether |d| is below limit.
func WithinLimit(d, limit decimal.Decimal) bool {
	return d.Abs().LessThan(limit)
}

// ParseMoney is ParseDecimal wrapped as Money.
func ParseMoney(raw string) Money { return Money{amount: ParseDecimal(raw)} }

// Multiply returns quantity * unitPrice without rounding.
func Multiply(quantity decimal.Decimal, unitPrice Money) Money {
	return Money{amount: quantity.Mul(unitPrice.amount)}
}

// Sum adds amounts exactly. The empty sum is zero.
func Sum(amounts ...Money) Money {
	total := decimal.Zero
	for _, m := range amounts {
		total = total.Add(m.amount)
	}
	return Money{amount: total}
}

// quantize rounds half to even, matching the decimal context the ledger
// was originally kept with.
func quantize(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(MoneyPlaces)
}

// Quantize rounds to MoneyPlaces fractional digits.
func (m Money) Quantize() Money { return Money{amount: quantize(m.amount)} }

func (m Money) Add(other Money) Money { return Money{amount: m.amount.Add(other.amount)} }

func (m Money) Sub(other Money) Money { return Money{amount: m.amount.Sub(other.amount)} }

func (m Money) IsZero() bool     { return m.amount.IsZero() }
func (m Money) IsPositive() bool { return m.amount.IsPositive() }
func (m Money) IsNegative() bool { return m.amount.IsNegative() }

// Fits reports whether m can be stored in an amount column.
func (m Money) Fits() bool { return WithinLimit(m.amount, MaxAmount) }

// Equals compares numeric value, so 1.5 equals 1.50.
func (m Money) Equals(other Money) bool { return m.amount.Equal(other.amount) }

func (m Money) Decimal() decimal.Decimal { return m.amount }

// String renders the amount with exactly two fractional digits.
func (m Money) String() string { return m.amount.StringFixedBank(MoneyPlaces) }

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		m.amount = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return err
	}
	m.amount = d
	return nil
}
