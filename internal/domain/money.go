package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units (cents).
type Money int64

const minorDigits = 2

func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money(d.Shift(minorDigits).Round(0).IntPart())
}

func MoneyFromUnits(units int64) Money {
	return Money(units * 100)
}

// ParseMoney reads a major-unit amount such as "89", "89.5" or "1,299.00".
func ParseMoney(s string) (Money, error) {
	v := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	v = strings.TrimPrefix(v, "$")
	if v == "" {
		return 0, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, err)
	}
	return MoneyFromDecimal(d), nil
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -minorDigits)
}

func (m Money) Mul(qty int) Money {
	return m * Money(qty)
}

func (m Money) String() string {
	if m < 0 {
		return "-$" + (-m).Decimal().StringFixed(minorDigits)
	}
	return "$" + m.Decimal().StringFixed(minorDigits)
}
