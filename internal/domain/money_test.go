package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"89", 8900},
		{"89.5", 8950},
		{"0.015", 2},
		{"$1,299.00", 129900},
		{" 25 ", 2500},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := ParseMoney("")
	assert.Error(t, err)
	_, err = ParseMoney("twelve")
	assert.Error(t, err)
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "$164.00", MoneyFromUnits(164).String())
	assert.Equal(t, "$0.05", Money(5).String())
	assert.Equal(t, "-$1.50", Money(-150).String())
}

func TestLineTotal(t *testing.T) {
	it := CartItem{UnitPrice: MoneyFromUnits(45), Quantity: 3}
	assert.Equal(t, MoneyFromUnits(135), it.LineTotal())

	oi := OrderItem{UnitPrice: Money(1999), Quantity: 4}
	assert.Equal(t, Money(7996), oi.LineTotal())
	assert.Equal(t, Money(0), OrderItem{UnitPrice: Money(1999)}.LineTotal())
}
