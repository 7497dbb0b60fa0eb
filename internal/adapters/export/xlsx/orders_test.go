package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/resinwood/internal/domain"
)

func TestWriteOrders(t *testing.T) {
	orders := []domain.Order{{
		Number:    "ORD-1-ABCDEF",
		CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		Status:    domain.OrderStatusConfirmed,
		Email:     "amal@example.com",
		Shipping:  domain.ShippingAddress{FullName: "Amal", City: "Sfax", Country: "TN"},
		Total:     domain.MoneyFromUnits(200),
		Currency:  "USD",
		Items: []domain.OrderItem{
			{
				ProductName:  "Olive Burl Serving Board",
				UnitPrice:    domain.MoneyFromUnits(164),
				Quantity:     1,
				IsConfigured: true,
				Configuration: &domain.ConfigurationMeta{
					TemplateID:          "olive-burl-serving",
					SizeLabel:           "Small (25×15cm)",
					ResinColor:          "Rose Gold",
					ResinRatio:          "high",
					PersonalizationText: "Happy Anniversary",
				},
			},
			{ProductName: "Olive Mug", UnitPrice: domain.MoneyFromUnits(18), Quantity: 2},
		},
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, orders))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{OrdersSheet, ItemsSheet}, f.GetSheetList())

	rows, err := f.GetRows(OrdersSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Order", rows[0][0])
	assert.Equal(t, "ORD-1-ABCDEF", rows[1][0])
	assert.Equal(t, "3", rows[1][7])

	items, err := f.GetRows(ItemsSheet)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "yes", items[1][2])
	assert.Equal(t, "olive-burl-serving", items[1][3])
	assert.Equal(t, "Happy Anniversary", items[1][8])
	assert.Equal(t, "no", items[2][2])
	assert.Equal(t, "2", items[2][11])
}

func TestWriteNoOrders(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOrders(&buf, nil))
	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(OrdersSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
