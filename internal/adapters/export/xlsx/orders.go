// Package xlsx renders order reports as Excel workbooks.
package xlsx

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/phenrril/resinwood/internal/domain"
)

const (
	OrdersSheet = "Orders"
	ItemsSheet  = "Items"
)

var (
	orderHeader = []any{"Order", "Created", "Status", "Email", "Name", "City", "Country", "Items", "Total", "Currency"}
	itemHeader  = []any{"Order", "Product", "Custom", "Template", "Size", "Resin", "Ratio", "Transparency", "Engraving", "Font", "Unit price", "Qty", "Line total"}
)

// WriteOrders writes one row per order and one row per order line.
func WriteOrders(w io.Writer, orders []domain.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", OrdersSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 4})
	if err != nil {
		return err
	}

	if err := writeRow(f, OrdersSheet, 1, orderHeader); err != nil {
		return err
	}
	if err := writeRow(f, ItemsSheet, 1, itemHeader); err != nil {
		return err
	}
	_ = f.SetRowStyle(OrdersSheet, 1, 1, bold)
	_ = f.SetRowStyle(ItemsSheet, 1, 1, bold)

	itemRow := 2
	for i, o := range orders {
		row := i + 2
		qty := 0
		for _, it := range o.Items {
			qty += it.Quantity
		}
		err := writeRow(f, OrdersSheet, row, []any{
			o.Number, o.CreatedAt.Format("2006-01-02 15:04"), string(o.Status), o.Email,
			o.Shipping.FullName, o.Shipping.City, o.Shipping.Country,
			qty, o.Total.Decimal().InexactFloat64(), o.Currency,
		})
		if err != nil {
			return err
		}
		for _, it := range o.Items {
			vals := []any{o.Number, it.ProductName, yesNo(it.IsConfigured)}
			if m := it.Configuration; m != nil {
				vals = append(vals, m.TemplateID, m.SizeLabel, m.ResinColor, m.ResinRatio, m.ResinTransparency, m.PersonalizationText, m.PersonalizationFont)
			} else {
				vals = append(vals, "", "", "", "", "", "", "")
			}
			vals = append(vals, it.UnitPrice.Decimal().InexactFloat64(), it.Quantity, it.LineTotal().Decimal().InexactFloat64())
			if err := writeRow(f, ItemsSheet, itemRow, vals); err != nil {
				return err
			}
			itemRow++
		}
	}
	if len(orders) > 0 {
		_ = f.SetCellStyle(OrdersSheet, "I2", fmt.Sprintf("I%d", len(orders)+1), money)
	}
	if itemRow > 2 {
		_ = f.SetCellStyle(ItemsSheet, "K2", fmt.Sprintf("K%d", itemRow-1), money)
		_ = f.SetCellStyle(ItemsSheet, "M2", fmt.Sprintf("M%d", itemRow-1), money)
	}
	_ = f.SetColWidth(OrdersSheet, "A", "A", 26)
	_ = f.SetColWidth(OrdersSheet, "D", "D", 28)
	_ = f.SetColWidth(ItemsSheet, "B", "B", 32)

	return f.Write(w)
}

func writeRow(f *excelize.File, sheet string, row int, vals []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &vals)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
