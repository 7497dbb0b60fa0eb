// Package cart is the shopping cart aggregate. A Cart is a value: every
// operation returns a new Cart and leaves the receiver untouched.
package cart

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	"github.com/phenrril/resinwood/internal/domain"
)

const ConfiguredIDPrefix = "config-"

// MaxQuantity caps the quantity of a single line.
const MaxQuantity = 99

func clampQty(q int) int {
	if q > MaxQuantity {
		return MaxQuantity
	}
	return q
}

// Cart holds plain lines, merged by id, and configured lines, which are
// never merged. Totals are computed once when the value is built.
type Cart struct {
	items      []domain.CartItem
	totalItems int
	totalPrice domain.Money
}

func newCart(items []domain.CartItem) Cart {
	c := Cart{items: items}
	for _, it := range items {
		c.totalItems += it.Quantity
		c.totalPrice += it.LineTotal()
	}
	return c
}

// New builds a cart from stored lines. Lines with an empty id or a
// non-positive quantity are dropped and quantities are capped at MaxQuantity.
func New(items []domain.CartItem) Cart {
	out := make([]domain.CartItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" || it.Quantity <= 0 {
			continue
		}
		it.Quantity = clampQty(it.Quantity)
		out = append(out, it)
	}
	return newCart(out)
}

func newConfiguredID() string {
	return ConfiguredIDPrefix + uuid.NewString()
}

// AddPlainItem merges item into an existing plain line with the same id or
// appends it. qty 0 counts as 1 and a negative qty decrements; a line that
// drops to zero or below is removed and a line never exceeds MaxQuantity.
// Ids in the configured namespace are ignored.
func (c Cart) AddPlainItem(item domain.CartItem, qty int) Cart {
	if item.ID == "" || strings.HasPrefix(item.ID, ConfiguredIDPrefix) {
		return c
	}
	if qty == 0 {
		qty = 1
	}
	items := c.Items()
	for i := range items {
		if items[i].ID != item.ID || items[i].IsConfigured {
			continue
		}
		items[i].Quantity = clampQty(items[i].Quantity + qty)
		if items[i].Quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
		}
		return newCart(items)
	}
	if qty < 0 {
		return c
	}
	item.Quantity = clampQty(qty)
	item.IsConfigured = false
	item.Configuration = nil
	return newCart(append(items, item))
}

// AddConfiguredItem appends item as a new line with a fresh id and quantity 1.
// The id is returned so callers can address the line.
func (c Cart) AddConfiguredItem(item domain.CartItem) (Cart, string) {
	item.ID = newConfiguredID()
	item.Quantity = 1
	item.IsConfigured = true
	if item.Configuration != nil {
		meta := *item.Configuration
		if meta.PriceBreakdown != nil {
			pb := *meta.PriceBreakdown
			meta.PriceBreakdown = &pb
		}
		item.Configuration = &meta
	}
	return newCart(append(c.Items(), item)), item.ID
}

func (c Cart) RemoveItem(id string) Cart {
	items := make([]domain.CartItem, 0, len(c.items))
	for _, it := range c.items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	if len(items) == len(c.items) {
		return c
	}
	return newCart(items)
}

// UpdateQuantity sets the quantity of line id, capped at MaxQuantity;
// qty <= 0 removes it.
func (c Cart) UpdateQuantity(id string, qty int) Cart {
	if qty <= 0 {
		return c.RemoveItem(id)
	}
	items := c.Items()
	for i := range items {
		if items[i].ID == id {
			items[i].Quantity = clampQty(qty)
			return newCart(items)
		}
	}
	return c
}

func (c Cart) Clear() Cart {
	return Cart{}
}

// Restore puts lines taken out of a cart back into it. Plain lines merge
// with lines of the same id; configured lines already present are skipped.
func (c Cart) Restore(lines []domain.CartItem) Cart {
	out := c
	for _, it := range lines {
		if it.ID == "" || it.Quantity <= 0 {
			continue
		}
		if !it.IsConfigured {
			out = out.AddPlainItem(it, it.Quantity)
			continue
		}
		if _, ok := out.Find(it.ID); ok {
			continue
		}
		it.Quantity = clampQty(it.Quantity)
		out = newCart(append(out.Items(), it))
	}
	return out
}

// Items returns a copy of the lines in insertion order.
func (c Cart) Items() []domain.CartItem {
	return append([]domain.CartItem(nil), c.items...)
}

func (c Cart) Find(id string) (domain.CartItem, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return domain.CartItem{}, false
}

func (c Cart) Len() int { return len(c.items) }

func (c Cart) IsEmpty() bool { return len(c.items) == 0 }

func (c Cart) TotalItems() int { return c.totalItems }

func (c Cart) TotalPrice() domain.Money { return c.totalPrice }

type cartJSON struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"total_items"`
	TotalPrice domain.Money      `json:"total_price"`
}

func (c Cart) MarshalJSON() ([]byte, error) {
	items := c.items
	if items == nil {
		items = []domain.CartItem{}
	}
	return json.Marshal(cartJSON{Items: items, TotalItems: c.totalItems, TotalPrice: c.totalPrice})
}

// UnmarshalJSON rebuilds totals from the lines; stored totals are ignored.
func (c *Cart) UnmarshalJSON(data []byte) error {
	var raw cartJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = New(raw.Items)
	return nil
}
