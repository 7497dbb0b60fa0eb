package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/resinwood/internal/domain"
)

const (
	EstimatedDelivery = "2-3 weeks (handcrafted to order)"
	DefaultCurrency   = "USD"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type CheckoutRequest struct {
	Email    string                 `json:"customer_email"`
	Shipping domain.ShippingAddress `json:"shipping_address"`
	Notes    string                 `json:"notes"`
}

type OrderUC struct {
	Orders    domain.OrderRepo
	Customers domain.CustomerRepo
	Sessions  SessionStore
	Currency  string
	Now       func() time.Time
}

func (uc *OrderUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}

func validateCheckout(items int, req CheckoutRequest) error {
	if items == 0 {
		return &ValidationError{Code: CodeEmptyOrder, Message: "order must contain at least one item"}
	}
	sh := req.Shipping
	if strings.TrimSpace(sh.FullName) == "" || strings.TrimSpace(sh.Address) == "" ||
		strings.TrimSpace(sh.City) == "" || strings.TrimSpace(sh.Country) == "" {
		return &ValidationError{Code: CodeMissingShippingAddress, Message: "shipping address is required"}
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		return &ValidationError{Code: CodeMissingCustomerEmail, Message: "customer email is required"}
	}
	if !emailRe.MatchString(email) {
		return &ValidationError{Code: CodeInvalidEmail, Message: "invalid email format"}
	}
	return nil
}

// restoreCart runs detached from the request context so a cancelled
// request still gets its lines back.
func (uc *OrderUC) restoreCart(sid string, lines []domain.CartItem) {
	if _, err := uc.Sessions.Update(context.Background(), sid, func(s *Session) error {
		s.Cart = s.Cart.Restore(lines)
		return nil
	}); err != nil {
		log.Error().Err(err).Str("session", sid).Int("lines", len(lines)).Msg("cart not restored after failed checkout")
	}
}

func (uc *OrderUC) orderNumber(t time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("ORD-%d-%s", t.UnixMilli(), strings.ToUpper(suffix))
}

// Checkout turns the session cart into a confirmed order. The lines are
// taken out of the cart in one session update, so a second checkout of the
// same session sees an empty cart. If the order cannot be saved the lines are
// put back.
func (uc *OrderUC) Checkout(ctx context.Context, sid string, req CheckoutRequest) (*domain.Order, error) {
	var lines []domain.CartItem
	if _, err := uc.Sessions.Update(ctx, sid, func(s *Session) error {
		if err := validateCheckout(s.Cart.Len(), req); err != nil {
			return err
		}
		lines = s.Cart.Items()
		s.Cart = s.Cart.Clear()
		return nil
	}); err != nil {
		return nil, err
	}

	now := uc.now()
	currency := uc.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	o := &domain.Order{
		ID:                uuid.New(),
		Number:            uc.orderNumber(now),
		Status:            domain.OrderStatusConfirmed,
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		Shipping:          req.Shipping,
		Notes:             strings.TrimSpace(req.Notes),
		Currency:          currency,
		EstimatedDelivery: EstimatedDelivery,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	for _, it := range lines {
		oi := domain.OrderItem{
			ID:            uuid.New(),
			OrderID:       o.ID,
			ProductName:   it.Name,
			UnitPrice:     it.UnitPrice,
			Quantity:      it.Quantity,
			IsConfigured:  it.IsConfigured,
			Configuration: it.Configuration,
		}
		o.Items = append(o.Items, oi)
		o.Total += oi.LineTotal()
	}

	if uc.Customers != nil {
		if c, err := uc.upsertCustomer(ctx, o); err != nil {
			log.Warn().Err(err).Str("email", o.Email).Msg("customer upsert failed")
		} else {
			o.CustomerID = &c.ID
		}
	}
	if err := uc.Orders.Save(ctx, o); err != nil {
		uc.restoreCart(sid, lines)
		return nil, fmt.Errorf("save order: %w", err)
	}
	log.Info().Str("order_id", o.Number).Int("items", len(o.Items)).Str("total", o.Total.String()).Msg("order confirmed")
	return o, nil
}

func (uc *OrderUC) upsertCustomer(ctx context.Context, o *domain.Order) (*domain.Customer, error) {
	c, err := uc.Customers.FindByEmail(ctx, o.Email)
	if errors.Is(err, domain.ErrNotFound) {
		c = &domain.Customer{ID: uuid.New(), Email: o.Email}
	} else if err != nil {
		return nil, err
	}
	if o.Shipping.FullName != "" {
		c.Name = o.Shipping.FullName
	}
	if o.Shipping.Phone != "" {
		c.Phone = o.Shipping.Phone
	}
	if o.Shipping.Country != "" {
		c.Country = o.Shipping.Country
	}
	c.Orders++
	if err := uc.Customers.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (uc *OrderUC) List(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	if f.PageSize == 0 {
		f.PageSize = defaultPageSize
	}
	if f.Page < 1 {
		f.Page = 1
	}
	return uc.Orders.List(ctx, f)
}

// Get accepts either the order number (ORD-...) or the internal uuid.
func (uc *OrderUC) Get(ctx context.Context, ref string) (*domain.Order, error) {
	ref = strings.TrimSpace(ref)
	if strings.HasPrefix(ref, "ORD-") {
		return uc.Orders.FindByNumber(ctx, ref)
	}
	id, err := uuid.Parse(ref)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return uc.Orders.FindByID(ctx, id)
}
