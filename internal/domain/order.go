package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type ShippingAddress struct {
	FullName   string `json:"full_name" gorm:"size:140"`
	Address    string `json:"address" gorm:"size:255"`
	City       string `json:"city" gorm:"size:100"`
	PostalCode string `json:"postal_code" gorm:"size:20"`
	Country    string `json:"country" gorm:"size:80"`
	Phone      string `json:"phone,omitempty" gorm:"size:50"`
}

type Order struct {
	ID                uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	Number            string          `json:"order_id" gorm:"size:40;uniqueIndex"`
	Status            OrderStatus     `json:"status" gorm:"type:varchar(30);index"`
	Items             []OrderItem     `json:"items"`
	Email             string          `json:"customer_email" gorm:"size:140;index"`
	Shipping          ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:ship_"`
	Notes             string          `json:"notes,omitempty" gorm:"type:text"`
	CustomerID        *uuid.UUID      `json:"-" gorm:"type:uuid;index"`
	Total             Money           `json:"total" gorm:"not null;default:0"`
	Currency          string          `json:"currency" gorm:"size:3"`
	EstimatedDelivery string          `json:"estimated_delivery" gorm:"size:80"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID            uuid.UUID          `json:"-" gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID          `json:"-" gorm:"type:uuid;index"`
	ProductName   string             `json:"product_name" gorm:"size:180"`
	UnitPrice     Money              `json:"price" gorm:"not null;default:0"`
	Quantity      int                `json:"quantity" gorm:"not null"`
	IsConfigured  bool               `json:"is_custom" gorm:"not null;default:false"`
	Configuration *ConfigurationMeta `json:"configuration,omitempty" gorm:"type:jsonb;serializer:json"`
}

func (it OrderItem) LineTotal() Money {
	return it.UnitPrice.Mul(it.Quantity)
}

type OrderFilter struct {
	Status   OrderStatus
	Email    string
	Since    time.Time
	Page     int
	PageSize int
}
