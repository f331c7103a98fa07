package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipping  OrderStatus = "Shipping"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known lifecycle states
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipping, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// IsFinal reports whether s is a terminal state. Completed and Cancelled
// orders accept no further edits or transitions.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransition reports whether the lifecycle allows moving from s to next.
// Pending may move to Shipping, Completed or Cancelled; Shipping may move to
// Completed or Cancelled.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	if !next.IsValid() || s.IsFinal() {
		return false
	}
	switch s {
	case OrderStatusPending:
		return next != OrderStatusPending
	case OrderStatusShipping:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	}
	return false
}

func (s *OrderStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		*s = OrderStatus(v)
	case string:
		*s = OrderStatus(v)
	default:
		return fmt.Errorf("unsupported order status column type %T", value)
	}
	return nil
}

func (s OrderStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// OrderItem is one cart line. ProductName and Price are snapshots taken when
// the order was created or last edited.
type OrderItem struct {
	ProductID   string  `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// OrderItems is stored as a JSON column on the remote table
type OrderItems []OrderItem

func (o OrderItems) Value() (driver.Value, error) {
	return json.Marshal(o)
}

func (o *OrderItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, o)
	case string:
		return json.Unmarshal([]byte(v), o)
	case nil:
		*o = nil
		return nil
	default:
		return fmt.Errorf("unsupported order items column type %T", value)
	}
}

// Order represents a customer order. Profit and TotalAmount are frozen at
// creation (or at the last edit); shipping address is denormalized from the
// customer record at that moment.
type Order struct {
	ID              string      `gorm:"primaryKey" json:"id"`
	CustomerID      string      `json:"customerId"`
	CustomerName    string      `json:"customerName"`
	Items           OrderItems  `gorm:"type:jsonb" json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Profit          float64     `json:"profit"`
	Status          OrderStatus `gorm:"index" json:"status"`
	Notes           string      `json:"notes"`
	DeliveryDate    string      `json:"deliveryDate,omitempty"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// TableName overrides the table name used by GORM
func (Order) TableName() string {
	return "orders"
}
