package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// CustomerType classifies customers for the sales views
type CustomerType string

const (
	CustomerTypeRetail  CustomerType = "Retail"
	CustomerTypeRegular CustomerType = "Regular"
	CustomerTypeVIP     CustomerType = "VIP"
)

func (t CustomerType) String() string {
	return string(t)
}

// IsValid reports whether t is a known customer type
func (t CustomerType) IsValid() bool {
	switch t {
	case CustomerTypeRetail, CustomerTypeRegular, CustomerTypeVIP:
		return true
	}
	return false
}

func (t *CustomerType) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		*t = CustomerType(v)
	case string:
		*t = CustomerType(v)
	default:
		return fmt.Errorf("unsupported customer type column type %T", value)
	}
	return nil
}

func (t CustomerType) Value() (driver.Value, error) {
	return string(t), nil
}

// Customer represents a known buyer. Orders reference customers by ID but
// snapshot the name, so deleting a customer never touches order history.
type Customer struct {
	ID        string       `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"not null" json:"name"`
	Phone     string       `json:"phone"`
	Address   string       `json:"address"`
	Type      CustomerType `json:"type"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// TableName overrides the table name used by GORM
func (Customer) TableName() string {
	return "customers"
}

// CustomerStats holds aggregates derived from the order history on read.
// They are never stored.
type CustomerStats struct {
	OrderCount int     `json:"orderCount"`
	TotalSpent float64 `json:"totalSpent"`
}
