package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PurchaseItem is one received batch line. MaterialName is snapshotted so the
// record stays readable if the material is later renamed or deleted.
type PurchaseItem struct {
	MaterialID   string  `json:"materialId"`
	MaterialName string  `json:"materialName"`
	Quantity     float64 `json:"quantity"`
	Price        float64 `json:"price"`
}

// PurchaseItems is stored as a JSON column on the remote table
type PurchaseItems []PurchaseItem

func (p PurchaseItems) Value() (driver.Value, error) {
	return json.Marshal(p)
}

func (p *PurchaseItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = nil
		return nil
	default:
		return fmt.Errorf("unsupported purchase items column type %T", value)
	}
}

// Purchase is an immutable receipt of incoming material stock.
type Purchase struct {
	ID        string        `gorm:"primaryKey" json:"id"`
	Supplier  string        `json:"supplier"`
	Items     PurchaseItems `gorm:"type:jsonb" json:"items"`
	TotalCost float64       `json:"totalCost"`
	CreatedAt time.Time     `json:"createdAt"`
}

// TableName overrides the table name used by GORM
func (Purchase) TableName() string {
	return "purchases"
}
