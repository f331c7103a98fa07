package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RecipeItem is one line of a product recipe: a material and the quantity
// consumed per produced unit.
type RecipeItem struct {
	MaterialID string  `json:"materialId"`
	Quantity   float64 `json:"quantity"`
}

// RecipeItems is stored as a JSON column on the remote table
type RecipeItems []RecipeItem

func (r RecipeItems) Value() (driver.Value, error) {
	return json.Marshal(r)
}

func (r *RecipeItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, r)
	case string:
		return json.Unmarshal([]byte(v), r)
	case nil:
		*r = nil
		return nil
	default:
		return fmt.Errorf("unsupported recipe column type %T", value)
	}
}

// Product represents a finished good assembled from materials.
// BaseCost is computed from material purchase prices when the product is
// defined and is frozen afterwards; later material price changes do not
// rewrite it.
type Product struct {
	ID        string      `gorm:"primaryKey" json:"id"`
	Name      string      `gorm:"not null" json:"name"`
	Unit      string      `json:"unit"`
	Stock     float64     `json:"stock"`
	SalePrice float64     `json:"salePrice"`
	Recipe    RecipeItems `gorm:"type:jsonb" json:"recipe"`
	BaseCost  float64     `json:"baseCost"`
}

// TableName overrides the table name used by GORM
func (Product) TableName() string {
	return "products"
}
