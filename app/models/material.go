package models

// Material represents a raw material tracked by the stock ledger.
// PurchasePrice always holds the unit cost of the most recent purchase batch,
// not a weighted average.
type Material struct {
	ID            string  `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"not null" json:"name"`
	Unit          string  `json:"unit"`
	Stock         float64 `json:"stock"`
	PurchasePrice float64 `json:"purchasePrice"`
}

// TableName overrides the table name used by GORM
func (Material) TableName() string {
	return "materials"
}
