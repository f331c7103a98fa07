package models

import "time"

// ProductionLog records one production run. It lives only in memory, the
// local cache and backups; production history is not part of the remote
// table set.
type ProductionLog struct {
	ID          string    `json:"id"`
	ProductID   string    `json:"productId"`
	ProductName string    `json:"productName"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"createdAt"`
}
