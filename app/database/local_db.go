package database

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"QuickSales/app/models"
)

// LocalCache is the on-disk fallback copy of the data set, one SQLite table
// per entity type holding JSON-serialized records keyed by id. It is written
// on every push and read at startup when the remote pull fails.
type LocalCache struct {
	db     *gorm.DB
	dbPath string
}

// OpenLocalCache opens (or creates) the local SQLite cache
func OpenLocalCache(dbPath string) (*LocalCache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	// CGO-free SQLite driver
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open local cache: %w", err)
	}

	cache := &LocalCache{db: db, dbPath: dbPath}
	if err := cache.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate local cache: %w", err)
	}
	return cache, nil
}

func (l *LocalCache) migrate() error {
	return l.db.AutoMigrate(
		&CachedCustomer{},
		&CachedMaterial{},
		&CachedProduct{},
		&CachedOrder{},
		&CachedPurchase{},
		&CachedProductionLog{},
		&SyncState{},
	)
}

// CachedCustomer holds one JSON-serialized customer record
type CachedCustomer struct {
	ID       string `gorm:"primaryKey"`
	Data     string
	CachedAt time.Time
}

// CachedMaterial holds one JSON-serialized material record
type CachedMaterial struct {
	ID       string `gorm:"primaryKey"`
	Data     string
	CachedAt time.Time
}

// CachedProduct holds one JSON-serialized product record
type CachedProduct struct {
	ID       string `gorm:"primaryKey"`
	Data     string
	CachedAt time.Time
}

// CachedOrder holds one JSON-serialized order record
type CachedOrder struct {
	ID       string `gorm:"primaryKey"`
	Data     string
	CachedAt time.Time
}

// CachedPurchase holds one JSON-serialized purchase record
type CachedPurchase struct {
	ID       string `gorm:"primaryKey"`
	Data     string
	CachedAt time.Time
}

// CachedProductionLog holds one JSON-serialized production log record
type CachedProductionLog struct {
	ID       string `gorm:"primaryKey"`
	Data     string
	CachedAt time.Time
}

// SyncState tracks the outcome of the last sync attempt
type SyncState struct {
	ID         uint   `gorm:"primaryKey"`
	Status     string // "synced", "syncing", "offline", "error"
	LastSyncAt *time.Time
	LastError  string
	UpdatedAt  time.Time
}

// SaveSnapshot replaces the whole cache content with snap in one
// transaction. A failed save leaves the previous cache intact.
func (l *LocalCache) SaveSnapshot(snap models.Snapshot) error {
	now := time.Now().UTC()

	return l.db.Transaction(func(tx *gorm.DB) error {
		if err := replaceCustomers(tx, snap.Customers, now); err != nil {
			return err
		}
		if err := replaceMaterials(tx, snap.Materials, now); err != nil {
			return err
		}
		if err := replaceProducts(tx, snap.Products, now); err != nil {
			return err
		}
		if err := replaceOrders(tx, snap.Orders, now); err != nil {
			return err
		}
		if err := replacePurchases(tx, snap.Purchases, now); err != nil {
			return err
		}
		return replaceProductionLogs(tx, snap.ProductionLogs, now)
	})
}

func replaceCustomers(tx *gorm.DB, customers []models.Customer, now time.Time) error {
	if err := tx.Where("1 = 1").Delete(&CachedCustomer{}).Error; err != nil {
		return err
	}
	rows := make([]CachedCustomer, 0, len(customers))
	for _, c := range customers {
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to serialize customer %s: %w", c.ID, err)
		}
		rows = append(rows, CachedCustomer{ID: c.ID, Data: string(data), CachedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func replaceMaterials(tx *gorm.DB, materials []models.Material, now time.Time) error {
	if err := tx.Where("1 = 1").Delete(&CachedMaterial{}).Error; err != nil {
		return err
	}
	rows := make([]CachedMaterial, 0, len(materials))
	for _, m := range materials {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("failed to serialize material %s: %w", m.ID, err)
		}
		rows = append(rows, CachedMaterial{ID: m.ID, Data: string(data), CachedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func replaceProducts(tx *gorm.DB, products []models.Product, now time.Time) error {
	if err := tx.Where("1 = 1").Delete(&CachedProduct{}).Error; err != nil {
		return err
	}
	rows := make([]CachedProduct, 0, len(products))
	for _, p := range products {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to serialize product %s: %w", p.ID, err)
		}
		rows = append(rows, CachedProduct{ID: p.ID, Data: string(data), CachedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func replaceOrders(tx *gorm.DB, orders []models.Order, now time.Time) error {
	if err := tx.Where("1 = 1").Delete(&CachedOrder{}).Error; err != nil {
		return err
	}
	rows := make([]CachedOrder, 0, len(orders))
	for _, o := range orders {
		data, err := json.Marshal(o)
		if err != nil {
			return fmt.Errorf("failed to serialize order %s: %w", o.ID, err)
		}
		rows = append(rows, CachedOrder{ID: o.ID, Data: string(data), CachedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func replacePurchases(tx *gorm.DB, purchases []models.Purchase, now time.Time) error {
	if err := tx.Where("1 = 1").Delete(&CachedPurchase{}).Error; err != nil {
		return err
	}
	rows := make([]CachedPurchase, 0, len(purchases))
	for _, p := range purchases {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to serialize purchase %s: %w", p.ID, err)
		}
		rows = append(rows, CachedPurchase{ID: p.ID, Data: string(data), CachedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

func replaceProductionLogs(tx *gorm.DB, logs []models.ProductionLog, now time.Time) error {
	if err := tx.Where("1 = 1").Delete(&CachedProductionLog{}).Error; err != nil {
		return err
	}
	rows := make([]CachedProductionLog, 0, len(logs))
	for _, p := range logs {
		data, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("failed to serialize production log %s: %w", p.ID, err)
		}
		rows = append(rows, CachedProductionLog{ID: p.ID, Data: string(data), CachedAt: now})
	}
	if len(rows) == 0 {
		return nil
	}
	return tx.Create(&rows).Error
}

// LoadSnapshot reads the whole cache back into one snapshot
func (l *LocalCache) LoadSnapshot() (models.Snapshot, error) {
	var snap models.Snapshot

	var customers []CachedCustomer
	if err := l.db.Find(&customers).Error; err != nil {
		return snap, fmt.Errorf("failed to load cached customers: %w", err)
	}
	for _, row := range customers {
		var c models.Customer
		if err := json.Unmarshal([]byte(row.Data), &c); err != nil {
			return snap, fmt.Errorf("corrupt cached customer %s: %w", row.ID, err)
		}
		snap.Customers = append(snap.Customers, c)
	}

	var materials []CachedMaterial
	if err := l.db.Find(&materials).Error; err != nil {
		return snap, fmt.Errorf("failed to load cached materials: %w", err)
	}
	for _, row := range materials {
		var m models.Material
		if err := json.Unmarshal([]byte(row.Data), &m); err != nil {
			return snap, fmt.Errorf("corrupt cached material %s: %w", row.ID, err)
		}
		snap.Materials = append(snap.Materials, m)
	}

	var products []CachedProduct
	if err := l.db.Find(&products).Error; err != nil {
		return snap, fmt.Errorf("failed to load cached products: %w", err)
	}
	for _, row := range products {
		var p models.Product
		if err := json.Unmarshal([]byte(row.Data), &p); err != nil {
			return snap, fmt.Errorf("corrupt cached product %s: %w", row.ID, err)
		}
		snap.Products = append(snap.Products, p)
	}

	var orders []CachedOrder
	if err := l.db.Find(&orders).Error; err != nil {
		return snap, fmt.Errorf("failed to load cached orders: %w", err)
	}
	for _, row := range orders {
		var o models.Order
		if err := json.Unmarshal([]byte(row.Data), &o); err != nil {
			return snap, fmt.Errorf("corrupt cached order %s: %w", row.ID, err)
		}
		snap.Orders = append(snap.Orders, o)
	}

	var purchases []CachedPurchase
	if err := l.db.Find(&purchases).Error; err != nil {
		return snap, fmt.Errorf("failed to load cached purchases: %w", err)
	}
	for _, row := range purchases {
		var p models.Purchase
		if err := json.Unmarshal([]byte(row.Data), &p); err != nil {
			return snap, fmt.Errorf("corrupt cached purchase %s: %w", row.ID, err)
		}
		snap.Purchases = append(snap.Purchases, p)
	}

	var logs []CachedProductionLog
	if err := l.db.Find(&logs).Error; err != nil {
		return snap, fmt.Errorf("failed to load cached production logs: %w", err)
	}
	for _, row := range logs {
		var p models.ProductionLog
		if err := json.Unmarshal([]byte(row.Data), &p); err != nil {
			return snap, fmt.Errorf("corrupt cached production log %s: %w", row.ID, err)
		}
		snap.ProductionLogs = append(snap.ProductionLogs, p)
	}

	return snap, nil
}

// UpdateSyncState records the outcome of the last sync attempt
func (l *LocalCache) UpdateSyncState(status string, lastError string) error {
	var state SyncState
	if err := l.db.FirstOrCreate(&state).Error; err != nil {
		return err
	}

	now := time.Now().UTC()
	state.Status = status
	state.LastError = lastError
	state.UpdatedAt = now
	if status == "synced" {
		state.LastSyncAt = &now
	}

	return l.db.Save(&state).Error
}

// GetSyncState returns the recorded outcome of the last sync attempt
func (l *LocalCache) GetSyncState() (*SyncState, error) {
	var state SyncState
	err := l.db.FirstOrCreate(&state).Error
	return &state, err
}

// Close closes the underlying SQLite handle
func (l *LocalCache) Close() error {
	if l.db == nil {
		return nil
	}
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
