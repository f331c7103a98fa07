package database

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"QuickSales/app/models"
)

// RemoteStore is the authoritative Postgres database behind the sync engine.
// All access goes through whole-table pulls, batched upserts and single-row
// deletes; the remote never sees partial ledger mutations.
type RemoteStore struct {
	db *gorm.DB
}

// BuildRemoteDSN turns the configured endpoint URL and access key into a
// Postgres DSN. A full postgres:// URL gets the key injected as password;
// a bare host is expanded with defaults.
func BuildRemoteDSN(endpoint, accessKey string) string {
	if endpoint == "" {
		return ""
	}

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" && u.Host != "" {
		user := "postgres"
		if u.User != nil && u.User.Username() != "" {
			user = u.User.Username()
		}
		if accessKey != "" {
			u.User = url.UserPassword(user, accessKey)
		} else if u.User == nil {
			u.User = url.User(user)
		}
		return u.String()
	}

	return fmt.Sprintf("host=%s port=5432 user=postgres password=%s dbname=postgres sslmode=require",
		endpoint, accessKey)
}

// ConnectRemote opens the remote database and migrates the synced tables
func ConnectRemote(dsn string) (*RemoteStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("remote database not configured")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remote database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.Customer{},
		&models.Material{},
		&models.Product{},
		&models.Order{},
		&models.Purchase{},
	); err != nil {
		return nil, fmt.Errorf("remote migration failed: %w", err)
	}

	return &RemoteStore{db: db}, nil
}

// Ping checks remote reachability
func (r *RemoteStore) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// PullSnapshot reads all five synced tables. Any table failing fails the
// whole pull; a pull never returns a partial snapshot.
func (r *RemoteStore) PullSnapshot(ctx context.Context) (models.Snapshot, error) {
	var snap models.Snapshot
	db := r.db.WithContext(ctx)

	if err := db.Find(&snap.Customers).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to pull customers: %w", err)
	}
	if err := db.Find(&snap.Materials).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to pull materials: %w", err)
	}
	if err := db.Find(&snap.Products).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to pull products: %w", err)
	}
	if err := db.Find(&snap.Orders).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to pull orders: %w", err)
	}
	if err := db.Find(&snap.Purchases).Error; err != nil {
		return models.Snapshot{}, fmt.Errorf("failed to pull purchases: %w", err)
	}

	return snap, nil
}

// PushSnapshot upserts every non-empty table by primary key. Rows deleted
// locally are reaped by the customer delete path; other collections only
// grow or change in place.
func (r *RemoteStore) PushSnapshot(ctx context.Context, snap models.Snapshot) error {
	db := r.db.WithContext(ctx)
	upsert := clause.OnConflict{UpdateAll: true}

	if len(snap.Customers) > 0 {
		if err := db.Clauses(upsert).Create(&snap.Customers).Error; err != nil {
			return fmt.Errorf("failed to push customers: %w", err)
		}
	}
	if len(snap.Materials) > 0 {
		if err := db.Clauses(upsert).Create(&snap.Materials).Error; err != nil {
			return fmt.Errorf("failed to push materials: %w", err)
		}
	}
	if len(snap.Products) > 0 {
		if err := db.Clauses(upsert).Create(&snap.Products).Error; err != nil {
			return fmt.Errorf("failed to push products: %w", err)
		}
	}
	if len(snap.Orders) > 0 {
		if err := db.Clauses(upsert).Create(&snap.Orders).Error; err != nil {
			return fmt.Errorf("failed to push orders: %w", err)
		}
	}
	if len(snap.Purchases) > 0 {
		if err := db.Clauses(upsert).Create(&snap.Purchases).Error; err != nil {
			return fmt.Errorf("failed to push purchases: %w", err)
		}
	}

	return nil
}

// DeleteCustomer removes one customer row from the remote table
func (r *RemoteStore) DeleteCustomer(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id).Error
}

// Close closes the remote connection pool
func (r *RemoteStore) Close() error {
	if r.db == nil {
		return nil
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
