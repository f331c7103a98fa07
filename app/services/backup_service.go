package services

import (
	"encoding/json"
	"fmt"
	"time"

	zlog "github.com/rs/zerolog/log"

	"QuickSales/app/models"
	"QuickSales/app/store"
)

// Orders older than this are dropped by an archive run
const archiveAfterMonths = 3

// BackupService exports and restores the whole data set as one JSON
// document and prunes old order history.
type BackupService struct {
	store *store.Store
	cache SnapshotCache
}

// NewBackupService creates a new backup service
func NewBackupService(st *store.Store, cache SnapshotCache) *BackupService {
	return &BackupService{store: st, cache: cache}
}

// Export serializes the full snapshot
func (s *BackupService) Export() ([]byte, error) {
	snap := s.store.Snapshot()
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("could not serialize backup: %w", err)
	}
	return data, nil
}

// Import validates a backup document and swaps it in wholesale: entity
// store and local cache are replaced together and a push is scheduled. A
// document that fails validation changes nothing.
func (s *BackupService) Import(data []byte) error {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	// A real backup always carries these collections, even when empty
	if snap.Customers == nil || snap.Products == nil {
		return fmt.Errorf("%w: missing customers or products", ErrInvalidBackup)
	}

	if s.cache != nil {
		if err := s.cache.SaveSnapshot(snap); err != nil {
			zlog.Warn().Err(err).Msg("could not persist restored snapshot to local cache")
		}
	}
	s.store.Replace(snap, true)

	zlog.Info().
		Int("customers", len(snap.Customers)).
		Int("products", len(snap.Products)).
		Int("orders", len(snap.Orders)).
		Msg("backup restored")
	return nil
}

// ArchiveOldOrders drops orders older than three months and reports how
// many were removed. Destructive; callers confirm before invoking.
func (s *BackupService) ArchiveOldOrders() (int, error) {
	cutoff := time.Now().UTC().AddDate(0, -archiveAfterMonths, 0)
	removed := 0

	err := s.store.Update(func(st *store.State) error {
		kept := st.Orders[:0]
		for _, order := range st.Orders {
			if order.CreatedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, order)
		}
		st.Orders = kept
		return nil
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		zlog.Info().Int("removed", removed).Time("cutoff", cutoff).Msg("order history archived")
	}
	return removed, nil
}
