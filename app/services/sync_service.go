package services

import (
	"context"
	"sync"
	"time"

	"github.com/bep/debounce"
	zlog "github.com/rs/zerolog/log"

	"QuickSales/app/models"
	"QuickSales/app/store"
)

// Sync status values. The status reports the outcome of the last attempt,
// not data freshness.
const (
	SyncStatusSynced  = "synced"
	SyncStatusSyncing = "syncing"
	SyncStatusOffline = "offline"
	SyncStatusError   = "error"
)

// RemoteStore is the authoritative database behind the engine
type RemoteStore interface {
	PullSnapshot(ctx context.Context) (models.Snapshot, error)
	PushSnapshot(ctx context.Context, snap models.Snapshot) error
	DeleteCustomer(ctx context.Context, id string) error
}

// SnapshotCache is the local fallback copy of the data set
type SnapshotCache interface {
	LoadSnapshot() (models.Snapshot, error)
	SaveSnapshot(snap models.Snapshot) error
	UpdateSyncState(status, lastError string) error
}

// SyncEngine keeps the entity store, the local cache and the remote database
// converging. Every successful store mutation schedules a debounced
// whole-snapshot push; a burst of edits collapses into one push carrying the
// final state.
type SyncEngine struct {
	store *store.Store
	cache SnapshotCache

	mu       sync.Mutex
	remote   RemoteStore // nil when not configured
	status   string
	lastErr  string
	schedule func(func())

	pushTimeout time.Duration
}

// NewSyncEngine creates the engine and hooks it to store changes. remote may
// be nil when no endpoint is configured; the engine then runs offline.
func NewSyncEngine(st *store.Store, cache SnapshotCache, remote RemoteStore) *SyncEngine {
	e := &SyncEngine{
		store:       st,
		cache:       cache,
		remote:      remote,
		status:      SyncStatusOffline,
		schedule:    debounce.New(time.Second),
		pushTimeout: 30 * time.Second,
	}
	st.OnChange(e.ScheduleSync)
	return e
}

// Status returns the outcome of the last sync attempt
func (e *SyncEngine) Status() (status, lastError string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status, e.lastErr
}

func (e *SyncEngine) setStatus(status, lastError string) {
	e.mu.Lock()
	e.status = status
	e.lastErr = lastError
	e.mu.Unlock()

	if e.cache != nil {
		if err := e.cache.UpdateSyncState(status, lastError); err != nil {
			zlog.Warn().Err(err).Msg("could not persist sync state")
		}
	}
}

func (e *SyncEngine) currentRemote() RemoteStore {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remote
}

// Bootstrap runs the startup pull. On success the pulled snapshot replaces
// both the entity store and the local cache wholesale. On any failure the
// store is loaded from the cache instead and the engine reports offline;
// whatever was synced last keeps the system working.
func (e *SyncEngine) Bootstrap(ctx context.Context) {
	e.setStatus(SyncStatusSyncing, "")

	remote := e.currentRemote()
	if remote == nil {
		e.loadFromCache("remote not configured")
		return
	}

	snap, err := remote.PullSnapshot(ctx)
	if err != nil {
		zlog.Warn().Err(err).Msg("startup pull failed, falling back to local cache")
		e.loadFromCache(err.Error())
		return
	}

	// The pull is the new truth; do not schedule a push for it
	e.store.Replace(snap, false)
	if e.cache != nil {
		if err := e.cache.SaveSnapshot(snap); err != nil {
			zlog.Warn().Err(err).Msg("could not refresh local cache after pull")
		}
	}
	e.setStatus(SyncStatusSynced, "")
	zlog.Info().
		Int("customers", len(snap.Customers)).
		Int("materials", len(snap.Materials)).
		Int("products", len(snap.Products)).
		Int("orders", len(snap.Orders)).
		Int("purchases", len(snap.Purchases)).
		Msg("startup pull complete")
}

func (e *SyncEngine) loadFromCache(reason string) {
	if e.cache == nil {
		e.setStatus(SyncStatusOffline, reason)
		return
	}
	snap, err := e.cache.LoadSnapshot()
	if err != nil {
		zlog.Error().Err(err).Msg("local cache unreadable, starting empty")
		e.setStatus(SyncStatusError, err.Error())
		return
	}
	e.store.Replace(snap, false)
	e.setStatus(SyncStatusOffline, reason)
	zlog.Info().Str("reason", reason).Msg("working from local cache")
}

// ScheduleSync (re)arms the debounced push. Called by the store after every
// successful mutation; a newer schedule supersedes a pending one.
func (e *SyncEngine) ScheduleSync() {
	e.schedule(e.push)
}

// Flush pushes the current snapshot immediately, bypassing the debounce.
// Used on shutdown.
func (e *SyncEngine) Flush() {
	e.push()
}

// push persists the current snapshot locally, then upserts it to the
// remote. Sync failures only move the status indicator; ledger operations
// never see them.
func (e *SyncEngine) push() {
	snap := e.store.Snapshot()
	e.setStatus(SyncStatusSyncing, "")

	if e.cache != nil {
		if err := e.cache.SaveSnapshot(snap); err != nil {
			zlog.Warn().Err(err).Msg("could not persist snapshot to local cache")
		}
	}

	remote := e.currentRemote()
	if remote == nil {
		e.setStatus(SyncStatusOffline, "remote not configured")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), e.pushTimeout)
	defer cancel()

	if err := remote.PushSnapshot(ctx, snap); err != nil {
		zlog.Warn().Err(err).Msg("snapshot push failed")
		e.setStatus(SyncStatusError, err.Error())
		return
	}
	e.setStatus(SyncStatusSynced, "")
}

// DeleteCustomer propagates a customer deletion to the remote right away,
// independent of the debounced snapshot push. Failures are tolerated: the
// row would otherwise linger remotely but local state is already correct.
func (e *SyncEngine) DeleteCustomer(id string) {
	remote := e.currentRemote()
	if remote == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), e.pushTimeout)
		defer cancel()
		if err := remote.DeleteCustomer(ctx, id); err != nil {
			zlog.Warn().Err(err).Str("customer", id).Msg("remote customer delete failed")
		}
	}()
}

// Reconfigure swaps the remote store and reruns the startup pull against
// it. Passing nil detaches the engine from any remote.
func (e *SyncEngine) Reconfigure(ctx context.Context, remote RemoteStore) {
	e.mu.Lock()
	e.remote = remote
	e.mu.Unlock()
	e.Bootstrap(ctx)
}
