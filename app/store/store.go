// Package store holds the in-memory entity collections that every ledger
// operation reads and writes. The store is the source of truth while the
// process runs; the local cache and the remote database trail behind it.
package store

import (
	"sync"

	"QuickSales/app/models"
)

// State is the full in-memory data set.
type State struct {
	Customers      []models.Customer
	Materials      []models.Material
	Products       []models.Product
	Orders         []models.Order
	Purchases      []models.Purchase
	ProductionLogs []models.ProductionLog
}

// Material returns a pointer into the state's material slice, or nil.
func (st *State) Material(id string) *models.Material {
	for i := range st.Materials {
		if st.Materials[i].ID == id {
			return &st.Materials[i]
		}
	}
	return nil
}

// Product returns a pointer into the state's product slice, or nil.
func (st *State) Product(id string) *models.Product {
	for i := range st.Products {
		if st.Products[i].ID == id {
			return &st.Products[i]
		}
	}
	return nil
}

// Order returns a pointer into the state's order slice, or nil.
func (st *State) Order(id string) *models.Order {
	for i := range st.Orders {
		if st.Orders[i].ID == id {
			return &st.Orders[i]
		}
	}
	return nil
}

// Customer returns a pointer into the state's customer slice, or nil.
func (st *State) Customer(id string) *models.Customer {
	for i := range st.Customers {
		if st.Customers[i].ID == id {
			return &st.Customers[i]
		}
	}
	return nil
}

func cloneOrders(orders []models.Order) []models.Order {
	out := make([]models.Order, len(orders))
	copy(out, orders)
	for i := range out {
		out[i].Items = append(models.OrderItems(nil), out[i].Items...)
	}
	return out
}

func cloneProducts(products []models.Product) []models.Product {
	out := make([]models.Product, len(products))
	copy(out, products)
	for i := range out {
		out[i].Recipe = append(models.RecipeItems(nil), out[i].Recipe...)
	}
	return out
}

func clonePurchases(purchases []models.Purchase) []models.Purchase {
	out := make([]models.Purchase, len(purchases))
	copy(out, purchases)
	for i := range out {
		out[i].Items = append(models.PurchaseItems(nil), out[i].Items...)
	}
	return out
}

func (st *State) clone() State {
	return State{
		Customers:      append([]models.Customer(nil), st.Customers...),
		Materials:      append([]models.Material(nil), st.Materials...),
		Products:       cloneProducts(st.Products),
		Orders:         cloneOrders(st.Orders),
		Purchases:      clonePurchases(st.Purchases),
		ProductionLogs: append([]models.ProductionLog(nil), st.ProductionLogs...),
	}
}

// Store serializes all mutations of the data set. Update callbacks work on a
// private copy, so a callback that returns an error leaves the published
// state untouched and readers never observe a half-applied change.
type Store struct {
	mu       sync.RWMutex
	state    State
	onChange func()
}

// New creates an empty store
func New() *Store {
	return &Store{}
}

// OnChange registers the hook fired after every successful mutation. The
// sync engine uses it to schedule a push. Must be set before concurrent use.
func (s *Store) OnChange(fn func()) {
	s.onChange = fn
}

// Update runs fn on a copy of the state under the write lock. If fn returns
// nil the copy is published and the change hook fires; if fn returns an
// error nothing changes.
func (s *Store) Update(fn func(*State) error) error {
	s.mu.Lock()
	next := s.state.clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.state = next
	hook := s.onChange
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	return nil
}

// View runs fn under the read lock. fn must not retain or mutate the state.
func (s *Store) View(fn func(*State)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.state)
}

// notNil keeps empty collections as empty arrays on the wire instead of
// null; a restored backup is validated by the presence of its collections.
func notNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}

// Snapshot returns a deep copy of the data set as one document. Every
// entity collection is non-nil, so an exported document round-trips even
// when the ledger is empty.
func (s *Store) Snapshot() models.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state.clone()
	return models.Snapshot{
		Customers:      notNil(st.Customers),
		Materials:      notNil(st.Materials),
		Products:       notNil(st.Products),
		Orders:         notNil(st.Orders),
		Purchases:      notNil(st.Purchases),
		ProductionLogs: st.ProductionLogs,
	}
}

// Replace swaps the whole data set. Startup pull and restore both land here.
// notify controls whether the change hook fires: a restore schedules a push,
// a startup pull does not re-push what was just pulled.
func (s *Store) Replace(snap models.Snapshot, notify bool) {
	next := State{
		Customers:      snap.Customers,
		Materials:      snap.Materials,
		Products:       snap.Products,
		Orders:         snap.Orders,
		Purchases:      snap.Purchases,
		ProductionLogs: snap.ProductionLogs,
	}

	s.mu.Lock()
	s.state = next
	hook := s.onChange
	s.mu.Unlock()

	if notify && hook != nil {
		hook()
	}
}
