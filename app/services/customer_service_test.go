package services

import (
	"errors"
	"testing"

	"QuickSales/app/models"
	"QuickSales/app/store"
)

type recordingPropagator struct {
	deleted []string
}

func (r *recordingPropagator) DeleteCustomer(id string) {
	r.deleted = append(r.deleted, id)
}

func TestCustomerLifecycle(t *testing.T) {
	st := store.New()
	propagator := &recordingPropagator{}
	customers := NewCustomerService(st, propagator)

	created, err := customers.CreateCustomer("Ana", "555", "12 Main St", models.CustomerTypeVIP, "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	created.Phone = "666"
	if err := customers.UpdateCustomer(created); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if got := customers.GetAllCustomers(); got[0].Phone != "666" {
		t.Errorf("update not applied: %+v", got[0])
	}

	if err := customers.DeleteCustomer(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if got := customers.GetAllCustomers(); len(got) != 0 {
		t.Errorf("customer still present: %+v", got)
	}
	// Deletion must reach the remote immediately, not via the debounced push
	if len(propagator.deleted) != 1 || propagator.deleted[0] != created.ID {
		t.Errorf("delete not propagated: %v", propagator.deleted)
	}
}

func TestCreateCustomerValidation(t *testing.T) {
	customers := NewCustomerService(store.New(), nil)

	if _, err := customers.CreateCustomer("", "", "", models.CustomerTypeRetail, ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nameless customer accepted: %v", err)
	}
	if _, err := customers.CreateCustomer("Ana", "", "", "Gold", ""); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("unknown type accepted: %v", err)
	}

	// Empty type defaults to retail
	created, err := customers.CreateCustomer("Ana", "", "", "", "")
	if err != nil || created.Type != models.CustomerTypeRetail {
		t.Errorf("default type not applied: %+v (%v)", created, err)
	}
}

func TestCustomerStatsSkipCancelled(t *testing.T) {
	st := seededStore(models.Snapshot{
		Customers: []models.Customer{{ID: "c1", Name: "Ana", Type: models.CustomerTypeRegular}},
		Orders: []models.Order{
			{ID: "o1", CustomerID: "c1", TotalAmount: 100, Status: models.OrderStatusCompleted},
			{ID: "o2", CustomerID: "c1", TotalAmount: 50, Status: models.OrderStatusPending},
			{ID: "o3", CustomerID: "c1", TotalAmount: 999, Status: models.OrderStatusCancelled},
			{ID: "o4", CustomerID: "other", TotalAmount: 77, Status: models.OrderStatusCompleted},
		},
	})
	customers := NewCustomerService(st, nil)

	stats, err := customers.GetCustomerStats("c1")
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.OrderCount != 2 || stats.TotalSpent != 150 {
		t.Errorf("stats = %+v, want 2 orders / 150 spent", stats)
	}

	if _, err := customers.GetCustomerStats("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing customer: got %v", err)
	}
}
