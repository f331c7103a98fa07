package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"QuickSales/app/models"
	"QuickSales/app/store"
)

// DeletePropagator pushes a customer deletion to the remote store
// immediately, outside the debounced snapshot push. The sync engine
// implements it.
type DeletePropagator interface {
	DeleteCustomer(id string)
}

// CustomerService owns the customer directory
type CustomerService struct {
	store     *store.Store
	propagate DeletePropagator
}

// NewCustomerService creates a new customer service. propagate may be nil
// when no remote is configured.
func NewCustomerService(st *store.Store, propagate DeletePropagator) *CustomerService {
	return &CustomerService{store: st, propagate: propagate}
}

// GetAllCustomers returns every customer
func (s *CustomerService) GetAllCustomers() []models.Customer {
	var out []models.Customer
	s.store.View(func(st *store.State) {
		out = append(out, st.Customers...)
	})
	return out
}

// CreateCustomer registers a new customer
func (s *CustomerService) CreateCustomer(name, phone, address string, ctype models.CustomerType, notes string) (models.Customer, error) {
	if name == "" {
		return models.Customer{}, fmt.Errorf("%w: customer name is required", ErrInvalidInput)
	}
	if ctype == "" {
		ctype = models.CustomerTypeRetail
	}
	if !ctype.IsValid() {
		return models.Customer{}, fmt.Errorf("%w: unknown customer type %q", ErrInvalidInput, ctype)
	}

	customer := models.Customer{
		ID:        uuid.NewString(),
		Name:      name,
		Phone:     phone,
		Address:   address,
		Type:      ctype,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}

	err := s.store.Update(func(st *store.State) error {
		st.Customers = append(st.Customers, customer)
		return nil
	})
	if err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// UpdateCustomer replaces a customer record by id. Orders keep their
// snapshots; future orders pick up the new name and address.
func (s *CustomerService) UpdateCustomer(customer models.Customer) error {
	if !customer.Type.IsValid() {
		return fmt.Errorf("%w: unknown customer type %q", ErrInvalidInput, customer.Type)
	}
	return s.store.Update(func(st *store.State) error {
		current := st.Customer(customer.ID)
		if current == nil {
			return fmt.Errorf("%w: customer %s", ErrNotFound, customer.ID)
		}
		customer.CreatedAt = current.CreatedAt
		*current = customer
		return nil
	})
}

// DeleteCustomer removes a customer locally and fires an immediate remote
// delete. Order history is untouched; old orders keep the snapshotted name.
func (s *CustomerService) DeleteCustomer(id string) error {
	err := s.store.Update(func(st *store.State) error {
		for i := range st.Customers {
			if st.Customers[i].ID == id {
				st.Customers = append(st.Customers[:i], st.Customers[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: customer %s", ErrNotFound, id)
	})
	if err != nil {
		return err
	}

	if s.propagate != nil {
		s.propagate.DeleteCustomer(id)
	}
	return nil
}

// GetCustomerStats derives per-customer aggregates from the order history.
// Cancelled orders are excluded from the totals.
func (s *CustomerService) GetCustomerStats(id string) (models.CustomerStats, error) {
	var stats models.CustomerStats
	var err error

	s.store.View(func(st *store.State) {
		if st.Customer(id) == nil {
			err = fmt.Errorf("%w: customer %s", ErrNotFound, id)
			return
		}
		for _, order := range st.Orders {
			if order.CustomerID != id || order.Status == models.OrderStatusCancelled {
				continue
			}
			stats.OrderCount++
			stats.TotalSpent += order.TotalAmount
		}
	})

	return stats, err
}
