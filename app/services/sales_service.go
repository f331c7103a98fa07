package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"QuickSales/app/models"
	"QuickSales/app/store"
)

// Name and address marker used for orders without a customer record
const walkInCustomer = "Walk-in customer"

// SalesService owns the order lifecycle: creation, editing, status
// transitions and the stock reservations they imply.
type SalesService struct {
	store *store.Store
}

// NewSalesService creates a new sales service
func NewSalesService(st *store.Store) *SalesService {
	return &SalesService{store: st}
}

// CartLine is one requested order line. A zero price means "use the
// product's sale price".
type CartLine struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderInput is the payload for creating or editing an order
type OrderInput struct {
	CustomerID   string     `json:"customerId"`
	Items        []CartLine `json:"items"`
	Notes        string     `json:"notes"`
	DeliveryDate string     `json:"deliveryDate"`
}

// GetAllOrders returns every order
func (s *SalesService) GetAllOrders() []models.Order {
	var out []models.Order
	s.store.View(func(st *store.State) {
		out = append(out, st.Orders...)
	})
	return out
}

// GetOrder returns one order by id
func (s *SalesService) GetOrder(id string) (models.Order, error) {
	var order models.Order
	found := false
	s.store.View(func(st *store.State) {
		if o := st.Order(id); o != nil {
			order = *o
			order.Items = append(models.OrderItems(nil), o.Items...)
			found = true
		}
	})
	if !found {
		return models.Order{}, fmt.Errorf("%w: order %s", ErrNotFound, id)
	}
	return order, nil
}

// fillOrder validates the cart against current stock, destocks each line and
// writes items, totals and customer snapshots onto order. Runs inside a
// store update, so a returned error discards every decrement already made.
func fillOrder(st *store.State, order *models.Order, input OrderInput) error {
	if len(input.Items) == 0 {
		return ErrEmptyCart
	}

	if input.CustomerID != "" {
		customer := st.Customer(input.CustomerID)
		if customer == nil {
			return fmt.Errorf("%w: customer %s", ErrNotFound, input.CustomerID)
		}
		address := customer.Address
		if address == "" {
			address = "no address"
		}
		order.CustomerID = customer.ID
		order.CustomerName = customer.Name
		order.ShippingAddress = fmt.Sprintf("%s (%s) - %s", customer.Name, customer.Phone, address)
	} else {
		order.CustomerID = ""
		order.CustomerName = walkInCustomer
		order.ShippingAddress = walkInCustomer
	}

	order.Items = nil
	order.TotalAmount = 0
	order.Profit = 0

	for _, line := range input.Items {
		if line.Quantity < 1 {
			return fmt.Errorf("%w: product %s", ErrInvalidQuantity, line.ProductID)
		}
		product := st.Product(line.ProductID)
		if product == nil {
			return fmt.Errorf("%w: product %s", ErrNotFound, line.ProductID)
		}

		price := line.Price
		if price == 0 {
			price = product.SalePrice
		}

		qty := float64(line.Quantity)
		if product.Stock < qty {
			return fmt.Errorf("%w: %s has %.0f, need %d",
				ErrInsufficientStock, product.Name, product.Stock, line.Quantity)
		}
		product.Stock -= qty

		order.Items = append(order.Items, models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       price,
		})
		order.TotalAmount += price * qty
		order.Profit += (price - product.BaseCost) * qty
	}

	order.Notes = input.Notes
	order.DeliveryDate = input.DeliveryDate
	return nil
}

// CreateOrder creates a Pending order, reserving product stock per line.
// Total and profit are frozen with the base costs of this moment.
func (s *SalesService) CreateOrder(input OrderInput) (models.Order, error) {
	order := models.Order{
		ID:        uuid.NewString(),
		Status:    models.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	err := s.store.Update(func(st *store.State) error {
		if err := fillOrder(st, &order, input); err != nil {
			return err
		}
		st.Orders = append(st.Orders, order)
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	zlog.Info().Str("order", order.ID).Str("customer", order.CustomerName).
		Float64("total", order.TotalAmount).Msg("order created")
	return order, nil
}

// UpdateOrder replaces the cart and customer fields of an open order. The
// original reservation is returned to stock first, so a line can grow up to
// current stock plus what this order already held. Id, creation time and
// status never change here.
func (s *SalesService) UpdateOrder(id string, input OrderInput) (models.Order, error) {
	var updated models.Order

	err := s.store.Update(func(st *store.State) error {
		order := st.Order(id)
		if order == nil {
			return fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		if order.Status.IsFinal() {
			return ErrOrderFinalized
		}

		// Return the original reservation before validating the new cart
		for _, item := range order.Items {
			if product := st.Product(item.ProductID); product != nil {
				product.Stock += float64(item.Quantity)
			}
		}

		if err := fillOrder(st, order, input); err != nil {
			return err
		}
		updated = *order
		updated.Items = append(models.OrderItems(nil), order.Items...)
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}
	return updated, nil
}

// UpdateOrderStatus moves an order along its lifecycle. Completed and
// Cancelled are terminal. Cancelling is a pure status change: reserved
// stock is not returned.
func (s *SalesService) UpdateOrderStatus(id string, status models.OrderStatus) error {
	return s.store.Update(func(st *store.State) error {
		order := st.Order(id)
		if order == nil {
			return fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		if order.Status.IsFinal() {
			return ErrOrderFinalized
		}
		if !order.Status.CanTransition(status) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, status)
		}
		order.Status = status
		return nil
	})
}

// Availability reports how many units of a product an order line may take:
// current stock plus whatever this order already reserves for the product.
// An empty orderID gives the availability for a new order.
func (s *SalesService) Availability(orderID, productID string) (float64, error) {
	var available float64
	var err error

	s.store.View(func(st *store.State) {
		product := st.Product(productID)
		if product == nil {
			err = fmt.Errorf("%w: product %s", ErrNotFound, productID)
			return
		}
		available = product.Stock

		if orderID == "" {
			return
		}
		order := st.Order(orderID)
		if order == nil {
			err = fmt.Errorf("%w: order %s", ErrNotFound, orderID)
			return
		}
		for _, item := range order.Items {
			if item.ProductID == productID {
				available += float64(item.Quantity)
			}
		}
	})

	return available, err
}
