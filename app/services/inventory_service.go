package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"QuickSales/app/models"
	"QuickSales/app/store"
)

// InventoryService owns materials, purchases, product definitions and
// production runs.
type InventoryService struct {
	store *store.Store
}

// NewInventoryService creates a new inventory service
func NewInventoryService(st *store.Store) *InventoryService {
	return &InventoryService{store: st}
}

// GetAllMaterials returns every material
func (s *InventoryService) GetAllMaterials() []models.Material {
	var out []models.Material
	s.store.View(func(st *store.State) {
		out = append(out, st.Materials...)
	})
	return out
}

// CreateMaterial registers a new raw material
func (s *InventoryService) CreateMaterial(name, unit string, stock, purchasePrice float64) (models.Material, error) {
	if name == "" {
		return models.Material{}, fmt.Errorf("%w: material name is required", ErrInvalidInput)
	}
	if stock < 0 || purchasePrice < 0 {
		return models.Material{}, fmt.Errorf("%w: stock and purchase price must not be negative", ErrInvalidInput)
	}

	material := models.Material{
		ID:            uuid.NewString(),
		Name:          name,
		Unit:          unit,
		Stock:         stock,
		PurchasePrice: purchasePrice,
	}

	err := s.store.Update(func(st *store.State) error {
		st.Materials = append(st.Materials, material)
		return nil
	})
	if err != nil {
		return models.Material{}, err
	}
	return material, nil
}

// UpdateMaterial replaces a material record by id. Stock and purchase price
// may be adjusted manually here; purchases remain the normal way stock
// comes in.
func (s *InventoryService) UpdateMaterial(material models.Material) error {
	return s.store.Update(func(st *store.State) error {
		current := st.Material(material.ID)
		if current == nil {
			return fmt.Errorf("%w: material %s", ErrNotFound, material.ID)
		}
		*current = material
		return nil
	})
}

// DeleteMaterial removes a material. Existing purchases and product recipes
// keep their snapshots and material ids.
func (s *InventoryService) DeleteMaterial(id string) error {
	return s.store.Update(func(st *store.State) error {
		for i := range st.Materials {
			if st.Materials[i].ID == id {
				st.Materials = append(st.Materials[:i], st.Materials[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: material %s", ErrNotFound, id)
	})
}

// PurchaseLine is one requested batch line, keyed by material id by the caller
type PurchaseLine struct {
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// RecordPurchase receives a supplier batch. Lines with a non-positive
// quantity are dropped; if nothing remains the purchase is refused and no
// state changes. Each included material gains stock and has its purchase
// price overwritten with this batch's unit price.
func (s *InventoryService) RecordPurchase(supplier string, lines map[string]PurchaseLine) (models.Purchase, error) {
	if supplier == "" {
		return models.Purchase{}, fmt.Errorf("%w: supplier is required", ErrInvalidInput)
	}

	purchase := models.Purchase{
		ID:        uuid.NewString(),
		Supplier:  supplier,
		CreatedAt: time.Now().UTC(),
	}

	err := s.store.Update(func(st *store.State) error {
		// Walk materials in store order so item order is deterministic
		for i := range st.Materials {
			line, ok := lines[st.Materials[i].ID]
			if !ok || line.Quantity <= 0 {
				continue
			}

			st.Materials[i].Stock += line.Quantity
			st.Materials[i].PurchasePrice = line.Price

			purchase.Items = append(purchase.Items, models.PurchaseItem{
				MaterialID:   st.Materials[i].ID,
				MaterialName: st.Materials[i].Name,
				Quantity:     line.Quantity,
				Price:        line.Price,
			})
			purchase.TotalCost += line.Quantity * line.Price
		}

		for id, line := range lines {
			if line.Quantity > 0 && st.Material(id) == nil {
				return fmt.Errorf("%w: material %s", ErrNotFound, id)
			}
		}
		if len(purchase.Items) == 0 {
			return ErrEmptyPurchase
		}

		st.Purchases = append(st.Purchases, purchase)
		return nil
	})
	if err != nil {
		return models.Purchase{}, err
	}

	zlog.Info().Str("purchase", purchase.ID).Str("supplier", supplier).
		Float64("total", purchase.TotalCost).Msg("purchase recorded")
	return purchase, nil
}

// GetAllPurchases returns the purchase history
func (s *InventoryService) GetAllPurchases() []models.Purchase {
	var out []models.Purchase
	s.store.View(func(st *store.State) {
		out = append(out, st.Purchases...)
	})
	return out
}

// GetAllProducts returns every product
func (s *InventoryService) GetAllProducts() []models.Product {
	var out []models.Product
	s.store.View(func(st *store.State) {
		out = append(out, st.Products...)
	})
	return out
}

// CreateProduct defines a finished good. The recipe must be non-empty and
// reference known materials; the base cost is derived from the current
// material purchase prices and frozen on the record.
func (s *InventoryService) CreateProduct(name, unit string, salePrice float64, recipe []models.RecipeItem) (models.Product, error) {
	if name == "" {
		return models.Product{}, fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if len(recipe) == 0 {
		return models.Product{}, ErrEmptyRecipe
	}

	product := models.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Unit:      unit,
		Stock:     0,
		SalePrice: salePrice,
		Recipe:    append(models.RecipeItems(nil), recipe...),
	}

	err := s.store.Update(func(st *store.State) error {
		var baseCost float64
		for _, item := range recipe {
			if item.Quantity <= 0 {
				return fmt.Errorf("%w: recipe line for material %s", ErrInvalidQuantity, item.MaterialID)
			}
			material := st.Material(item.MaterialID)
			if material == nil {
				return fmt.Errorf("%w: material %s", ErrNotFound, item.MaterialID)
			}
			baseCost += item.Quantity * material.PurchasePrice
		}
		product.BaseCost = baseCost
		st.Products = append(st.Products, product)
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

// UpdateProduct updates the editable product fields by id. The recipe and
// the frozen base cost are kept; redefining a product means creating a new
// one.
func (s *InventoryService) UpdateProduct(product models.Product) error {
	return s.store.Update(func(st *store.State) error {
		current := st.Product(product.ID)
		if current == nil {
			return fmt.Errorf("%w: product %s", ErrNotFound, product.ID)
		}
		current.Name = product.Name
		current.Unit = product.Unit
		current.Stock = product.Stock
		current.SalePrice = product.SalePrice
		return nil
	})
}

// DeleteProduct removes a product definition. Order lines keep their
// snapshots.
func (s *InventoryService) DeleteProduct(id string) error {
	return s.store.Update(func(st *store.State) error {
		for i := range st.Products {
			if st.Products[i].ID == id {
				st.Products = append(st.Products[:i], st.Products[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("%w: product %s", ErrNotFound, id)
	})
}

// Produce runs a production batch: quantity units of the product are
// assembled from materials following the recipe. If any material falls
// short the whole run is refused and nothing changes.
func (s *InventoryService) Produce(productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}

	return s.store.Update(func(st *store.State) error {
		product := st.Product(productID)
		if product == nil {
			return fmt.Errorf("%w: product %s", ErrNotFound, productID)
		}

		// Verify every line before touching anything
		for _, item := range product.Recipe {
			material := st.Material(item.MaterialID)
			if material == nil {
				return fmt.Errorf("%w: material %s", ErrNotFound, item.MaterialID)
			}
			needed := item.Quantity * float64(quantity)
			if material.Stock < needed {
				return fmt.Errorf("%w: %s needs %.2f %s, have %.2f",
					ErrInsufficientStock, material.Name, needed, material.Unit, material.Stock)
			}
		}

		for _, item := range product.Recipe {
			material := st.Material(item.MaterialID)
			material.Stock -= item.Quantity * float64(quantity)
		}
		product.Stock += float64(quantity)

		st.ProductionLogs = append(st.ProductionLogs, models.ProductionLog{
			ID:          uuid.NewString(),
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    quantity,
			CreatedAt:   time.Now().UTC(),
		})
		return nil
	})
}

// GetProductionLogs returns the production history
func (s *InventoryService) GetProductionLogs() []models.ProductionLog {
	var out []models.ProductionLog
	s.store.View(func(st *store.State) {
		out = append(out, st.ProductionLogs...)
	})
	return out
}
