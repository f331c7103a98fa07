package services

import (
	"errors"
	"testing"

	"QuickSales/app/models"
	"QuickSales/app/store"
)

func seededStore(snap models.Snapshot) *store.Store {
	st := store.New()
	st.Replace(snap, false)
	return st
}

func TestRecordPurchaseAddsStockAndOverwritesPrice(t *testing.T) {
	st := seededStore(models.Snapshot{
		Materials: []models.Material{
			{ID: "m1", Name: "Flour", Unit: "kg", Stock: 0, PurchasePrice: 15000},
		},
	})
	inv := NewInventoryService(st)

	purchase, err := inv.RecordPurchase("Mill Co", map[string]PurchaseLine{
		"m1": {Quantity: 50, Price: 20000},
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}

	if purchase.TotalCost != 1000000 {
		t.Errorf("total cost = %v, want 1000000", purchase.TotalCost)
	}
	if len(purchase.Items) != 1 || purchase.Items[0].MaterialName != "Flour" {
		t.Errorf("unexpected items: %+v", purchase.Items)
	}

	materials := inv.GetAllMaterials()
	if materials[0].Stock != 50 {
		t.Errorf("stock = %v, want 50", materials[0].Stock)
	}
	// Last batch price wins, no averaging
	if materials[0].PurchasePrice != 20000 {
		t.Errorf("purchase price = %v, want 20000", materials[0].PurchasePrice)
	}

	if got := inv.GetAllPurchases(); len(got) != 1 {
		t.Errorf("purchase record not kept: %+v", got)
	}
}

func TestCreateMaterialRejectsNegativeValues(t *testing.T) {
	inv := NewInventoryService(store.New())

	if _, err := inv.CreateMaterial("Flour", "kg", -1, 20000); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative stock: err = %v", err)
	}
	if _, err := inv.CreateMaterial("Flour", "kg", 0, -500); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative price: err = %v", err)
	}

	if len(inv.GetAllMaterials()) != 0 {
		t.Errorf("rejected material was stored")
	}
}

func TestRecordPurchaseDropsNonPositiveLines(t *testing.T) {
	st := seededStore(models.Snapshot{
		Materials: []models.Material{
			{ID: "m1", Name: "Flour", Stock: 10, PurchasePrice: 100},
			{ID: "m2", Name: "Sugar", Stock: 5, PurchasePrice: 200},
		},
	})
	inv := NewInventoryService(st)

	purchase, err := inv.RecordPurchase("Mill Co", map[string]PurchaseLine{
		"m1": {Quantity: 0, Price: 999},
		"m2": {Quantity: 3, Price: 250},
	})
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if len(purchase.Items) != 1 || purchase.Items[0].MaterialID != "m2" {
		t.Errorf("zero quantity line was not dropped: %+v", purchase.Items)
	}

	materials := inv.GetAllMaterials()
	if materials[0].Stock != 10 || materials[0].PurchasePrice != 100 {
		t.Errorf("dropped line still mutated material: %+v", materials[0])
	}
}

func TestRecordPurchaseRefusesWhenNothingRemains(t *testing.T) {
	st := seededStore(models.Snapshot{
		Materials: []models.Material{{ID: "m1", Name: "Flour", Stock: 10, PurchasePrice: 100}},
	})
	inv := NewInventoryService(st)

	_, err := inv.RecordPurchase("Mill Co", map[string]PurchaseLine{
		"m1": {Quantity: -5, Price: 100},
	})
	if !errors.Is(err, ErrEmptyPurchase) {
		t.Fatalf("expected ErrEmptyPurchase, got %v", err)
	}

	if got := inv.GetAllPurchases(); len(got) != 0 {
		t.Errorf("refused purchase left a record: %+v", got)
	}
	if materials := inv.GetAllMaterials(); materials[0].Stock != 10 {
		t.Errorf("refused purchase mutated stock: %v", materials[0].Stock)
	}
}

func TestRecordPurchaseUnknownMaterial(t *testing.T) {
	st := seededStore(models.Snapshot{
		Materials: []models.Material{{ID: "m1", Name: "Flour", Stock: 10}},
	})
	inv := NewInventoryService(st)

	_, err := inv.RecordPurchase("Mill Co", map[string]PurchaseLine{
		"m1":      {Quantity: 5, Price: 100},
		"missing": {Quantity: 2, Price: 50},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if materials := inv.GetAllMaterials(); materials[0].Stock != 10 {
		t.Errorf("failed purchase mutated stock: %v", materials[0].Stock)
	}
}

func TestCreateProductDerivesAndFreezesBaseCost(t *testing.T) {
	st := seededStore(models.Snapshot{
		Materials: []models.Material{
			{ID: "m1", Name: "Flour", Unit: "kg", Stock: 50, PurchasePrice: 20000},
		},
	})
	inv := NewInventoryService(st)

	product, err := inv.CreateProduct("Cake", "pc", 90000, []models.RecipeItem{
		{MaterialID: "m1", Quantity: 2},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.BaseCost != 40000 {
		t.Errorf("base cost = %v, want 40000", product.BaseCost)
	}
	if product.Stock != 0 {
		t.Errorf("new product stock = %v, want 0", product.Stock)
	}

	// A later price change must not rewrite the frozen base cost
	if _, err := inv.RecordPurchase("Mill Co", map[string]PurchaseLine{
		"m1": {Quantity: 10, Price: 30000},
	}); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	products := inv.GetAllProducts()
	if products[0].BaseCost != 40000 {
		t.Errorf("base cost changed after price update: %v", products[0].BaseCost)
	}
}

func TestCreateProductValidation(t *testing.T) {
	st := seededStore(models.Snapshot{
		Materials: []models.Material{{ID: "m1", Name: "Flour", PurchasePrice: 100}},
	})
	inv := NewInventoryService(st)

	if _, err := inv.CreateProduct("Cake", "pc", 1000, nil); !errors.Is(err, ErrEmptyRecipe) {
		t.Errorf("empty recipe: got %v", err)
	}
	_, err := inv.CreateProduct("Cake", "pc", 1000, []models.RecipeItem{
		{MaterialID: "missing", Quantity: 1},
	})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown material: got %v", err)
	}
	if got := inv.GetAllProducts(); len(got) != 0 {
		t.Errorf("refused products were stored: %+v", got)
	}
}

func TestProduceIsAllOrNothing(t *testing.T) {
	st := seededStore(models.Snapshot{
		Materials: []models.Material{
			{ID: "m1", Name: "Flour", Unit: "kg", Stock: 3, PurchasePrice: 20000},
			{ID: "m2", Name: "Sugar", Unit: "kg", Stock: 100, PurchasePrice: 5000},
		},
		Products: []models.Product{
			{ID: "p1", Name: "Cake", Stock: 1, BaseCost: 45000,
				Recipe: models.RecipeItems{
					{MaterialID: "m1", Quantity: 2},
					{MaterialID: "m2", Quantity: 1},
				}},
		},
	})
	inv := NewInventoryService(st)

	// Needs 4 kg flour, only 3 available: the whole run is refused
	err := inv.Produce("p1", 2)
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	materials := inv.GetAllMaterials()
	if materials[0].Stock != 3 || materials[1].Stock != 100 {
		t.Errorf("refused run mutated materials: %+v", materials)
	}
	if products := inv.GetAllProducts(); products[0].Stock != 1 {
		t.Errorf("refused run mutated product stock: %v", products[0].Stock)
	}
	if logs := inv.GetProductionLogs(); len(logs) != 0 {
		t.Errorf("refused run logged production: %+v", logs)
	}

	// One unit fits: 2 kg flour and 1 kg sugar leave, 1 cake arrives
	if err := inv.Produce("p1", 1); err != nil {
		t.Fatalf("produce failed: %v", err)
	}
	materials = inv.GetAllMaterials()
	if materials[0].Stock != 1 || materials[1].Stock != 99 {
		t.Errorf("wrong material deltas: %+v", materials)
	}
	if products := inv.GetAllProducts(); products[0].Stock != 2 {
		t.Errorf("product stock = %v, want 2", products[0].Stock)
	}
	logs := inv.GetProductionLogs()
	if len(logs) != 1 || logs[0].Quantity != 1 || logs[0].ProductName != "Cake" {
		t.Errorf("production not logged: %+v", logs)
	}
}

func TestProduceRejectsBadQuantity(t *testing.T) {
	inv := NewInventoryService(store.New())
	if err := inv.Produce("p1", 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
}
