package database

import (
	"path/filepath"
	"testing"
	"time"

	"QuickSales/app/models"
)

func openTestCache(t *testing.T) *LocalCache {
	t.Helper()
	cache, err := OpenLocalCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("failed to open cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSnapshotRoundTrip(t *testing.T) {
	cache := openTestCache(t)

	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	snap := models.Snapshot{
		Customers: []models.Customer{
			{ID: "c1", Name: "Ana", Phone: "555", Type: models.CustomerTypeVIP, CreatedAt: created},
		},
		Materials: []models.Material{
			{ID: "m1", Name: "Flour", Unit: "kg", Stock: 50, PurchasePrice: 20000},
		},
		Products: []models.Product{
			{ID: "p1", Name: "Cake", Unit: "pc", SalePrice: 90000, BaseCost: 40000,
				Recipe: models.RecipeItems{{MaterialID: "m1", Quantity: 2}}},
		},
		Orders: []models.Order{
			{ID: "o1", CustomerID: "c1", CustomerName: "Ana", Status: models.OrderStatusPending,
				Items:       models.OrderItems{{ProductID: "p1", ProductName: "Cake", Quantity: 1, Price: 90000}},
				TotalAmount: 90000, Profit: 50000, CreatedAt: created},
		},
		Purchases: []models.Purchase{
			{ID: "b1", Supplier: "Mill Co", TotalCost: 1000000, CreatedAt: created,
				Items: models.PurchaseItems{{MaterialID: "m1", MaterialName: "Flour", Quantity: 50, Price: 20000}}},
		},
	}

	if err := cache.SaveSnapshot(snap); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := cache.LoadSnapshot()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if len(got.Customers) != 1 || got.Customers[0].Type != models.CustomerTypeVIP {
		t.Errorf("customers not restored: %+v", got.Customers)
	}
	if len(got.Materials) != 1 || got.Materials[0].PurchasePrice != 20000 {
		t.Errorf("materials not restored: %+v", got.Materials)
	}
	if len(got.Products) != 1 || len(got.Products[0].Recipe) != 1 {
		t.Errorf("product recipe not restored: %+v", got.Products)
	}
	if len(got.Orders) != 1 || got.Orders[0].Items[0].Price != 90000 {
		t.Errorf("order items not restored: %+v", got.Orders)
	}
	if len(got.Purchases) != 1 || got.Purchases[0].Items[0].MaterialName != "Flour" {
		t.Errorf("purchase items not restored: %+v", got.Purchases)
	}
}

func TestSaveSnapshotReplacesPreviousContent(t *testing.T) {
	cache := openTestCache(t)

	first := models.Snapshot{
		Materials: []models.Material{{ID: "m1", Name: "Flour"}, {ID: "m2", Name: "Sugar"}},
	}
	if err := cache.SaveSnapshot(first); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second := models.Snapshot{
		Materials: []models.Material{{ID: "m3", Name: "Butter"}},
	}
	if err := cache.SaveSnapshot(second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	got, err := cache.LoadSnapshot()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(got.Materials) != 1 || got.Materials[0].ID != "m3" {
		t.Errorf("stale rows survived the replace: %+v", got.Materials)
	}
}

func TestSyncStateTracksLastOutcome(t *testing.T) {
	cache := openTestCache(t)

	if err := cache.UpdateSyncState("error", "connection refused"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	state, err := cache.GetSyncState()
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if state.Status != "error" || state.LastError != "connection refused" {
		t.Errorf("unexpected state: %+v", state)
	}
	if state.LastSyncAt != nil {
		t.Errorf("failed sync must not advance LastSyncAt")
	}

	if err := cache.UpdateSyncState("synced", ""); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	state, _ = cache.GetSyncState()
	if state.Status != "synced" || state.LastSyncAt == nil {
		t.Errorf("successful sync not recorded: %+v", state)
	}
}
