package services

import (
	"context"
	"testing"
	"time"

	"QuickSales/app/models"
	"QuickSales/app/store"
)

func TestBuildInsightPayload(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var orders []models.Order
	for i := 0; i < 12; i++ {
		orders = append(orders, models.Order{
			ID:        string(rune('a' + i)),
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		})
	}
	st := store.State{
		Orders: orders,
		Products: []models.Product{
			{ID: "p1", Name: "Cake", Stock: 2},
			{ID: "p2", Name: "Pie", Stock: 5},
			{ID: "p3", Name: "Tart", Stock: 4.5},
		},
	}

	payload := buildInsightPayload(&st)

	if len(payload.RecentOrders) != 10 {
		t.Fatalf("recent orders = %d, want 10", len(payload.RecentOrders))
	}
	// Newest first, oldest two dropped
	if payload.RecentOrders[0].ID != "l" || payload.RecentOrders[9].ID != "c" {
		t.Errorf("wrong order window: %s .. %s", payload.RecentOrders[0].ID, payload.RecentOrders[9].ID)
	}

	if len(payload.LowStockProducts) != 2 {
		t.Fatalf("low stock products = %d, want 2", len(payload.LowStockProducts))
	}
	for _, p := range payload.LowStockProducts {
		if p.Stock >= lowStockThreshold {
			t.Errorf("product %s with stock %v is not low", p.Name, p.Stock)
		}
	}
}

func TestParseInsight(t *testing.T) {
	insight, err := parseInsight(`{"summary": "steady week", "suggestions": ["restock flour"]}`)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if insight.Summary != "steady week" || len(insight.Suggestions) != 1 {
		t.Errorf("unexpected insight: %+v", insight)
	}

	if _, err := parseInsight(`not json`); err == nil {
		t.Errorf("malformed response accepted")
	}
	if _, err := parseInsight(`{"suggestions": []}`); err == nil {
		t.Errorf("summary-less response accepted")
	}
}

func TestDisabledCollaboratorYieldsNothing(t *testing.T) {
	svc := NewInsightService(store.New(), "", "")
	if insight := svc.GetSalesInsight(context.Background()); insight != nil {
		t.Errorf("disabled collaborator produced an insight: %+v", insight)
	}
}
