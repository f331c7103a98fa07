package store

import (
	"errors"
	"testing"

	"QuickSales/app/models"
)

func TestUpdatePublishesOnSuccess(t *testing.T) {
	s := New()

	err := s.Update(func(st *State) error {
		st.Materials = append(st.Materials, models.Material{ID: "m1", Name: "Flour", Stock: 10})
		return nil
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}

	s.View(func(st *State) {
		if len(st.Materials) != 1 || st.Materials[0].Name != "Flour" {
			t.Errorf("material not published: %+v", st.Materials)
		}
	})
}

func TestUpdateDiscardsOnError(t *testing.T) {
	s := New()
	s.Replace(models.Snapshot{
		Materials: []models.Material{{ID: "m1", Name: "Flour", Stock: 10}},
	}, false)

	wantErr := errors.New("refused")
	err := s.Update(func(st *State) error {
		// Mutate first, then fail. The mutation must not leak out.
		st.Materials[0].Stock = 999
		st.Orders = append(st.Orders, models.Order{ID: "o1"})
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected refusal, got %v", err)
	}

	s.View(func(st *State) {
		if st.Materials[0].Stock != 10 {
			t.Errorf("failed update leaked stock change: %v", st.Materials[0].Stock)
		}
		if len(st.Orders) != 0 {
			t.Errorf("failed update leaked order: %+v", st.Orders)
		}
	})
}

func TestChangeHookFiresOnlyOnSuccess(t *testing.T) {
	s := New()
	fired := 0
	s.OnChange(func() { fired++ })

	s.Update(func(st *State) error {
		st.Customers = append(st.Customers, models.Customer{ID: "c1", Name: "Ana"})
		return nil
	})
	s.Update(func(st *State) error {
		return errors.New("no")
	})

	if fired != 1 {
		t.Errorf("change hook fired %d times, want 1", fired)
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	s := New()
	s.Replace(models.Snapshot{
		Products: []models.Product{{
			ID:     "p1",
			Name:   "Cake",
			Recipe: models.RecipeItems{{MaterialID: "m1", Quantity: 2}},
		}},
	}, false)

	snap := s.Snapshot()
	snap.Products[0].Name = "changed"
	snap.Products[0].Recipe[0].Quantity = 99

	s.View(func(st *State) {
		if st.Products[0].Name != "Cake" {
			t.Errorf("snapshot mutation leaked into store: %s", st.Products[0].Name)
		}
		if st.Products[0].Recipe[0].Quantity != 2 {
			t.Errorf("snapshot recipe mutation leaked into store: %v", st.Products[0].Recipe[0].Quantity)
		}
	})
}

func TestReplaceNotifyFlag(t *testing.T) {
	s := New()
	fired := 0
	s.OnChange(func() { fired++ })

	s.Replace(models.Snapshot{}, false)
	if fired != 0 {
		t.Fatalf("silent replace fired the hook")
	}

	s.Replace(models.Snapshot{}, true)
	if fired != 1 {
		t.Errorf("notifying replace did not fire the hook")
	}
}
