package notification

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nerrad567/homegate/internal/infrastructure/database"
	"github.com/nerrad567/homegate/internal/store"
	_ "github.com/nerrad567/homegate/migrations" // Registers the documents schema
)

func setupService(t *testing.T) (*Service, store.Store) {
	t.Helper()

	ctx := context.Background()
	db, err := database.Open(ctx, database.Config{Path: filepath.Join(t.TempDir(), "n.db"), BusyTimeout: 5})
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { db.Close() }) //nolint:errcheck // Test cleanup
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrating: %v", err)
	}
	s := store.NewSQLiteStore(db.DB)
	return NewService(s), s
}

func TestService_PushList(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	level := int64(850)
	pushes := []Notification{
		{Title: "old", Type: TypeGasAlert, Severity: "high", GasLevel: &level, Time: "2026-03-01 10:00:00"},
		{Title: "newest", Type: TypeFaceRecognition, Severity: "info", Time: "2026-03-02 08:00:00"},
		{Title: "tie-a", Type: TypeGasAlert, Severity: "high", Time: "2026-03-01 12:00:00"},
		{Title: "tie-b", Type: TypeGasAlert, Severity: "high", Time: "2026-03-01 12:00:00", Read: true},
	}
	ids := make(map[string]string)
	for _, n := range pushes {
		id, err := svc.Push(ctx, n)
		if err != nil {
			t.Fatalf("Push() error = %v", err)
		}
		ids[n.Title] = id
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"newest", "tie-a", "tie-b", "old"}
	if len(list) != len(want) {
		t.Fatalf("len(List()) = %d, want %d", len(list), len(want))
	}
	for i, title := range want {
		if list[i].Title != title {
			t.Errorf("List()[%d].Title = %q, want %q", i, list[i].Title, title)
		}
		if list[i].ID != ids[title] {
			t.Errorf("List()[%d].ID = %q, want %q", i, list[i].ID, ids[title])
		}
		if list[i].Read {
			t.Errorf("List()[%d].Read = true, want false", i)
		}
	}
	if list[3].GasLevel == nil || *list[3].GasLevel != 850 {
		t.Errorf("gas_level = %v, want 850", list[3].GasLevel)
	}
}

func TestService_ListEmpty(t *testing.T) {
	svc, _ := setupService(t)

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("List() = %v, want empty non-nil slice", list)
	}
}

func TestService_DeleteIdempotent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	id, err := svc.Push(ctx, Notification{Title: "x", Time: "2026-03-01 10:00:00"})
	if err != nil {
		t.Fatalf("Push() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.Delete(ctx, id); err != nil {
			t.Fatalf("Delete() call %d error = %v", i+1, err)
		}
	}
	if err := svc.Delete(ctx, "never-existed"); err != nil {
		t.Errorf("Delete(unknown) error = %v", err)
	}

	list, _ := svc.List(ctx)
	if len(list) != 0 {
		t.Errorf("List() after delete = %v", list)
	}
}
