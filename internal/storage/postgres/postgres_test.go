package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/witify/go-cart/internal/types"
)

// setupTestStore connects to the database named by CART_TEST_PG_DSN, skipping
// the test when no database is available.
func setupTestStore(t *testing.T) *PostgresStore {
	t.Helper()

	dsn := os.Getenv("CART_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("CART_TEST_PG_DSN not set; skipping postgres tests")
	}

	ctx := context.Background()
	store, err := New(ctx, dsn)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}

	if _, err := store.pool.Exec(ctx, "DELETE FROM carts"); err != nil {
		t.Fatalf("failed to reset carts table: %v", err)
	}

	t.Cleanup(func() { store.Close() })
	return store
}

func pgRecord(updatedAt string) *types.CartRecord {
	item := types.NewLineItem("1", "Item name", 10.00, types.Options{"size": "XL"})
	return &types.CartRecord{
		Items:     []map[string]any{item.ToRecord()},
		Lines:     map[string]float64{"taxes": 1.5, "total": 11.5},
		UpdatedAt: updatedAt,
	}
}

func TestUpsertRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	rec, err := store.FindByIdentity(ctx, "20")
	if err != nil {
		t.Fatalf("FindByIdentity: %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil for unknown identity")
	}

	if err := store.Insert(ctx, "20", pgRecord("2018-01-01 10:00:00")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.UpdateByIdentity(ctx, "20", pgRecord("2018-01-01 12:00:00")); err != nil {
		t.Fatalf("UpdateByIdentity: %v", err)
	}

	rec, err = store.FindByIdentity(ctx, "20")
	if err != nil {
		t.Fatalf("FindByIdentity: %v", err)
	}
	if rec.UpdatedAt != "2018-01-01 12:00:00" {
		t.Errorf("update did not apply, updated_at=%q", rec.UpdatedAt)
	}

	count, err := store.CountRows(ctx)
	if err != nil {
		t.Fatalf("CountRows: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 row, got %d", count)
	}
}

func TestUpdateMissingRowFails(t *testing.T) {
	store := setupTestStore(t)

	if err := store.UpdateByIdentity(context.Background(), "99", pgRecord("2018-01-01 10:00:00")); err == nil {
		t.Error("expected an error updating a missing row")
	}
}
