package storage

import (
	"context"
	"testing"

	"github.com/witify/go-cart/internal/types"
)

func memRecord(updatedAt string) *types.CartRecord {
	item := types.NewLineItem("1", "Item name", 10.00, nil)
	return &types.CartRecord{
		Items:     []map[string]any{item.ToRecord()},
		Lines:     map[string]float64{"total": 10},
		UpdatedAt: updatedAt,
	}
}

func TestMemoryUpsertRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemory()

	rec, err := store.FindByIdentity(ctx, "20")
	if err != nil {
		t.Fatalf("FindByIdentity: %v", err)
	}
	if rec != nil {
		t.Fatal("expected nil for unknown identity")
	}

	if err := store.Insert(ctx, "20", memRecord("2018-01-01 10:00:00")); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := store.UpdateByIdentity(ctx, "20", memRecord("2018-01-01 12:00:00")); err != nil {
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

func TestMemoryUpdateUnknownIdentityFails(t *testing.T) {
	store := NewMemory()
	if err := store.UpdateByIdentity(context.Background(), "99", memRecord("2018-01-01 10:00:00")); err == nil {
		t.Error("expected an error updating a missing row")
	}
}

func TestMemoryInsertRejectsBadTimestamp(t *testing.T) {
	store := NewMemory()
	if err := store.Insert(context.Background(), "20", memRecord("not-a-time")); err == nil {
		t.Error("expected an error for an unparseable updated_at")
	}
}
