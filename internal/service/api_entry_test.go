package service

import (
	"context"
	"errors"
	"testing"

	"github.com/apihub/apihub/internal/testutil"
)

func TestEntryService_AddAndList(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewEntryService(store, nil)

	first, err := svc.Add(context.Background(), 1, "weather", "https://api.example.com/weather")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Add(context.Background(), 1, "news", "https://api.example.com/news")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].ID != second.ID || entries[1].ID != first.ID {
		t.Errorf("expected newest-first order, got %d then %d", entries[0].ID, entries[1].ID)
	}
}

func TestEntryService_Add_Validation(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewEntryService(store, nil)

	if _, err := svc.Add(context.Background(), 1, "", "https://x.example.com"); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
	if _, err := svc.Add(context.Background(), 1, "x", ""); !errors.Is(err, ErrEmptyURL) {
		t.Errorf("expected ErrEmptyURL, got %v", err)
	}
	if store.EntryCount() != 0 {
		t.Errorf("expected no entries stored, got %d", store.EntryCount())
	}
}

func TestEntryService_ListIsOwnerScoped(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewEntryService(store, nil)

	if _, err := svc.Add(context.Background(), 1, "mine", "https://a.example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := svc.List(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected user 2 to see no entries, got %d", len(entries))
	}
}

func TestEntryService_Remove_CrossUserIsNoop(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewEntryService(store, nil)

	entry, err := svc.Add(context.Background(), 1, "mine", "https://a.example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// User 2 deleting user 1's entry succeeds without effect.
	if err := svc.Remove(context.Background(), 2, entry.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected the entry to survive a foreign delete, got %d entries", len(entries))
	}

	// The owner's delete removes it.
	if err := svc.Remove(context.Background(), 1, entry.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err = svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries after owner delete, got %d", len(entries))
	}
}

func TestEntryService_Feed(t *testing.T) {
	store := testutil.NewMemStore()
	svc := NewEntryService(store, nil)

	if _, err := svc.Add(context.Background(), 1, "weather", "https://api.example.com/weather"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.Add(context.Background(), 2, "other", "https://api.example.com/other"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	entries, err := svc.Feed(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 feed entry, got %d", len(entries))
	}
	if entries[0].Name != "weather" {
		t.Errorf("unexpected entry: %+v", entries[0])
	}
}
