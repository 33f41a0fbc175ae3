package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/apihub/apihub/internal/metrics"
	"github.com/apihub/apihub/internal/model"
)

// Entry service errors.
var (
	ErrEmptyName = errors.New("entry name must not be empty")
	ErrEmptyURL  = errors.New("entry url must not be empty")
)

// EntryStore is the persistence contract the entry service depends on.
type EntryStore interface {
	CreateEntry(ctx context.Context, entry *model.APIEntry) error
	ListEntriesByUser(ctx context.Context, userID int64) ([]*model.APIEntry, error)
	ListFeedEntries(ctx context.Context, userID int64) ([]*model.APIEntry, error)
	DeleteEntry(ctx context.Context, id, userID int64) error
}

// EntryService handles per-user API entry management and the public feed.
type EntryService struct {
	store   EntryStore
	metrics metrics.Recorder
}

// NewEntryService creates a new EntryService.
func NewEntryService(store EntryStore, recorder metrics.Recorder) *EntryService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &EntryService{
		store:   store,
		metrics: recorder,
	}
}

// List returns the caller's entries, newest first. Entries of other users
// are unreachable here: the owner filter is applied in the query itself.
func (s *EntryService) List(ctx context.Context, userID int64) ([]*model.APIEntry, error) {
	entries, err := s.store.ListEntriesByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// Add creates a new entry owned by the given user.
func (s *EntryService) Add(ctx context.Context, userID int64, name, url string) (*model.APIEntry, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if url == "" {
		return nil, ErrEmptyURL
	}

	entry := &model.APIEntry{
		UserID: userID,
		Name:   name,
		URL:    url,
	}

	if err := s.store.CreateEntry(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to add entry: %w", err)
	}

	s.metrics.IncEntryCreated()
	return entry, nil
}

// Remove deletes an entry scoped to the given owner. Removing an entry that
// does not exist, or that belongs to someone else, succeeds without effect.
func (s *EntryService) Remove(ctx context.Context, userID, entryID int64) error {
	if err := s.store.DeleteEntry(ctx, entryID, userID); err != nil {
		return fmt.Errorf("failed to remove entry: %w", err)
	}

	s.metrics.IncEntryDeleted()
	return nil
}

// Feed returns the entries of an arbitrary user for the public aggregation
// document. This is the one deliberately unauthenticated read surface: the
// user id arrives as a plain query parameter and no ownership check applies.
func (s *EntryService) Feed(ctx context.Context, userID int64) ([]*model.APIEntry, error) {
	entries, err := s.store.ListFeedEntries(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed: %w", err)
	}

	s.metrics.IncFeedRendered()
	return entries, nil
}
