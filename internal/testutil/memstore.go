package testutil

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/apihub/apihub/internal/model"
	"github.com/apihub/apihub/internal/repository"
)

// ErrForced is returned by MemStore methods when FailWith is set, simulating
// an unexpected store failure.
var ErrForced = errors.New("forced store failure")

// MemStore is an in-memory stand-in for the repository, implementing the
// service store interfaces and the auth middleware's TokenStore. It enforces
// the same contracts as the real schema: unique usernames, store-assigned
// ids and timestamps, owner-scoped deletes.
type MemStore struct {
	mu       sync.Mutex
	users    []*model.User
	entries  []*model.APIEntry
	nextUser int64
	nextAPI  int64

	// FailWith, when non-nil, makes every method fail with that error.
	FailWith error
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{nextUser: 1, nextAPI: 1}
}

// CreateUser assigns an id and stores the user, rejecting duplicate usernames.
func (s *MemStore) CreateUser(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}

	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrUsernameExists
		}
	}

	user.ID = s.nextUser
	s.nextUser++
	user.CreatedAt = time.Now()

	stored := *user
	s.users = append(s.users, &stored)
	return nil
}

// GetUserByID looks a user up by id.
func (s *MemStore) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	for _, u := range s.users {
		if u.ID == id {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// GetUserByToken looks a user up by bearer token.
func (s *MemStore) GetUserByToken(_ context.Context, token string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	for _, u := range s.users {
		if u.Token == token {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// GetUserByCredentials looks a user up by exact username and password match.
func (s *MemStore) GetUserByCredentials(_ context.Context, username, password string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	for _, u := range s.users {
		if u.Username == username && u.Password == password {
			found := *u
			return &found, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

// CreateEntry assigns an id and stores the entry.
func (s *MemStore) CreateEntry(_ context.Context, entry *model.APIEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}

	entry.ID = s.nextAPI
	s.nextAPI++
	entry.CreatedAt = time.Now()

	stored := *entry
	s.entries = append(s.entries, &stored)
	return nil
}

// ListEntriesByUser returns the user's entries newest first.
func (s *MemStore) ListEntriesByUser(_ context.Context, userID int64) ([]*model.APIEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	var out []*model.APIEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			found := *e
			out = append(out, &found)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

// ListFeedEntries returns the user's entries in insertion order.
func (s *MemStore) ListFeedEntries(_ context.Context, userID int64) ([]*model.APIEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return nil, s.FailWith
	}

	var out []*model.APIEntry
	for _, e := range s.entries {
		if e.UserID == userID {
			found := *e
			out = append(out, &found)
		}
	}
	return out, nil
}

// DeleteEntry removes an entry only when both id and owner match.
func (s *MemStore) DeleteEntry(_ context.Context, id, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailWith != nil {
		return s.FailWith
	}

	for i, e := range s.entries {
		if e.ID == id && e.UserID == userID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	// Missing or foreign entries are a silent no-op, like the SQL delete.
	return nil
}

// UserCount reports how many users exist.
func (s *MemStore) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// EntryCount reports how many entries exist across all users.
func (s *MemStore) EntryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
