package model

import "time"

// APIEntry is a named URL owned by exactly one user. Entries are created and
// deleted by their owner and never mutated in place.
type APIEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
