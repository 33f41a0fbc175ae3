package metrics

import "sync/atomic"

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UsersRegistered uint64
	UsersLoggedIn   uint64
	EntriesCreated  uint64
	EntriesDeleted  uint64
	FeedsRendered   uint64
	AuthCacheHits   uint64
	AuthCacheMisses uint64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	usersRegistered uint64
	usersLoggedIn   uint64
	entriesCreated  uint64
	entriesDeleted  uint64
	feedsRendered   uint64
	authCacheHits   uint64
	authCacheMisses uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UsersRegistered: atomic.LoadUint64(&m.usersRegistered),
		UsersLoggedIn:   atomic.LoadUint64(&m.usersLoggedIn),
		EntriesCreated:  atomic.LoadUint64(&m.entriesCreated),
		EntriesDeleted:  atomic.LoadUint64(&m.entriesDeleted),
		FeedsRendered:   atomic.LoadUint64(&m.feedsRendered),
		AuthCacheHits:   atomic.LoadUint64(&m.authCacheHits),
		AuthCacheMisses: atomic.LoadUint64(&m.authCacheMisses),
	}
}

// IncUserRegistered increments the registration counter.
func (m *InMemoryRecorder) IncUserRegistered() {
	atomic.AddUint64(&m.usersRegistered, 1)
}

// IncUserLoggedIn increments the login counter.
func (m *InMemoryRecorder) IncUserLoggedIn() {
	atomic.AddUint64(&m.usersLoggedIn, 1)
}

// IncEntryCreated increments the entry creation counter.
func (m *InMemoryRecorder) IncEntryCreated() {
	atomic.AddUint64(&m.entriesCreated, 1)
}

// IncEntryDeleted increments the entry deletion counter.
func (m *InMemoryRecorder) IncEntryDeleted() {
	atomic.AddUint64(&m.entriesDeleted, 1)
}

// IncFeedRendered increments the feed render counter.
func (m *InMemoryRecorder) IncFeedRendered() {
	atomic.AddUint64(&m.feedsRendered, 1)
}

// IncAuthCacheHit increments the auth cache hit counter.
func (m *InMemoryRecorder) IncAuthCacheHit() {
	atomic.AddUint64(&m.authCacheHits, 1)
}

// IncAuthCacheMiss increments the auth cache miss counter.
func (m *InMemoryRecorder) IncAuthCacheMiss() {
	atomic.AddUint64(&m.authCacheMisses, 1)
}
