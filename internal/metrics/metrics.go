// Package metrics provides lightweight hooks for instrumentation.
package metrics

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Account metrics
	IncUserRegistered()
	IncUserLoggedIn()

	// Entry management metrics
	IncEntryCreated()
	IncEntryDeleted()

	// Feed metrics
	IncFeedRendered()

	// Auth cache metrics
	IncAuthCacheHit()
	IncAuthCacheMiss()
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
