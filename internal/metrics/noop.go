package metrics

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserRegistered is a no-op.
func (n *NoopRecorder) IncUserRegistered() {}

// IncUserLoggedIn is a no-op.
func (n *NoopRecorder) IncUserLoggedIn() {}

// IncEntryCreated is a no-op.
func (n *NoopRecorder) IncEntryCreated() {}

// IncEntryDeleted is a no-op.
func (n *NoopRecorder) IncEntryDeleted() {}

// IncFeedRendered is a no-op.
func (n *NoopRecorder) IncFeedRendered() {}

// IncAuthCacheHit is a no-op.
func (n *NoopRecorder) IncAuthCacheHit() {}

// IncAuthCacheMiss is a no-op.
func (n *NoopRecorder) IncAuthCacheMiss() {}
