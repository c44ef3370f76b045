package factory

// Metrics is a snapshot of the factory's operation counters, exposed
// primarily to validate strategy behavior under test.
type Metrics struct {
	// CacheHits counts constructions served from the result cache.
	CacheHits int64
	// RegistryHits and DefaultHits count successful builds per source.
	RegistryHits int64
	DefaultHits  int64
	// Fallbacks counts requests the preferred source missed but the other
	// source satisfied.
	Fallbacks int64
	// Errors counts failed constructions, including rejected overrides.
	Errors int64
}
