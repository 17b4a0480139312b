package cp

// Parameters holds the configuration options recognized by the core
// (spec.md §6). cmd/gophercp binds these to viper/cobra flags; library
// callers can also construct them directly.
type Parameters struct {
	// ArraySplitSize is the branching factor of the sum/min/max
	// aggregation trees (default 64).
	ArraySplitSize int `yaml:"array_split_size"`
	// CacheInitialSize is the initial bucket count of the model cache.
	CacheInitialSize int `yaml:"cache_initial_size"`
	// TrailChunkSize is advisory: the Go trail grows by Go-slice
	// doubling rather than fixed chunks, but the option is kept for
	// parity with the documented external surface and is honored as the
	// initial capacity hint passed to NewTrailWithCapacity.
	TrailChunkSize int `yaml:"trail_chunk_size"`
}

// DefaultParameters returns the documented defaults.
func DefaultParameters() Parameters {
	return Parameters{
		ArraySplitSize:   64,
		CacheInitialSize: 128,
		TrailChunkSize:   1024,
	}
}
