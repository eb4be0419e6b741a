package contexts

// ProgramCache stores compiled expression programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// WithProgramCache registers a program cache on a View.
func WithProgramCache(cache ProgramCache) ViewOption {
	return func(cfg *viewConfig) {
		cfg.programCache = cache
	}
}
