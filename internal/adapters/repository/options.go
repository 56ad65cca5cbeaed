package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithMaxMatches bounds the number of active matches. Values <= 0 remove the bound.
func WithMaxMatches(n int) Option {
	return func(s *MemoryStore) {
		s.maxMatches = n
	}
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *MemoryStore) {
		if gen != nil {
			s.newID = gen
		}
	}
}
