package dedupe

// Option configures an in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds the number of remembered ids. Values <= 0 remove the bound.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}
