package grundy

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// progressInterval controls how often long builds report progress.
const progressInterval = 10000

// Builder grows a Grundy table one board size at a time. Entries are only
// ever appended; once computed a value never changes. A Builder is not safe
// for concurrent use.
type Builder struct {
	values  []Value
	limit   int
	logger  zerolog.Logger
	elapsed time.Duration
}

// Option configures a Builder
type Option func(*Builder)

// WithLogger sets the logger used for build progress
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger.With().Str("component", "grundy_builder").Logger()
	}
}

// WithLimit lowers the largest table length the builder accepts. Values
// above MaxSize are clamped to it.
func WithLimit(limit int) Option {
	return func(b *Builder) {
		if limit < MaxSize {
			b.limit = limit
		}
	}
}

// NewBuilder creates a builder seeded with the base cases for sizes 0 and 1
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		values: []Value{0, 0},
		limit:  MaxSize,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns the Grundy values of sizes 0..n-1
func Build(n int, opts ...Option) (Table, error) {
	b := NewBuilder(opts...)
	if err := b.Extend(n); err != nil {
		return nil, err
	}
	return b.Prefix(n)
}

// Len returns the number of sizes computed so far
func (b *Builder) Len() int {
	return len(b.values)
}

// Extend computes values until the table covers sizes 0..n-1. Sizes are
// computed in increasing order since each depends on every smaller one.
func (b *Builder) Extend(n int) error {
	if n < 0 {
		return fmt.Errorf("extend to %d: %w", n, ErrNegativeSize)
	}
	if n > b.limit {
		return fmt.Errorf("extend to %d exceeds limit %d: %w", n, b.limit, ErrSizeTooLarge)
	}
	from := len(b.values)
	if n <= from {
		return nil
	}

	start := time.Now()
	b.values = append(make([]Value, 0, n), b.values...)
	for i := from; i < n; i++ {
		b.values = append(b.values, valueAt(b.values, i))
		if (i+1)%progressInterval == 0 {
			b.logger.Debug().
				Int("size", i+1).
				Int("target", n).
				Dur("elapsed", time.Since(start)).
				Msg("Grundy table progress")
		}
	}
	took := time.Since(start)
	b.elapsed += took

	b.logger.Debug().
		Int("from", from).
		Int("to", n).
		Dur("duration", took).
		Msg("Extended grundy table")
	return nil
}

// Prefix returns a copy of the values for sizes 0..n-1
func (b *Builder) Prefix(n int) (Table, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	if n > len(b.values) {
		return nil, fmt.Errorf("prefix %d of %d computed sizes: %w", n, len(b.values), ErrSizeOutOfRange)
	}
	t := make(Table, n)
	copy(t, b.values)
	return t, nil
}

// Table returns a copy of every value computed so far
func (b *Builder) Table() Table {
	t := make(Table, len(b.values))
	copy(t, b.values)
	return t
}

// Stats summarizes the values computed so far
func (b *Builder) Stats() Stats {
	s := Table(b.values).Stats()
	s.Elapsed = b.elapsed
	return s
}
