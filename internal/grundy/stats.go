package grundy

import "time"

// Stats summarizes a Grundy table
type Stats struct {
	Sizes      int
	MaxValue   Value
	MaxValueAt int
	ZeroCount  int
	Elapsed    time.Duration // zero unless produced by a Builder
}

// Stats computes summary statistics for the table. MaxValueAt is the
// smallest size holding the maximum value.
func (t Table) Stats() Stats {
	s := Stats{Sizes: len(t)}
	for size, v := range t {
		if v == 0 {
			s.ZeroCount++
		}
		if v > s.MaxValue {
			s.MaxValue = v
			s.MaxValueAt = size
		}
	}
	return s
}
