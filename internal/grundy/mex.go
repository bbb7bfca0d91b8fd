package grundy

import (
	"github.com/bits-and-blooms/bitset"
)

// Mex returns the minimum excludant of values: the smallest non-negative
// integer that does not appear in it.
func Mex(values []Value) Value {
	// The mex of k values is at most k, so larger values can be ignored.
	limit := uint(len(values))
	seen := bitset.New(limit + 1)
	for _, v := range values {
		if uint(v) <= limit {
			seen.Set(uint(v))
		}
	}
	return firstClear(seen)
}

// Candidates returns the sorted, de-duplicated candidate set of board size i:
// the nim sums of the two pieces left by each split. prefix must already hold
// the values of every size below i. Sizes 0 and 1 have no splits.
func Candidates(prefix Table, i int) ([]Value, error) {
	if i < 0 {
		return nil, ErrNegativeSize
	}
	if i > len(prefix) {
		return nil, ErrSizeOutOfRange
	}
	if i < 2 {
		return nil, nil
	}

	set := bitset.New(0)
	for j := 0; j < splitCount(i); j++ {
		set.Set(uint(prefix[j] ^ prefix[i-1-j]))
	}

	values := make([]Value, 0, set.Count())
	for v, ok := set.NextSet(0); ok; v, ok = set.NextSet(v + 1) {
		values = append(values, Value(v))
	}
	return values, nil
}

// splitCount is the number of distinct splits of a board of size i. Splitting
// at j and at i-1-j leaves the same two pieces, so only the first half counts.
func splitCount(i int) int {
	return (i + 1) / 2
}

// valueAt computes the Grundy value of size i from the values of all smaller
// sizes. The candidate set lives only for this call.
func valueAt(prefix []Value, i int) Value {
	splits := splitCount(i)
	limit := uint(splits)
	seen := bitset.New(limit + 1)
	for j := 0; j < splits; j++ {
		if v := uint(prefix[j] ^ prefix[i-1-j]); v <= limit {
			seen.Set(v)
		}
	}
	return firstClear(seen)
}

func firstClear(seen *bitset.BitSet) Value {
	mex, ok := seen.NextClear(0)
	if !ok {
		mex = seen.Len()
	}
	return Value(mex)
}
