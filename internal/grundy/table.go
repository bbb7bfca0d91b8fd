// Package grundy computes Sprague-Grundy values for the splitting game in
// which a move removes one square from a board and leaves the two remaining
// pieces as independent boards.
package grundy

// MaxSize is the largest table length any Builder will produce. Building is
// quadratic in the table length, so this doubles as the resource guard.
const MaxSize = 1 << 17

// Value is the Grundy value (nimber) of a single board.
type Value uint32

// Table holds the Grundy values of boards of size 0..Len()-1.
type Table []Value

// Len returns the number of board sizes in the table
func (t Table) Len() int {
	return len(t)
}

// Value returns the Grundy value of a single board of the given size
func (t Table) Value(size int) (Value, error) {
	if size < 0 || size >= len(t) {
		return 0, ErrSizeOutOfRange
	}
	return t[size], nil
}

// Position returns the Grundy value of a position made of several
// independent boards, which is the nim sum of their individual values.
func (t Table) Position(sizes ...int) (Value, error) {
	var sum Value
	for _, size := range sizes {
		if size < 0 || size >= len(t) {
			return 0, ErrSizeOutOfRange
		}
		sum ^= t[size]
	}
	return sum, nil
}

// ZeroPositions returns every board size whose Grundy value is 0. These are
// the sizes where the player to move loses.
func (t Table) ZeroPositions() []int {
	var zeros []int
	for size, v := range t {
		if v == 0 {
			zeros = append(zeros, size)
		}
	}
	return zeros
}
