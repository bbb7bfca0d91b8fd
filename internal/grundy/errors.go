package grundy

import "errors"

var (
	ErrNegativeSize   = errors.New("board size must be non-negative")
	ErrSizeTooLarge   = errors.New("board size too large")
	ErrSizeOutOfRange = errors.New("board size outside computed table")
)
