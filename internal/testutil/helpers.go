package testutil

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

// GoldenValues are the Grundy values of board sizes 0..39
var GoldenValues = []uint32{
	0, 0, 1, 2, 0, 1, 2, 3, 1, 2,
	3, 4, 0, 3, 4, 2, 1, 3, 2, 1,
	0, 2, 1, 4, 5, 1, 4, 5, 1, 2,
	0, 1, 2, 3, 1, 2, 3, 4, 2, 3,
}

// GoldenZeroPositions are the board sizes below 500 with Grundy value 0
var GoldenZeroPositions = []int{0, 1, 4, 12, 20, 30, 46, 72, 98, 124, 150, 176, 314, 408}

// NewTestRNG creates a deterministic random number generator for tests
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger returns a no-op logger for tests
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// BufferLogger returns a debug level JSON logger writing into a buffer, so
// tests can assert on emitted log lines.
func BufferLogger(t *testing.T) (zerolog.Logger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	return zerolog.New(buf).Level(zerolog.DebugLevel), buf
}
