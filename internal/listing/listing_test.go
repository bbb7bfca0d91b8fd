package listing

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/splitgrundy/internal/grundy"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Format
		wantErr  bool
	}{
		{"text", "text", FormatText, false},
		{"json", "json", FormatJSON, false},
		{"upper case", "JSON", FormatJSON, false},
		{"padded", "  text ", FormatText, false},
		{"unknown", "yaml", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, f)
		})
	}
}

func TestWriteText(t *testing.T) {
	table, err := grundy.Build(6)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatText, false).Write(table))

	assert.Equal(t, "0 0\n1 0\n2 1\n3 2\n4 0\n5 1\n", buf.String())
}

func TestWriteTextZerosOnly(t *testing.T) {
	table, err := grundy.Build(25)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatText, true).Write(table))

	assert.Equal(t, "0 0\n1 0\n4 0\n12 0\n20 0\n", buf.String())
}

func TestWriteTextEmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatText, false).Write(grundy.Table{}))
	assert.Empty(t, buf.String())
}

func TestWriteJSON(t *testing.T) {
	table, err := grundy.Build(6)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatJSON, false).Write(table))

	var s structpb.Struct
	require.NoError(t, protojson.Unmarshal(buf.Bytes(), &s))
	got := s.AsMap()

	assert.Equal(t, float64(6), got["sizes"])
	assert.Equal(t, []interface{}{0.0, 0.0, 1.0, 2.0, 0.0, 1.0}, got["values"])
	assert.NotContains(t, got, "zero_positions")
}

func TestWriteJSONZerosOnly(t *testing.T) {
	table, err := grundy.Build(25)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewWriter(&buf, FormatJSON, true).Write(table))

	var s structpb.Struct
	require.NoError(t, protojson.Unmarshal(buf.Bytes(), &s))
	got := s.AsMap()

	assert.Equal(t, float64(25), got["sizes"])
	assert.Equal(t, []interface{}{0.0, 1.0, 4.0, 12.0, 20.0}, got["zero_positions"])
	assert.NotContains(t, got, "values")
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := NewWriter(&buf, Format("csv"), false).Write(grundy.Table{0})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

type failingWriter struct{}

var errBroken = errors.New("broken pipe")

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errBroken
}

func TestWritePropagatesErrors(t *testing.T) {
	table, err := grundy.Build(10)
	require.NoError(t, err)

	for _, f := range []Format{FormatText, FormatJSON} {
		err := NewWriter(failingWriter{}, f, false).Write(table)
		assert.ErrorIs(t, err, errBroken, "format %s", f)
	}
}
