// Package listing renders Grundy tables for output.
package listing

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/splitgrundy/internal/grundy"
)

// ErrUnknownFormat is returned when an output format name is not recognized
var ErrUnknownFormat = errors.New("unknown output format")

// Format selects how a table is rendered
type Format string

const (
	// FormatText prints one "<size> <value>" line per board size
	FormatText Format = "text"
	// FormatJSON prints a single JSON object
	FormatJSON Format = "json"
)

// ParseFormat converts a format name into a Format
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(name))); f {
	case FormatText, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

// Writer renders tables to an underlying io.Writer
type Writer struct {
	out       io.Writer
	format    Format
	zerosOnly bool
}

// NewWriter creates a listing writer. With zerosOnly set, only board sizes
// whose Grundy value is 0 are listed.
func NewWriter(out io.Writer, format Format, zerosOnly bool) *Writer {
	return &Writer{
		out:       out,
		format:    format,
		zerosOnly: zerosOnly,
	}
}

// Write renders the whole table
func (lw *Writer) Write(t grundy.Table) error {
	switch lw.format {
	case FormatText:
		return lw.writeText(t)
	case FormatJSON:
		return lw.writeJSON(t)
	default:
		return fmt.Errorf("%q: %w", lw.format, ErrUnknownFormat)
	}
}

func (lw *Writer) writeText(t grundy.Table) error {
	bw := bufio.NewWriter(lw.out)
	for size, v := range t {
		if lw.zerosOnly && v != 0 {
			continue
		}
		if _, err := fmt.Fprintf(bw, "%d %d\n", size, v); err != nil {
			return fmt.Errorf("write size %d: %w", size, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flush listing: %w", err)
	}
	return nil
}

func (lw *Writer) writeJSON(t grundy.Table) error {
	fields := map[string]interface{}{
		"sizes": t.Len(),
	}
	if lw.zerosOnly {
		zeros := t.ZeroPositions()
		list := make([]interface{}, len(zeros))
		for i, size := range zeros {
			list[i] = size
		}
		fields["zero_positions"] = list
	} else {
		list := make([]interface{}, len(t))
		for i, v := range t {
			list[i] = uint32(v)
		}
		fields["values"] = list
	}

	s, err := structpb.NewStruct(fields)
	if err != nil {
		return fmt.Errorf("build json listing: %w", err)
	}
	data, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal json listing: %w", err)
	}
	if _, err := lw.out.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write json listing: %w", err)
	}
	return nil
}
