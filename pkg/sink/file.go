package sink

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rowminer/pkg/core/row"
	"github.com/matzehuels/rowminer/pkg/errors"
	rowio "github.com/matzehuels/rowminer/pkg/io"
)

// Format selects the encoding of a WriterSink.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat converts a name into a Format. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want text or json)", s)
}

// WriterSink writes rows to an io.Writer. Text rows are written as each
// batch arrives; JSON needs a single array, so rows are held until Close.
type WriterSink struct {
	w       io.Writer
	closer  io.Closer
	format  Format
	pending []*row.Row
	closed  bool
}

// NewWriterSink returns a sink writing to w. Close does not close w.
func NewWriterSink(w io.Writer, format Format) *WriterSink {
	return &WriterSink{w: w, format: format}
}

// NewFileSink creates (or truncates) the file at path. The format follows the
// file extension.
func NewFileSink(path string) (*WriterSink, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return nil, err
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	format := FormatText
	if rowio.IsJSON(path) {
		format = FormatJSON
	}
	return &WriterSink{w: f, closer: f, format: format}, nil
}

// Write implements Sink.
func (s *WriterSink) Write(ctx context.Context, b Batch) error {
	if s.closed {
		return errors.New(errors.ErrCodeInvalidInput, "write to closed sink")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.format == FormatJSON {
		s.pending = append(s.pending, b.Rows...)
		return nil
	}
	return rowio.WriteRows(s.w, b.Rows)
}

// Close flushes pending JSON rows and closes the file, if the sink owns one.
// Closing twice is a no-op.
func (s *WriterSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.format == FormatJSON {
		err = rowio.WriteJSON(s.w, s.pending)
		s.pending = nil
	}
	if s.closer != nil {
		if cerr := s.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

var _ Sink = (*WriterSink)(nil)
