// Package sink delivers missing rows to their destination.
//
// A run produces one or more [Batch] values that are handed to a [Sink].
// Sinks are write-only and are closed once the run is done:
//
//	s, err := sink.NewFileSink("missing.txt")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	return s.Write(ctx, result.Batch())
//
// [WriterSink] and [FileSink] emit the text or JSON row formats of pkg/io;
// [MongoSink] stores one document per row in a MongoDB collection.
package sink

import (
	"context"

	"github.com/matzehuels/rowminer/pkg/core/row"
)

// Batch is a group of rows produced by one run.
type Batch struct {
	RunID  string
	Config row.Config
	Rows   []*row.Row
}

// Sink receives batches. Implementations are not required to be safe for
// concurrent use.
type Sink interface {
	Write(ctx context.Context, b Batch) error
	Close() error
}
