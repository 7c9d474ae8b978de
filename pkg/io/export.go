package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rowminer/pkg/core/row"
	"github.com/matzehuels/rowminer/pkg/errors"
)

// WriteRows encodes rows in the text format, one per line.
// WriteRows does not close w.
func WriteRows(w io.Writer, rows []*row.Row) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		if _, err := bw.WriteString(r.String()); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Tuples converts rows into their raw number tuples.
func Tuples(rows []*row.Row) [][]int {
	out := make([][]int, len(rows))
	for i, r := range rows {
		out[i] = r.Numbers()
	}
	return out
}

// MarshalRows encodes rows in the JSON format.
func MarshalRows(rows []*row.Row) ([]byte, error) {
	return json.Marshal(Tuples(rows))
}

// UnmarshalRows decodes rows in the JSON format.
func UnmarshalRows(data []byte, cfg row.Config) ([]*row.Row, error) {
	var tuples [][]int
	if err := json.Unmarshal(data, &tuples); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	return FromTuples(tuples, cfg)
}

// WriteJSON encodes rows in the JSON format. WriteJSON does not close w.
func WriteJSON(w io.Writer, rows []*row.Row) error {
	return json.NewEncoder(w).Encode(Tuples(rows))
}

// WriteFile writes rows to the file at path, choosing the format by extension.
// The file is created or truncated.
func WriteFile(path string, rows []*row.Row) error {
	if err := errors.ValidateFilePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if IsJSON(path) {
		err = WriteJSON(f, rows)
	} else {
		err = WriteRows(f, rows)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
