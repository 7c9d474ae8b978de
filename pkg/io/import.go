package io

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/rowminer/pkg/core/row"
	"github.com/matzehuels/rowminer/pkg/errors"
)

const (
	scannerInitialBuffer = 64 * 1024
	scannerMaxBuffer     = 1024 * 1024
)

// ReadRows decodes rows in the text format from r. ReadRows does not close r.
func ReadRows(r io.Reader, cfg row.Config) ([]*row.Row, error) {
	var rows []*row.Row
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, scannerInitialBuffer), scannerMaxBuffer)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parsed, err := ParseRow(text, cfg)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, parsed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return rows, nil
}

// ParseRow parses a single comma-separated row such as "4, 1, 2".
// The row must be full.
func ParseRow(s string, cfg row.Config) (*row.Row, error) {
	parts := strings.Split(s, ",")
	if len(parts) != cfg.RowLength() {
		return nil, errors.New(errors.ErrCodeRowLengthMismatch,
			"%q has %d numbers, must be exactly %d", s, len(parts), cfg.RowLength())
	}
	r := row.New(cfg)
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "invalid number %q", p)
		}
		if err := r.Append(n); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ReadJSON decodes rows in the JSON format from r. ReadJSON does not close r.
func ReadJSON(r io.Reader, cfg row.Config) ([]*row.Row, error) {
	var data [][]int
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	return FromTuples(data, cfg)
}

// FromTuples builds rows from raw number tuples.
func FromTuples(tuples [][]int, cfg row.Config) ([]*row.Row, error) {
	rows := make([]*row.Row, 0, len(tuples))
	for i, tuple := range tuples {
		if len(tuple) != cfg.RowLength() {
			return nil, fmt.Errorf("row %d: %w", i, errors.New(errors.ErrCodeRowLengthMismatch,
				"%d numbers, must be exactly %d", len(tuple), cfg.RowLength()))
		}
		r, err := row.FromNumbers(cfg, tuple...)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// ReadFile reads rows from the file at path, choosing the format by extension.
func ReadFile(path string, cfg row.Config) ([]*row.Row, error) {
	if err := errors.ValidateFilePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var rows []*row.Row
	if IsJSON(path) {
		rows, err = ReadJSON(f, cfg)
	} else {
		rows, err = ReadRows(f, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// IsJSON reports whether path selects the JSON format.
func IsJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
