package row

import (
	"fmt"

	"github.com/matzehuels/rowminer/pkg/core/comb"
	"github.com/matzehuels/rowminer/pkg/errors"
)

// Config is the validated pair (maxNumber N, rowLength K) that every row,
// trie and enumerator of one computation shares. The zero value is not valid;
// use NewConfig.
type Config struct {
	maxNumber int
	rowLength int
}

// NewConfig validates and returns a configuration.
// It fails with ErrCodeInvalidConfiguration unless 1 <= rowLength <= maxNumber.
func NewConfig(maxNumber, rowLength int) (Config, error) {
	if maxNumber < 1 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfiguration,
			"maxNumber(%d) < 1", maxNumber)
	}
	if rowLength < 1 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfiguration,
			"rowLength(%d) < 1", rowLength)
	}
	if rowLength > maxNumber {
		return Config{}, errors.New(errors.ErrCodeInvalidConfiguration,
			"rowLength(%d) > maxNumber(%d)", rowLength, maxNumber)
	}
	return Config{maxNumber: maxNumber, rowLength: rowLength}, nil
}

// MustConfig is like NewConfig but panics on an invalid configuration.
// It is intended for tests and package-level defaults.
func MustConfig(maxNumber, rowLength int) Config {
	cfg, err := NewConfig(maxNumber, rowLength)
	if err != nil {
		panic(err)
	}
	return cfg
}

// MaxNumber returns N, the largest number a row may contain.
func (c Config) MaxNumber() int { return c.maxNumber }

// RowLength returns K, the number of values in a full row.
func (c Config) RowLength() int { return c.rowLength }

// Valid reports whether c was produced by NewConfig.
func (c Config) Valid() bool {
	return c.maxNumber >= 1 && c.rowLength >= 1 && c.rowLength <= c.maxNumber
}

// UniverseSize returns C(N, K), saturating at math.MaxUint64.
func (c Config) UniverseSize() uint64 {
	return comb.Binomial(c.maxNumber, c.rowLength)
}

// String returns the configuration as "K/N", e.g. "7/40".
func (c Config) String() string {
	return fmt.Sprintf("%d/%d", c.rowLength, c.maxNumber)
}
