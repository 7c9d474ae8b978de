// Package generator draws random rows for a configuration.
//
// A Generator is seeded explicitly, so a run can be reproduced from its seed:
//
//	gen := generator.New(cfg, 42)
//	rows := gen.Rows(1000)
//
// Rows are drawn independently and may repeat; a dataset of generated rows is
// a sample with replacement. Generators are not safe for concurrent use.
package generator

import (
	"math/rand/v2"

	"github.com/matzehuels/rowminer/pkg/core/row"
)

// Generator produces rows of distinct numbers by partially shuffling the pool
// 1..MaxNumber and taking the first RowLength entries.
type Generator struct {
	cfg  row.Config
	rng  *rand.Rand
	pool []int
	seed uint64
}

// New returns a generator for cfg seeded with seed.
func New(cfg row.Config, seed uint64) *Generator {
	pool := make([]int, cfg.MaxNumber())
	for i := range pool {
		pool[i] = i + 1
	}
	return &Generator{
		cfg:  cfg,
		rng:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		pool: pool,
		seed: seed,
	}
}

// Seed returns the seed the generator was created with.
func (g *Generator) Seed() uint64 { return g.seed }

// Config returns the generator's configuration.
func (g *Generator) Config() row.Config { return g.cfg }

// Row draws one row.
func (g *Generator) Row() *row.Row {
	k := g.cfg.RowLength()
	n := len(g.pool)
	for i := range k {
		j := i + g.rng.IntN(n-i)
		g.pool[i], g.pool[j] = g.pool[j], g.pool[i]
	}
	// Pool entries are distinct and in range, so construction cannot fail.
	return row.MustFromNumbers(g.cfg, g.pool[:k]...)
}

// Rows draws count rows.
func (g *Generator) Rows(count int) []*row.Row {
	if count <= 0 {
		return nil
	}
	rows := make([]*row.Row, count)
	for i := range rows {
		rows[i] = g.Row()
	}
	return rows
}
