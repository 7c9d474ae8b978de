// Package pkg holds the rowminer libraries.
//
// # Overview
//
// rowminer computes which rows of a bounded universe never occur in a
// dataset. A row is an ascending selection of K distinct numbers from 1..N,
// so the universe holds C(N,K) rows. The libraries are organized in layers:
//
//  1. [core/row], [core/comb], [core/trie], [core/miner] - the in-memory
//     computation: row values, the combination enumerator, the membership
//     trie and the collector that ties them together
//  2. [io], [generator] - datasets: the text and JSON row formats and a
//     seeded random source
//  3. [cache], [sink] - infrastructure: result caching (file, Redis) and
//     output destinations (files, MongoDB)
//  4. [pipeline] - orchestration: load → build → compute → store
//  5. [api] - the HTTP front end
//
// # Architecture
//
//	dataset (file, inline rows, generator)
//	         ↓
//	    [pipeline] hash + cache lookup
//	         ↓
//	    [core/miner] build trie, enumerate universe
//	         ↓
//	    [sink] text / JSON / MongoDB
//
// # Quick Start
//
//	cfg, _ := row.NewConfig(5, 3)
//	m := miner.New(cfg)
//	_ = m.InsertNumbers([]int{1, 4, 2})
//	missing, _ := m.Compute(ctx)
//
// # Errors
//
// Precondition failures carry codes from [errors] and are matched with
// errors.Is(err, code). None of them succeed on retry.
//
// # Observability
//
// [observability] exposes hooks for build, compute, cache and HTTP events.
// They are no-ops unless a consumer installs an implementation.
//
// [core/row]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/core/row
// [core/comb]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/core/comb
// [core/trie]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/core/trie
// [core/miner]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/core/miner
// [io]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/io
// [generator]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/generator
// [cache]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/cache
// [sink]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/sink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/pipeline
// [api]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/api
// [errors]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/rowminer/pkg/observability
package pkg
