// Package row provides the value types of the row universe: a validated
// configuration (the maximum number N and the row length K) and the ordered
// row itself.
//
// A row is an ascending selection of K distinct integers drawn from [1, N].
// The universe of all rows under a configuration has C(N, K) members.
//
// # Configuration
//
//	cfg, err := row.NewConfig(40, 7)
//	if err != nil {
//	    // errors.Is(err, errors.ErrCodeInvalidConfiguration)
//	}
//	fmt.Println(cfg.UniverseSize()) // 18643560
//
// # Rows
//
// Numbers may be appended in any order; the populated prefix is kept sorted
// after every append, so a full row is always in ascending order:
//
//	r := row.New(cfg)
//	_ = r.Append(4)
//	_ = r.Append(1)
//	_ = r.Append(2)
//	fmt.Println(r) // 1,2,4
//
// Append rejects numbers outside [1, N], appends to a full row, and numbers
// already present in the row. All rejections are structured errors from
// [github.com/matzehuels/rowminer/pkg/errors].
package row
