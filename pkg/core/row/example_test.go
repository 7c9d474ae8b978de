package row_test

import (
	"fmt"

	"github.com/matzehuels/rowminer/pkg/core/row"
)

func ExampleRow_Append() {
	cfg, _ := row.NewConfig(5, 3)
	r := row.New(cfg)
	_ = r.Append(4)
	_ = r.Append(1)
	_ = r.Append(2)
	fmt.Println(r)

	err := r.Append(3)
	fmt.Println(err)
	// Output:
	// 1,2,4
	// CAPACITY_EXCEEDED: row cannot accommodate more than 3 numbers
}

func ExampleNewConfig() {
	_, err := row.NewConfig(5, 6)
	fmt.Println(err)
	// Output:
	// INVALID_CONFIGURATION: rowLength(6) > maxNumber(5)
}
