package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rowminer/pkg/core/miner"
	"github.com/matzehuels/rowminer/pkg/core/row"
)

// demoDraws are the observed rows of the walkthrough, in the order their
// numbers were drawn.
var demoDraws = [][]int{
	{1, 4, 2},
	{4, 5, 2},
	{1, 3, 5},
	{3, 4, 5},
}

// demoCommand creates the demo command.
func (c *CLI) demoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through a small example (3 numbers out of 5)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			observed, missing, err := runDemo(cmd)
			if err != nil {
				return err
			}
			printRows("Observed", row.Strings(observed), len(observed))
			printRows("Missing", row.Strings(missing), len(missing))
			printDetail("%d observed + %d missing = C(5,3) = %d", len(observed), len(missing), observed[0].Config().UniverseSize())
			return nil
		},
	}
}

func runDemo(cmd *cobra.Command) (observed, missing []*row.Row, err error) {
	cfg, err := row.NewConfig(5, 3)
	if err != nil {
		return nil, nil, err
	}

	m := miner.New(cfg)
	for _, draw := range demoDraws {
		r := row.New(cfg)
		for _, n := range draw {
			if err := r.Append(n); err != nil {
				return nil, nil, fmt.Errorf("draw %v: %w", draw, err)
			}
		}
		if err := m.Insert(r); err != nil {
			return nil, nil, err
		}
		observed = append(observed, r)
	}

	missing, err = m.Compute(cmd.Context())
	if err != nil {
		return nil, nil, err
	}
	return observed, missing, nil
}
