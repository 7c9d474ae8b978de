package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/rowminer/pkg/core/row"
	"github.com/matzehuels/rowminer/pkg/core/trie"
	rowio "github.com/matzehuels/rowminer/pkg/io"
)

// maxRenderedPaths keeps rendered tries readable.
const maxRenderedPaths = 200

// trieCommand renders the membership trie of a few rows (debug tool).
func (c *CLI) trieCommand() *cobra.Command {
	var (
		maxNumber int
		rowLength int
		store     string
		input     string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "trie [rows...]",
		Short: "Render the membership trie of some rows (debug tool)",
		Long: `Render the membership trie built from the given rows.

Rows are comma-separated numbers given as arguments or read from --input.
The output format follows the file extension: .svg renders with Graphviz,
anything else (or stdout) is DOT source.`,
		Example: `  # DOT to stdout
  rowminer trie -n 5 -k 3 1,2,4 2,4,5 1,3,5

  # SVG using sorted nodes
  rowminer trie -n 5 -k 3 --store sorted -o trie.svg 1,2,4 2,4,5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := row.NewConfig(maxNumber, rowLength)
			if err != nil {
				return err
			}
			kind, err := trie.ParseKind(store)
			if err != nil {
				return err
			}

			rows, err := trieRows(cfg, input, args)
			if err != nil {
				return err
			}
			if len(rows) == 0 {
				return fmt.Errorf("no rows given")
			}
			if len(rows) > maxRenderedPaths {
				return fmt.Errorf("%d rows is too many to render (max %d)", len(rows), maxRenderedPaths)
			}

			t, err := trie.New(cfg.MaxNumber(), cfg.RowLength(), trie.WithKind(kind))
			if err != nil {
				return err
			}
			for _, r := range rows {
				if _, err := t.Insert(r.Numbers()); err != nil {
					return fmt.Errorf("insert %s: %w", r, err)
				}
			}

			var data []byte
			if strings.EqualFold(filepath.Ext(output), ".svg") {
				data, err = t.RenderSVG(cmd.Context())
				if err != nil {
					return fmt.Errorf("render: %w", err)
				}
			} else {
				data = []byte(t.ToDOT())
			}

			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := writeFile(data, output); err != nil {
				return fmt.Errorf("write output: %w", err)
			}

			stats := t.Stats()
			printSuccess("Trie rendered")
			printKeyValue("Paths", fmt.Sprint(stats.Paths))
			printKeyValue("Nodes", fmt.Sprint(stats.Nodes))
			printKeyValue("Store", fmt.Sprintf("%s, %s", stats.Kind, formatBytes(stats.Bytes)))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().IntVarP(&maxNumber, "max", "n", 5, "largest number in a row")
	cmd.Flags().IntVarP(&rowLength, "length", "k", 3, "numbers per row")
	cmd.Flags().StringVar(&store, "store", "auto", "trie nodes: auto, dense, sparse, sorted")
	cmd.Flags().StringVarP(&input, "input", "i", "", "read rows from a file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.svg or .dot); DOT on stdout if empty")

	return cmd
}

// trieRows collects rows from the input file and the arguments.
func trieRows(cfg row.Config, input string, args []string) ([]*row.Row, error) {
	var rows []*row.Row
	if input != "" {
		fromFile, err := rowio.ReadFile(input, cfg)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fromFile...)
	}
	for _, arg := range args {
		r, err := rowio.ParseRow(arg, cfg)
		if err != nil {
			return nil, fmt.Errorf("invalid row %q: %w", arg, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// writeFile writes data to path, creating parent directories.
func writeFile(data []byte, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
