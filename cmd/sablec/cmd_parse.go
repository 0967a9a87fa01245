package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sable-lang/sable/format"
	"github.com/sable-lang/sable/frontend"
	"github.com/sable-lang/sable/lang/elaborate"
)

// phaseBanners maps table-builder trace phases onto the banner lines the
// driver prints around each table snapshot.
var phaseBanners = map[string]string{
	"constants":        "Constant table built successfully.",
	"constants merged": "Constant table merged successfully.",
	"variables":        "Variable table built successfully.",
	"variables merged": "Variable table merged successfully.",
}

func newParseCmd() *cobra.Command {
	var input string
	var output string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse and elaborate a source file, printing the AST and symbol table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" && len(args) > 0 {
				input = args[0]
			}
			if input == "" {
				return fmt.Errorf("no input file (use -i)")
			}
			return runParse(input, output)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input file")
	cmd.Flags().StringVarP(&output, "output", "o", "output.o", "output file")

	return cmd
}

func runParse(input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	ident := packageIdent(input)

	type snapshot struct {
		phase string
		text  string
	}
	var snapshots []snapshot
	trace := func(phase string, t *elaborate.Table) {
		snapshots = append(snapshots, snapshot{phase: phase, text: format.Table(t)})
	}

	result, err := frontend.Process(ident, string(data), frontend.WithTableTrace(trace))
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("// Parsed successfully.\n")
	sb.WriteString("/* Initial AST:\n")
	sb.WriteString(format.Source(result.Raw))
	sb.WriteString("\n*/\n")

	for _, snap := range snapshots {
		banner, ok := phaseBanners[snap.phase]
		if !ok {
			banner = snap.phase
		}
		sb.WriteString("/* " + banner + "\n")
		sb.WriteString(snap.text)
		sb.WriteString("*/\n")
	}

	sb.WriteString(format.Elaborated(result.Elaborated))
	sb.WriteString("\n")

	fmt.Print(sb.String())

	if output != "" {
		if err := os.WriteFile(output, []byte(sb.String()), 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func packageIdent(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
