package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"numdoc/internal/diag"
)

var codesCmd = &cobra.Command{
	Use:   "codes",
	Short: "List every diagnostic code the linter can emit",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, code := range diag.Catalog() {
			fmt.Fprintf(out, "%-6s %-8s %s\n", code.ID(), code.Severity(), code.Title())
		}
		return nil
	},
}
