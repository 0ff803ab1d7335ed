package main

import (
	"github.com/spf13/cobra"
)

var tableFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "table <grammar file path>",
		Short:   "Export the LL(1) parse table of a grammar as HTML",
		Example: `  llkit table expr.ebnf -o table.html`,
		Args:    cobra.ExactArgs(1),
		RunE:    runTable,
	}
	tableFlags.output = cmd.Flags().StringP("output", "o", "table.html", "output file path")
	rootCmd.AddCommand(cmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	_, ga, err := loadGrammar(args[0], *rootFlags.raw)
	if err != nil {
		return err
	}
	table, isLL1 := ga.Table()
	if err := writeHTML(table, *tableFlags.output); err != nil {
		return err
	}
	if !isLL1 {
		return notLL1(table)
	}
	return nil
}
