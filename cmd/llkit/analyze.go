package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/llkit/ll"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var analyzeFlags = struct {
	html *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "analyze <grammar file path>",
		Aliases: []string{"analyse"},
		Short:   "Show FIRST- and FOLLOW-sets, the parse table and conflicts of a grammar",
		Example: `  llkit analyze expr.json --html table.html`,
		Args:    cobra.ExactArgs(1),
		RunE:    runAnalyze,
	}
	analyzeFlags.html = cmd.Flags().String("html", "", "write the parse table as HTML to this file")
	rootCmd.AddCommand(cmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_, ga, err := loadGrammar(args[0], *rootFlags.raw)
	if err != nil {
		return err
	}
	printGrammar(ga)
	printSets(ga)
	table, isLL1 := ga.Table()
	printTable(table)
	printConflicts(table)
	if *analyzeFlags.html != "" {
		if err := writeHTML(table, *analyzeFlags.html); err != nil {
			return err
		}
	}
	if !isLL1 {
		return notLL1(table)
	}
	return nil
}

func writeHTML(table *ll.ParseTable, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	defer f.Close()
	ll.TableAsHTML(table, f)
	pterm.Info.Println(fmt.Sprintf("parse table written to %s", path))
	return nil
}
