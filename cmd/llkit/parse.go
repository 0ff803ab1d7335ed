package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/npillmayer/llkit/ll"
	"github.com/npillmayer/llkit/ll/grammarfile"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	source *string
	tree   *bool
	steps  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "parse <grammar file path> [terminal ...]",
		Short: "Parse a sequence of terminals or a text stream",
		Example: `  llkit parse expr.json id + id
  cat src | llkit parse expr.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "source file path (default stdin)")
	parseFlags.tree = cmd.Flags().Bool("tree", false, "print the parse tree")
	parseFlags.steps = cmd.Flags().Bool("steps", false, "print every parser transition")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	spec, ga, err := loadGrammar(args[0], *rootFlags.raw)
	if err != nil {
		return err
	}
	if !ga.IsLL1() {
		table, _ := ga.Table()
		printConflicts(table)
		return notLL1(table)
	}
	var steps []ll.Step
	opts := []ll.Option{ll.GenerateTree(*parseFlags.tree)}
	if *parseFlags.steps {
		opts = append(opts, ll.Trace(func(s ll.Step) {
			steps = append(steps, s)
		}))
	}
	parser := ga.Parser(opts...)
	var accept bool
	if len(args) > 1 {
		accept, err = parser.Parse(args[1:])
	} else {
		accept, err = parseSource(parser, spec, *parseFlags.source)
	}
	if *parseFlags.steps {
		printSteps(steps)
	}
	if err != nil {
		return err
	}
	if !accept {
		return fmt.Errorf("input rejected")
	}
	pterm.Info.Println("input accepted")
	if *parseFlags.tree {
		printTree(parser.Tree())
	}
	return nil
}

// parseSource tokenizes a source file (or stdin) and parses the tokens.
func parseSource(parser *ll.Parser, spec *grammarfile.Spec, path string) (bool, error) {
	src, name := os.Stdin, "stdin"
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return false, fmt.Errorf("cannot open the source file %s: %w", path, err)
		}
		defer f.Close()
		src, name = f, path
	}
	input, err := ioutil.ReadAll(src)
	if err != nil {
		return false, err
	}
	tokenizer, err := spec.Tokenizer(name, string(input))
	if err != nil {
		return false, err
	}
	var scanErr error
	tokenizer.SetErrorHandler(func(e error) {
		if scanErr == nil {
			scanErr = e
		}
	})
	accept, err := parser.ParseTokens(tokenizer)
	if err == nil && scanErr != nil {
		return false, fmt.Errorf("%s: %w", name, scanErr)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", name, err)
	}
	return accept, nil
}
