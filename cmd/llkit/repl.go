package main

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/llkit/ll"
	"github.com/npillmayer/llkit/ll/grammarfile"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl <grammar file path>",
		Short: "Interactively parse input lines",
		Long: `repl reads lines of input, tokenizes and parses them, and prints the
parse tree for accepted input. Lines starting with ':' are commands:
  :tree    toggle printing of parse trees
  :steps   toggle printing of parser transitions
  :table   print the parse table
  :quit    leave the REPL (or <ctrl>D)`,
		Args: cobra.ExactArgs(1),
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

func runREPL(cmd *cobra.Command, args []string) error {
	spec, ga, err := loadGrammar(args[0], *rootFlags.raw)
	if err != nil {
		return err
	}
	if !ga.IsLL1() {
		table, _ := ga.Table()
		printConflicts(table)
		return notLL1(table)
	}
	repl, err := readline.New("llkit> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{
		spec:  spec,
		GA:    ga,
		repl:  repl,
		trees: true,
	}
	pterm.Info.Println(fmt.Sprintf("Welcome to llkit, grammar is %s", ga.Grammar().Name))
	pterm.Info.Println("Quit with <ctrl>D")
	intp.REPL()
	return nil
}

// Intp is our interpreter object
type Intp struct {
	spec  *grammarfile.Spec
	GA    *ll.Analysis
	repl  *readline.Instance
	trees bool // print parse trees
	steps bool // print parser transitions
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := intp.Eval(line)
		if err != nil {
			pterm.Error.Println(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval executes a command or parses a line of input.
func (intp *Intp) Eval(line string) (bool, error) {
	if strings.HasPrefix(line, ":") {
		return intp.execute(line[1:])
	}
	var steps []ll.Step
	parser := intp.GA.Parser(ll.GenerateTree(intp.trees), ll.Trace(func(s ll.Step) {
		steps = append(steps, s)
	}))
	tokenizer, err := intp.spec.Tokenizer("repl", line)
	if err != nil {
		return false, err
	}
	var scanErr error
	tokenizer.SetErrorHandler(func(e error) { scanErr = e })
	accept, err := parser.ParseTokens(tokenizer)
	if intp.steps {
		printSteps(steps)
	}
	if scanErr != nil {
		return false, scanErr
	}
	if err != nil {
		return false, err
	}
	if accept {
		pterm.Info.Println("accepted")
		if intp.trees {
			printTree(parser.Tree())
		}
	}
	return false, nil
}

func (intp *Intp) execute(cmd string) (bool, error) {
	switch strings.TrimSpace(cmd) {
	case "q", "quit":
		return true, nil
	case "tree":
		intp.trees = !intp.trees
		pterm.Info.Println(fmt.Sprintf("print parse trees = %v", intp.trees))
	case "steps":
		intp.steps = !intp.steps
		pterm.Info.Println(fmt.Sprintf("print transitions = %v", intp.steps))
	case "table":
		table, _ := intp.GA.Table()
		printTable(table)
	default:
		return false, fmt.Errorf("unknown command :%s", cmd)
	}
	return false, nil
}
