package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// Environment variables
const (
	envTrace   = "LLKIT_TRACE"
	envEnvFile = "LLKIT_ENV_FILE"
)

// tracing keys of all packages
var traceKeys = []string{"llkit.ll", "llkit.scanner", "llkit.grammarfile", "llkit.cli"}

var rootFlags = struct {
	trace *string
	raw   *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "llkit",
	Short: "Analyse LL(1) grammars and parse input with them",
	Long: `llkit provides:
- FIRST- and FOLLOW-sets, LL(1) parse tables and conflicts for a grammar.
- Table driven parsing of token sequences or source text.
Grammars are normalized (left recursion removed, left factored) before analysis.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().String("trace", "", "trace level [Debug|Info|Error] (default $"+envTrace+" or Error)")
	rootFlags.raw = rootCmd.PersistentFlags().Bool("raw", false, "analyse the grammar as is, without normalizing it")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

func setup(cmd *cobra.Command, args []string) error {
	if err := loadEnv(); err != nil {
		return err
	}
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	level := *rootFlags.trace
	if level == "" {
		level = os.Getenv(envTrace)
	}
	if level == "" {
		level = "Error"
	}
	setTraceLevel(tracing.TraceLevelFromString(level))
	tracer().Debugf("trace level is %s", level)
	return nil
}

// loadEnv loads environment variables from an env file. A missing default
// file is not an error.
func loadEnv() error {
	envfile := os.Getenv(envEnvFile)
	if envfile == "" {
		if _, err := os.Stat(".env"); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		envfile = ".env"
	}
	if err := godotenv.Load(envfile); err != nil {
		return fmt.Errorf("cannot load env file %s: %w", envfile, err)
	}
	return nil
}

func setTraceLevel(level tracing.TraceLevel) {
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  "  >>",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "  Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
