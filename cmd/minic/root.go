package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lang/cmini"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
)

// tracer traces with key 'minic.lang'.
func tracer() tracing.Trace {
	return tracing.Select("minic.lang")
}

var traceKeys = []string{"minic.lr", "minic.scanner", "minic.lang"}

var rootFlags = struct {
	trace       *string
	grammar     *string
	preferShift *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "minic",
	Short: "Scan and check mini-C sources with a canonical LR(1) parser",
	Long: `minic provides the following features:
- Tokenizes mini-C source text.
- Checks mini-C source text against the built-in grammar or a custom grammar.
- Shows FIRST sets, LR(1) states and parser tables of the grammar.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootFlags.trace = rootCmd.PersistentFlags().StringP("trace", "t", "Error", "trace level [Debug|Info|Error]")
	rootFlags.grammar = rootCmd.PersistentFlags().StringP("grammar", "g", "", "grammar file path (default built-in mini-C grammar)")
	rootFlags.preferShift = rootCmd.PersistentFlags().Bool("prefer-shift", false, "resolve shift/reduce conflicts as shift")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		pterm.Error.Println(err.Error())
		return err
	}
	return nil
}

// setup configures tracing and display.
func setup(cmd *cobra.Command, args []string) error {
	initDisplay()
	gtrace.SyntaxTracer = gologadapter.New()
	level := tracing.TraceLevelFromString(*rootFlags.trace)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", *rootFlags.trace)
	return nil
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

func compileOptions() []lr.Option {
	if *rootFlags.preferShift {
		return []lr.Option{lr.PreferShift()}
	}
	return nil
}

// compiledGrammar compiles the grammar selected by flag --grammar.
func compiledGrammar() (*lr.CompiledGrammar, error) {
	g, err := loadGrammar()
	if err != nil {
		return nil, err
	}
	cg, err := lr.Compile(g, compileOptions()...)
	if err != nil {
		reportConflicts(err)
		return nil, err
	}
	for _, c := range cg.Conflicts() {
		pterm.Info.Println(c.String())
	}
	return cg, nil
}

func reportConflicts(err error) {
	var cerr *lr.GrammarConflictError
	if errors.As(err, &cerr) {
		for _, c := range cerr.Conflicts[1:] {
			pterm.Error.Println(c.String())
		}
	}
}

// loadGrammar reads the grammar selected by flag --grammar.
func loadGrammar() (*lr.Grammar, error) {
	if *rootFlags.grammar == "" {
		return cmini.Grammar()
	}
	f, err := os.Open(*rootFlags.grammar)
	if err != nil {
		return nil, fmt.Errorf("cannot open the grammar file %s: %w", *rootFlags.grammar, err)
	}
	defer f.Close()
	return lr.ParseGrammar(*rootFlags.grammar, f)
}

// tableGenerator runs table generation for the selected grammar, without
// failing on conflicts, for diagnostics.
func tableGenerator() (*lr.TableGenerator, error) {
	g, err := loadGrammar()
	if err != nil {
		return nil, err
	}
	ga, err := lr.Analysis(g)
	if err != nil {
		return nil, err
	}
	lrgen := lr.NewTableGenerator(ga, compileOptions()...)
	if err := lrgen.CreateTables(); err != nil {
		pterm.Error.Println(err.Error())
		reportConflicts(err)
	}
	return lrgen, nil
}

// readSource reads the source text from the file given as the single
// argument, or from stdin.
func readSource(args []string) (string, error) {
	if len(args) == 0 {
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("cannot read stdin: %w", err)
		}
		return string(src), nil
	}
	src, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("cannot read the source file %s: %w", args[0], err)
	}
	return string(src), nil
}
