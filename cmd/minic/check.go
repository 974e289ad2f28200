package main

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lang/cmini"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/lr1"
)

var checkFlags = struct {
	steps *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "check [source file path]",
		Short:   "Check the syntax of a mini-C source text",
		Example: `  minic check --steps src.c`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCheck,
	}
	checkFlags.steps = cmd.Flags().Bool("steps", false, "print the parser actions")
	rootCmd.AddCommand(cmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	cg, err := compiledGrammar()
	if err != nil {
		return err
	}
	session, err := cmini.NewSession(cg, lr1.Trace(*checkFlags.steps))
	if err != nil {
		return err
	}
	result, err := session.Check(src)
	if *checkFlags.steps && result != nil {
		for _, step := range result.Steps {
			pterm.Println(step.String())
		}
	}
	if err != nil {
		return err
	}
	pterm.Success.Println("accepted")
	return nil
}
