package main

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lang/cmini"
)

func init() {
	cmd := &cobra.Command{
		Use:     "tokens [source file path]",
		Short:   "Tokenize a mini-C source text",
		Example: `  cat src.c | minic tokens`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runTokens,
	}
	rootCmd.AddCommand(cmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	src, err := readSource(args)
	if err != nil {
		return err
	}
	lexer, err := cmini.NewLexer()
	if err != nil {
		return err
	}
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return err
	}
	data := [][]string{{"line", "category", "lexeme", "value"}}
	errs := 0
	for _, tok := range tokens {
		value := ""
		if kind, ok := tok.Value().(cmini.LiteralKind); ok {
			value = kind.String()
		}
		if tok.TokType() == cmini.Error {
			errs++
		}
		data = append(data, []string{
			fmt.Sprintf("%d", tok.Line()),
			cmini.CategoryString(tok.TokType()),
			tok.Lexeme(),
			value,
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		return err
	}
	if errs > 0 {
		return fmt.Errorf("%d unrecognized token(s)", errs)
	}
	return nil
}
