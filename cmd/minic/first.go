package main

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
)

func init() {
	cmd := &cobra.Command{
		Use:   "first",
		Short: "Show the FIRST sets of the grammar",
		Args:  cobra.NoArgs,
		RunE:  runFirst,
	}
	rootCmd.AddCommand(cmd)
}

func runFirst(cmd *cobra.Command, args []string) error {
	g, err := loadGrammar()
	if err != nil {
		return err
	}
	ga, err := lr.Analysis(g)
	if err != nil {
		return err
	}
	data := [][]string{{"non-terminal", "FIRST", "ε"}}
	ga.Grammar().EachNonTerminal(func(A *lr.Symbol) interface{} {
		var names []string
		for _, a := range ga.First(A) {
			names = append(names, a.Name)
		}
		eps := ""
		if ga.DerivesEpsilon(A) {
			eps = lr.Epsilon
		}
		data = append(data, []string{A.Name, strings.Join(names, " "), eps})
		return nil
	})
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
