package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
)

var tablesFlags = struct {
	html *string
	dot  *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "tables",
		Short:   "Show the ACTION and GOTO tables of the grammar",
		Example: `  minic tables --html action > action.html`,
		Args:    cobra.NoArgs,
		RunE:    runTables,
	}
	tablesFlags.html = cmd.Flags().String("html", "", "export a table as HTML [action|goto]")
	tablesFlags.dot = cmd.Flags().Bool("dot", false, "export the LR(1) automaton in Graphviz Dot format")
	rootCmd.AddCommand(cmd)
}

func runTables(cmd *cobra.Command, args []string) error {
	lrgen, err := tableGenerator()
	if err != nil {
		return err
	}
	switch {
	case *tablesFlags.dot:
		return lrgen.CFSM().CFSM2GraphViz(os.Stdout)
	case *tablesFlags.html == "action":
		return lr.ActionTableAsHTML(lrgen, os.Stdout)
	case *tablesFlags.html == "goto":
		return lr.GotoTableAsHTML(lrgen, os.Stdout)
	case *tablesFlags.html != "":
		return fmt.Errorf("unknown table %q, use action or goto", *tablesFlags.html)
	}
	return renderTables(lrgen)
}

func renderTables(lrgen *lr.TableGenerator) error {
	return pterm.DefaultTable.WithHasHeader().WithData(lr.TableData(lrgen)).Render()
}
