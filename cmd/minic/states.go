package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
)

var statesFlags = struct {
	plain *bool
}{}

func init() {
	cmd := &cobra.Command{
		Use:   "states",
		Short: "Show the LR(1) states of the grammar",
		Args:  cobra.NoArgs,
		RunE:  runStates,
	}
	statesFlags.plain = cmd.Flags().Bool("plain", false, "print a plain listing instead of a tree")
	rootCmd.AddCommand(cmd)
}

func runStates(cmd *cobra.Command, args []string) error {
	lrgen, err := tableGenerator()
	if err != nil {
		return err
	}
	if *statesFlags.plain {
		return lrgen.CFSM().WriteStates(os.Stdout)
	}
	return renderStates(lrgen.CFSM())
}

func renderStates(cfsm *lr.CFSM) error {
	ll := pterm.LeveledList{}
	for _, s := range cfsm.States() {
		label := fmt.Sprintf("state %d", s.ID)
		if s.Accept {
			label += " (accept)"
		}
		ll = append(ll, pterm.LeveledListItem{Level: 0, Text: label})
		for _, i := range s.Items() {
			ll = append(ll, pterm.LeveledListItem{Level: 1, Text: i.String()})
			if A := i.PeekSymbol(); A != nil {
				if to := cfsm.Transition(s, A); to != nil {
					ll = append(ll, pterm.LeveledListItem{Level: 2, Text: fmt.Sprintf("on %s goto %d", A, to.ID)})
				}
			}
		}
	}
	root := pterm.NewTreeFromLeveledList(ll)
	return pterm.DefaultTree.WithRoot(root).Render()
}
