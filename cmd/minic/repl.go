package main

import (
	"errors"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lang/cmini"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/lr1"
)

func init() {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Check mini-C source lines interactively",
		Long: `repl checks every line entered against the grammar. Commands are
  :states   show the LR(1) states
  :tables   show the parser tables
  :first    show the FIRST sets
  :quit     leave (or <ctrl>D)`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	rootCmd.AddCommand(cmd)
}

// Intp is the interpreter state of the REPL.
type Intp struct {
	cg      *lr.CompiledGrammar
	session *cmini.Session
	repl    *readline.Instance
}

func runREPL(cmd *cobra.Command, args []string) error {
	cg, err := compiledGrammar()
	if err != nil {
		return err
	}
	session, err := cmini.NewSession(cg, lr1.Trace(false))
	if err != nil {
		return err
	}
	repl, err := readline.New("minic> ")
	if err != nil {
		return err
	}
	defer repl.Close()
	intp := &Intp{cg: cg, session: session, repl: repl}
	pterm.Info.Println("Welcome to the mini-C checker")
	tracer().Infof("Quit with <ctrl>D") // inform user how to stop the CLI
	intp.REPL()
	return nil
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF or interrupt
			if !errors.Is(err, io.EOF) && !errors.Is(err, readline.ErrInterrupt) {
				pterm.Error.Println(err.Error())
			}
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if quit := intp.Eval(line); quit {
			break
		}
	}
	pterm.Println("Good bye!")
}

// Eval evaluates a REPL command or checks a line of source text.
// It returns true if the user wants to quit.
func (intp *Intp) Eval(line string) bool {
	var err error
	switch line {
	case ":quit", ":q":
		return true
	case ":states":
		err = renderStates(intp.cg.CFSM())
	case ":tables":
		err = renderTables(intp.cg.TableGenerator())
	case ":first":
		pterm.Println(lr.FirstSetsString(intp.cg.Analysis()))
	default:
		if strings.HasPrefix(line, ":") {
			pterm.Error.Printf("unknown command %s\n", line)
			return false
		}
		if _, err = intp.session.Check(line); err == nil {
			pterm.Success.Println("accepted")
		}
	}
	if err != nil {
		pterm.Error.Println(err.Error())
	}
	return false
}
