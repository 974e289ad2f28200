/*
Package lr implements the grammar side of canonical LR(1) parsing: context
free grammars, FIRST sets, LR(1) item sets and the ACTION and GOTO tables
a table driven parser runs on.

Building a Grammar

Grammars are specified using a grammar builder object. Clients add
rules, consisting of non-terminal symbols and terminals. Grammars may
contain epsilon-productions.

Example:

    b := lr.NewGrammarBuilder("G")
    b.LHS("S").N("C").N("C").End()   // S  →  C C
    b.LHS("C").T("c").N("C").End()   // C  →  c C
    b.LHS("C").T("d").End()          // C  →  d
    g, err := b.Grammar()

Grammars may be read from text, too, using ParseGrammar:

    S → C C
    C → 'c' C | 'd'

Every grammar is augmented with a fresh start symbol S' and the rule
S' → S, which is always rule 0. The end marker $ is terminal no. 0.

This results in the following trivial grammar:

   g.Dump()

   0: S' → S
   1: S → C C
   2: C → 'c' C
   3: C → 'd'

Static Grammar Analysis

After the grammar is complete, it has to be analysed. For this end, the
grammar is subjected to an LRAnalysis object, which computes FIRST sets
for the grammar and determines all epsilon-derivable non-terminals.

    ga, err := lr.Analysis(g)
    ga.Grammar().EachNonTerminal(
        func(A *lr.Symbol) interface{} {                      // ad-hoc mapper function
            fmt.Printf("FIRST(%s) = %v", A, ga.First(A))     // get FIRST-set for A
            return nil
        })

Parser Construction

Using grammar analysis as input, a bottom-up parser can be constructed.
First a characteristic finite state machine (CFSM) is built from the
grammar, with LR(1) items as configurations. The CFSM will then be
transformed into a GOTO table and an ACTION table. Cells of the ACTION
table needing more than one action are conflicts and make grammar
compilation fail with a *GrammarConflictError, unless shift/reduce
conflicts are explicitly resolved as shifts.
The CFSM will not be thrown away, but is made available to the client.
This is intended for debugging purposes, but may be useful for error
recovery, too. It can be exported to Graphviz's Dot-format.

Example:

    cg, err := lr.Compile(g)          // analysis, CFSM and tables in one go
    action := cg.Action(0, g.Terminal("'c'"))

Package lr1 contains a stack driver for compiled grammars.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lr

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'minic.lr'.
func tracer() tracing.Trace {
	return tracing.Select("minic.lr")
}
