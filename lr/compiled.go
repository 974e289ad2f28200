package lr

import (
	"errors"
	"io"
)

// CompiledGrammar bundles a grammar with its analysis, its CFSM and its
// parser tables. It is the input of an LR(1) parser and is read-only once
// compiled, thus may be shared between parsers.
type CompiledGrammar struct {
	g     *Grammar
	ga    *LRAnalysis
	lrgen *TableGenerator
}

// Compile analyses a grammar and creates LR(1) parser tables for it.
// Compile fails with a *GrammarConflictError if the grammar is not LR(1).
func Compile(g *Grammar, opts ...Option) (*CompiledGrammar, error) {
	ga, err := Analysis(g)
	if err != nil {
		return nil, err
	}
	lrgen := NewTableGenerator(ga, opts...)
	if err = lrgen.CreateTables(); err != nil {
		var cerr *GrammarConflictError
		if errors.As(err, &cerr) {
			tracer().Errorf("grammar %s has %d conflict(s)", g.Name, len(cerr.Conflicts))
		}
		return nil, err
	}
	return &CompiledGrammar{g: g, ga: ga, lrgen: lrgen}, nil
}

// CompileText reads a grammar in textual form (see ParseGrammar) and compiles it.
func CompileText(name string, r io.Reader, opts ...Option) (*CompiledGrammar, error) {
	g, err := ParseGrammar(name, r)
	if err != nil {
		return nil, err
	}
	return Compile(g, opts...)
}

// Grammar returns the grammar.
func (cg *CompiledGrammar) Grammar() *Grammar {
	return cg.g
}

// Analysis returns the FIRST set analysis of the grammar.
func (cg *CompiledGrammar) Analysis() *LRAnalysis {
	return cg.ga
}

// CFSM returns the canonical collection of LR(1) item sets.
func (cg *CompiledGrammar) CFSM() *CFSM {
	return cg.lrgen.dfa
}

// TableGenerator returns the table generator which created the tables.
func (cg *CompiledGrammar) TableGenerator() *TableGenerator {
	return cg.lrgen
}

// StartState returns the ID of the start state, which always is 0.
func (cg *CompiledGrammar) StartState() uint {
	return cg.lrgen.dfa.S0.ID
}

// StateCount returns the number of parser states.
func (cg *CompiledGrammar) StateCount() int {
	return cg.lrgen.dfa.StateCount()
}

// Conflicts returns the shift/reduce conflicts which have been resolved in
// favour of shift (see PreferShift). A compiled grammar never has unresolved
// conflicts.
func (cg *CompiledGrammar) Conflicts() []Conflict {
	return cg.lrgen.Conflicts()
}

// Action returns ACTION[state, a]. An unknown state or a symbol which is not
// a terminal of the grammar results in NoAction.
func (cg *CompiledGrammar) Action(state uint, a *Symbol) Action {
	if a == nil || !a.IsTerminal() || cg.g.Terminal(a.Name) != a {
		return Action{Type: NoAction}
	}
	v := cg.lrgen.actiontable.Value(state, a.Value)
	if v == cg.lrgen.actiontable.NullValue() {
		return Action{Type: NoAction}
	}
	return cg.lrgen.decode(state, a, v)
}

// Goto returns GOTO[state, A] for a non-terminal A. The flag is false if the
// table has no entry.
func (cg *CompiledGrammar) Goto(state uint, A *Symbol) (uint, bool) {
	if A == nil || A.IsTerminal() {
		return 0, false
	}
	v := cg.lrgen.gototable.Value(state, A.Value)
	if v == cg.lrgen.gototable.NullValue() {
		return 0, false
	}
	return uint(v), true
}

// Expected returns the terminals with a non-error action in a state,
// ordered by symbol value.
func (cg *CompiledGrammar) Expected(state uint) []*Symbol {
	var exp []*Symbol
	for _, a := range cg.g.terminals {
		if cg.lrgen.actiontable.Value(state, a.Value) != cg.lrgen.actiontable.NullValue() {
			exp = append(exp, a)
		}
	}
	return exp
}

// TableData returns the ACTION and GOTO tables as rows of strings, see
// function TableData.
func (cg *CompiledGrammar) TableData() [][]string {
	return TableData(cg.lrgen)
}
