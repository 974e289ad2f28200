package lr

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/tools/container/intsets"
)

// LRAnalysis is an object for static analysis of a grammar: FIRST sets of
// all symbols and epsilon-derivability of non-terminals. It is the input for
// the construction of parser tables.
//
// Terminal sets are kept as sets of symbol values.
type LRAnalysis struct {
	g     *Grammar
	first []*intsets.Sparse // FIRST(A) without ε, indexed by symbol value
	eps   []bool            // A ⇒* ε, indexed by symbol value
}

// Analysis computes FIRST sets for a grammar. It fails with a
// *GrammarSyntaxError if the fixed point iteration does not converge, which
// may only happen for malformed grammars.
func Analysis(g *Grammar) (*LRAnalysis, error) {
	if g == nil {
		return nil, fmt.Errorf("cannot analyse nil grammar")
	}
	ga := &LRAnalysis{
		g:     g,
		first: make([]*intsets.Sparse, g.SymbolCount()),
		eps:   make([]bool, g.SymbolCount()),
	}
	for i := range ga.first {
		ga.first[i] = &intsets.Sparse{}
	}
	g.EachTerminal(func(A *Symbol) interface{} {
		ga.first[A.Value].Insert(A.Value)
		return nil
	})
	if err := ga.computeFirstSets(); err != nil {
		return nil, err
	}
	return ga, nil
}

// Grammar returns the grammar this analyser operates on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// Iterate until no FIRST set and no ε-flag changes any more. Every pass
// which does not terminate the loop adds at least one terminal or one flag,
// therefore the number of passes is bounded.
func (ga *LRAnalysis) computeFirstSets() error {
	limit := ga.g.SymbolCount()*(len(ga.g.terminals)+1) + 2
	for pass := 1; ; pass++ {
		if pass > limit {
			return &GrammarSyntaxError{Grammar: ga.g.Name,
				Reason: fmt.Sprintf("FIRST sets do not converge after %d passes", limit)}
		}
		changed := false
		for _, r := range ga.g.rules {
			lhs := r.LHS.Value
			f, eps := ga.firstOfSymbols(r.rhs)
			if ga.first[lhs].UnionWith(f) {
				changed = true
			}
			if eps && !ga.eps[lhs] {
				ga.eps[lhs] = true
				changed = true
			}
		}
		if !changed {
			tracer().Debugf("FIRST sets of %s converged after %d passes", ga.g.Name, pass)
			return nil
		}
	}
}

// firstOfSymbols returns FIRST(α) without ε, and a flag telling if α ⇒* ε.
func (ga *LRAnalysis) firstOfSymbols(alpha []*Symbol) (*intsets.Sparse, bool) {
	f := &intsets.Sparse{}
	for _, A := range alpha {
		f.UnionWith(ga.first[A.Value])
		if !ga.eps[A.Value] {
			return f, false
		}
	}
	return f, true
}

// firstOfSequence returns FIRST(β a) as a set of terminal values.
func (ga *LRAnalysis) firstOfSequence(beta []*Symbol, la *Symbol) *intsets.Sparse {
	f, eps := ga.firstOfSymbols(beta)
	if eps && la != nil {
		f.Insert(la.Value)
	}
	return f
}

// First returns FIRST(A) for a symbol, sorted by symbol value. For terminals,
// this is the terminal itself. ε is not part of the result, check with
// DerivesEpsilon.
func (ga *LRAnalysis) First(A *Symbol) []*Symbol {
	if A == nil {
		return nil
	}
	return ga.symbolsOf(ga.first[A.Value])
}

// DerivesEpsilon is true if A ⇒* ε.
func (ga *LRAnalysis) DerivesEpsilon(A *Symbol) bool {
	return A != nil && ga.eps[A.Value]
}

// FirstOfSequence returns FIRST(β a), i.e. the terminals which may start a
// string derived from β followed by terminal a. Passing a nil lookahead
// returns FIRST(β) without ε.
func (ga *LRAnalysis) FirstOfSequence(beta []*Symbol, la *Symbol) []*Symbol {
	return ga.symbolsOf(ga.firstOfSequence(beta, la))
}

func (ga *LRAnalysis) symbolsOf(set *intsets.Sparse) []*Symbol {
	values := set.AppendTo(nil) // ascending order
	syms := make([]*Symbol, len(values))
	for i, v := range values {
		syms[i] = ga.g.symbol(v)
	}
	return syms
}

// FirstSetsString returns a listing of FIRST sets of all non-terminals, one
// line per non-terminal, in order of symbol values.
func FirstSetsString(ga *LRAnalysis) string {
	var b strings.Builder
	ga.g.EachNonTerminal(func(A *Symbol) interface{} {
		names := make([]string, 0, ga.first[A.Value].Len()+1)
		for _, t := range ga.First(A) {
			names = append(names, t.Name)
		}
		sort.Strings(names)
		if ga.eps[A.Value] {
			names = append(names, Epsilon)
		}
		fmt.Fprintf(&b, "FIRST(%s) = { %s }\n", A, strings.Join(names, " "))
		return nil
	})
	return b.String()
}
