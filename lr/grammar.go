package lr

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Reserved symbol names.
const (
	EndMarker = "$" // name of the end-of-input terminal
	Epsilon   = "ε" // epsilon marker in textual grammars and dumps
)

// === Symbols ===============================================================

// Symbol is a grammar symbol, either a terminal or a non-terminal.
// Symbols are interned per grammar: there is exactly one *Symbol for every
// name, and clients compare symbols by pointer or by Value.
//
// Values are dense: terminals occupy [0…T), the end marker being 0,
// non-terminals occupy [T…T+N), the augmented start symbol being T.
type Symbol struct {
	Name     string
	Value    int
	terminal bool
}

// IsTerminal is true for terminal symbols.
func (A *Symbol) IsTerminal() bool {
	return A.terminal
}

func (A *Symbol) String() string {
	return A.Name
}

// === Rules =================================================================

// Rule is a production of a grammar. Serial is the stable index of a rule;
// rule 0 always is the augmented start rule S' → S.
type Rule struct {
	Serial int
	LHS    *Symbol
	rhs    []*Symbol
}

// RHS returns a copy of the right hand side of a rule.
func (r *Rule) RHS() []*Symbol {
	return append([]*Symbol(nil), r.rhs...)
}

// Len returns the number of symbols on the right hand side.
func (r *Rule) Len() int {
	return len(r.rhs)
}

// IsEps is true for epsilon-productions.
func (r *Rule) IsEps() bool {
	return len(r.rhs) == 0
}

func (r *Rule) String() string {
	return fmt.Sprintf("%s → %s", r.LHS.Name, symbolsString(r.rhs))
}

func symbolsString(syms []*Symbol) string {
	if len(syms) == 0 {
		return Epsilon
	}
	names := make([]string, len(syms))
	for i, A := range syms {
		names[i] = A.Name
	}
	return strings.Join(names, " ")
}

// === Grammar ===============================================================

// Grammar is an augmented context-free grammar. Grammars are immutable once
// constructed; create them with a GrammarBuilder or with ParseGrammar.
type Grammar struct {
	Name         string
	rules        []*Rule
	terminals    []*Symbol
	nonterminals []*Symbol
	symbols      map[string]*Symbol
	rulesByLHS   map[*Symbol][]*Rule
	start        *Symbol
	EOF          *Symbol
}

// Start returns the start symbol of the (un-augmented) grammar.
func (g *Grammar) Start() *Symbol {
	return g.start
}

// AugmentedStart returns the fresh start symbol S' of the augmented grammar.
func (g *Grammar) AugmentedStart() *Symbol {
	return g.rules[0].LHS
}

// Rules returns all rules, including the augmented start rule at index 0.
func (g *Grammar) Rules() []*Rule {
	return append([]*Rule(nil), g.rules...)
}

// Rule returns rule no. i.
func (g *Grammar) Rule(i int) *Rule {
	if i < 0 || i >= len(g.rules) {
		return nil
	}
	return g.rules[i]
}

// Size returns the number of rules, including the augmented start rule.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Terminals returns all terminals, starting with the end marker.
func (g *Grammar) Terminals() []*Symbol {
	return append([]*Symbol(nil), g.terminals...)
}

// NonTerminals returns all non-terminals of the grammar, without the
// augmented start symbol.
func (g *Grammar) NonTerminals() []*Symbol {
	return append([]*Symbol(nil), g.nonterminals[1:]...)
}

// SymbolCount returns the number of symbols, terminals and non-terminals.
func (g *Grammar) SymbolCount() int {
	return len(g.terminals) + len(g.nonterminals)
}

// SymbolByName looks up a symbol. Its kind may be checked with IsTerminal().
func (g *Grammar) SymbolByName(name string) (*Symbol, bool) {
	A, ok := g.symbols[name]
	return A, ok
}

// Terminal looks up a terminal by name. Returns nil if there is no terminal
// with this name.
func (g *Grammar) Terminal(name string) *Symbol {
	if A, ok := g.symbols[name]; ok && A.terminal {
		return A
	}
	return nil
}

// symbol returns the symbol for a symbol value.
func (g *Grammar) symbol(value int) *Symbol {
	if value < len(g.terminals) {
		return g.terminals[value]
	}
	return g.nonterminals[value-len(g.terminals)]
}

// FindNonTermRules returns all rules with LHS A, in serial order.
func (g *Grammar) FindNonTermRules(A *Symbol) []*Rule {
	return g.rulesByLHS[A]
}

// EachSymbol iterates over all symbols of the grammar, in order of their values.
// The mapper's return value is collected into the result slice, if non-nil.
func (g *Grammar) EachSymbol(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.terminals {
		if x := mapper(A); x != nil {
			r = append(r, x)
		}
	}
	for _, A := range g.nonterminals {
		if x := mapper(A); x != nil {
			r = append(r, x)
		}
	}
	return r
}

// EachTerminal iterates over all terminals, starting with the end marker.
func (g *Grammar) EachTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.terminals {
		if x := mapper(A); x != nil {
			r = append(r, x)
		}
	}
	return r
}

// EachNonTerminal iterates over all non-terminals, except the augmented start symbol.
func (g *Grammar) EachNonTerminal(mapper func(A *Symbol) interface{}) []interface{} {
	var r []interface{}
	for _, A := range g.nonterminals[1:] {
		if x := mapper(A); x != nil {
			r = append(r, x)
		}
	}
	return r
}

// Dump is a debugging helper, writing all rules to the trace.
func (g *Grammar) Dump() {
	tracer().Debugf("--- grammar %s ---------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.Serial, r)
	}
	tracer().Debugf("-----------------------------------------")
}

// === Grammar Builder =======================================================

// GrammarBuilder is a builder type for grammars. Clients add rules, consisting
// of non-terminals and terminals. Example:
//
//    b := lr.NewGrammarBuilder("G")
//    b.LHS("S").N("C").N("C").End()    // S  →  C C
//    b.LHS("C").T("c").N("C").End()    // C  →  c C
//    b.LHS("C").T("d").End()           // C  →  d
//    b.LHS("D").Epsilon()              // D  →  ε
//    g, err := b.Grammar()
//
// The first rule's LHS is the start symbol. Identical rules are entered only once.
type GrammarBuilder struct {
	name  string
	rules []*RuleBuilder
}

// RuleBuilder collects the RHS of a single rule.
type RuleBuilder struct {
	gb   *GrammarBuilder
	lhs  string
	rhs  []symref
	line int
}

type symref struct {
	name     string
	terminal bool
	line     int
}

// NewGrammarBuilder creates a builder for a grammar with a given name.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{name: name}
}

// LHS starts a new rule for non-terminal `name`.
func (gb *GrammarBuilder) LHS(name string) *RuleBuilder {
	return &RuleBuilder{gb: gb, lhs: name}
}

// atLine records a source line for error messages.
func (rb *RuleBuilder) atLine(line int) *RuleBuilder {
	rb.line = line
	return rb
}

// N appends a non-terminal to the RHS.
func (rb *RuleBuilder) N(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, symref{name: name, line: rb.line})
	return rb
}

// T appends a terminal to the RHS.
func (rb *RuleBuilder) T(name string) *RuleBuilder {
	rb.rhs = append(rb.rhs, symref{name: name, terminal: true, line: rb.line})
	return rb
}

// End closes a rule.
func (rb *RuleBuilder) End() *GrammarBuilder {
	rb.gb.rules = append(rb.gb.rules, rb)
	return rb.gb
}

// Epsilon closes a rule with an empty RHS. Symbols appended before are discarded.
func (rb *RuleBuilder) Epsilon() *GrammarBuilder {
	rb.rhs = nil
	return rb.End()
}

// Grammar creates the augmented grammar from the rules entered so far.
// It returns a *GrammarSyntaxError if the rules do not form a valid grammar.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if len(gb.rules) == 0 {
		return nil, gb.fail(0, "grammar has no productions")
	}
	g := &Grammar{
		Name:       gb.name,
		symbols:    make(map[string]*Symbol),
		rulesByLHS: make(map[*Symbol][]*Rule),
	}
	heads := make(map[string]int) // name → line of first definition
	var headOrder []string
	for _, rb := range gb.rules {
		if err := gb.checkName(rb.lhs, rb.line); err != nil {
			return nil, err
		}
		if _, ok := heads[rb.lhs]; !ok {
			heads[rb.lhs] = rb.line
			headOrder = append(headOrder, rb.lhs)
		}
	}
	// terminals come first, in order of appearance
	g.EOF = g.intern(EndMarker, true)
	for _, rb := range gb.rules {
		for _, ref := range rb.rhs {
			if err := gb.checkName(ref.name, ref.line); err != nil {
				return nil, err
			}
			_, isHead := heads[ref.name]
			if ref.terminal && isHead {
				return nil, gb.fail(ref.line, fmt.Sprintf("symbol %s used as terminal and as non-terminal", ref.name))
			}
			if !ref.terminal && !isHead {
				return nil, gb.fail(ref.line, fmt.Sprintf("undefined non-terminal %s", ref.name))
			}
			if ref.terminal {
				g.intern(ref.name, true)
			}
		}
	}
	startName := gb.rules[0].lhs
	primed := startName + "'"
	for g.symbols[primed] != nil || slices.Contains(headOrder, primed) {
		primed += "'"
	}
	augmented := g.intern(primed, false)
	for _, name := range headOrder {
		g.intern(name, false)
	}
	g.start = g.symbols[startName]
	g.addRule(augmented, []*Symbol{g.start})
	for _, rb := range gb.rules {
		rhs := make([]*Symbol, len(rb.rhs))
		for i, ref := range rb.rhs {
			rhs[i] = g.symbols[ref.name]
		}
		g.addRule(g.symbols[rb.lhs], rhs)
	}
	tracer().Debugf("grammar %s has %d rules, %d terminals and %d non-terminals",
		g.Name, len(g.rules), len(g.terminals), len(g.nonterminals))
	return g, nil
}

func (gb *GrammarBuilder) checkName(name string, line int) error {
	switch {
	case name == "":
		return gb.fail(line, "empty symbol name")
	case name == EndMarker:
		return gb.fail(line, fmt.Sprintf("symbol name %s is reserved for the end marker", EndMarker))
	case name == Epsilon:
		return gb.fail(line, fmt.Sprintf("%s may not be used as a symbol", Epsilon))
	}
	return nil
}

func (gb *GrammarBuilder) fail(line int, reason string) error {
	return &GrammarSyntaxError{Grammar: gb.name, Line: line, Reason: reason}
}

// intern returns the symbol for name, creating it if necessary.
// All terminals have to be interned before the first non-terminal.
func (g *Grammar) intern(name string, terminal bool) *Symbol {
	if A, ok := g.symbols[name]; ok {
		return A
	}
	A := &Symbol{Name: name, terminal: terminal}
	if terminal {
		A.Value = len(g.terminals)
		g.terminals = append(g.terminals, A)
	} else {
		A.Value = len(g.terminals) + len(g.nonterminals)
		g.nonterminals = append(g.nonterminals, A)
	}
	g.symbols[name] = A
	return A
}

// addRule appends a rule, skipping duplicates.
func (g *Grammar) addRule(lhs *Symbol, rhs []*Symbol) {
	for _, r := range g.rulesByLHS[lhs] {
		if sameSymbols(r.rhs, rhs) {
			tracer().Debugf("ignoring duplicate rule %s", r)
			return
		}
	}
	r := &Rule{Serial: len(g.rules), LHS: lhs, rhs: rhs}
	g.rules = append(g.rules, r)
	g.rulesByLHS[lhs] = append(g.rulesByLHS[lhs], r)
}

func sameSymbols(a, b []*Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
