package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/iteratable"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/sparse"
)

// Actions for parser action tables. Reduce actions are encoded as the
// serial number of the rule to reduce, which is always > 0.
const (
	ShiftAction  = -1
	AcceptAction = -2
)

// === Closure and Goto-Set Operations =======================================

// Refer to "Compilers: Principles, Techniques, and Tools" by Aho, Lam, Sethi
// and Ullman, Section 4.7.2 Constructing LR(1) Sets of Items.

// closure of a single item.
func (ga *LRAnalysis) closure(i Item) *iteratable.Set {
	S := newItemSet()
	S.Add(i)
	return ga.closureSet(S)
}

// closureSet computes the LR(1) closure of an item set: for every item
// [A → α • B β, a] and every rule B → γ, add [B → • γ, b] for every b in
// FIRST(β a). Items added during iteration are visited, too.
func (ga *LRAnalysis) closureSet(S *iteratable.Set) *iteratable.Set {
	C := S.Copy() // add start items to closure
	C.IterateOnce()
	for C.Next() {
		item := asItem(C.Item())
		B := item.PeekSymbol() // get symbol B after dot
		if B == nil || B.IsTerminal() {
			continue
		}
		lookaheads := ga.firstOfSequence(item.rest(), item.la).AppendTo(nil)
		for _, r := range ga.g.FindNonTermRules(B) {
			for _, b := range lookaheads {
				C.Add(Item{rule: r, dot: 0, la: ga.g.symbol(b)})
			}
		}
	}
	return C
}

func (ga *LRAnalysis) gotoSet(closure *iteratable.Set, A *Symbol) *iteratable.Set {
	// for every item in closure C
	// if item in C:  N -> ... *A ...
	//     advance N -> ... A * ...
	gotoset := newItemSet()
	for _, x := range closure.Values() {
		i := asItem(x)
		if i.PeekSymbol() == A {
			gotoset.Add(i.Advance())
		}
	}
	return gotoset
}

// gotoSetClosure computes goto(I, A). An empty result means there is no
// transition on A.
func (ga *LRAnalysis) gotoSetClosure(i *iteratable.Set, A *Symbol) *iteratable.Set {
	gotoset := ga.gotoSet(i, A)
	if gotoset.Empty() {
		return gotoset
	}
	gclosure := ga.closureSet(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", itemSetString(i), A, itemSetString(gclosure))
	return gclosure
}

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID     uint            // serial ID of this state
	items  *iteratable.Set // configuration items within this state
	Accept bool            // is this an accepting state?
}

// CFSM edge between 2 states, directed and with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label *Symbol
}

type transition struct {
	from uint
	sym  int
}

// Dump is a debugging helper
func (s *CFSMState) Dump() {
	tracer().Debugf("--- state %03d -----------", s.ID)
	Dump(s.items)
	tracer().Debugf("-------------------------")
}

// Items returns the items of a state in canonical order.
func (s *CFSMState) Items() []Item {
	return sortedItems(s.items)
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		i := asItem(x)
		if i.rule.Serial == 0 && i.PeekSymbol() == nil {
			return true
		}
	}
	return false
}

// CFSM is the characteristic finite state machine for an LR(1) grammar, i.e.
// the canonical collection of LR(1) item sets. Will be constructed by a
// TableGenerator. Clients normally do not use it directly. Nevertheless,
// there are some methods defined on it, e.g, for debugging purposes, or even
// to compute your own tables from it.
//
// State IDs are dense and assigned in order of discovery, S0 having ID 0.
type CFSM struct {
	g      *Grammar                  // this CFSM is for Grammar g
	states []*CFSMState              // all the states, indexed by ID
	byKey  map[string][]*CFSMState   // states by item set fingerprint
	edges  *arraylist.List           // all the edges between states
	trans  map[transition]*CFSMState // goto transitions
	S0     *CFSMState                // start state
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	return &CFSM{
		g:     g,
		byKey: make(map[string][]*CFSMState),
		edges: arraylist.New(),
		trans: make(map[transition]*CFSMState),
	}
}

// addState adds a state for an item set to the CFSM, if it is not yet
// present. Returns the state and a flag telling if it is new.
func (c *CFSM) addState(iset *iteratable.Set) (*CFSMState, bool) {
	key := fingerprint(iset)
	for _, s := range c.byKey[key] {
		if s.items.Equals(iset) {
			return s, false
		}
	}
	s := &CFSMState{ID: uint(len(c.states)), items: iset}
	s.Accept = s.containsCompletedStartRule()
	c.states = append(c.states, s)
	c.byKey[key] = append(c.byKey[key], s)
	return s, true
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym *Symbol) {
	c.edges.Add(&cfsmEdge{from: s0, to: s1, label: sym})
	c.trans[transition{from: s0.ID, sym: sym.Value}] = s1
}

// StateCount returns the number of states.
func (c *CFSM) StateCount() int {
	return len(c.states)
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	return append([]*CFSMState(nil), c.states...)
}

// State returns the state with a given ID, or nil.
func (c *CFSM) State(id uint) *CFSMState {
	if int(id) >= len(c.states) {
		return nil
	}
	return c.states[id]
}

// Transition returns goto(s, A) as a state, or nil if there is no transition.
func (c *CFSM) Transition(s *CFSMState, A *Symbol) *CFSMState {
	if s == nil || A == nil {
		return nil
	}
	return c.trans[transition{from: s.ID, sym: A.Value}]
}

// outgoing returns the edges leaving s, in order of creation.
func (c *CFSM) outgoing(s *CFSMState) []*cfsmEdge {
	it := c.edges.Iterator()
	r := make([]*cfsmEdge, 0, 2)
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		if e.from == s {
			r = append(r, e)
		}
	}
	return r
}

// dottedSymbols returns the symbols after the dot of the items of s,
// ordered by symbol value.
func dottedSymbols(s *CFSMState) []*Symbol {
	values := treeset.NewWith(utils.IntComparator)
	syms := make(map[int]*Symbol)
	for _, x := range s.items.Values() {
		if A := asItem(x).PeekSymbol(); A != nil {
			values.Add(A.Value)
			syms[A.Value] = A
		}
	}
	r := make([]*Symbol, 0, values.Size())
	for _, v := range values.Values() {
		r = append(r, syms[v.(int)])
	}
	return r
}

// Construct the characteristic finite state machine CFSM for a grammar.
// States are processed in order of discovery.
func (lrgen *TableGenerator) buildCFSM() *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := lrgen.g
	cfsm := emptyCFSM(G)
	item := StartItem(G)
	tracer().Debugf("Start item=%v", item)
	closure0 := lrgen.ga.closure(item)
	cfsm.S0, _ = cfsm.addState(closure0)
	cfsm.S0.Dump()
	worklist := arraylist.New()
	worklist.Add(cfsm.S0)
	for !worklist.Empty() {
		x, _ := worklist.Get(0)
		worklist.Remove(0)
		s := x.(*CFSMState)
		for _, A := range dottedSymbols(s) {
			gotoset := lrgen.ga.gotoSetClosure(s.items, A)
			if gotoset.Empty() {
				continue
			}
			snew, isNew := cfsm.addState(gotoset)
			if isNew {
				worklist.Add(snew)
				snew.Dump()
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Infof("CFSM for %s has %d states", G.Name, len(cfsm.states))
	return cfsm
}

// WriteStates writes a listing of all states with their items and
// transitions. The listing is deterministic for a given grammar.
func (c *CFSM) WriteStates(w io.Writer) error {
	for _, s := range c.states {
		acc := ""
		if s.Accept {
			acc = " (accept)"
		}
		if _, err := fmt.Fprintf(w, "state %d%s\n", s.ID, acc); err != nil {
			return err
		}
		for _, i := range s.Items() {
			if _, err := fmt.Fprintf(w, "    %s\n", i); err != nil {
				return err
			}
		}
		for _, e := range c.outgoing(s) {
			if _, err := fmt.Fprintf(w, "    on %s goto %d\n", e.label, e.to.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

// CFSM2GraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) CFSM2GraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.states {
		fmt.Fprintf(&b, "s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(s))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		fmt.Fprintf(&b, "s%03d -> s%03d [label=\"%s\"]\n", edge.from.ID, edge.to.ID,
			graphvizEscaper.Replace(edge.label.Name))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

var graphvizEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`,
	`|`, `\|`, `<`, `\<`, `>`, `\>`)

func forGraphviz(s *CFSMState) string {
	var b strings.Builder
	for _, i := range s.Items() {
		b.WriteString(graphvizEscaper.Replace(i.String()))
		b.WriteString(`\l`)
	}
	return b.String()
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

// === Table Generation ======================================================

// Option configures table generation.
type Option func(*TableGenerator)

// PreferShift resolves shift/reduce conflicts in favour of the shift. This
// is the classic treatment of the dangling else. Resolved conflicts are
// traced and kept as a record. Reduce/reduce conflicts are always an error.
func PreferShift() Option {
	return func(lrgen *TableGenerator) {
		lrgen.preferShift = true
	}
}

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an LR(1)-parser recognizing grammar G.
type TableGenerator struct {
	g           *Grammar
	ga          *LRAnalysis
	dfa         *CFSM
	gototable   *Table
	actiontable *Table
	preferShift bool
	conflicts   []Conflict
	cells       map[actionCellKey][]int32 // all actions entered per ACTION cell
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis, opts ...Option) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	for _, opt := range opts {
		opt(lrgen)
	}
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// Usually clients call lrgen.CreateTables() beforehand, but it is possible
// to call lrgen.CFSM() directly. The CFSM will be created, if it has not
// been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = lrgen.buildCFSM()
	}
	return lrgen.dfa
}

// GotoTable returns the GOTO table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) GotoTable() *Table {
	if lrgen.gototable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.gototable
}

// ActionTable returns the ACTION table for LR-parsing a grammar. The tables have to be
// built by calling CreateTables() previously.
func (lrgen *TableGenerator) ActionTable() *Table {
	if lrgen.actiontable == nil {
		tracer().P("lr", "gen").Errorf("tables not yet initialized")
	}
	return lrgen.actiontable
}

// Conflicts returns all conflicts found by CreateTables, resolved ones
// included.
func (lrgen *TableGenerator) Conflicts() []Conflict {
	return append([]Conflict(nil), lrgen.conflicts...)
}

// CreateTables creates the CFSM, the GOTO table and the ACTION table. If the
// grammar is not LR(1), the tables are still created, showing conflicting
// cells, and a *GrammarConflictError is returned.
func (lrgen *TableGenerator) CreateTables() error {
	lrgen.dfa = lrgen.buildCFSM()
	lrgen.gototable = lrgen.BuildGotoTable()
	lrgen.actiontable = lrgen.BuildLR1ActionTable()
	var unresolved []Conflict
	for _, c := range lrgen.conflicts {
		if !c.Resolved {
			unresolved = append(unresolved, c)
		}
	}
	if len(unresolved) > 0 {
		return &GrammarConflictError{Grammar: lrgen.g.Name, Conflicts: unresolved}
	}
	return nil
}

// AcceptingStates returns all states of the CFSM which represent an accept action.
// Clients have to call CreateTables() first.
func (lrgen *TableGenerator) AcceptingStates() []uint {
	if lrgen.dfa == nil {
		tracer().Errorf("tables not yet generated; call CreateTables() first")
		return nil
	}
	acc := make([]uint, 0, 1)
	for _, state := range lrgen.dfa.states {
		if state.Accept {
			acc = append(acc, state.ID)
		}
	}
	return acc
}

// BuildGotoTable builds the GOTO table. This is normally not called directly, but rather
// via CreateTables(). The GOTO table has a column for every symbol; columns of
// terminals hold the targets of shift actions.
func (lrgen *TableGenerator) BuildGotoTable() *Table {
	statescnt := lrgen.CFSM().StateCount()
	tracer().Infof("GOTO table of size %d x %d", statescnt, lrgen.g.SymbolCount())
	gototable := &Table{
		matrix: sparse.NewIntMatrix(statescnt, lrgen.g.SymbolCount(), sparse.DefaultNullValue),
	}
	it := lrgen.dfa.edges.Iterator()
	for it.Next() {
		e := it.Value().(*cfsmEdge)
		gototable.set(e.from.ID, e.label.Value, int32(e.to.ID))
	}
	return gototable
}

// BuildLR1ActionTable constructs the LR(1) ACTION table. This method is
// normally not called by clients, but rather via CreateTables().
//
// For building an ACTION table we iterate over all the states of the CFSM.
// An inner loop iterates over all the LR(1) items within a CFSM-state.
// If an item has a terminal a immediately after the dot, we produce a shift
// entry for a. If an item's dot is behind the complete RHS of a rule, we
// produce a reduce-entry for the rule for the item's lookahead, or an
// accept-entry for the augmented start rule.
//
// The table is returned as a sparse matrix, where every entry may consist of up
// to 2 entries, thus allowing for shift/reduce- or reduce/reduce-conflicts.
func (lrgen *TableGenerator) BuildLR1ActionTable() *Table {
	statescnt := lrgen.CFSM().StateCount()
	tracer().Infof("ACTION table of size %d x %d", statescnt, len(lrgen.g.terminals))
	actions := &Table{
		matrix: sparse.NewIntMatrix(statescnt, len(lrgen.g.terminals), sparse.DefaultNullValue),
	}
	lrgen.conflicts = nil
	lrgen.cells = make(map[actionCellKey][]int32)
	for _, state := range lrgen.dfa.states {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, i := range state.Items() {
			A := i.PeekSymbol()
			switch {
			case A != nil && A.IsTerminal():
				lrgen.enter(actions, state, A, ShiftAction)
			case A == nil && i.rule.Serial == 0:
				lrgen.enter(actions, state, i.la, AcceptAction)
			case A == nil:
				lrgen.enter(actions, state, i.la, int32(i.rule.Serial))
			}
		}
	}
	return actions
}

// enter writes an action into a cell of the ACTION table, detecting conflicts.
// All distinct actions entered into a cell are kept in lrgen.cells, as the
// table itself holds at most two of them.
//
// A reduce (or accept) meeting a different reduce is a reduce/reduce
// conflict, which is never resolved. A shift/reduce conflict is resolved as shift only if the
// cell holds at most one reduce.
func (lrgen *TableGenerator) enter(actions *Table, state *CFSMState, a *Symbol, v int32) {
	cell := actionCellKey{state: state.ID, terminal: a.Value}
	entered := lrgen.cells[cell]
	for _, x := range entered {
		if x == v { // relax, identical action
			return
		}
	}
	lrgen.cells[cell] = append(entered, v)
	if len(entered) == 0 {
		actions.set(state.ID, a.Value, v)
		tracer().Debugf("    %s", actionEntry(state.ID, a, actions))
		return
	}
	c := Conflict{
		Kind:     ShiftReduce,
		State:    state.ID,
		Terminal: a,
	}
	reduces, shifts := 0, 0 // accept counts as reduce of the start rule
	for _, x := range lrgen.cells[cell] {
		c.Actions = append(c.Actions, lrgen.decode(state.ID, a, x))
		if x == ShiftAction {
			shifts++
		} else {
			reduces++
		}
	}
	if v != ShiftAction && reduces > 1 || shifts == 0 {
		c.Kind = ReduceReduce
	}
	if c.Kind == ShiftReduce && lrgen.preferShift && reduces == 1 {
		c.Resolved = true
		actions.set(state.ID, a.Value, ShiftAction)
		tracer().Infof("%s", c)
	} else {
		actions.add(state.ID, a.Value, v)
		tracer().Errorf("%s", c)
	}
	lrgen.conflicts = append(lrgen.conflicts, c)
}

type actionCellKey struct {
	state    uint
	terminal int
}

// decode translates an encoded ACTION table value into an Action.
func (lrgen *TableGenerator) decode(state uint, a *Symbol, v int32) Action {
	switch {
	case v == AcceptAction:
		return Action{Type: Accept}
	case v == ShiftAction:
		act := Action{Type: Shift}
		if to := lrgen.gototable.Value(state, a.Value); to != lrgen.gototable.NullValue() {
			act.State = uint(to)
		}
		return act
	case v > 0 && int(v) < len(lrgen.g.rules):
		return Action{Type: Reduce, Rule: lrgen.g.rules[v]}
	}
	return Action{Type: NoAction}
}

// --- Actions ---------------------------------------------------------------

// ActionType is the kind of a parser action.
type ActionType int8

// Kinds of parser actions. NoAction denotes a syntax error.
const (
	NoAction ActionType = iota
	Shift
	Reduce
	Accept
)

// Action is a decoded entry of the ACTION table. State is the target state of
// a shift, Rule is the rule of a reduce.
type Action struct {
	Type  ActionType
	State uint
	Rule  *Rule
}

func (a Action) String() string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("shift %d", a.State)
	case Reduce:
		return fmt.Sprintf("reduce %d (%s)", a.Rule.Serial, a.Rule)
	case Accept:
		return "accept"
	}
	return "error"
}

// short returns the compact form of an action used in table listings.
func (a Action) short() string {
	switch a.Type {
	case Shift:
		return fmt.Sprintf("s%d", a.State)
	case Reduce:
		return fmt.Sprintf("r%d", a.Rule.Serial)
	case Accept:
		return "acc"
	}
	return ""
}

// --- Tables ----------------------------------------------------------------

// Table is a parser table, indexed by state ID and symbol value.
type Table struct {
	matrix *sparse.IntMatrix
}

func (t *Table) add(i uint, j int, val int32) {
	t.matrix.Add(int(i), j, val)
}

func (t *Table) set(i uint, j int, val int32) {
	t.matrix.Set(int(i), j, val)
}

// NullValue is the value of empty cells.
func (t *Table) NullValue() int32 {
	return t.matrix.NullValue()
}

// Value returns the primary entry of cell (i,j).
func (t *Table) Value(i uint, j int) int32 {
	if !t.inRange(i, j) {
		return t.matrix.NullValue()
	}
	return t.matrix.Value(int(i), j)
}

// Values returns both entries of cell (i,j). The second value is the null
// value unless the cell holds a conflict.
func (t *Table) Values(i uint, j int) (int32, int32) {
	if !t.inRange(i, j) {
		return t.matrix.NullValue(), t.matrix.NullValue()
	}
	return t.matrix.Values(int(i), j)
}

// ValueCount returns the number of non-empty cells.
func (t *Table) ValueCount() int {
	return t.matrix.ValueCount()
}

func (t *Table) inRange(i uint, j int) bool {
	return int(i) < t.matrix.M() && j >= 0 && j < t.matrix.N()
}

func actionEntry(stateID uint, la *Symbol, aT *Table) string {
	a1, a2 := aT.Values(stateID, la.Value)
	return fmt.Sprintf("Action(%d,%s) = (%s,%s)", stateID, la, valstring(a1, aT), valstring(a2, aT))
}

// valstring is a short helper to stringify an action table entry.
func valstring(v int32, m *Table) string {
	if v == m.NullValue() {
		return "<none>"
	} else if v == AcceptAction {
		return "<accept>"
	} else if v == ShiftAction {
		return "<shift>"
	}
	return fmt.Sprintf("<reduce %d>", v)
}
