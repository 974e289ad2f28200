package lr

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/schuko/tracing"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/iteratable"
)

// Item is an LR(1) item: a rule with a dot position in its RHS and a
// lookahead terminal,
//
//    [A → α • β, a]
//
// Items are values and may be compared with ==.
type Item struct {
	rule *Rule
	dot  int
	la   *Symbol
}

// StartItem returns the item [S' → • S, $] for the augmented start rule.
func StartItem(g *Grammar) Item {
	return Item{rule: g.rules[0], dot: 0, la: g.EOF}
}

// Rule returns the rule of an item.
func (i Item) Rule() *Rule {
	return i.rule
}

// Dot returns the dot position, 0…len(RHS).
func (i Item) Dot() int {
	return i.dot
}

// Lookahead returns the lookahead terminal of an item.
func (i Item) Lookahead() *Symbol {
	return i.la
}

// PeekSymbol returns the symbol after the dot, or nil for a completed item.
func (i Item) PeekSymbol() *Symbol {
	if i.dot >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot]
}

// Advance moves the dot one symbol to the right. Advancing a completed item
// is a no-op.
func (i Item) Advance() Item {
	if i.dot < len(i.rule.rhs) {
		i.dot++
	}
	return i
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix() []*Symbol {
	return i.rule.rhs[:i.dot]
}

// rest returns the symbols after the symbol after the dot.
func (i Item) rest() []*Symbol {
	if i.dot+1 >= len(i.rule.rhs) {
		return nil
	}
	return i.rule.rhs[i.dot+1:]
}

func (i Item) String() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(i.rule.LHS.Name)
	b.WriteString(" →")
	for k, A := range i.rule.rhs {
		if k == i.dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(A.Name)
	}
	if i.dot == len(i.rule.rhs) {
		b.WriteString(" •")
	}
	fmt.Fprintf(&b, ", %s]", i.la)
	return b.String()
}

func asItem(x interface{}) Item {
	return x.(Item)
}

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(0)
}

// itemComparator orders items by rule serial, dot position and lookahead.
func itemComparator(x1, x2 interface{}) int {
	i1, i2 := asItem(x1), asItem(x2)
	if c := utils.IntComparator(i1.rule.Serial, i2.rule.Serial); c != 0 {
		return c
	}
	if c := utils.IntComparator(i1.dot, i2.dot); c != 0 {
		return c
	}
	return utils.IntComparator(i1.la.Value, i2.la.Value)
}

// sortedItems returns the items of S in canonical order.
func sortedItems(S *iteratable.Set) []Item {
	ts := treeset.NewWith(itemComparator)
	ts.Add(S.Values()...)
	items := make([]Item, 0, ts.Size())
	it := ts.Iterator()
	for it.Next() {
		items = append(items, asItem(it.Value()))
	}
	return items
}

type itemKey struct {
	Rule int
	Dot  int
	LA   int
}

type itemSetFingerprint struct {
	Items []itemKey
}

// fingerprint computes a hash over the canonical form of an item set. Equal
// item sets have equal fingerprints; clients still have to compare sets with
// equal fingerprints.
func fingerprint(S *iteratable.Set) string {
	fp := itemSetFingerprint{}
	for _, i := range sortedItems(S) {
		fp.Items = append(fp.Items, itemKey{Rule: i.rule.Serial, Dot: i.dot, LA: i.la.Value})
	}
	h, err := structhash.Hash(fp, 1)
	if err != nil {
		panic(fmt.Sprintf("cannot hash item set: %v", err))
	}
	return h
}

// Dump is a debugging helper, writing an item set to the trace.
func Dump(S *iteratable.Set) {
	if tracer().GetTraceLevel() != tracing.LevelDebug {
		return
	}
	for _, i := range sortedItems(S) {
		tracer().Debugf("    %s", i)
	}
}

func itemSetString(S *iteratable.Set) string {
	var b strings.Builder
	b.WriteString("{")
	for k, i := range sortedItems(S) {
		if k > 0 {
			b.WriteString(",")
		}
		b.WriteString(" ")
		b.WriteString(i.String())
	}
	b.WriteString(" }")
	return b.String()
}
