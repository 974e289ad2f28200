package lr

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(syms []*Symbol) []string {
	r := make([]string, len(syms))
	for i, A := range syms {
		r[i] = A.Name
	}
	return r
}

func epsGrammar(t *testing.T) *LRAnalysis {
	src := `S → A B 'c'
A → 'a' | ε
B → 'b' | ε
`
	g, err := ParseGrammar("Eps", strings.NewReader(src))
	require.NoError(t, err)
	ga, err := Analysis(g)
	require.NoError(t, err)
	return ga
}

func TestFirstOfTerminals(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	ga := epsGrammar(t)
	ga.Grammar().EachTerminal(func(a *Symbol) interface{} {
		assert.Equal(t, []*Symbol{a}, ga.First(a))
		assert.False(t, ga.DerivesEpsilon(a))
		return nil
	})
}

func TestFirstWithEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	ga := epsGrammar(t)
	g := ga.Grammar()
	S, _ := g.SymbolByName("S")
	A, _ := g.SymbolByName("A")
	B, _ := g.SymbolByName("B")
	assert.ElementsMatch(t, []string{"'a'", "'b'", "'c'"}, names(ga.First(S)))
	assert.Equal(t, []string{"'a'"}, names(ga.First(A)))
	assert.False(t, ga.DerivesEpsilon(S))
	assert.True(t, ga.DerivesEpsilon(A))
	assert.True(t, ga.DerivesEpsilon(B))
	assert.ElementsMatch(t, []string{"$", "'a'", "'b'"},
		names(ga.FirstOfSequence([]*Symbol{A, B}, g.EOF)))
	assert.ElementsMatch(t, []string{"'a'", "'b'"},
		names(ga.FirstOfSequence([]*Symbol{A, B}, nil)))
	assert.ElementsMatch(t, []string{"'b'", "'c'"},
		names(ga.FirstOfSequence([]*Symbol{B, g.Terminal("'c'")}, g.EOF)))
	assert.Equal(t, []string{"$"}, names(ga.FirstOfSequence(nil, g.EOF)))
}

func TestFirstIsSortedByValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	ga := epsGrammar(t)
	S, _ := ga.Grammar().SymbolByName("S")
	first := ga.First(S)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].Value, first[i].Value)
	}
}

func TestFirstSetsString(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	s := FirstSetsString(epsGrammar(t))
	assert.Contains(t, s, "FIRST(A) = { 'a' ε }")
	assert.Contains(t, s, "FIRST(S) = { 'a' 'b' 'c' }")
	assert.NotContains(t, s, "FIRST(S')")
}

func TestLeftRecursionConverges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	src := `E → E '+' T | T
T → T '*' F | F
F → '(' E ')' | ID
`
	g, err := ParseGrammar("Expr", strings.NewReader(src))
	require.NoError(t, err)
	ga, err := Analysis(g)
	require.NoError(t, err)
	E, _ := g.SymbolByName("E")
	assert.ElementsMatch(t, []string{"'('", "ID"}, names(ga.First(E)))
}
