package lr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dragonGrammar(t *testing.T) *Grammar {
	b := NewGrammarBuilder("G")
	b.LHS("S").N("C").N("C").End()
	b.LHS("C").T("c").N("C").End()
	b.LHS("C").T("d").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	return g
}

func TestBuilderSymbolValues(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	g := dragonGrammar(t)
	g.Dump()
	assert.Equal(t, 4, g.Size())
	assert.Equal(t, "S' → S", g.Rule(0).String())
	assert.Equal(t, "C → c C", g.Rule(2).String())
	assert.Equal(t, 0, g.EOF.Value)
	assert.Equal(t, EndMarker, g.EOF.Name)
	c, d := g.Terminal("c"), g.Terminal("d")
	require.NotNil(t, c)
	require.NotNil(t, d)
	assert.Equal(t, 1, c.Value)
	assert.Equal(t, 2, d.Value)
	assert.Equal(t, 3, g.AugmentedStart().Value)
	assert.Equal(t, "S'", g.AugmentedStart().Name)
	assert.Equal(t, 4, g.Start().Value)
	C, ok := g.SymbolByName("C")
	require.True(t, ok)
	assert.False(t, C.IsTerminal())
	assert.Equal(t, 5, C.Value)
	assert.Nil(t, g.Terminal("C"))
	assert.Len(t, g.Terminals(), 3)
	assert.Len(t, g.NonTerminals(), 2)
	assert.Equal(t, 6, g.SymbolCount())
	assert.Len(t, g.FindNonTermRules(C), 2)
	assert.Nil(t, g.Rule(17))
}

func TestBuilderEpsilonAndDuplicates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Dup")
	b.LHS("A").T("a").End()
	b.LHS("A").T("a").End()
	b.LHS("A").T("b").Epsilon()
	g, err := b.Grammar()
	require.NoError(t, err)
	assert.Equal(t, 3, g.Size())
	assert.True(t, g.Rule(2).IsEps())
	assert.Equal(t, "A → ε", g.Rule(2).String())
	assert.Len(t, g.Terminals(), 2) // $ and a; b has been discarded
}

func TestAugmentedStartIsFresh(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("Primes")
	b.LHS("S").N("S'").End()
	b.LHS("S'").T("a").End()
	g, err := b.Grammar()
	require.NoError(t, err)
	assert.Equal(t, "S''", g.AugmentedStart().Name)
	assert.Equal(t, g.Start(), g.Rule(0).RHS()[0])
}

func TestBuilderErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	for _, tc := range []struct {
		name   string
		build  func(b *GrammarBuilder)
		reason string
	}{
		{"empty", func(b *GrammarBuilder) {}, "no productions"},
		{"undefined", func(b *GrammarBuilder) { b.LHS("S").N("X").End() }, "undefined non-terminal X"},
		{"mixed", func(b *GrammarBuilder) { b.LHS("S").T("S").End() }, "terminal and as non-terminal"},
		{"eof", func(b *GrammarBuilder) { b.LHS("S").T("$").End() }, "reserved"},
		{"noname", func(b *GrammarBuilder) { b.LHS("").T("a").End() }, "empty symbol name"},
	} {
		b := NewGrammarBuilder(tc.name)
		tc.build(b)
		_, err := b.Grammar()
		require.Error(t, err, tc.name)
		var serr *GrammarSyntaxError
		require.True(t, errors.As(err, &serr), tc.name)
		assert.True(t, strings.Contains(serr.Reason, tc.reason), "%s: %v", tc.name, err)
	}
}
