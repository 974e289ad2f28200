package lr

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	src := `# a small grammar
S -> Decl S | ε

Decl → 'int' ID ";" | "void" ID ';'
`
	g, err := ParseGrammar("Decls", strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, "S", g.Start().Name)
	assert.Equal(t, 5, g.Size())
	assert.Equal(t, "S → Decl S", g.Rule(1).String())
	assert.True(t, g.Rule(2).IsEps())
	assert.Equal(t, "Decl → 'int' ID ';'", g.Rule(3).String())
	for _, name := range []string{"'int'", "'void'", "';'", "ID"} {
		assert.NotNil(t, g.Terminal(name), name)
	}
	assert.Nil(t, g.Terminal("\";\""))
}

func TestParseGrammarBareLowercaseIsLiteral(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	g, err := ParseGrammar("Bare", strings.NewReader("S → return S | x"))
	require.NoError(t, err)
	assert.NotNil(t, g.Terminal("'return'"))
	assert.NotNil(t, g.Terminal("'x'"))
}

func TestParseGrammarErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lr")
	defer teardown()
	//
	for _, tc := range []struct {
		src    string
		line   int
		reason string
	}{
		{"", 0, "no productions"},
		{"S 'a'", 1, "no arrow"},
		{"→ 'a'", 1, "no head"},
		{"S → 'a", 1, "unbalanced quote"},
		{"S → ''", 1, "empty terminal literal"},
		{"S → 'a' |", 1, "empty alternative"},
		{"S → 'a' || 'b'", 1, "empty alternative"},
		{"# comment\n\nS → Expr", 3, "undefined non-terminal Expr"},
		{"S → ε 'a'", 1, "only symbol"},
		{"S → aε", 1, "malformed epsilon"},
		{"S → 'a''b'", 1, "missing space"},
		{"S → $", 1, "reserved"},
		{"$ → 'a'", 1, "reserved"},
		{"S → 'a'\nS x → 'b'", 2, "malformed head"},
	} {
		_, err := ParseGrammar("bad", strings.NewReader(tc.src))
		require.Error(t, err, tc.src)
		var serr *GrammarSyntaxError
		require.True(t, errors.As(err, &serr), "%q: %v", tc.src, err)
		assert.Equal(t, tc.line, serr.Line, tc.src)
		assert.True(t, strings.Contains(serr.Reason, tc.reason), "%q: %v", tc.src, err)
	}
}

func TestGrammarSyntaxErrorMessage(t *testing.T) {
	err := &GrammarSyntaxError{Grammar: "G", Line: 3, Text: "S → 'a", Reason: "unbalanced quote"}
	assert.Equal(t, "G: 3: grammar syntax error: unbalanced quote\n    S → 'a", err.Error())
}
