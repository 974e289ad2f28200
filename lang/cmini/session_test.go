package cmini

import (
	"errors"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/lr1"
)

const program = `int max ( int a , int b ) {
    if ( a ) { return a ; } else { return b ; }
}
float pi = 3.14 ;
complex z = 1+2i ;
void main ( ) {
    int x = 5 ;
    char c ;
    while ( x ) { x = ( x ) ; }
    { }
    return ;
}
`

func newSession(t *testing.T, opts ...lr1.Option) *Session {
	cg, err := Compile()
	require.NoError(t, err)
	s, err := NewSession(cg, opts...)
	require.NoError(t, err)
	return s
}

func TestShippedGrammarIsLR1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	cg1, err := Compile()
	require.NoError(t, err)
	cg2, err := Compile()
	require.NoError(t, err)
	assert.Empty(t, cg1.Conflicts())
	assert.Equal(t, cg1.StateCount(), cg2.StateCount())
	assert.Equal(t, cg1.TableData(), cg2.TableData())
	assert.Equal(t, "Program", cg1.Grammar().Start().Name)
	assert.NotNil(t, cg1.Grammar().Terminal("ID"))
	assert.NotNil(t, cg1.Grammar().Terminal("CONSTANT"))
}

func TestAcceptFunction(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	s := newSession(t)
	src := "int add ( int a , int b ) { return a ; }"
	tokens, err := s.Tokenize(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"Keyword", "Identifier", "Delimiter", "Keyword", "Identifier",
		"Delimiter", "Keyword", "Identifier", "Delimiter", "Delimiter", "Keyword", "Identifier",
		"Delimiter", "Delimiter", "EOF"}, categories(tokens))
	result, err := s.Check(src)
	require.NoError(t, err)
	assert.True(t, result.Accepted)
}

func TestAcceptProgram(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	result, err := newSession(t).Check(program)
	require.NoError(t, err)
	assert.True(t, result.Accepted)
}

func TestRejectMalformedExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	result, err := newSession(t).Check("int x = 5 + ;")
	require.Error(t, err)
	assert.False(t, result.Accepted)
	var serr *lr1.SyntaxError
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, 1, serr.Line)
	assert.Equal(t, "+", serr.Found)
	assert.NotEmpty(t, serr.Expected)
	assert.Contains(t, serr.Expected, "';'")
}

func TestSyntaxErrorLines(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	for _, tc := range []struct {
		src      string
		line     int
		found    string
		expected []string
	}{
		{"int main ( ) {\n  int x = 5 ;\n  x = ;\n}", 3, ";", []string{"'('", "CONSTANT", "ID"}},
		{"int x = 0123 ;", 1, "0123", []string{"'('", "CONSTANT", "ID"}},
		{"int main ( ) {\n", 1, "", nil},
		{"return x ;", 1, "return", nil},
	} {
		_, err := newSession(t).Check(tc.src)
		var serr *lr1.SyntaxError
		require.True(t, errors.As(err, &serr), tc.src)
		assert.Equal(t, tc.line, serr.Line, tc.src)
		assert.Equal(t, tc.found, serr.Found, tc.src)
		if tc.expected != nil {
			assert.Equal(t, tc.expected, serr.Expected, tc.src)
		} else {
			assert.NotEmpty(t, serr.Expected, tc.src)
		}
	}
}

func TestSessionIsReusable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	s := newSession(t)
	_, err := s.Check("int x = ;")
	require.Error(t, err)
	result, err := s.Check("int x = 1 ;")
	require.NoError(t, err)
	assert.True(t, result.Accepted)
}

func TestAcceptanceIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	s := newSession(t)
	for _, src := range []string{program, "int add(int a,int b){return a;}", "char c = 'x' ;"} {
		result, err := s.Check(src)
		require.NoError(t, err, src)
		require.True(t, result.Accepted)
		tokens, err := s.Tokenize(src)
		require.NoError(t, err)
		retokenized := strings.Join(lexemes(tokens), " ")
		result, err = s.Check(retokenized)
		require.NoError(t, err, retokenized)
		assert.True(t, result.Accepted)
	}
}

func TestSessionTrace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	result, err := newSession(t, lr1.Trace(true)).Check("int x ;")
	require.NoError(t, err)
	require.NotEmpty(t, result.Steps)
	assert.Equal(t, lr.Accept, result.Steps[len(result.Steps)-1].Action.Type)
}

func TestCustomGrammarWithConflict(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	src := `Stmt → 'if' '(' Expr ')' Stmt | 'if' '(' Expr ')' Stmt 'else' Stmt | ID ';'
Expr → ID
`
	_, err := CompileGrammar("dangling", strings.NewReader(src))
	var cerr *lr.GrammarConflictError
	require.True(t, errors.As(err, &cerr))
	cg, err := CompileGrammar("dangling", strings.NewReader(src), lr.PreferShift())
	require.NoError(t, err)
	s, err := NewSession(cg)
	require.NoError(t, err)
	result, err := s.Check("if ( a ) if ( b ) x ; else y ;")
	require.NoError(t, err)
	assert.True(t, result.Accepted)
}
