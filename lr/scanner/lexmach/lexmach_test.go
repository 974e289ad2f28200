package lexmach

import (
	"testing"

	analyzer "github.com/227007imakazu/lexerGrammarAnalyzer"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/scanner"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func makeAdapter(t *testing.T, opts ...AdapterOption) *LMAdapter {
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds, opts...)
	require.NoError(t, err)
	return LM
}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.scanner")
	defer teardown()
	//
	LM := makeAdapter(t)
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestKeywordsWinOverIdentifiers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.scanner")
	defer teardown()
	//
	sc, err := makeAdapter(t).Scanner("nil nils t")
	require.NoError(t, err)
	assert.Equal(t, analyzer.TokType(tokenIds["nil"]), sc.NextToken().TokType())
	assert.Equal(t, analyzer.TokType(tokenIds["ID"]), sc.NextToken().TokType())
	assert.Equal(t, analyzer.TokType(tokenIds["t"]), sc.NextToken().TokType())
}

func TestLinesAndSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.scanner")
	defer teardown()
	//
	sc, err := makeAdapter(t).Scanner("a\n\n  bc\nd\n")
	require.NoError(t, err)
	var lines []int
	var lexemes []string
	token := sc.NextToken()
	for ; token.TokType() != scanner.EOF; token = sc.NextToken() {
		lines = append(lines, token.Line())
		lexemes = append(lexemes, token.Lexeme())
	}
	assert.Equal(t, []int{1, 3, 4}, lines)
	assert.Equal(t, []string{"a", "bc", "d"}, lexemes)
	assert.Equal(t, 4, token.Line())
	assert.Equal(t, analyzer.TokType(scanner.EOF), sc.NextToken().TokType())
}

func TestErrorTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.scanner")
	defer teardown()
	//
	const errType = 99
	var errs []error
	sc, err := makeAdapter(t, ErrorTokens(errType)).Scanner("a @ b")
	require.NoError(t, err)
	sc.SetErrorHandler(func(e error) { errs = append(errs, e) })
	assert.Equal(t, "a", sc.NextToken().Lexeme())
	bad := sc.NextToken()
	assert.Equal(t, analyzer.TokType(errType), bad.TokType())
	assert.Equal(t, "@", bad.Lexeme())
	assert.Equal(t, analyzer.Span{2, 3}, bad.Span())
	assert.Equal(t, "b", sc.NextToken().Lexeme())
	assert.Equal(t, analyzer.TokType(scanner.EOF), sc.NextToken().TokType())
	assert.Len(t, errs, 1)
	//
	sc, err = makeAdapter(t, ErrorTokens(errType)).Scanner("a é b")
	require.NoError(t, err)
	assert.Equal(t, "a", sc.NextToken().Lexeme())
	bad = sc.NextToken()
	assert.Equal(t, analyzer.TokType(errType), bad.TokType())
	assert.Equal(t, "é", bad.Lexeme())
	assert.Equal(t, analyzer.Span{2, 4}, bad.Span())
	assert.Equal(t, "b", sc.NextToken().Lexeme())
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = scanner.Comment
	tokenIds["ID"] = scanner.Ident
	tokenIds["NUM"] = scanner.Int
	tokenIds["STRING"] = int(scanner.String)
	for i, tok := range tokens[4:] {
		tokenIds[tok] = i + 10
	}
}
