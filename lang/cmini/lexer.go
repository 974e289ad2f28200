package cmini

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	analyzer "github.com/227007imakazu/lexerGrammarAnalyzer"
	"github.com/timtadh/lexmachine"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/scanner"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/scanner/lexmach"
)

// Token categories of mini-C.
const (
	Keyword analyzer.TokType = iota + 1
	Identifier
	Constant
	Delimiter
	Operator
	Error
	EOF = analyzer.TokType(scanner.EOF)
)

// CategoryString is a TokTypeStringer for mini-C token categories.
func CategoryString(t analyzer.TokType) string {
	switch t {
	case Keyword:
		return "Keyword"
	case Identifier:
		return "Identifier"
	case Constant:
		return "Constant"
	case Delimiter:
		return "Delimiter"
	case Operator:
		return "Operator"
	case Error:
		return "Error"
	case EOF:
		return "EOF"
	}
	return fmt.Sprintf("TokType(%d)", t)
}

var _ analyzer.TokTypeStringer = CategoryString

// LiteralKind is the value of Constant tokens.
type LiteralKind int

// Kinds of literals
const (
	Int LiteralKind = iota + 1
	Float
	Scientific
	Complex
	String
	Char
)

func (k LiteralKind) String() string {
	switch k {
	case Int:
		return "int"
	case Float:
		return "float"
	case Scientific:
		return "scientific"
	case Complex:
		return "complex"
	case String:
		return "string"
	case Char:
		return "char"
	}
	return "unknown"
}

//go:embed lexicon.txt
var lexiconText string

// Lexicon categories in the lexicon grammar.
const (
	keywordHead   = "Keyword"
	operatorHead  = "Operator"
	delimiterHead = "Delimiter"
)

// Lexer creates scanners for mini-C source text.
type Lexer struct {
	adapter   *lexmach.LMAdapter
	keywords  []string
	operators []string
	delims    []string
}

// NewLexer creates a lexer for the built-in lexicon.
func NewLexer() (*Lexer, error) {
	return NewLexerFromLexicon("lexicon", strings.NewReader(lexiconText))
}

// NewLexerFromLexicon creates a lexer from a lexicon in grammar format, with
// productions for Keyword, Operator and Delimiter, each alternative being a
// single quoted literal.
func NewLexerFromLexicon(name string, r io.Reader) (*Lexer, error) {
	g, err := lr.ParseGrammar(name, r)
	if err != nil {
		return nil, err
	}
	lx := &Lexer{}
	if lx.keywords, err = lexiconEntries(g, keywordHead); err != nil {
		return nil, err
	}
	if lx.operators, err = lexiconEntries(g, operatorHead); err != nil {
		return nil, err
	}
	if lx.delims, err = lexiconEntries(g, delimiterHead); err != nil {
		return nil, err
	}
	tokenIds := make(map[string]int)
	for _, kw := range lx.keywords {
		tokenIds[kw] = int(Keyword)
	}
	for _, op := range lx.operators {
		tokenIds[op] = int(Operator)
	}
	for _, d := range lx.delims {
		tokenIds[d] = int(Delimiter)
	}
	literals := append(append([]string(nil), lx.operators...), lx.delims...)
	lx.adapter, err = lexmach.NewLMAdapter(initPatterns, literals, lx.keywords, tokenIds,
		lexmach.ErrorTokens(int(Error)))
	if err != nil {
		return nil, fmt.Errorf("cannot create lexer from %s: %w", name, err)
	}
	tracer().Debugf("lexicon %s: %d keywords, %d operators, %d delimiters", name,
		len(lx.keywords), len(lx.operators), len(lx.delims))
	return lx, nil
}

// lexiconEntries returns the unquoted literals of all productions for head.
func lexiconEntries(g *lr.Grammar, head string) ([]string, error) {
	A, ok := g.SymbolByName(head)
	if !ok || A.IsTerminal() {
		return nil, &lr.GrammarSyntaxError{Grammar: g.Name, Reason: fmt.Sprintf("lexicon has no %s entries", head)}
	}
	var entries []string
	for _, r := range g.FindNonTermRules(A) {
		rhs := r.RHS()
		if len(rhs) != 1 || !rhs[0].IsTerminal() || !strings.HasPrefix(rhs[0].Name, "'") {
			return nil, &lr.GrammarSyntaxError{Grammar: g.Name,
				Reason: fmt.Sprintf("lexicon entry %v is not a single literal", r)}
		}
		entries = append(entries, strings.Trim(rhs[0].Name, "'"))
	}
	return entries, nil
}

// initPatterns adds the regular expressions for identifiers, literals,
// comments and whitespace. Keywords and literals have been added before.
func initPatterns(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`//[^\n]*`), lexmach.Skip)
	lexer.Add([]byte(`( |\t|\n|\r)+`), lexmach.Skip)
	lexer.Add([]byte(`[a-zA-Z_][a-zA-Z0-9_]*`), lexmach.MakeToken("ID", int(Identifier)))
	lexer.Add([]byte(`0|[1-9][0-9]*`), lexmach.MakeValueToken(int(Constant), Int))
	lexer.Add([]byte(`0[0-9]+`), lexmach.MakeToken("ERROR", int(Error)))
	lexer.Add([]byte(`[0-9]+\.[0-9]+`), lexmach.MakeValueToken(int(Constant), Float))
	lexer.Add([]byte(`[0-9]+(\.[0-9]+)?(e|E)(\+|\-)?[0-9]+`), lexmach.MakeValueToken(int(Constant), Scientific))
	lexer.Add([]byte(`[0-9]+(\.[0-9]+)?(\+|\-)[0-9]+(\.[0-9]+)?i`), lexmach.MakeValueToken(int(Constant), Complex))
	lexer.Add([]byte(`\"([^"\\\n]|\\[^\n])*\"`), lexmach.MakeValueToken(int(Constant), String))
	lexer.Add([]byte(`\"([^"\\\n]|\\[^\n])*`), lexmach.MakeToken("ERROR", int(Error))) // unterminated
	lexer.Add([]byte(`'([^'\\\n]|\\[^\n])'`), lexmach.MakeValueToken(int(Constant), Char))
}

// Keywords returns the reserved words of the lexicon.
func (lx *Lexer) Keywords() []string {
	return append([]string(nil), lx.keywords...)
}

// Scanner creates a tokenizer for a source text.
func (lx *Lexer) Scanner(src string) (scanner.Tokenizer, error) {
	sc, err := lx.adapter.Scanner(src)
	if err != nil {
		return nil, err
	}
	sc.SetErrorHandler(func(e error) {
		tracer().Infof("%v", e)
	})
	return sc, nil
}

// Tokenize scans a source text completely. The result includes error
// tokens and ends with an EOF token.
func (lx *Lexer) Tokenize(src string) ([]analyzer.Token, error) {
	sc, err := lx.Scanner(src)
	if err != nil {
		return nil, err
	}
	var tokens []analyzer.Token
	for {
		tok := sc.NextToken()
		tokens = append(tokens, tok)
		if tok.TokType() == EOF {
			return tokens, nil
		}
	}
}

// Terminal maps a mini-C token to the name of a grammar terminal: identifiers
// map to ID, constants to CONSTANT, EOF to the end marker, and all other
// tokens to their quoted lexeme.
func Terminal(tok analyzer.Token) string {
	switch tok.TokType() {
	case Identifier:
		return "ID"
	case Constant:
		return "CONSTANT"
	case EOF:
		return lr.EndMarker
	}
	return "'" + tok.Lexeme() + "'"
}
