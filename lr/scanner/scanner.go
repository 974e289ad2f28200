/*
Package scanner defines an interface for scanners to be used with parsers of package lr.

Two scanner implementations are provided here: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) a tokenizer replaying a slice of tokens. An adapter for
lexmachine lives in sub-package `lexmach`; the mini-C scanner of package
lang/cmini is built on it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package scanner

import (
	"fmt"
	"io"
	"text/scanner"

	analyzer "github.com/227007imakazu/lexerGrammarAnalyzer"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'minic.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("minic.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. After the end of input has been
// reached, NextToken returns EOF tokens only.
type Tokenizer interface {
	NextToken() analyzer.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
func (t *DefaultTokenizer) NextToken() analyzer.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	line := t.Position.Line
	if line == 0 { // position is invalid at EOF
		line = t.Pos().Line
	}
	return DefaultToken{
		kind:   analyzer.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   analyzer.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
		line:   line,
	}
}

// --- Slice tokenizer -------------------------------------------------------

// SliceTokenizer replays a fixed sequence of tokens, followed by EOF.
// It is useful for feeding pre-scanned input into a parser, e.g. for
// parsing tokens a scanner has collected beforehand.
type SliceTokenizer struct {
	tokens []analyzer.Token
	pos    int
}

var _ Tokenizer = (*SliceTokenizer)(nil)

// NewSliceTokenizer creates a tokenizer for a sequence of tokens. Tokens of
// type EOF within the sequence terminate it.
func NewSliceTokenizer(tokens ...analyzer.Token) *SliceTokenizer {
	return &SliceTokenizer{tokens: tokens}
}

// NextToken is part of the Tokenizer interface.
func (st *SliceTokenizer) NextToken() analyzer.Token {
	if st.pos < len(st.tokens) && st.tokens[st.pos].TokType() != EOF {
		tok := st.tokens[st.pos]
		st.pos++
		return tok
	}
	return st.eof()
}

func (st *SliceTokenizer) eof() analyzer.Token {
	if st.pos < len(st.tokens) { // explicit EOF token
		return st.tokens[st.pos]
	}
	var span analyzer.Span
	line := 1
	if n := len(st.tokens); n > 0 {
		last := st.tokens[n-1]
		span = analyzer.Span{last.Span().To(), last.Span().To()}
		line = last.Line()
	}
	return MakeDefaultToken(EOF, "", span, line)
}

// SetErrorHandler is part of the Tokenizer interface. Slice tokenizers do
// not produce errors.
func (st *SliceTokenizer) SetErrorHandler(func(error)) {}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   analyzer.TokType
	lexeme string
	Val    interface{}
	span   analyzer.Span
	line   int
}

// MakeDefaultToken creates a token. line is the 1-based source line.
func MakeDefaultToken(typ analyzer.TokType, lexeme string, span analyzer.Span, line int) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
		line:   line,
	}
}

func (t DefaultToken) TokType() analyzer.TokType {
	return t.kind
}

func (t DefaultToken) Value() interface{} {
	return t.Val
}

func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

func (t DefaultToken) Span() analyzer.Span {
	return t.span
}

func (t DefaultToken) Line() int {
	return t.line
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("<%d|%q@%d>", t.kind, t.lexeme, t.line)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenier.
type Option func(p *DefaultTokenizer)

// SkipComments set or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// Lexeme is a helper function to receive a string from a token.
func Lexeme(token interface{}) string {
	switch t := token.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case analyzer.Token:
		return t.Lexeme()
	default:
		return fmt.Sprintf("%v", t)
	}
}
