package lexmach

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	analyzer "github.com/227007imakazu/lexerGrammarAnalyzer"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/scanner"
	"github.com/npillmayer/schuko/tracing"

	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// lexmachine adapter

// tracer traces with key 'minic.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("minic.scanner")
}

// LMAdapter is a lexmachine adapter to use lexmachine as a scanner.
type LMAdapter struct {
	Lexer     *lexmachine.Lexer
	errorType int  // token type for unrecognized input
	hasErrors bool // produce error tokens for unrecognized input
}

// AdapterOption configures a lexmachine adapter.
type AdapterOption func(*LMAdapter)

// ErrorTokens makes scanners produce a token of type errorType for input
// which no pattern matches, instead of skipping it. The token's lexeme is the
// unrecognized text, and it spans at least one character.
func ErrorTokens(errorType int) AdapterOption {
	return func(lm *LMAdapter) {
		lm.errorType = errorType
		lm.hasErrors = true
	}
}

// NewLMAdapter creates a new lexmachine adapter. It receives a list of
// literals ('[', ';', …), a list of keywords ("if", "for", …) and a
// map for translating token strings to their values.
//
// Keywords are added first, then literals, then the patterns of init. For
// matches of equal length, lexmachine prefers the pattern added first,
// therefore keywords win over identifiers.
//
// NewLMAdapter will return an error if compiling the DFA failed.
func NewLMAdapter(init func(*lexmachine.Lexer), literals []string, keywords []string,
	tokenIds map[string]int, opts ...AdapterOption) (*LMAdapter, error) {
	//
	adapter := &LMAdapter{}
	for _, opt := range opts {
		opt(adapter)
	}
	adapter.Lexer = lexmachine.NewLexer()
	for _, name := range keywords {
		adapter.Lexer.Add([]byte(strings.ToLower(name)), MakeToken(name, tokenIds[name]))
	}
	for _, lit := range literals {
		r := "\\" + strings.Join(strings.Split(lit, ""), "\\")
		adapter.Lexer.Add([]byte(r), MakeToken(lit, tokenIds[lit]))
	}
	init(adapter.Lexer)
	if err := adapter.Lexer.Compile(); err != nil {
		tracer().Errorf("Error compiling DFA: %v", err)
		return nil, err
	}
	return adapter, nil
}

// Scanner creates a scanner for a given input. The scanner will implement the
// Tokenizer interface.
func (lm *LMAdapter) Scanner(input string) (*LMScanner, error) {
	text := []byte(input)
	s, err := lm.Lexer.Scanner(text)
	if err != nil {
		return &LMScanner{}, err
	}
	return &LMScanner{
		scanner:   s,
		Error:     logError,
		text:      text,
		errorType: lm.errorType,
		hasErrors: lm.hasErrors,
		line:      1,
	}, nil
}

// LMScanner is a scanner type for lexmachine scanners, implementing the
// Tokenizer interface.
type LMScanner struct {
	scanner   *lexmachine.Scanner
	Error     func(error)
	text      []byte
	errorType int
	hasErrors bool
	line      int // current 1-based line
	lineTC    int // text position up to which lines have been counted
	done      bool
}

var _ scanner.Tokenizer = (*LMScanner)(nil)

// SetErrorHandler sets an error handler for the scanner.
func (lms *LMScanner) SetErrorHandler(h func(error)) {
	if h == nil {
		lms.Error = logError
		return
	}
	lms.Error = h
}

// Default error reporting function for lexmachine-based scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// lineAt returns the 1-based line of text position tc. Positions are
// requested in increasing order.
func (lms *LMScanner) lineAt(tc int) int {
	if tc > len(lms.text) {
		tc = len(lms.text)
	}
	if tc > lms.lineTC {
		lms.line += bytes.Count(lms.text[lms.lineTC:tc], []byte{'\n'})
		lms.lineTC = tc
	}
	return lms.line
}

// NextToken is part of the Tokenizer interface.
func (lms *LMScanner) NextToken() analyzer.Token {
	if lms.scanner == nil || lms.done {
		return lms.eof()
	}
	tok, err, eof := lms.scanner.Next()
	for err != nil {
		ui, is := err.(*machines.UnconsumedInput)
		if !is {
			lms.Error(err)
			lms.done = true
			return lms.eof()
		}
		from, to := ui.StartTC, lms.errorEnd(ui.StartTC, ui.FailTC)
		if to <= from {
			lms.done = true
			return lms.eof()
		}
		lms.scanner.TC = to
		if lms.hasErrors {
			lexeme := string(lms.text[from:to])
			lms.Error(fmt.Errorf("line %d: unrecognized input %q", lms.lineAt(from), lexeme))
			t := scanner.MakeDefaultToken(analyzer.TokType(lms.errorType), lexeme,
				analyzer.Span{uint64(from), uint64(to)}, lms.line)
			return t
		}
		lms.Error(err)
		tok, err, eof = lms.scanner.Next()
	}
	if eof {
		lms.done = true
		return lms.eof()
	}
	tracer().Debugf("tok is %T | %v", tok, tok)
	token := tok.(*lexmachine.Token)
	t := scanner.MakeDefaultToken(
		analyzer.TokType(token.Type),
		string(token.Lexeme),
		analyzer.Span{uint64(token.TC), uint64(token.TC + len(token.Lexeme))},
		lms.lineAt(token.TC),
	)
	t.Val = token.Value
	return t
}

// errorEnd returns the end of unrecognized input starting at from.
// lexmachine reports failTC behind the character on which matching failed;
// that character is left for the next token, unless the error would be
// empty. Error tokens always end on a rune boundary.
func (lms *LMScanner) errorEnd(from, failTC int) int {
	if from >= len(lms.text) {
		return from
	}
	to := failTC - 1
	if to <= from {
		_, w := utf8.DecodeRune(lms.text[from:])
		to = from + w
	}
	for to < len(lms.text) && !utf8.RuneStart(lms.text[to]) {
		to++
	}
	if to > len(lms.text) {
		to = len(lms.text)
	}
	return to
}

// eof creates an EOF token. It carries the last line of the input, a final
// newline does not start a new line.
func (lms *LMScanner) eof() analyzer.Token {
	end := len(lms.text)
	last := end
	if last > 0 && lms.text[last-1] == '\n' {
		last--
	}
	return scanner.MakeDefaultToken(scanner.EOF, "", analyzer.Span{uint64(end), uint64(end)}, lms.lineAt(last))
}

// ---------------------------------------------------------------------------

// Skip is a pre-defined action which ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken is a pre-defined action which wraps a scanned match into a token.
// The token's value is the matched text.
func MakeToken(name string, id int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, string(m.Bytes), m), nil
	}
}

// MakeValueToken is a pre-defined action which wraps a scanned match into a
// token with a given value.
func MakeValueToken(id int, value interface{}) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(id, value, m), nil
	}
}
