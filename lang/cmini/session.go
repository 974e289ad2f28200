package cmini

import (
	analyzer "github.com/227007imakazu/lexerGrammarAnalyzer"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/lr1"
)

// Session checks mini-C source texts against a compiled grammar. The
// compiled grammar is shared, every session owns its lexer and its parser.
type Session struct {
	cg     *lr.CompiledGrammar
	lexer  *Lexer
	parser *lr1.Parser
}

// NewSession creates a session for a compiled grammar. Parser options, e.g.
// lr1.Trace(true), are passed on to the parser.
func NewSession(cg *lr.CompiledGrammar, opts ...lr1.Option) (*Session, error) {
	lexer, err := NewLexer()
	if err != nil {
		return nil, err
	}
	opts = append([]lr1.Option{lr1.TerminalMapping(Terminal)}, opts...)
	return &Session{
		cg:     cg,
		lexer:  lexer,
		parser: lr1.NewParser(cg, opts...),
	}, nil
}

// Grammar returns the compiled grammar of the session.
func (s *Session) Grammar() *lr.CompiledGrammar {
	return s.cg
}

// Tokenize scans a source text, see Lexer.Tokenize.
func (s *Session) Tokenize(src string) ([]analyzer.Token, error) {
	return s.lexer.Tokenize(src)
}

// Check parses a source text. Syntax errors are reported as *lr1.SyntaxError.
func (s *Session) Check(src string) (*lr1.Result, error) {
	sc, err := s.lexer.Scanner(src)
	if err != nil {
		return nil, err
	}
	result, err := s.parser.Parse(sc)
	if err != nil {
		tracer().Infof("check failed: %v", err)
		return result, err
	}
	tracer().Debugf("source accepted")
	return result, nil
}
