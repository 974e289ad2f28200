package cmini

import (
	_ "embed"
	"io"
	"strings"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
)

//go:embed grammar.txt
var grammarText string

// GrammarName is the name of the built-in mini-C grammar.
const GrammarName = "mini-C"

// GrammarSource returns the text of the built-in grammar.
func GrammarSource() string {
	return grammarText
}

// Grammar returns the built-in mini-C grammar.
func Grammar() (*lr.Grammar, error) {
	return lr.ParseGrammar(GrammarName, strings.NewReader(grammarText))
}

// Compile compiles the built-in mini-C grammar into LR(1) tables.
func Compile(opts ...lr.Option) (*lr.CompiledGrammar, error) {
	g, err := Grammar()
	if err != nil {
		return nil, err
	}
	return lr.Compile(g, opts...)
}

// CompileGrammar compiles a custom grammar for mini-C tokens. Terminals of
// the grammar have to follow the naming of function Terminal.
func CompileGrammar(name string, r io.Reader, opts ...lr.Option) (*lr.CompiledGrammar, error) {
	return lr.CompileText(name, r, opts...)
}
