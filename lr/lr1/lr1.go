/*
Package lr1 provides a canonical LR(1)-parser. Clients have to use the tools
of package lr to prepare the necessary parse tables. The LR(1) parser
utilizes these tables to create a right derivation for a given input,
provided through a scanner interface.

The main focus for this implementation is adaptability and on-the-fly usage.
Clients are able to construct the parse tables from a grammar and use the
parser directly, without a code-generation or compile step. If you want, you
can create a grammar from user input and use a parser for it in a couple of
lines of code.

Usage

Clients construct a grammar, usually by using a grammar builder or by
reading a textual grammar:

	g, err := lr.ParseGrammar("Signed Variables", strings.NewReader(`
	Var  → Sign ID
	Sign → '+' | '-' | ε
	`))

This grammar is subjected to grammar analysis and table generation.

	cg, err := lr.Compile(g)   // fails for grammars which are not LR(1)

Finally parse some input:

	p := lr1.NewParser(cg, lr1.TerminalMapping(myMapping))
	result, err := p.Parse(tokenizer)

Terminals of the grammar are matched against tokens by a terminal mapping,
which translates a token into the name of a terminal. The default mapping
uses the quoted lexeme of a token, i.e. token "+" maps to terminal '+', and
EOF tokens map to the end marker $.

If the input is not a sentence of the grammar, Parse returns a *SyntaxError,
reporting the line, the offending token and the terminals which would have
been valid instead.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package lr1

import (
	"fmt"
	"strings"

	analyzer "github.com/227007imakazu/lexerGrammarAnalyzer"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/exp/slices"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/scanner"
)

// tracer traces with key 'minic.lr'.
func tracer() tracing.Trace {
	return tracing.Select("minic.lr")
}

// Parser is an LR(1)-parser type. Create and initialize one with lr1.NewParser(...).
// A parser may be used for more than one parse, but not concurrently.
type Parser struct {
	cg       *lr.CompiledGrammar
	stack    []stackitem // parser stack
	trace    bool
	terminal func(analyzer.Token) string
}

// We store pairs of state-IDs and symbols on the parse stack.
type stackitem struct {
	stateID uint          // ID of a CFSM state
	sym     *lr.Symbol    // grammar symbol (terminal or non-terminal), nil for the start state
	span    analyzer.Span // input span over which this symbol reaches
}

// Option configures a parser.
type Option func(*Parser)

// Trace makes the parser record every step of a parse into the result.
func Trace(b bool) Option {
	return func(p *Parser) {
		p.trace = b
	}
}

// TerminalMapping sets the function translating tokens into terminal names.
func TerminalMapping(f func(analyzer.Token) string) Option {
	return func(p *Parser) {
		if f != nil {
			p.terminal = f
		}
	}
}

// QuotedLexeme is the default terminal mapping: tokens map to their quoted
// lexeme, EOF maps to the end marker.
func QuotedLexeme(tok analyzer.Token) string {
	if tok.TokType() == scanner.EOF {
		return lr.EndMarker
	}
	return "'" + tok.Lexeme() + "'"
}

// NewParser creates an LR(1) parser for a compiled grammar.
func NewParser(cg *lr.CompiledGrammar, opts ...Option) *Parser {
	parser := &Parser{
		cg:       cg,
		stack:    make([]stackitem, 0, 512),
		terminal: QuotedLexeme,
	}
	for _, opt := range opts {
		opt(parser)
	}
	return parser
}

// Result is the outcome of a parse.
type Result struct {
	Accepted bool
	Steps    []Step // parser actions, if tracing is enabled
}

// Step is a single action of the parser.
type Step struct {
	State     uint      // state on top of stack
	Lookahead string    // terminal name of the current token
	Line      int       // line of the current token
	Action    lr.Action // action performed; NoAction for the failing step
	Stack     []uint    // state stack before the action
	Goto      uint      // GOTO state entered after a reduce
}

func (s Step) String() string {
	str := fmt.Sprintf("%v  state %d  lookahead %s  %s", s.Stack, s.State, s.Lookahead, s.Action)
	if s.Action.Type == lr.Reduce {
		str += fmt.Sprintf(", goto %d", s.Goto)
	}
	return str
}

// SyntaxError is the error type for input which is not a sentence of the grammar.
type SyntaxError struct {
	Line     int           // 1-based line of the offending token
	Found    string        // lexeme of the offending token, empty at end of input
	Terminal string        // terminal the offending token maps to
	State    uint          // parser state in which no action was defined
	Expected []string      // terminals with an action in State, sorted
	Span     analyzer.Span // input span of the offending token
}

func (e *SyntaxError) Error() string {
	found := "end of input"
	if e.Terminal != lr.EndMarker {
		found = fmt.Sprintf("%q", e.Found)
	}
	msg := fmt.Sprintf("line %d: syntax error, unexpected %s", e.Line, found)
	if len(e.Expected) > 0 {
		msg += "; expected one of: " + strings.Join(e.Expected, " ")
	}
	return msg
}

// Parse starts a new parse, given a scanner tokenizing the input.
// The parser will start in the start state with an empty stack.
//
// The parser returns a result with Accepted set if the input string has been
// accepted. Otherwise the error is a *SyntaxError, and the result holds the
// steps performed up to the error, if tracing is enabled.
func (p *Parser) Parse(scan scanner.Tokenizer) (*Result, error) {
	tracer().Debugf("~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~~")
	if p.cg == nil || scan == nil {
		tracer().Errorf("LR(1)-parser not initialized")
		return nil, fmt.Errorf("LR(1)-parser not initialized")
	}
	g := p.cg.Grammar()
	result := &Result{}
	p.stack = append(p.stack[:0], stackitem{stateID: p.cg.StartState()}) // push S0
	token := scan.NextToken()
	for {
		state := p.stack[len(p.stack)-1] // TOS
		name := p.terminal(token)
		a := g.Terminal(name)
		action := p.cg.Action(state.stateID, a) // a == nil results in NoAction
		tracer().Debugf("action(%d,%s)=%s", state.stateID, name, action)
		if p.trace {
			result.Steps = append(result.Steps, Step{
				State:     state.stateID,
				Lookahead: name,
				Line:      token.Line(),
				Action:    action,
				Stack:     p.stateStack(),
			})
		}
		switch action.Type {
		case lr.Accept:
			result.Accepted = true
			return result, nil
		case lr.Shift:
			tracer().Debugf("shifting, next state = %d", action.State)
			p.stack = append(p.stack, // push a terminal state onto stack
				stackitem{stateID: action.State, sym: a, span: token.Span()})
			token = scan.NextToken()
		case lr.Reduce:
			rule := action.Rule
			nextstate, handlespan, err := p.reduce(rule)
			if err != nil {
				return result, err
			}
			if handlespan.IsNull() { // resulted from an epsilon production
				pos := token.Span().From()
				handlespan = analyzer.Span{pos, pos} // epsilon was just before lookahead
			}
			tracer().Debugf("reduced to next state = %d", nextstate)
			if p.trace {
				result.Steps[len(result.Steps)-1].Goto = nextstate
			}
			p.stack = append(p.stack, // push a non-terminal state onto stack
				stackitem{stateID: nextstate, sym: rule.LHS, span: handlespan})
		default: // no action found
			return result, p.syntaxError(state.stateID, token, name)
		}
	}
}

// reduce performs a reduce action for a rule
//
//    LHS --> X1 ... Xn   (with X being terminals or non-terminals)
//
// Symbols X1 to Xn should be represented on the stack as states
//
//    [TOS]  Sn(Xn, span_n) ... S1(X1, span1)  ...
func (p *Parser) reduce(rule *lr.Rule) (uint, analyzer.Span, error) {
	tracer().Infof("reduce %v", rule)
	var handlespan analyzer.Span
	handle := rule.RHS()
	if len(handle) >= len(p.stack) {
		return 0, handlespan, fmt.Errorf("internal parser error: stack underflow reducing %v", rule)
	}
	for i := len(handle) - 1; i >= 0; i-- {
		tos := p.stack[len(p.stack)-1]
		if tos.sym != handle[i] {
			tracer().Errorf("Expected %v on top of stack, got %v", handle[i], tos.sym)
		}
		handlespan = tos.span.Extend(handlespan)
		p.stack = p.stack[:len(p.stack)-1] // pop TOS
	}
	state := p.stack[len(p.stack)-1] // TOS
	nextstate, ok := p.cg.Goto(state.stateID, rule.LHS)
	if !ok {
		return 0, handlespan, fmt.Errorf("internal parser error: no GOTO entry for state %d and %v",
			state.stateID, rule.LHS)
	}
	return nextstate, handlespan, nil
}

func (p *Parser) syntaxError(state uint, token analyzer.Token, name string) *SyntaxError {
	var expected []string
	for _, a := range p.cg.Expected(state) {
		expected = append(expected, a.Name)
	}
	slices.Sort(expected)
	err := &SyntaxError{
		Line:     token.Line(),
		Found:    token.Lexeme(),
		Terminal: name,
		State:    state,
		Expected: expected,
		Span:     token.Span(),
	}
	tracer().Infof("%v", err)
	return err
}

func (p *Parser) stateStack() []uint {
	states := make([]uint, len(p.stack))
	for i, s := range p.stack {
		states[i] = s.stateID
	}
	return states
}
