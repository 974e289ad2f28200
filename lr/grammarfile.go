package lr

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseGrammar reads a grammar in textual form. Every non-empty line not
// starting with '#' holds one or more productions for a non-terminal:
//
//     Head → Alt1 | Alt2 | ...
//
// ("->" is accepted as an arrow too). Alternatives are whitespace-separated
// sequences of
//
//     'x' or "x"     terminal literals
//     name           bare lower-case names: terminal literals 'name'
//     ID, CONSTANT   bare upper-case names of 2 or more letters which are never
//                    a head: token categories
//     Expr           names appearing as a head: non-terminals
//     ε              the epsilon marker, alone in its alternative
//
// The head of the first line is the start symbol. Errors are reported as
// *GrammarSyntaxError.
func ParseGrammar(name string, r io.Reader) (*Grammar, error) {
	var defs []lineDef
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		def, err := parseLine(text)
		if err != nil {
			return nil, &GrammarSyntaxError{Grammar: name, Line: lineno, Text: text, Reason: err.Error()}
		}
		def.line, def.text = lineno, text
		defs = append(defs, def)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read grammar %s: %w", name, err)
	}
	if len(defs) == 0 {
		return nil, &GrammarSyntaxError{Grammar: name, Reason: "grammar has no productions"}
	}
	heads := make(map[string]bool, len(defs))
	for _, def := range defs {
		heads[def.head] = true
	}
	b := NewGrammarBuilder(name)
	for _, def := range defs {
		for _, alt := range def.alts {
			rb := b.LHS(def.head).atLine(def.line)
			if len(alt) == 1 && !alt[0].quoted && alt[0].text == Epsilon {
				rb.Epsilon()
				continue
			}
			for _, f := range alt {
				switch {
				case f.quoted:
					rb.T("'" + f.text + "'")
				case heads[f.text]:
					rb.N(f.text)
				case f.text == EndMarker:
					return nil, &GrammarSyntaxError{Grammar: name, Line: def.line, Text: def.text,
						Reason: fmt.Sprintf("symbol name %s is reserved for the end marker", EndMarker)}
				case isCategoryName(f.text):
					rb.T(f.text)
				case startsUpper(f.text):
					return nil, &GrammarSyntaxError{Grammar: name, Line: def.line, Text: def.text,
						Reason: fmt.Sprintf("undefined non-terminal %s", f.text)}
				default:
					rb.T("'" + f.text + "'")
				}
			}
			rb.End()
		}
	}
	g, err := b.Grammar()
	if err != nil {
		return nil, err
	}
	return g, nil
}

type lineDef struct {
	line int
	text string
	head string
	alts [][]field
}

type field struct {
	text   string
	quoted bool
}

var arrows = []string{"→", "->"}

func parseLine(text string) (lineDef, error) {
	def := lineDef{}
	at, arrow := -1, ""
	for _, a := range arrows {
		if i := strings.Index(text, a); i >= 0 && (at < 0 || i < at) {
			at, arrow = i, a
		}
	}
	if at < 0 {
		return def, fmt.Errorf("production has no arrow (%s)", arrows[0])
	}
	head := strings.TrimSpace(text[:at])
	switch {
	case head == "":
		return def, fmt.Errorf("production has no head")
	case strings.ContainsAny(head, " \t'\"|"):
		return def, fmt.Errorf("malformed head %q", head)
	case strings.Contains(head, Epsilon):
		return def, fmt.Errorf("malformed epsilon marker in head %q", head)
	case head == EndMarker:
		return def, fmt.Errorf("symbol name %s is reserved for the end marker", EndMarker)
	}
	def.head = head
	alts, err := splitAlternatives(text[at+len(arrow):])
	if err != nil {
		return def, err
	}
	def.alts = alts
	return def, nil
}

// splitAlternatives tokenizes the RHS of a production line. '|' outside of
// quotes separates alternatives.
func splitAlternatives(rhs string) ([][]field, error) {
	var alts [][]field
	var alt []field
	var bare strings.Builder
	flush := func() {
		if bare.Len() > 0 {
			alt = append(alt, field{text: bare.String()})
			bare.Reset()
		}
	}
	closeAlt := func() error {
		flush()
		if len(alt) == 0 {
			return fmt.Errorf("empty alternative (use %s for epsilon)", Epsilon)
		}
		if err := checkEpsilon(alt); err != nil {
			return err
		}
		alts = append(alts, alt)
		alt = nil
		return nil
	}
	for i := 0; i < len(rhs); {
		r, w := utf8.DecodeRuneInString(rhs[i:])
		switch {
		case unicode.IsSpace(r):
			flush()
		case r == '|':
			if err := closeAlt(); err != nil {
				return nil, err
			}
		case r == '\'' || r == '"':
			if bare.Len() > 0 {
				return nil, fmt.Errorf("unexpected quote after %q", bare.String())
			}
			end := strings.IndexRune(rhs[i+w:], r)
			if end < 0 {
				return nil, fmt.Errorf("unbalanced quote in %q", rhs[i:])
			}
			lit := rhs[i+w : i+w+end]
			if lit == "" {
				return nil, fmt.Errorf("empty terminal literal")
			}
			alt = append(alt, field{text: lit, quoted: true})
			i += w + end + w
			if i < len(rhs) {
				next, _ := utf8.DecodeRuneInString(rhs[i:])
				if !unicode.IsSpace(next) && next != '|' {
					return nil, fmt.Errorf("missing space after terminal literal %q", lit)
				}
			}
			continue
		default:
			bare.WriteRune(r)
		}
		i += w
	}
	if err := closeAlt(); err != nil {
		return nil, err
	}
	return alts, nil
}

func checkEpsilon(alt []field) error {
	for _, f := range alt {
		if f.quoted || !strings.Contains(f.text, Epsilon) {
			continue
		}
		if f.text != Epsilon {
			return fmt.Errorf("malformed epsilon marker in %q", f.text)
		}
		if len(alt) > 1 {
			return fmt.Errorf("epsilon marker %s must be the only symbol of an alternative", Epsilon)
		}
	}
	return nil
}

// isCategoryName is true for names like ID or CONSTANT. Single capital
// letters are non-terminals.
func isCategoryName(name string) bool {
	letters := 0
	for _, r := range name {
		switch {
		case unicode.IsLetter(r):
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		case unicode.IsDigit(r) || r == '_':
		default:
			return false
		}
	}
	return letters > 1
}

func startsUpper(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
