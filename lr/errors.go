package lr

import (
	"fmt"
	"strings"
)

// GrammarSyntaxError reports a malformed grammar. It is fatal to grammar
// compilation: no tables are constructed for a grammar with syntax errors.
type GrammarSyntaxError struct {
	Grammar string // name of the grammar
	Line    int    // 1-based line of a textual grammar, 0 if unknown
	Text    string // offending source line, if available
	Reason  string
}

func (e *GrammarSyntaxError) Error() string {
	var b strings.Builder
	if e.Grammar != "" {
		fmt.Fprintf(&b, "%v: ", e.Grammar)
	}
	if e.Line != 0 {
		fmt.Fprintf(&b, "%v: ", e.Line)
	}
	fmt.Fprintf(&b, "grammar syntax error: %v", e.Reason)
	if e.Text != "" {
		fmt.Fprintf(&b, "\n    %v", e.Text)
	}
	return b.String()
}

// GrammarConflictError reports a grammar which is not LR(1): at least one
// ACTION table cell would have to hold more than one action.
type GrammarConflictError struct {
	Grammar   string
	Conflicts []Conflict // all unresolved conflicts, in order of detection
}

func (e *GrammarConflictError) Error() string {
	if len(e.Conflicts) == 0 {
		return fmt.Sprintf("%s: grammar is not LR(1)", e.Grammar)
	}
	c := e.Conflicts[0]
	msg := fmt.Sprintf("%s: grammar is not LR(1): %s", e.Grammar, c)
	if n := len(e.Conflicts) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

// ConflictKind distinguishes shift/reduce from reduce/reduce conflicts.
type ConflictKind int8

// Kinds of conflicts
const (
	ShiftReduce ConflictKind = iota + 1
	ReduceReduce
)

func (k ConflictKind) String() string {
	switch k {
	case ShiftReduce:
		return "shift/reduce"
	case ReduceReduce:
		return "reduce/reduce"
	}
	return "unknown"
}

// Conflict records competing actions for the same ACTION table cell.
// Actions lists all competing actions of the cell, in order of entry.
type Conflict struct {
	Kind     ConflictKind
	State    uint
	Terminal *Symbol
	Actions  []Action
	Resolved bool // resolved in favour of shift, see option PreferShift
}

func (c Conflict) String() string {
	acts := make([]string, len(c.Actions))
	for i, a := range c.Actions {
		acts[i] = a.String()
	}
	s := fmt.Sprintf("%s conflict in state %d on %s: %s",
		c.Kind, c.State, c.Terminal, strings.Join(acts, " vs. "))
	if c.Resolved {
		s += " (resolved as shift)"
	}
	return s
}
