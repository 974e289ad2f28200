package lr

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// TableData returns the ACTION and GOTO tables as rows of strings, suitable
// for rendering. The first row is a header with all terminals followed by
// all non-terminals (without the augmented start symbol). ACTION cells read
// "s3" (shift to state 3), "r2" (reduce rule 2) or "acc"; GOTO cells hold a
// state number. Cells holding a conflict list both actions, separated by "/".
func TableData(lrgen *TableGenerator) [][]string {
	g := lrgen.g
	header := []string{"state"}
	for _, a := range g.terminals {
		header = append(header, a.Name)
	}
	for _, A := range g.nonterminals[1:] {
		header = append(header, A.Name)
	}
	rows := [][]string{header}
	for _, s := range lrgen.CFSM().states {
		row := []string{fmt.Sprintf("%d", s.ID)}
		for _, a := range g.terminals {
			row = append(row, lrgen.actionCell(s.ID, a))
		}
		for _, A := range g.nonterminals[1:] {
			row = append(row, lrgen.gotoCell(s.ID, A))
		}
		rows = append(rows, row)
	}
	return rows
}

func (lrgen *TableGenerator) actionCell(state uint, a *Symbol) string {
	if lrgen.actiontable == nil {
		return ""
	}
	v1, v2 := lrgen.actiontable.Values(state, a.Value)
	null := lrgen.actiontable.NullValue()
	if v1 == null {
		return ""
	}
	cell := lrgen.decode(state, a, v1).short()
	if v2 != null {
		cell += "/" + lrgen.decode(state, a, v2).short()
	}
	return cell
}

func (lrgen *TableGenerator) gotoCell(state uint, A *Symbol) string {
	if lrgen.gototable == nil {
		return ""
	}
	if v := lrgen.gototable.Value(state, A.Value); v != lrgen.gototable.NullValue() {
		return fmt.Sprintf("%d", v)
	}
	return ""
}

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.gototable == nil {
		return fmt.Errorf("GOTO table not yet created, cannot export to HTML")
	}
	return parserTableAsHTML(lrgen, "GOTO", lrgen.gototable, lrgen.gotoCell, w)
}

// ActionTableAsHTML exports the LR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) error {
	if lrgen.actiontable == nil {
		return fmt.Errorf("ACTION table not yet created, cannot export to HTML")
	}
	return parserTableAsHTML(lrgen, "ACTION", lrgen.actiontable, lrgen.actionCell, w)
}

func parserTableAsHTML(lrgen *TableGenerator, tname string, table *Table,
	cell func(uint, *Symbol) string, w io.Writer) error {
	//
	var symvec []*Symbol
	if tname == "ACTION" {
		symvec = lrgen.g.terminals
	} else {
		symvec = append(symvec, lrgen.g.terminals...)
		symvec = append(symvec, lrgen.g.nonterminals[1:]...)
	}
	var b strings.Builder
	b.WriteString("<html><body>\n")
	fmt.Fprintf(&b, "%s table of size = %d<p>", tname, table.ValueCount())
	b.WriteString("<table border=1 cellspacing=0 cellpadding=5>\n")
	b.WriteString("<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range symvec {
		fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(A.Name))
	}
	b.WriteString("</tr>\n")
	for _, state := range lrgen.dfa.states {
		fmt.Fprintf(&b, "<tr><td>state %d</td>\n", state.ID)
		for _, A := range symvec {
			td := cell(state.ID, A)
			if td == "" {
				td = "&nbsp;"
			}
			fmt.Fprintf(&b, "<td>%s</td>\n", td)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</table></body></html>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
