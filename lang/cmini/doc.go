/*
Package cmini implements a scanner and a syntax checker for mini-C, a small
C-like teaching language.

The lexicon (keywords, operators and delimiters) and the syntax are given as
embedded text files in the grammar format of package lr. The scanner is a
lexmachine DFA, classifying tokens into keywords, identifiers, constants,
delimiters and operators. Input which cannot be classified results in error
tokens, which the parser will reject.

	cg, err := cmini.Compile()
	session, err := cmini.NewSession(cg)
	result, err := session.Check("int add ( int a , int b ) { return a ; }")

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package cmini

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'minic.lang'.
func tracer() tracing.Trace {
	return tracing.Select("minic.lang")
}
