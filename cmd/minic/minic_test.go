package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/227007imakazu/lexerGrammarAnalyzer/lang/cmini"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr"
	"github.com/227007imakazu/lexerGrammarAnalyzer/lr/lr1"
)

// dangling else over mini-C tokens
const danglingElse = `Stmt → 'if' '(' Expr ')' Stmt | 'if' '(' Expr ')' Stmt 'else' Stmt | ID ';'
Expr → ID
`

// run executes the root command. Flag values survive between executions,
// so they are reset to their defaults first.
func run(t *testing.T, args ...string) error {
	*rootFlags.trace = "Error"
	*rootFlags.grammar = ""
	*rootFlags.preferShift = false
	*checkFlags.steps = false
	*statesFlags.plain = false
	*tablesFlags.html = ""
	*tablesFlags.dot = false
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	ok := writeFile(t, "ok.c", "int add ( int a , int b ) { return a ; }\n")
	assert.NoError(t, run(t, "check", ok))
	assert.NoError(t, run(t, "check", "--steps", ok))
	bad := writeFile(t, "bad.c", "int x = 5 + ;\n")
	err := run(t, "check", bad)
	var serr *lr1.SyntaxError
	require.True(t, errors.As(err, &serr), "%v", err)
	assert.Equal(t, "+", serr.Found)
	assert.Error(t, run(t, "check", filepath.Join(t.TempDir(), "missing.c")))
}

func TestTokensCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	assert.NoError(t, run(t, "tokens", writeFile(t, "ok.c", "float pi = 3.14 ;")))
	assert.Error(t, run(t, "tokens", writeFile(t, "bad.c", "int x = 0123 ;")))
}

func TestDiagnosticCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	for _, args := range [][]string{
		{"first"},
		{"states", "--plain"},
		{"tables", "--html", "action"},
		{"tables", "--html", "goto"},
		{"tables", "--dot"},
	} {
		assert.NoError(t, run(t, args...), "%v", args)
	}
	assert.Error(t, run(t, "tables", "--html", "lalr"))
}

func TestCustomGrammarFlag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	grammar := writeFile(t, "ifthen.txt", danglingElse)
	src := writeFile(t, "src.txt", "if ( a ) if ( b ) x ; else y ;")
	err := run(t, "--grammar", grammar, "check", src)
	var cerr *lr.GrammarConflictError
	require.True(t, errors.As(err, &cerr), "%v", err)
	assert.NoError(t, run(t, "--grammar", grammar, "--prefer-shift", "check", src))
	// diagnostics are available for grammars with conflicts
	assert.NoError(t, run(t, "--grammar", grammar, "tables"))
	//
	broken := writeFile(t, "broken.txt", "S → 'a\n")
	var gerr *lr.GrammarSyntaxError
	require.True(t, errors.As(run(t, "--grammar", broken, "first"), &gerr))
	assert.Equal(t, 1, gerr.Line)
}

func TestREPLEval(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "minic.lang")
	defer teardown()
	//
	cg, err := cmini.Compile()
	require.NoError(t, err)
	session, err := cmini.NewSession(cg)
	require.NoError(t, err)
	intp := &Intp{cg: cg, session: session}
	for _, line := range []string{"int x ;", "int x = ;", ":first", ":tables", ":states", ":bogus"} {
		assert.False(t, intp.Eval(line), line)
	}
	assert.True(t, intp.Eval(":quit"))
	assert.True(t, intp.Eval(":q"))
}
