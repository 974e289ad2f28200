/*
Package analyzer is a lexical and syntax analyzer for a small C-like language
("mini-C"), built around a canonical LR(1) parsing engine.

The engine is generic over any context-free grammar given in a simple textual
format. Package structure is as follows:

■ lr: Package lr holds the grammar model, FIRST-set analysis, the canonical
collection of LR(1) item sets and the ACTION/GOTO table generator.

■ lr/lr1: Package lr1 implements the table-driven LR(1) parsing driver.

■ lr/scanner: Package scanner defines the tokenizer interface the driver
consumes, plus an adapter for lexmachine in sub-package lexmach.

■ lang/cmini: Package cmini implements the mini-C lexer, ships the mini-C
grammar and bundles both into an analysis session.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

*/
package analyzer
