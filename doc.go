// Package obbidl implements the language-neutral core described in spec §6:
// a lexer and parser for a two-party session-type protocol DSL, an FSM
// compiler, a semantic validator, and a code-generation driver.
//
// The five pipeline stages live in their own packages (lexer, parser, fsm,
// validate, generate) and are composed here behind five functions that
// mirror the core's public API one-to-one: Parse, Compile, Validate,
// Generate, and the GraphViz visualization helper.
package obbidl
