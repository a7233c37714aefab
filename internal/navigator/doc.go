// Package navigator walks a user from the section menu down to a single
// document and keeps them there, alternating between viewing and editing,
// until they quit.
//
// The walk is an explicit state machine. Every move goes through the
// transition table in states.go, so a flow never recurses and each state can
// be driven on its own in tests. The navigator does no terminal I/O: it
// describes what should be on screen (Screen) and accepts three kinds of
// input, a submitted line, a single key in the document view, and the text
// committed by the editor.
package navigator
