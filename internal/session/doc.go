// Package session implements the interactive labeling loop.
//
// A Session owns the unmarked and marked tables, a shuffled sampling queue of
// row indices, the skip set, and a unified undo history over skip and write
// actions. The loop blocks on operator keystrokes, persists the marked table
// as a whole-file rewrite after every label, and optionally enforces timed
// labeling/break phases. Every row index lives in exactly one of the queue,
// the skip set, or the marked set.
package session
