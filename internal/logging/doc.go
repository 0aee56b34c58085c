// Package logging assembles the structured slog loggers used across tagmark.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides attribute helpers plus a no-op logger for tests and
// wiring code that cannot fail. Log output defaults to stderr so that it
// never interleaves with the interactive labeling prompt on stdout.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
