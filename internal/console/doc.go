// Package console renders the interactive labeling surface: colored status
// lines gated on terminal detection, and small summary tables.
package console
