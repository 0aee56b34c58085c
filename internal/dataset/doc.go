// Package dataset models the tabular data a labeling run reads and writes.
//
// A Table is an ordered list of rows addressed by named columns, loaded from
// a header-row CSV file. Persistence is deliberately simple: every save is a
// full-table rewrite so the destination always mirrors the in-memory state
// after the most recent label.
package dataset
