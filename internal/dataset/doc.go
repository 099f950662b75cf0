// Package dataset owns the durable box-score table: whole-file CSV
// load/store with atomic replacement, the range-based upsert merge, and an
// explicit in-process cache with invalidation for downstream readers.
package dataset
