// Package game defines the box-score record, its composite identity, and
// the CSV schema shared by the durable dataset and per-date checkpoints.
//
// A record is created when detail extraction yields a final score and is
// only ever replaced wholesale by a later upsert covering the same key;
// it is never patched in place. Derived batting averages are recomputed
// from hits and at-bats on every merge.
package game
