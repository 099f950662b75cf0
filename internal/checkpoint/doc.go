// Package checkpoint persists per-date snapshots of extracted records
// between runs. An existing checkpoint is reused instead of re-crawling
// its date unless a forced refresh overwrites it wholesale.
package checkpoint
