// Package stats computes team and venue summary cards over the durable
// dataset: games, win/loss/draw record, runs for and against, hits, home
// runs, and batting average.
package stats
