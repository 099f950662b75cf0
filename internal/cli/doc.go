// Package cli implements the command-line interface for kbo-crawl.
//
// The cli package provides the Cobra-based CLI: the root command runs one
// incremental scrape-and-upsert pass over the target date range, and the
// summary subcommand prints team/venue aggregate cards from the durable
// dataset. It wires the planner, navigator, checkpoint store, and dataset
// store into the pipeline.
package cli
