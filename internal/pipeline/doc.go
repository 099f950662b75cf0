// Package pipeline sequences one scrape-and-upsert run: plan the target
// dates, own the navigator session for the run's duration, crawl each
// date through checkpoints, and fold the batch into the durable dataset.
//
// Scheduling is strictly sequential: one navigation at a time with a
// politeness delay between fetches. Per-event and per-date failures never
// propagate past their own scope; only session-start failure aborts the
// run, which it does before the dataset is touched.
package pipeline
