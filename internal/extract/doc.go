// Package extract turns one rendered box-score review document into a
// normalized game record.
//
// Review pages have drifted across source revisions, so every field is
// read through an ordered chain of strategies: the first one that yields a
// value wins, and the final fallback always produces a definite (possibly
// zero) value. Score and teams come from the summary scoreboard or a
// secondary team/outcome table; hits and at-bats degrade from a totals row
// to a per-player column sum to classifying each plate-appearance cell by
// keyword; home runs degrade from an explicit column to attributing the
// notable-plays mentions through the surrendering pitcher's roster.
package extract
