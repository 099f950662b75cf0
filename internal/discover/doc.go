// Package discover parses the rendered schedule listing for one calendar
// date and returns identifiers for the games that have a box-score review,
// excluding scheduled, cancelled, and rained-out entries.
package discover
