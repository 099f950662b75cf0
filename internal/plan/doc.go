// Package plan decides which calendar dates a crawl run must visit,
// combining explicit bounds, prior dataset state, and a recheck window
// for games that were still pending when last crawled.
package plan
