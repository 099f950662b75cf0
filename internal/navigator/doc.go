// Package navigator drives a headless Chrome session for pages that only
// exist as rendered HTML. Each session owns a temporary browser profile
// that is created on start and removed on close; fetches block on a
// content-readiness wait with a bounded timeout plus a small settle delay.
package navigator
