// Package logtail reads the end of the homepage log file for the diagnostics
// overlay.
//
// Read uses a ring buffer of maxLines entries, so memory stays bounded no
// matter how large the file grows. A missing file is not an error.
//
// Parse turns a zap JSON line into an Entry:
//
//	{"level":"warn","ts":"2026-01-02T15:04:05.000Z","msg":"document fetch failed, retrying","resource":"link.xml","attempt":1}
//	→ 15:04:05 WARN document fetch failed, retrying attempt=1 resource=link.xml
//
// Lines that are not JSON are shown as written.
package logtail
