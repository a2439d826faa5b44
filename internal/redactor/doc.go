// Package redactor clears redacted-annotated fields from messages. For each
// message type it compiles, once, a plan of which fields to clear and which
// nested message fields to descend into; types needing neither share a single
// no-op plan, so redacting an irrelevant message costs an identity check and
// no allocation. Plans are immutable and safe to share across goroutines.
// This package is internal; external consumers should use pkg/core.
package redactor
