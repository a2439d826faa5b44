// Package schema holds the compiled message type descriptors that drive the
// redaction runtime. Types and fields are loaded from YAML (or JSON) schema
// files, resolved into an immutable Set, and consumed read-only by the rest
// of the system. This package is internal; external consumers should use the
// stable facade in pkg/core.
package schema
