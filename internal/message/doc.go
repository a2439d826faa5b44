// Package message implements dynamic, schema-typed message values. A Message
// is immutable once built; all mutation goes through a Builder, which can be
// seeded from an existing instance to express copy-with-overrides. The
// redactor package relies on that discipline: a redacted message is always a
// fresh value, never an in-place edit.
package message
