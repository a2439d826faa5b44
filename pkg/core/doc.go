// Package core provides a small, stable facade over wire's internal schema,
// message, and redactor packages for external integrations. It deliberately
// re-exports a narrow API surface so third-party tools can depend on a stable
// import path without exposing internal implementation packages.
//
// Example:
//
//	set, err := core.LoadSchema("schemas/**/*.yaml")
//	if err != nil { /* handle */ }
//	out, err := core.RedactJSON(set, "acme.Invoice", payload)
//	if err != nil { /* handle */ }
//	os.Stdout.Write(out)
package core
