// Package wire provides the command-line interface for the wire redaction
// tool. It configures subcommands (redact, describe, validate, browse, etc.),
// parses flags, and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/is00hcw/wire/cmd/wire"
//	func main() { wire.Execute() }
package wire
