// Package caenv provides the command-line interface for the caenv tool.
// It configures subcommands (compute, version, completion), parses flags,
// and executes the selected command.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/caenv/caenv/cmd/caenv"
//	func main() { caenv.Execute() }
package caenv
