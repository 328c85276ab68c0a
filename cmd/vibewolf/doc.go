// Package vibewolf provides the command-line interface for VibeWolf. It wires
// subcommands (scan, report, rules, baseline, etc.), resolves flags against
// the YAML config files, and maps outcomes to exit codes.
//
// Typical usage from a main package:
//
//	package main
//	import "github.com/vibewolf/vibewolf/cmd/vibewolf"
//	func main() { vibewolf.Execute() }
package vibewolf
