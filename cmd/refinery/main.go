// Package main provides the entry point for the refinery CLI tool.
package main

import "github.com/lodeworks/refinery/cmd/refinery/cmd"

// Version information populated by goreleaser.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	cmd.Execute(version, commit, date, builtBy)
}
