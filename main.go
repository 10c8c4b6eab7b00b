// Package main is the entry point for the febstats CLI tool, which imports
// FEB league box scores and builds per-player feature matrices for clustering.
package main

import "github.com/mfarres/go-feb-stats/cmd"

func main() {
	cmd.Execute()
}
