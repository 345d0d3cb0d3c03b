// Package main provides the otkeep CLI: it keeps per-tree scripts and files
// out of the working tree and runs them from any subdirectory.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
