package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// appVersion is the CLI version string.
const appVersion = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("otkeep v" + appVersion)
	},
}
