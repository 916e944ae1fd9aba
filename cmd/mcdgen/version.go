package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/mcdgen"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of mcdgen",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mcdgen version %s\n", strings.TrimSpace(mcdgen.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
