package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// convertCmd represents the convert command
var convertCmd = &cobra.Command{
	Use:   "convert <input.mcd> <output.json>",
	Short: "Convert an existing MCD file to JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		ctx := cmd.Context()
		if err := sess.Initialize(ctx); err != nil {
			return err
		}

		warnings, err := sess.ConvertToJSON(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		printWarnings(warnings)
		fmt.Println("wrote", args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
