package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// recalculateCmd represents the recalculate command
var recalculateCmd = &cobra.Command{
	Use:   "recalculate <input.mcd>",
	Short: "Recalculate parameters for an existing MCD file",
	Long: `Reads an existing MCD file, reruns the vendor's parameter calculation
on it, and writes Recalculated.mcd to the working directory.`,
	Args: cobra.ExactArgs(1),
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

		_, path, warnings, err := sess.Recalculate(ctx, args[0])
		if err != nil {
			return err
		}
		printWarnings(warnings)
		fmt.Println("wrote", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recalculateCmd)
}
