package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/mcdgen/internal/presentation/report"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <input.mcd>",
	Short: "Show the calculated servo and feedforward parameters of an MCD file",
	Args:  cobra.ExactArgs(1),
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

		def, err := sess.ReadDefinition(ctx, args[0])
		if err != nil {
			return err
		}
		servo, feedforward, err := sess.InspectParameters(def)
		if err != nil {
			return err
		}

		out, err := report.Render(report.Build(servo, feedforward))
		if err != nil {
			return err
		}
		fmt.Fprint(os.Stdout, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
