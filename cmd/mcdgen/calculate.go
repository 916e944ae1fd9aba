package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/mcdgen/internal/config"
	"github.com/aretw0/mcdgen/internal/presentation/report"
	"github.com/aretw0/mcdgen/pkg/domain"
)

// calculateCmd represents the calculate command
var calculateCmd = &cobra.Command{
	Use:   "calculate [spec-file]",
	Short: "Convert stage specs and calculate machine parameters",
	Long: `Builds a configuration from a stage specification file (YAML or JSON),
runs the vendor's parameter calculation on it, and writes
Calculated_<name>.mcd to the working directory. Without a spec file, a
prepared <stage-type>.json document is read from the working directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var spec domain.StageSpec
		if len(args) > 0 {
			loaded, err := config.LoadSpec(args[0])
			if err != nil {
				return err
			}
			spec = loaded
		}
		if v, _ := cmd.Flags().GetString("stage-type"); v != "" {
			spec.StageType = v
		}
		if v, _ := cmd.Flags().GetString("axis"); v != "" {
			spec.Axis = v
		}
		if spec.StageType == "" {
			return fmt.Errorf("a stage type is required (spec file or --stage-type)")
		}

		sess, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer sess.Close()

		ctx := cmd.Context()
		if err := sess.Initialize(ctx); err != nil {
			return err
		}

		calculated, warnings, path, err := sess.Calculate(ctx, spec)
		if err != nil {
			return err
		}
		printWarnings(warnings)
		fmt.Println("wrote", path)

		if show, _ := cmd.Flags().GetBool("report"); show {
			servo, feedforward, err := sess.InspectParameters(calculated)
			if err != nil {
				return err
			}
			out, err := report.Render(report.Build(servo, feedforward))
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(calculateCmd)

	calculateCmd.Flags().String("stage-type", "", "Stage type name (overrides the spec file)")
	calculateCmd.Flags().String("axis", "", "Axis name (overrides the spec file)")
	calculateCmd.Flags().Bool("report", false, "Render the calculated servo and feedforward parameters")
}
