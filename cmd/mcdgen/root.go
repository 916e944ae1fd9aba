package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/mcdgen"
	"github.com/aretw0/mcdgen/internal/config"
	"github.com/aretw0/mcdgen/internal/logging"
	"github.com/aretw0/mcdgen/internal/notify"
)

var rootCmd = &cobra.Command{
	Use:   "mcdgen",
	Short: "mcdgen generates calculated machine controller definition files",
	Long: `mcdgen drives the vendor's machine configuration toolkit to produce
calculated MCD files from JSON stage specifications or from existing MCD
files, and can scrape the calculated servo tuning values back out.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a mcdgen config file")
	rootCmd.PersistentFlags().String("install-root", "", "Directory holding versioned controller runtime installs")
	rootCmd.PersistentFlags().String("assets", "", "Directory holding the stage template and working document")
	rootCmd.PersistentFlags().String("working-dir", "", "Directory receiving generated MCD files")
	rootCmd.PersistentFlags().String("name", "", "Override the stage type in output file names")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// newSession builds a session from the config file, environment, and flags
// (highest precedence last).
func newSession(cmd *cobra.Command) (*mcdgen.Session, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if v, _ := cmd.Flags().GetString("install-root"); v != "" {
		cfg.InstallRoot = v
	}
	if v, _ := cmd.Flags().GetString("assets"); v != "" {
		cfg.AssetsDir = v
	}
	if v, _ := cmd.Flags().GetString("working-dir"); v != "" {
		cfg.WorkingDir = v
	}
	if v, _ := cmd.Flags().GetString("name"); v != "" {
		cfg.McdName = v
	}

	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}

	opts := []mcdgen.Option{
		mcdgen.WithLogger(logging.New(level)),
		mcdgen.WithNotifier(notify.NewConsole()),
		mcdgen.WithInstallRoot(cfg.InstallRoot),
		mcdgen.WithAssetsDir(cfg.AssetsDir),
		mcdgen.WithWorkingDir(cfg.WorkingDir),
	}
	if cfg.McdName != "" {
		opts = append(opts, mcdgen.WithMCDName(cfg.McdName))
	}
	if cfg.Bridge.Command != "" {
		opts = append(opts, mcdgen.WithBridgeCommand(cfg.Bridge.Command, cfg.Bridge.Args...))
	}
	if len(cfg.Bridge.Environment) > 0 {
		opts = append(opts, mcdgen.WithBridgeEnv(cfg.Bridge.Environment))
	}
	return mcdgen.New(opts...)
}

func printWarnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(os.Stderr, "warning:", w)
	}
}
