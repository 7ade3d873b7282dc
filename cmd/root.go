package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/sapgui-cli/internal/logging"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// logger is installed by the root command before any subcommand runs.
var logger = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "sapgui-cli",
	Short: "Drive SAP GUI for Windows through its scripting engine",
	Long: `A CLI tool that lets scripts and AI agents log in to SAP, read screens,
fill fields, press buttons, run transactions and export reports through the
SAP GUI Scripting API.

Commands other than login attach to an SAP GUI that is already running and
signed in. Use --fixture to run against a simulated system instead.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)

	flags := rootCmd.PersistentFlags()
	flags.String("format", "yaml", "Output format: yaml, json")
	flags.Bool("pretty", false, "Pretty-print JSON")
	flags.String("profile", "", "Connection profile from the config file (default \"default\")")
	flags.String("config-dir", "", "Config directory (default ~/.sapgui-cli)")
	flags.String("fixture", "", "Run against a simulated host from a YAML tree, or \"sample\"")
	flags.Int("session", 0, "Parallel session to drive (0 is the primary session)")
	flags.String("log-level", "warn", "Log level: debug, info, warn, error")
	flags.Bool("log-json", false, "Log as JSON instead of console text")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Read the root persistent flags directly to avoid conflicts with
		// subcommand local flags (e.g. screenshot --format png/jpg).
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")

		level, _ := rootCmd.PersistentFlags().GetString("log-level")
		asJSON, _ := rootCmd.PersistentFlags().GetBool("log-json")
		l, err := logging.New(level, asJSON)
		if err != nil {
			return err
		}
		logger = l
		return nil
	}
	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	}
}
