package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/mj1618/sapgui-cli/internal/script"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute a list of steps in one session",
	Long: `Execute a sequence of steps from a YAML file, or from stdin when no file
is given. Each step is an action name with its parameters as a map. Steps
run in order in one attached session and by default execution stops on the
first error.

Supported step types: ` + strings.Join(script.Actions, ", ") + `

Example:
  sapgui-cli run <<'EOF'
  - tcode: { code: ME2N }
  - set: { id: "wnd[0]/usr/ctxtS_WERKS-LOW", text: "1000" }
  - execute: {}
  - export: { file: orders.xlsx, dir: 'C:\Reports' }
  - home: {}
  EOF`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
}

func runRun(cmd *cobra.Command, args []string) error {
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	data, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}
	steps, err := script.Parse(data)
	if err != nil {
		return err
	}

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		runner := &script.Runner{Session: s, StopOnError: stopOnError, Logger: logger}
		result := runner.Run(ctx, steps)
		if err := output.Print(result); err != nil {
			return err
		}
		if !result.OK {
			return fmt.Errorf("%d of %d steps completed: %s", result.Completed, result.Steps, result.Error)
		}
		return nil
	})
}
