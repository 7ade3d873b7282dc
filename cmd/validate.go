package cmd

import (
	"context"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <title>",
	Short: "Check that a window shows the expected title",
	Long: `Exit with an error unless the title of window N (default 0) equals the
given text.

Examples:
  sapgui-cli validate "SAP Easy Access"
  sapgui-cli validate "exit report" --window 1 --ignore-case`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Int("window", 0, "Window number")
	validateCmd.Flags().Bool("ignore-case", false, "Compare titles ignoring case")
}

func runValidate(cmd *cobra.Command, args []string) error {
	window, _ := cmd.Flags().GetInt("window")
	ignoreCase, _ := cmd.Flags().GetBool("ignore-case")

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		if err := s.ValidateWindowName(args[0], window, !ignoreCase); err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: "validate", ID: model.WindowID(window)})
	})
}
