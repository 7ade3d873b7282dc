package cmd

import (
	"context"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var closeCmd = &cobra.Command{
	Use:   "close [window]",
	Short: "Close a window (default wnd[1])",
	Long: `Close a popup or other window. With --if-open, a window that is not shown
is not an error.

Examples:
  sapgui-cli close
  sapgui-cli close wnd[2] --if-open`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClose,
}

func init() {
	rootCmd.AddCommand(closeCmd)
	closeCmd.Flags().Bool("if-open", false, "Succeed without doing anything when the window is not open")
}

func runClose(cmd *cobra.Command, args []string) error {
	window := model.WindowID(1)
	if len(args) == 1 {
		window = model.NodeID(args[0])
	}
	ifOpen, _ := cmd.Flags().GetBool("if-open")

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		if ifOpen && !s.WindowIsOpen(window) {
			return output.Print(output.ActionResult{OK: true, Action: "close", ID: window, Detail: "not open"})
		}
		if err := s.CloseWindow(window); err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: "close", ID: window})
	})
}
