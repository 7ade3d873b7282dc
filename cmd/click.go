package cmd

import (
	"context"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var clickCmd = &cobra.Command{
	Use:   "click [id]",
	Short: "Press a button or select a tab, menu entry or option",
	Long: `Click an element by id or by --label. Buttons are pressed; elements that
cannot be pressed (tabs, menu entries, radio buttons, check boxes) are
selected instead.

Examples:
  sapgui-cli click wnd[0]/tbar[1]/btn[8]
  sapgui-cli click --label Spreadsheet
  sapgui-cli click wnd[0]/tbar[0]/btn[3] --press-only`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClick,
}

func init() {
	rootCmd.AddCommand(clickCmd)
	addTargetFlags(clickCmd)
	clickCmd.Flags().Bool("press-only", false, "Fail instead of falling back to select")
}

func runClick(cmd *cobra.Command, args []string) error {
	pressOnly, _ := cmd.Flags().GetBool("press-only")

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		id, err := resolveTarget(cmd, s, args)
		if err != nil {
			return err
		}
		action := "click"
		if pressOnly {
			action = "press"
			err = s.Press(id)
		} else {
			err = s.Click(id)
		}
		if err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: action, ID: id})
	})
}
