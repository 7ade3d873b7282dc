package cmd

import (
	"context"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var inputCmd = &cobra.Command{
	Use:   "input <label> [text]",
	Short: "Find the field next to a label, optionally writing into it",
	Long: `Look for a label whose text is exactly <label> among the active window's
children and use the element that follows it. With text, write it into that
element; without, print the element's id.

Examples:
  sapgui-cli input Plant
  sapgui-cli input Material 100-100`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runInput,
}

func init() {
	rootCmd.AddCommand(inputCmd)
}

func runInput(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		id, err := s.FindInputByLabel(args[0])
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return output.Print(output.ActionResult{OK: true, Action: "input", ID: id})
		}
		if err := s.SetText(id, args[1]); err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: "set", ID: id})
	})
}
