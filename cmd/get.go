package cmd

import (
	"context"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <id>...",
	Short: "Print the text of one or more elements",
	Long: `Print the display text of elements. One id prints a string; several ids
print a list in the same order.

Examples:
  sapgui-cli get wnd[0]
  sapgui-cli get wnd[0]/usr/ctxtS_WERKS-LOW wnd[0]/usr/ctxtS_EBELN-LOW`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	ids := make([]model.NodeID, len(args))
	for i, a := range args {
		ids[i] = model.NodeID(a)
	}
	target := model.One(ids[0])
	if len(ids) > 1 {
		target = model.Many(ids)
	}

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		text, err := s.Fetch(target)
		if err != nil {
			return err
		}
		return output.Print(output.TextResult{IDs: ids, Text: text})
	})
}
