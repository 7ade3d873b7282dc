package cmd

import (
	"context"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var vkeyCmd = &cobra.Command{
	Use:   "vkey [key]",
	Short: "Send a virtual key to a window",
	Long: `Send a virtual key to a window (default wnd[0]). Keys are given by name
(enter, back, f3, execute, f8, save, cancel, f12, exit) or number.

Examples:
  sapgui-cli vkey
  sapgui-cli vkey execute
  sapgui-cli vkey 12 --window wnd[1]`,
	Args: cobra.MaximumNArgs(1),
	RunE: runVKey,
}

func init() {
	rootCmd.AddCommand(vkeyCmd)
	vkeyCmd.Flags().String("window", string(model.MainWindow), "Window to send the key to")
}

func runVKey(cmd *cobra.Command, args []string) error {
	name := "enter"
	if len(args) == 1 {
		name = args[0]
	}
	key, err := platform.ParseVKey(name)
	if err != nil {
		return err
	}
	window, _ := cmd.Flags().GetString("window")

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		if err := s.SendVKey(model.NodeID(window), key); err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: "vkey", ID: model.NodeID(window), Detail: name})
	})
}
