package cmd

import (
	"context"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Return to the main menu",
	Long: `Close any popup, confirm an exit question if one is shown and go back
until the main window shows the home screen again.

The home screen is the title the main window had right after login. Commands
that attach to a running SAP GUI take the current title instead, so set
home_marker in the profile when attaching from another screen.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
			if err := s.GoHome(); err != nil {
				return err
			}
			return output.Print(output.ActionResult{OK: true, Action: "home", Detail: s.HomeMarker()})
		})
	},
}

func init() {
	rootCmd.AddCommand(homeCmd)
}
