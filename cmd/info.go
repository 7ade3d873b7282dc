package cmd

import (
	"context"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print system, client, user, program and transaction",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
			info, err := s.Info()
			if err != nil {
				return err
			}
			return output.Print(info)
		})
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
