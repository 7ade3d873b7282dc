package cmd

import (
	"context"
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var tcodeCmd = &cobra.Command{
	Use:   "tcode [code]",
	Short: "Start or end a transaction",
	Long: `Start a transaction by code and print the session information afterwards.
With --end, end the current transaction instead.

Examples:
  sapgui-cli tcode ME2N
  sapgui-cli tcode --end`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTCode,
}

func init() {
	rootCmd.AddCommand(tcodeCmd)
	tcodeCmd.Flags().Bool("end", false, "End the current transaction")
}

func runTCode(cmd *cobra.Command, args []string) error {
	end, _ := cmd.Flags().GetBool("end")
	if end == (len(args) == 1) {
		return fmt.Errorf("specify a transaction code or --end")
	}

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		if end {
			info, err := s.EndTransaction()
			if err != nil {
				return err
			}
			return output.Print(info)
		}
		info, err := s.StartTransaction(args[0])
		if err != nil {
			return err
		}
		return output.Print(info)
	})
}
