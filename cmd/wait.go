package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var waitCmd = &cobra.Command{
	Use:   "wait <id>",
	Short: "Wait until a window or element exists",
	Long: `Poll until the element resolves, or fail after --timeout seconds.

Examples:
  sapgui-cli wait wnd[1]
  sapgui-cli wait wnd[0]/usr/ctxtS_WERKS-LOW --timeout 60 --interval 1000`,
	Args: cobra.ExactArgs(1),
	RunE: runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().Int("timeout", 30, "Max seconds to wait")
	waitCmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
}

func runWait(cmd *cobra.Command, args []string) error {
	id := model.NodeID(args[0])
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	intervalMs, _ := cmd.Flags().GetInt("interval")
	if intervalMs <= 0 {
		return fmt.Errorf("--interval must be positive")
	}
	interval := time.Duration(intervalMs) * time.Millisecond
	attempts := int(time.Duration(timeoutSec)*time.Second/interval) + 1

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		start := time.Now()
		if err := s.WaitForWindow(ctx, id, attempts, interval); err != nil {
			return err
		}
		return output.Print(output.ActionResult{
			OK:     true,
			Action: "wait",
			ID:     id,
			Detail: fmt.Sprintf("%.1fs", time.Since(start).Seconds()),
		})
	})
}
