package cmd

import (
	"context"
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var readCmd = &cobra.Command{
	Use:   "read [root]",
	Short: "Read the object tree of a window",
	Long: `Read every element below a window or element (default wnd[0]) and print
its id, type code and text in tree order.

Examples:
  sapgui-cli read
  sapgui-cli read wnd[1] --types input
  sapgui-cli read --types btn,tabp --text export`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRead,
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().String("types", "", "Comma-separated type codes or groups to include (e.g. \"btn,ctxt\", \"input\", \"action\")")
	readCmd.Flags().String("text", "", "Only include elements whose text contains this (case-insensitive)")
	readCmd.Flags().Bool("prune", false, "Drop structural containers without text")
}

func runRead(cmd *cobra.Command, args []string) error {
	root := model.MainWindow
	if len(args) == 1 {
		root = model.NodeID(args[0])
	}
	types, _ := cmd.Flags().GetString("types")
	text, _ := cmd.Flags().GetString("text")
	prune, _ := cmd.Flags().GetBool("prune")

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		nodes, err := s.Nodes(root)
		if err != nil {
			return err
		}
		nodes = model.FilterByTypes(nodes, splitTypes(types))
		nodes = model.FilterByText(nodes, text)
		if prune {
			nodes = model.PruneEmpty(nodes)
		}

		result := output.ReadResult{Root: root, TS: time.Now().Unix(), Elements: nodes}
		if info, err := s.Info(); err == nil {
			result.System = info.SystemName
			result.Transaction = info.Transaction
		} else {
			logger.Debug("session info unavailable", zap.Error(err))
		}
		return output.Print(result)
	})
}
