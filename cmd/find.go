package cmd

import (
	"context"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <text>",
	Short: "Find elements whose text contains a substring",
	Long: `Search the elements below a window (default wnd[0]) for a text substring.
Matching ignores case unless --case-sensitive is set.

The match is printed as a single id, a list of ids in tree order, or the
string "Not found".

Examples:
  sapgui-cli find spreadsheet
  sapgui-cli find "File Name" --root wnd[1]`,
	Args: cobra.ExactArgs(1),
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	findCmd.Flags().String("root", "", "Search below this id (default: wnd[0])")
	findCmd.Flags().Bool("case-sensitive", false, "Match case exactly")
}

func runFind(cmd *cobra.Command, args []string) error {
	text := args[0]
	root, _ := cmd.Flags().GetString("root")
	caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
	if root == "" {
		root = string(model.MainWindow)
	}

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		res, err := s.FindByText(text, model.NodeID(root), caseSensitive)
		if err != nil {
			return err
		}
		return output.Print(output.FindResult{Query: text, Root: model.NodeID(root), Match: res})
	})
}
