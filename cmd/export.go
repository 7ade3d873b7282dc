package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the current report to a spreadsheet",
	Long: `Click the report's spreadsheet button, pick the spreadsheet format if
asked, and save to --dir/--file. An existing file is replaced. The
spreadsheet application SAP opens afterwards is closed.

When the screen has no single spreadsheet button, nothing is exported and
the result reports skipped: true.

Examples:
  sapgui-cli export --file orders.xlsx --dir C:\Reports
  sapgui-cli export --out C:\Reports\orders.xlsx`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().String("file", "", "File name")
	exportCmd.Flags().String("dir", "", "Target directory")
	exportCmd.Flags().String("out", "", "Full target path (instead of --file and --dir)")
	exportCmd.Flags().Bool("require", false, "Fail when the export was skipped")
}

func runExport(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	dir, _ := cmd.Flags().GetString("dir")
	out, _ := cmd.Flags().GetString("out")
	require, _ := cmd.Flags().GetBool("require")

	if out != "" {
		dir, file = filepath.Split(out)
	}
	if file == "" || dir == "" {
		return fmt.Errorf("specify --file and --dir, or --out")
	}

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		res, err := s.ExportSpreadsheet(file, dir)
		if err != nil {
			return err
		}
		if res.Skipped && require {
			return fmt.Errorf("export skipped: %s", res.Reason)
		}
		return output.Print(res)
	})
}
