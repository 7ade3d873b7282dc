package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set [id] [text]",
	Short: "Write text into one or more fields",
	Long: `Write text into a field by id, or find the field by --label. Use --value
id=text (repeatable) to write several fields; they are written in id order
and writing stops at the first failure.

Examples:
  sapgui-cli set wnd[0]/usr/ctxtS_WERKS-LOW 1000
  sapgui-cli set --label "Purchasing Document" 4500000001
  sapgui-cli set --value wnd[0]/usr/ctxtS_WERKS-LOW=1000 --value wnd[0]/usr/ctxtS_EBELN-LOW=4500000001`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	addTargetFlags(setCmd)
	setCmd.Flags().StringArray("value", nil, "id=text pair to write (repeatable)")
}

func runSet(cmd *cobra.Command, args []string) error {
	pairs, _ := cmd.Flags().GetStringArray("value")
	if len(pairs) > 0 {
		if len(args) > 0 {
			return fmt.Errorf("use either --value pairs or an id and text, not both")
		}
		values, err := parseValues(pairs)
		if err != nil {
			return err
		}
		return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
			if err := s.SetMany(values); err != nil {
				return err
			}
			return output.Print(output.ActionResult{OK: true, Action: "set", Detail: fmt.Sprintf("%d fields", len(values))})
		})
	}

	// With --label the only positional argument is the text.
	label, _ := cmd.Flags().GetString("label")
	var idArgs []string
	var text string
	switch {
	case label != "" && len(args) == 1:
		text = args[0]
	case label == "" && len(args) == 2:
		idArgs, text = args[:1], args[1]
	default:
		return fmt.Errorf("specify an element id and text, or --label and text")
	}

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		id, err := resolveTarget(cmd, s, idArgs)
		if err != nil {
			return err
		}
		if err := s.SetText(id, text); err != nil {
			return err
		}
		return output.Print(output.ActionResult{OK: true, Action: "set", ID: id})
	})
}

// parseValues parses id=text pairs. The id ends at the first "=".
func parseValues(pairs []string) (map[model.NodeID]string, error) {
	values := make(map[model.NodeID]string, len(pairs))
	for _, p := range pairs {
		id, text, ok := strings.Cut(p, "=")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --value %q, expected id=text", p)
		}
		values[model.NodeID(id)] = text
	}
	return values, nil
}
