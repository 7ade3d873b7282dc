package cmd

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mj1618/sapgui-cli/internal/capture"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var screenshotCmd = &cobra.Command{
	Use:   "screenshot",
	Short: "Capture an image of a window",
	Long: `Capture a window (default wnd[0]) through the scripting engine's hard
copy, scale it and write it as PNG or JPEG.

Without --output the image is written to stdout as base64.

Examples:
  sapgui-cli screenshot --output home.png
  sapgui-cli screenshot --window wnd[1] --format jpg --scale 1 --label`,
	Args: cobra.NoArgs,
	RunE: runScreenshot,
}

func init() {
	rootCmd.AddCommand(screenshotCmd)
	screenshotCmd.Flags().String("window", string(model.MainWindow), "Window to capture")
	screenshotCmd.Flags().String("output", "", "Output file path (default: stdout as base64)")
	screenshotCmd.Flags().String("format", "png", "Output format: png, jpg")
	screenshotCmd.Flags().Int("quality", 80, "JPEG quality 1-100")
	screenshotCmd.Flags().Float64("scale", 0.5, "Scale factor 0.1-1.0 (for token efficiency)")
	screenshotCmd.Flags().Bool("label", false, "Draw the window title across the top")
}

func runScreenshot(cmd *cobra.Command, args []string) error {
	window, _ := cmd.Flags().GetString("window")
	out, _ := cmd.Flags().GetString("output")
	formatName, _ := cmd.Flags().GetString("format")
	quality, _ := cmd.Flags().GetInt("quality")
	scale, _ := cmd.Flags().GetFloat64("scale")
	label, _ := cmd.Flags().GetBool("label")

	format, err := capture.ParseFormat(formatName)
	if err != nil {
		return err
	}
	opts := capture.Options{Format: format, Quality: quality, Scale: scale}

	return withSession(cmd, func(ctx context.Context, s *sapgui.Session) error {
		id := model.NodeID(window)
		if label {
			title, err := s.GetText(id)
			if err != nil {
				return err
			}
			opts.Label = title
		}

		dir, err := os.MkdirTemp("", "sapgui-shot-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(dir)

		written, err := s.HardCopy(id, filepath.Join(dir, "window.bmp"))
		if err != nil {
			return err
		}
		img, err := capture.Process(written, opts)
		if err != nil {
			return err
		}

		if out != "" {
			if err := os.WriteFile(out, img.Data, 0o644); err != nil {
				return err
			}
			return output.Print(output.ScreenshotResult{
				Window: id,
				Path:   out,
				Format: string(img.Format),
				Width:  img.Width,
				Height: img.Height,
			})
		}

		// Default: write to stdout as base64 for easy agent consumption
		encoder := base64.NewEncoder(base64.StdEncoding, output.Out)
		if _, err := encoder.Write(img.Data); err != nil {
			return err
		}
		if err := encoder.Close(); err != nil {
			return err
		}
		_, err = fmt.Fprintln(output.Out)
		return err
	})
}
