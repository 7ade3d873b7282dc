package sapgui

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mj1618/sapgui-cli/internal/model"
	"go.uber.org/zap"
)

// Widgets of the list viewer's export dialogs.
const (
	formatList     model.NodeID = "wnd[1]/usr/cmbG_LISTBOX"
	formatContinue model.NodeID = "wnd[1]/tbar[0]/btn[0]"
	pathField      model.NodeID = "wnd[1]/usr/ctxtDY_PATH"
	fileNameField  model.NodeID = "wnd[1]/usr/ctxtDY_FILENAME"
	generateButton model.NodeID = "wnd[1]/tbar[0]/btn[0]"
	replaceButton  model.NodeID = "wnd[1]/tbar[0]/btn[11]"

	// SpreadsheetFormatKey selects the XLSX entry of the format list.
	SpreadsheetFormatKey = "31"
)

// ExportResult describes the outcome of ExportSpreadsheet.
type ExportResult struct {
	Path     string `yaml:"path"             json:"path"`
	Replaced bool   `yaml:"replaced"         json:"replaced"`
	Skipped  bool   `yaml:"skipped"          json:"skipped"`
	Reason   string `yaml:"reason,omitempty" json:"reason,omitempty"`
}

// ExportSpreadsheet downloads the current report through its spreadsheet
// button into dir/fileName. An existing file is replaced. The export is
// skipped when the main window has no single spreadsheet control.
func (s *Session) ExportSpreadsheet(fileName, dir string) (ExportResult, error) {
	target := filepath.Join(dir, fileName)
	result := ExportResult{Path: target}

	res, err := s.FindByText("spreadsheet", model.MainWindow, false)
	if err != nil {
		return result, err
	}
	switch res.Kind() {
	case model.NotFound:
		result.Skipped, result.Reason = true, "no spreadsheet control in the main window"
		return result, nil
	case model.Multiple:
		result.Skipped, result.Reason = true, fmt.Sprintf("%d spreadsheet controls in the main window", len(res.IDs()))
		return result, nil
	}

	if err := s.Click(res.ID()); err != nil {
		return result, err
	}

	popup := model.WindowID(1)
	dirRes, err := s.FindByText("Directory", popup, false)
	if err != nil {
		return result, err
	}
	fileRes, err := s.FindByText("File Name", popup, false)
	if err != nil {
		return result, err
	}
	if !dirRes.Found() || !fileRes.Found() {
		s.log.Debug("choosing spreadsheet format")
		if err := s.SetKey(formatList, SpreadsheetFormatKey); err != nil {
			return result, err
		}
		if err := s.Press(formatContinue); err != nil {
			return result, err
		}
	}

	if err := s.SetText(pathField, dir); err != nil {
		return result, err
	}
	if err := s.SetText(fileNameField, fileName); err != nil {
		return result, err
	}

	button := generateButton
	if fileExists(target) {
		button = replaceButton
		result.Replaced = true
	}
	if err := s.Press(button); err != nil {
		return result, err
	}
	s.log.Info("exported spreadsheet", zap.String("path", target), zap.Bool("replaced", result.Replaced))

	s.killSpreadsheet()
	return result, nil
}

func (s *Session) killSpreadsheet() {
	p := s.link.provider
	if p == nil || p.Processes == nil || s.opts.SpreadsheetProcess == "" {
		return
	}
	if err := p.Processes.Kill(s.opts.SpreadsheetProcess); err != nil {
		s.log.Debug("kill failed", zap.String("process", s.opts.SpreadsheetProcess), zap.Error(err))
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
