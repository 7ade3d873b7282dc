package cmd

import (
	"bytes"
	"encoding/json"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// resetFlags restores every flag to its default so commands run in one test
// process do not see each other's flags.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the CLI against the embedded sample system and returns what
// the command printed. Each call loads a fresh fixture host.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var buf bytes.Buffer
	prev := output.Out
	output.Out = &buf
	defer func() { output.Out = prev }()

	args = append(args, "--fixture", "sample", "--config-dir", t.TempDir())
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	_, err := rootCmd.ExecuteC()
	return buf.String(), err
}

func TestLoginCommand(t *testing.T) {
	out, err := execute(t, "", "login", "--user", "JDOE", "--sessions", "3")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	var res LoginResult
	if err := yaml.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	if !res.OK || res.System != "ERP Production" || res.User != "JDOE" {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Sessions != 3 {
		t.Errorf("sessions = %d, want 3", res.Sessions)
	}
	if res.HomeMarker != "SAP Easy Access" {
		t.Errorf("home marker = %q", res.HomeMarker)
	}
}

func TestLoginCommandReportsFixtureDefaults(t *testing.T) {
	out, err := execute(t, "", "login")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	var res LoginResult
	if err := yaml.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	if res.System != "ERP Production" || res.User != "FIXTURE" {
		t.Errorf("expected the credentials used to log in, got %+v", res)
	}
}

func TestInfoCommand(t *testing.T) {
	out, err := execute(t, "", "info")
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if !strings.Contains(out, "system_name: PRD") {
		t.Errorf("expected system name in output:\n%s", out)
	}
}

func TestGetCommand(t *testing.T) {
	out, err := execute(t, "", "get", "wnd[0]")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(out, "text: SAP Easy Access") {
		t.Errorf("expected single text in output:\n%s", out)
	}

	out, err = execute(t, "", "get", "wnd[0]", "wnd[0]/usr/lblFAVORITES", "--format", "json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var res struct {
		Text []string `json:"text"`
	}
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("parse output: %v\n%s", err, out)
	}
	if len(res.Text) != 2 || res.Text[1] != "Favorites" {
		t.Errorf("text = %v", res.Text)
	}
}

func TestFindCommand(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"favorites", "match: wnd[0]/usr/lblFAVORITES"},
		{"FAVORITES", "match: wnd[0]/usr/lblFAVORITES"},
		{"nothing like this", "match: Not found"},
	}
	for _, tt := range tests {
		out, err := execute(t, "", "find", tt.query)
		if err != nil {
			t.Fatalf("find %q: %v", tt.query, err)
		}
		if !strings.Contains(out, tt.want) {
			t.Errorf("find %q: expected %q in output:\n%s", tt.query, tt.want, out)
		}
	}

	out, err := execute(t, "", "find", "FAVORITES", "--case-sensitive")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !strings.Contains(out, "Not found") {
		t.Errorf("case-sensitive find should not match:\n%s", out)
	}
}

func TestReadCommand(t *testing.T) {
	out, err := execute(t, "", "read", "--types", "lbl,btn")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	for _, want := range []string{"wnd[0]/usr/lblFAVORITES", "wnd[0]/tbar[0]/btn[3]", "system: PRD"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "okcd") {
		t.Errorf("type filter should drop the command field:\n%s", out)
	}
}

func TestClickCommandErrors(t *testing.T) {
	if _, err := execute(t, "", "click", "wnd[0]/usr/btnMISSING"); err == nil {
		t.Error("expected error for a missing element")
	}
	if _, err := execute(t, "", "click"); err == nil {
		t.Error("expected error without id or --label")
	}
}

func TestTCodeCommand(t *testing.T) {
	out, err := execute(t, "", "tcode", "ME2N")
	if err != nil {
		t.Fatalf("tcode: %v", err)
	}
	if !strings.Contains(out, "transaction_code: ME2N") {
		t.Errorf("expected transaction in output:\n%s", out)
	}
	if _, err := execute(t, "", "tcode"); err == nil {
		t.Error("expected error without code or --end")
	}
	if _, err := execute(t, "", "tcode", "ME2N", "--end"); err == nil {
		t.Error("expected error with both code and --end")
	}
}

func TestValidateCommand(t *testing.T) {
	if _, err := execute(t, "", "validate", "SAP Easy Access"); err != nil {
		t.Errorf("validate: %v", err)
	}
	if _, err := execute(t, "", "validate", "sap easy access", "--ignore-case"); err != nil {
		t.Errorf("validate --ignore-case: %v", err)
	}
	if _, err := execute(t, "", "validate", "sap easy access"); err == nil {
		t.Error("expected a validation error")
	}
}

func TestCloseCommandIfOpen(t *testing.T) {
	out, err := execute(t, "", "close", "--if-open")
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if !strings.Contains(out, "not open") {
		t.Errorf("expected not open detail:\n%s", out)
	}
	if _, err := execute(t, "", "close"); err == nil {
		t.Error("expected error closing a window that is not open")
	}
}

func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	steps := `
- tcode: { code: ME2N }
- set: { id: "wnd[0]/usr/ctxtS_WERKS-LOW", text: "2000" }
- get: { id: "wnd[0]/usr/ctxtS_WERKS-LOW" }
- export: { file: orders.xlsx, dir: '` + dir + `' }
- home: {}
`
	out, err := execute(t, steps, "run")
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	for _, want := range []string{"ok: true", "completed: 5", "text: \"2000\"", "replaced: false"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRunCommandReportsFailure(t *testing.T) {
	out, err := execute(t, "- click: { id: \"wnd[0]/usr/btnMISSING\" }\n- home: {}\n", "run")
	if err == nil {
		t.Fatal("expected an error when a step fails")
	}
	if !strings.Contains(out, "completed: 0") {
		t.Errorf("expected results to be printed:\n%s", out)
	}
}

func TestScreenshotCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home.png")
	out, err := execute(t, "", "screenshot", "--output", path, "--label")
	if err != nil {
		t.Fatalf("screenshot: %v", err)
	}
	if !strings.Contains(out, "width: 80") {
		t.Errorf("expected scaled width in output:\n%s", out)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	resetFlags(rootCmd)
	var buf bytes.Buffer
	prev := output.Out
	output.Out = &buf
	defer func() { output.Out = prev }()

	rootCmd.SetArgs([]string{"config", "init", "--config-dir", dir, "--system", "ERP Test", "--user", "QA"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	resetFlags(rootCmd)
	buf.Reset()
	rootCmd.SetArgs([]string{"config", "show", "--config-dir", dir})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("config show: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"system: ERP Test", "user: QA", "password_env: SAPGUI_PASSWORD"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"config", "init", "--config-dir", dir})
	if err := rootCmd.Execute(); err == nil {
		t.Error("expected error overwriting without --force")
	}
}
