package cmd

import (
	"fmt"
	"os"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

// LoginResult is the output of the login command.
type LoginResult struct {
	OK         bool   `yaml:"ok"          json:"ok"`
	Action     string `yaml:"action"      json:"action"`
	System     string `yaml:"system"      json:"system"`
	User       string `yaml:"user"        json:"user"`
	Sessions   int    `yaml:"sessions"    json:"sessions"`
	HomeMarker string `yaml:"home_marker" json:"home_marker"`
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Restart SAP Logon and sign in",
	Long: `Terminate any running SAP Logon, start it again, wait for the scripting
engine, open the configured system and sign in. Opens the requested number
of parallel sessions. SAP GUI stays running and signed in afterwards, so
other commands can attach to it.

Connection details come from the profile (see 'config init'); flags
override them. The password may also come from SAPGUI_PASSWORD.

Examples:
  sapgui-cli login --system "ERP Production" --user JDOE --password-env SAP_PW
  sapgui-cli login --profile prd --sessions 3`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("system", "", "Connection description as shown in SAP Logon")
	loginCmd.Flags().String("user", "", "User name")
	loginCmd.Flags().String("password-env", "", "Read the password from this environment variable")
	loginCmd.Flags().String("language", "", "Logon language (e.g. EN)")
	loginCmd.Flags().Int("sessions", 0, "Number of parallel sessions to open (default from profile)")
	loginCmd.Flags().String("logon-path", "", "Path to saplogon.exe")
}

func runLogin(cmd *cobra.Command, args []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	if err := applyLoginFlags(cmd, &opts); err != nil {
		return err
	}

	h, err := newHost()
	if err != nil {
		return err
	}
	defer h.provider.Release()

	sess, err := h.login(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer sess.Detach()

	return output.Print(LoginResult{
		OK:         true,
		Action:     "login",
		System:     sess.System(),
		User:       sess.User(),
		Sessions:   len(sess.Windows()),
		HomeMarker: sess.HomeMarker(),
	})
}

// applyLoginFlags overrides profile values with the flags that were set.
func applyLoginFlags(cmd *cobra.Command, opts *sapgui.Options) error {
	f := cmd.Flags()
	if f.Changed("system") {
		opts.Credentials.System, _ = f.GetString("system")
	}
	if f.Changed("user") {
		opts.Credentials.User, _ = f.GetString("user")
	}
	if f.Changed("language") {
		opts.Credentials.Language, _ = f.GetString("language")
	}
	if f.Changed("sessions") {
		opts.Sessions, _ = f.GetInt("sessions")
	}
	if f.Changed("logon-path") {
		opts.LogonPath, _ = f.GetString("logon-path")
	}
	if f.Changed("password-env") {
		name, _ := f.GetString("password-env")
		v, ok := os.LookupEnv(name)
		if !ok {
			return fmt.Errorf("password variable %s is not set", name)
		}
		opts.Credentials.Password = v
	}
	return nil
}
