package cmd

import (
	"github.com/mj1618/sapgui-cli/internal/config"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage connection profiles",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Write ~/.sapgui-cli/config.toml (or --config-dir) with one profile. The
password is not stored; name an environment variable with --password-env.

Example:
  sapgui-cli config init --system "ERP Production" --user JDOE --password-env SAP_PW`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective profile (passwords are never printed)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadProfile()
		if err != nil {
			return err
		}
		return output.Print(p)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
	configInitCmd.Flags().String("system", "", "Connection description as shown in SAP Logon")
	configInitCmd.Flags().String("user", "", "User name")
	configInitCmd.Flags().String("password-env", "SAPGUI_PASSWORD", "Environment variable holding the password")
	configInitCmd.Flags().String("language", "", "Logon language")
	configInitCmd.Flags().Int("sessions", 1, "Number of parallel sessions")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	name, _ := rootCmd.PersistentFlags().GetString("profile")
	dir, _ := rootCmd.PersistentFlags().GetString("config-dir")
	force, _ := f.GetBool("force")

	defaults := sapgui.DefaultOptions()
	p := config.Profile{
		Name:               name,
		MaxSessions:        defaults.MaxSessions,
		LogonPath:          defaults.LogonPath,
		ScriptableAttempts: defaults.ScriptableAttempts,
		PollInterval:       defaults.PollInterval.String(),
		TeardownPause:      defaults.TeardownPause.String(),
		SessionPause:       defaults.SessionPause.String(),
		HomeAttempts:       defaults.HomeAttempts,
	}
	p.System, _ = f.GetString("system")
	p.User, _ = f.GetString("user")
	p.PasswordEnv, _ = f.GetString("password-env")
	p.Language, _ = f.GetString("language")
	p.Sessions, _ = f.GetInt("sessions")

	if dir == "" {
		var err error
		if dir, err = config.Dir(); err != nil {
			return err
		}
	}
	path, err := config.WriteTemplate(dir, p, force)
	if err != nil {
		return err
	}
	return output.Print(output.ActionResult{OK: true, Action: "config-init", Detail: path})
}
