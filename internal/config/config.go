// Package config loads named SAP connection profiles from
// ~/.sapgui-cli/config.toml, with SAPGUI_* environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mj1618/sapgui-cli/internal/sapgui"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".sapgui-cli"
	configFile = "config.toml"
	envPrefix  = "SAPGUI"
	fileMode   = 0o600
	dirMode    = 0o700

	// DefaultProfile is used when --profile is not given.
	DefaultProfile = "default"
)

// Profile is one named connection in the config file. Durations are Go
// duration strings ("1s", "500ms").
type Profile struct {
	Name string `toml:"-" yaml:"name" json:"name"`

	System      string `toml:"system"                 yaml:"system"                 json:"system"`
	User        string `toml:"user"                   yaml:"user"                   json:"user"`
	Password    string `toml:"password,omitempty"     yaml:"-"                      json:"-"`
	PasswordEnv string `toml:"password_env,omitempty" yaml:"password_env,omitempty" json:"password_env,omitempty"`
	Language    string `toml:"language,omitempty"     yaml:"language,omitempty"     json:"language,omitempty"`

	Sessions    int `toml:"sessions,omitempty"     yaml:"sessions"     json:"sessions"`
	MaxSessions int `toml:"max_sessions,omitempty" yaml:"max_sessions" json:"max_sessions"`

	LogonPath          string `toml:"logon_path,omitempty"          yaml:"logon_path"          json:"logon_path"`
	ScriptableAttempts int    `toml:"scriptable_attempts,omitempty" yaml:"scriptable_attempts" json:"scriptable_attempts"`
	PollInterval       string `toml:"poll_interval,omitempty"       yaml:"poll_interval"       json:"poll_interval"`
	TeardownPause      string `toml:"teardown_pause,omitempty"      yaml:"teardown_pause"      json:"teardown_pause"`
	SessionPause       string `toml:"session_pause,omitempty"       yaml:"session_pause"       json:"session_pause"`
	HomeMarker         string `toml:"home_marker,omitempty"         yaml:"home_marker,omitempty" json:"home_marker,omitempty"`
	HomeAttempts       int    `toml:"home_attempts,omitempty"       yaml:"home_attempts"       json:"home_attempts"`
}

// keys lists every profile key; each may be overridden by SAPGUI_<KEY>.
var keys = []string{
	"system", "user", "password", "password_env", "language",
	"sessions", "max_sessions", "logon_path", "scriptable_attempts",
	"poll_interval", "teardown_pause", "session_pause", "home_marker",
	"home_attempts",
}

// Dir returns the default config directory.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, configDir), nil
}

// Load reads profile from the default config directory. A missing config
// file is not an error: the profile then comes from defaults and the
// environment alone.
func Load(cfg *viper.Viper, profile string) (Profile, error) {
	dir, err := Dir()
	if err != nil {
		return Profile{}, err
	}
	return LoadFrom(cfg, dir, profile)
}

// LoadFrom reads profile from dir/config.toml.
func LoadFrom(cfg *viper.Viper, dir, profile string) (Profile, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if profile == "" {
		profile = DefaultProfile
	}

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(dir)

	prefix := "profiles." + profile + "."
	defaults := sapgui.DefaultOptions()
	cfg.SetDefault(prefix+"sessions", defaults.Sessions)
	cfg.SetDefault(prefix+"max_sessions", defaults.MaxSessions)
	cfg.SetDefault(prefix+"logon_path", defaults.LogonPath)
	cfg.SetDefault(prefix+"scriptable_attempts", defaults.ScriptableAttempts)
	cfg.SetDefault(prefix+"poll_interval", defaults.PollInterval.String())
	cfg.SetDefault(prefix+"teardown_pause", defaults.TeardownPause.String())
	cfg.SetDefault(prefix+"session_pause", defaults.SessionPause.String())
	cfg.SetDefault(prefix+"home_attempts", defaults.HomeAttempts)
	for _, k := range keys {
		if err := cfg.BindEnv(prefix+k, envPrefix+"_"+strings.ToUpper(k)); err != nil {
			return Profile{}, fmt.Errorf("bind env for %s: %w", k, err)
		}
	}

	if err := cfg.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Profile{}, fmt.Errorf("read config file: %w", err)
		}
	} else if profile != DefaultProfile && !cfg.InConfig("profiles."+profile) {
		return Profile{}, fmt.Errorf("profile %q not found in %s", profile, cfg.ConfigFileUsed())
	}

	return Profile{
		Name:               profile,
		System:             cfg.GetString(prefix + "system"),
		User:               cfg.GetString(prefix + "user"),
		Password:           cfg.GetString(prefix + "password"),
		PasswordEnv:        cfg.GetString(prefix + "password_env"),
		Language:           cfg.GetString(prefix + "language"),
		Sessions:           cfg.GetInt(prefix + "sessions"),
		MaxSessions:        cfg.GetInt(prefix + "max_sessions"),
		LogonPath:          cfg.GetString(prefix + "logon_path"),
		ScriptableAttempts: cfg.GetInt(prefix + "scriptable_attempts"),
		PollInterval:       cfg.GetString(prefix + "poll_interval"),
		TeardownPause:      cfg.GetString(prefix + "teardown_pause"),
		SessionPause:       cfg.GetString(prefix + "session_pause"),
		HomeMarker:         cfg.GetString(prefix + "home_marker"),
		HomeAttempts:       cfg.GetInt(prefix + "home_attempts"),
	}, nil
}

// ResolvePassword returns the inline password, or the value of the
// environment variable named by password_env.
func (p Profile) ResolvePassword() (string, error) {
	if p.Password != "" || p.PasswordEnv == "" {
		return p.Password, nil
	}
	v, ok := os.LookupEnv(p.PasswordEnv)
	if !ok {
		return "", fmt.Errorf("profile %q: password variable %s is not set", p.Name, p.PasswordEnv)
	}
	return v, nil
}

// Apply copies the profile into session options.
func (p Profile) Apply(opts *sapgui.Options) error {
	password, err := p.ResolvePassword()
	if err != nil {
		return err
	}
	opts.Credentials.System = p.System
	opts.Credentials.User = p.User
	opts.Credentials.Password = password
	opts.Credentials.Language = p.Language
	opts.Sessions = p.Sessions
	opts.MaxSessions = p.MaxSessions
	opts.LogonPath = p.LogonPath
	opts.ScriptableAttempts = p.ScriptableAttempts
	opts.HomeMarker = p.HomeMarker
	opts.HomeAttempts = p.HomeAttempts

	durations := []struct {
		key   string
		value string
		dst   *time.Duration
	}{
		{"poll_interval", p.PollInterval, &opts.PollInterval},
		{"teardown_pause", p.TeardownPause, &opts.TeardownPause},
		{"session_pause", p.SessionPause, &opts.SessionPause},
	}
	for _, d := range durations {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return fmt.Errorf("profile %q: %s: %w", p.Name, d.key, err)
		}
		*d.dst = parsed
	}
	return nil
}

type file struct {
	Profiles map[string]Profile `toml:"profiles"`
}

// WriteTemplate writes a starter config with one profile to dir. It refuses
// to overwrite an existing file unless force is set.
func WriteTemplate(dir string, p Profile, force bool) (string, error) {
	path := filepath.Join(dir, configFile)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	name := p.Name
	if name == "" {
		name = DefaultProfile
	}
	data, err := toml.Marshal(file{Profiles: map[string]Profile{name: p}})
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, fileMode); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
