package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mj1618/sapgui-cli/internal/config"
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/platform"
	"github.com/mj1618/sapgui-cli/internal/platform/fixture"
	"github.com/mj1618/sapgui-cli/internal/sapgui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// loadProfile reads the --profile connection profile.
func loadProfile() (config.Profile, error) {
	name, _ := rootCmd.PersistentFlags().GetString("profile")
	dir, _ := rootCmd.PersistentFlags().GetString("config-dir")
	if dir != "" {
		return config.LoadFrom(viper.New(), dir, name)
	}
	return config.Load(viper.New(), name)
}

// loadOptions builds session options from the profile.
func loadOptions() (sapgui.Options, error) {
	p, err := loadProfile()
	if err != nil {
		return sapgui.Options{}, err
	}
	opts := sapgui.DefaultOptions()
	if err := p.Apply(&opts); err != nil {
		return sapgui.Options{}, err
	}
	opts.Logger = logger
	return opts, nil
}

// host is where commands send their calls: the live engine, or a fixture
// host when --fixture is set.
type host struct {
	provider *platform.Provider
	fixture  *fixture.Host
}

func newHost() (*host, error) {
	path, _ := rootCmd.PersistentFlags().GetString("fixture")
	if path != "" {
		h, err := fixture.Load(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("using fixture host", zap.String("fixture", path), zap.String("system", h.System()))
		return &host{provider: h.Provider(), fixture: h}, nil
	}
	p, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	return &host{provider: p}, nil
}

// fixtureOptions makes a fixture login instant and fills in a system and
// user when the profile has none.
func (h *host) fixtureOptions(opts sapgui.Options) sapgui.Options {
	if opts.Credentials.System == "" {
		opts.Credentials.System = h.fixture.System()
	}
	if opts.Credentials.User == "" {
		opts.Credentials.User = "FIXTURE"
	}
	opts.TeardownPause, opts.LaunchPause, opts.SessionPause = 0, 0, 0
	opts.PollInterval = 0
	return opts
}

// login relaunches the host and signs in.
func (h *host) login(ctx context.Context, opts sapgui.Options) (*sapgui.Session, error) {
	if h.fixture != nil {
		opts = h.fixtureOptions(opts)
	}
	if opts.Credentials.System == "" {
		return nil, fmt.Errorf("no system configured: set system in the profile or pass --system")
	}
	return sapgui.Connect(ctx, h.provider, opts)
}

// attach joins the running host. A fixture host lives only as long as this
// process, so unless its tree opens a connection itself, attaching signs in
// first.
func (h *host) attach(ctx context.Context, opts sapgui.Options) (*sapgui.Session, error) {
	if h.fixture != nil && !h.fixture.Attached() {
		return h.login(ctx, opts)
	}
	return sapgui.Attach(ctx, h.provider, opts)
}

// withSession attaches to the running SAP GUI, switches to the --session
// parallel session and detaches once fn returns. SAP GUI keeps running.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *sapgui.Session) error) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	h, err := newHost()
	if err != nil {
		return err
	}
	defer h.provider.Release()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	root, err := h.attach(ctx, opts)
	if err != nil {
		return err
	}
	defer root.Detach()

	index, _ := rootCmd.PersistentFlags().GetInt("session")
	sess, err := root.Use(index)
	if err != nil {
		return err
	}
	return fn(ctx, sess)
}

// addTargetFlags adds --label/--root/--case-sensitive for commands that
// accept either an id argument or a text lookup.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("label", "", "Find the element by text instead of id")
	cmd.Flags().String("root", "", "Search below this id when using --label (default: wnd[0])")
	cmd.Flags().Bool("case-sensitive", false, "Match --label case exactly")
}

// resolveTarget returns the id argument, or resolves --label to exactly one
// element.
func resolveTarget(cmd *cobra.Command, s *sapgui.Session, args []string) (model.NodeID, error) {
	if len(args) > 0 && args[0] != "" {
		return model.NodeID(args[0]), nil
	}
	label, _ := cmd.Flags().GetString("label")
	if label == "" {
		return "", fmt.Errorf("specify an element id or --label")
	}
	root, _ := cmd.Flags().GetString("root")
	caseSensitive, _ := cmd.Flags().GetBool("case-sensitive")
	return s.FindOne(label, model.NodeID(root), caseSensitive)
}

// splitTypes parses a comma-separated --types value.
func splitTypes(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// readInput reads a file, or stdin when path is "" or "-".
func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
