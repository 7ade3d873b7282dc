package version

// Set via -ldflags at build time:
//
//	go build -ldflags "-X github.com/mj1618/sapgui-cli/internal/version.Version=v0.3.0"
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)
