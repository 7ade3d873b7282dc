package cmd

// Registers the COM scripting backend.
import _ "github.com/mj1618/sapgui-cli/internal/platform/windows"
