//go:build windows

package windows

import (
	"fmt"
	"os/exec"
	"strings"
)

// logonImage is the SAP Logon process; killing it invalidates the engine.
const logonImage = "saplogon.exe"

// Processes starts and stops host processes with the Windows tools.
type Processes struct {
	scripting *Scripting
}

// Launch starts path without waiting for it.
func (p *Processes) Launch(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("launch %s: %w", path, err)
	}
	return cmd.Process.Release()
}

// Kill force-terminates every process with the image name. A missing process
// is not an error.
func (p *Processes) Kill(imageName string) error {
	out, err := exec.Command("taskkill", "/IM", imageName, "/F").CombinedOutput()
	if strings.EqualFold(imageName, logonImage) && p.scripting != nil {
		p.scripting.reset()
	}
	if err != nil && !notRunning(string(out)) {
		return fmt.Errorf("taskkill %s: %w: %s", imageName, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// notRunning recognises taskkill's answer when nothing matched.
func notRunning(out string) bool {
	return strings.Contains(out, "not found")
}
