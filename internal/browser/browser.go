// Package browser opens URLs in the system browser, the terminal analogue of
// navigating a new tab.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenFunc opens a URL in a new browsing context. Components take an
// OpenFunc rather than calling Open directly so tests can capture the URL
// instead of launching anything.
type OpenFunc func(url string) error

// Open launches the platform browser detached from the TUI's terminal.
func Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	// Reap the child in the background so it never turns into a zombie.
	go cmd.Wait()
	return nil
}
