package browser

import (
	"fmt"
	"io"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Default Chrome binary per OS, used when no override is configured.
var defaultChromePaths = map[string]string{
	"windows": `C:\Program Files\Google\Chrome\Application\chrome.exe`,
	"linux":   "google-chrome",
	"darwin":  "/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

// DefaultChromePath returns the conventional Chrome binary location for goos.
func DefaultChromePath(goos string) (string, error) {
	path, ok := defaultChromePaths[goos]
	if !ok {
		return "", fmt.Errorf("unsupported operating system: %s", goos)
	}
	return path, nil
}

// DebuggerPort extracts the port from a DevTools endpoint URL.
func DebuggerPort(debuggerURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(debuggerURL))
	if err != nil {
		return "", fmt.Errorf("parse debugger URL %q: %w", debuggerURL, err)
	}
	port := u.Port()
	if port == "" {
		return "", fmt.Errorf("debugger URL %q has no port", debuggerURL)
	}
	return port, nil
}

// launchChrome starts the local Chrome binary with remote debugging enabled
// and gives it StartupWait to open the DevTools socket. Chrome's stderr is
// discarded; it is noisy on Linux (D-Bus) without being actionable.
func launchChrome(opts Options) error {
	chromePath := strings.TrimSpace(opts.ChromePath)
	if chromePath == "" {
		var err error
		chromePath, err = DefaultChromePath(runtime.GOOS)
		if err != nil {
			return err
		}
	}
	port, err := DebuggerPort(opts.DebuggerURL)
	if err != nil {
		return err
	}

	cmd := exec.Command(chromePath, "--remote-debugging-port="+port)
	cmd.Stderr = io.Discard
	cmd.Stdout = io.Discard
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start chrome (%s): %w", chromePath, err)
	}
	// Chrome keeps running after this process exits; the session only
	// detaches, it never owns the browser lifetime.
	if err := cmd.Process.Release(); err != nil {
		return err
	}

	time.Sleep(opts.StartupWait)
	return nil
}
