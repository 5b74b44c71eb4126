// Package exec handles executing external commands.
package exec

import (
	"os/exec"
	"runtime"
	"strings"
)

// Target is what an open command is launched for.
type Target struct {
	// URL of the dashboard, e.g. http://127.0.0.1:8501/
	URL string

	// Address the server listens on
	Addr string
}

// DefaultOpenCommand returns the browser launcher for goos.
func DefaultOpenCommand(goos string) string {
	switch goos {
	case "darwin":
		return "open {url}"
	case "windows":
		// start takes a quoted first argument as the window title
		return `start "" {url}`
	default:
		return "xdg-open {url}"
	}
}

// Command builds the shell command for template, expanded for t.
// An empty template uses the platform default.
func Command(template string, t Target) *exec.Cmd {
	if template == "" {
		template = DefaultOpenCommand(runtime.GOOS)
	}
	return shellCommand(expandTemplate(template, t, runtime.GOOS))
}

// OpenDetached starts the open command without waiting for it.
// The browser outlives aligns, so output is discarded.
func OpenDetached(template string, t Target) error {
	cmd := Command(template, t)
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.Stdin = nil

	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// expandTemplate expands template variables in the command, quoting for
// the shell that runs on goos.
func expandTemplate(command string, t Target, goos string) string {
	result := command

	quote := shellQuote
	if goos == "windows" {
		quote = cmdQuote
	}

	// {url} - Dashboard URL, quoted
	result = strings.ReplaceAll(result, "{url}", quote(t.URL))

	// {addr} - Listen address
	result = strings.ReplaceAll(result, "{addr}", t.Addr)

	return result
}

// shellQuote wraps s in single quotes for sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// cmdQuote wraps s in double quotes for cmd.exe, which has no escape for
// a quote inside a quoted string. URLs carry them percent-encoded instead.
func cmdQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, "%22") + `"`
}
