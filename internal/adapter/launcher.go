package adapter

import (
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"
)

// commandStarter starts an external process. Swapped out in tests.
type commandStarter func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	if _, err := exec.LookPath(name); err != nil {
		return err
	}
	return exec.Command(name, args...).Start() // Start async, don't wait
}

// Launcher opens photo URLs in an external viewer
type Launcher struct {
	command string   // configured viewer command, empty for system default
	args    []string // additional arguments for the viewer
	start   commandStarter
	logger  *slog.Logger
}

// NewLauncher creates a new Launcher
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command: command,
		args:    args,
		start:   startCommand,
		logger:  logger,
	}
}

// Open opens rawURL in the configured viewer or the system default
func (l *Launcher) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("refusing to open non-http url %q", rawURL)
	}

	// Tier 1: User configured a specific viewer
	if l.command != "" {
		args := append(append([]string{}, l.args...), rawURL)
		l.logger.Info("opening with configured viewer", "command", l.command, "args", args)
		if err := l.start(l.command, args...); err != nil {
			return fmt.Errorf("failed to launch %s: %w", l.command, err)
		}
		return nil
	}

	// Tier 2: System default (open/xdg-open/start)
	return l.openDefault(rawURL)
}

// openDefault opens the URL using the system default handler
func (l *Launcher) openDefault(rawURL string) error {
	name, args := defaultOpener(runtime.GOOS, rawURL)
	l.logger.Info("opening with system default", "os", runtime.GOOS, "url", rawURL)
	if err := l.start(name, args...); err != nil {
		return fmt.Errorf("failed to open url: %w", err)
	}
	return nil
}

func defaultOpener(goos, rawURL string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{rawURL}
	case "windows":
		return "cmd", []string{"/c", "start", "", rawURL}
	default:
		// Linux and other Unix-like systems
		return "xdg-open", []string{rawURL}
	}
}
