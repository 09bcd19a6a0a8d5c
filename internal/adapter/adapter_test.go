package adapter

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/viper"
)

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	v.AddConfigPath(t.TempDir())
	cfg, err := loadConfig(v, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	want := DefaultConfig()
	if diff := cmp.Diff(want, cfg, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
source:
  base_url: http://localhost:3000
  total_photos: 120
  timeout: 5s
ui:
  default_view: table
  debounce: 250ms
bulk:
  recipients: [ops@example.com]
  close_delay: 1s
`
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}

	if cfg.Source.BaseURL != "http://localhost:3000" {
		t.Errorf("BaseURL = %q", cfg.Source.BaseURL)
	}
	if cfg.Source.TotalPhotos != 120 {
		t.Errorf("TotalPhotos = %d", cfg.Source.TotalPhotos)
	}
	if cfg.Source.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v", cfg.Source.Timeout)
	}
	if cfg.UI.DefaultView != ViewTable {
		t.Errorf("DefaultView = %q", cfg.UI.DefaultView)
	}
	if cfg.UI.Debounce != 250*time.Millisecond {
		t.Errorf("Debounce = %v", cfg.UI.Debounce)
	}
	if diff := cmp.Diff([]string{"ops@example.com"}, cfg.Bulk.Recipients); diff != "" {
		t.Errorf("Recipients mismatch (-want +got):\n%s", diff)
	}
	// Untouched keys keep their defaults
	if cfg.Bulk.Filename != "bulk-request-template.eml" {
		t.Errorf("Filename = %q", cfg.Bulk.Filename)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PHOTODECK_UI_DEFAULT_VIEW", "table")
	t.Setenv("PHOTODECK_SOURCE_TOTAL_PHOTOS", "77")

	v := viper.New()
	v.AddConfigPath(t.TempDir())
	cfg, err := loadConfig(v, "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.UI.DefaultView != ViewTable {
		t.Errorf("DefaultView = %q, want table", cfg.UI.DefaultView)
	}
	if cfg.Source.TotalPhotos != 77 {
		t.Errorf("TotalPhotos = %d, want 77", cfg.Source.TotalPhotos)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"ok", func(*Config) {}, ""},
		{"empty base url", func(c *Config) { c.Source.BaseURL = " " }, "base_url"},
		{"bad view", func(c *Config) { c.UI.DefaultView = "list" }, "default_view"},
		{"negative debounce", func(c *Config) { c.UI.Debounce = -time.Second }, "ui.debounce"},
		{"unknown source", func(c *Config) { c.Source.Type = "flickr" }, "unknown source type"},
		{"empty filename", func(c *Config) { c.Bulk.Filename = "" }, "bulk.filename"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.UI.DefaultView = ViewTable
	cfg.Source.RateLimit = 2.5

	if err := saveConfig(viper.New(), cfg, dir); err != nil {
		t.Fatalf("saveConfig: %v", err)
	}

	loaded, err := loadConfig(viper.New(), filepath.Join(dir, "config.yaml"))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if diff := cmp.Diff(cfg, loaded, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCacheDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false
	if got := cfg.CacheDir(); got != "" {
		t.Errorf("disabled cache dir = %q, want empty", got)
	}
	cfg.Cache.Enabled = true
	cfg.Cache.Dir = "/var/tmp/pd"
	if got := cfg.CacheDir(); got != "/var/tmp/pd" {
		t.Errorf("CacheDir() = %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"Error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLogLevel(in); got != want {
			t.Errorf("parseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "WARN")
	logger.Info("dropped")
	logger.Warn("kept", "page", 3)

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Error("info record should be filtered at WARN level")
	}
	if !strings.Contains(out, `"msg":"kept"`) || !strings.Contains(out, `"page":3`) {
		t.Errorf("unexpected log output: %s", out)
	}
}

func TestSetupLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "photodeck.log")
	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "DEBUG"})
	if err != nil {
		t.Fatalf("SetupLogger: %v", err)
	}
	logger.Debug("hello")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file missing record: %s", data)
	}
}

func TestLauncherOpen(t *testing.T) {
	type call struct {
		name string
		args []string
	}

	t.Run("configured viewer", func(t *testing.T) {
		var got call
		l := NewLauncher("firefox", []string{"--new-tab"}, NullLogger())
		l.start = func(name string, args ...string) error {
			got = call{name, args}
			return nil
		}
		if err := l.Open("https://via.placeholder.com/600/92c952"); err != nil {
			t.Fatalf("Open: %v", err)
		}
		want := call{"firefox", []string{"--new-tab", "https://via.placeholder.com/600/92c952"}}
		if diff := cmp.Diff(want, got, cmp.AllowUnexported(call{})); diff != "" {
			t.Errorf("launch mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("system default", func(t *testing.T) {
		var got string
		l := NewLauncher("", nil, NullLogger())
		l.start = func(name string, args ...string) error {
			got = name
			return nil
		}
		if err := l.Open("https://example.com/a.png"); err != nil {
			t.Fatalf("Open: %v", err)
		}
		if got == "" {
			t.Error("expected system opener to be started")
		}
	})

	t.Run("launch failure wraps", func(t *testing.T) {
		boom := errors.New("boom")
		l := NewLauncher("viewer", nil, NullLogger())
		l.start = func(string, ...string) error { return boom }
		if err := l.Open("https://example.com"); !errors.Is(err, boom) {
			t.Errorf("Open() error = %v, want wrapped boom", err)
		}
	})

	t.Run("rejects non-http", func(t *testing.T) {
		l := NewLauncher("", nil, NullLogger())
		l.start = func(string, ...string) error {
			t.Fatal("should not start a process")
			return nil
		}
		if err := l.Open("file:///etc/passwd"); err == nil {
			t.Error("expected error for file url")
		}
	})
}

func TestDefaultOpener(t *testing.T) {
	tests := []struct {
		goos string
		name string
	}{
		{"darwin", "open"},
		{"windows", "cmd"},
		{"linux", "xdg-open"},
		{"freebsd", "xdg-open"},
	}
	for _, tt := range tests {
		name, args := defaultOpener(tt.goos, "https://x.test")
		if name != tt.name {
			t.Errorf("%s: opener = %q, want %q", tt.goos, name, tt.name)
		}
		if args[len(args)-1] != "https://x.test" {
			t.Errorf("%s: url should be the last arg, got %v", tt.goos, args)
		}
	}
}
