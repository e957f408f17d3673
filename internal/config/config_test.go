package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/flipclock/internal/anim"
	"github.com/five82/flipclock/internal/countdown"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Labels != defaultLabels {
		t.Fatalf("Labels = %q, want %q", cfg.Labels, defaultLabels)
	}
	if cfg.Tick != time.Second || cfg.FlipDuration != 500*time.Millisecond {
		t.Fatalf("Tick/FlipDuration = %v/%v, want 1s/500ms", cfg.Tick, cfg.FlipDuration)
	}
	if cfg.Policy != countdown.PolicyCoalesce {
		t.Fatalf("Policy = %s, want coalesce", cfg.Policy)
	}
	curve, ok := anim.CurveByName(cfg.Curve)
	if !ok || curve(0.5) != anim.Linear(0.5) {
		t.Fatalf("default curve %q does not pace linearly", cfg.Curve)
	}

	wantLog, err := ExpandPath(defaultLogFile)
	if err != nil {
		t.Fatalf("ExpandPath(defaultLogFile) returned error: %v", err)
	}
	if cfg.LogFile != wantLog {
		t.Fatalf("LogFile = %q, want %q", cfg.LogFile, wantLog)
	}
	if cfg.HTTPAddr != "" || len(cfg.Notify) != 0 {
		t.Fatalf("HTTPAddr = %q Notify = %v, want both disabled", cfg.HTTPAddr, cfg.Notify)
	}
}

func TestLoad_ParsesAndTrimsTOML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, "config.toml", `
target = "  2026-12-31T23:59:59Z  "
caption = "  New Year  "
labels = " Jours|Heures|Minutes "
tick = "250ms"
flip_duration = "0s"
curve = "linear"
policy = " Overlap "
exit_on_expire = true
log_file = "  ~/logs/clock.log  "
log_level = "DEBUG"
http_addr = " 127.0.0.1:7490 "
notify = ["  ntfy://ntfy.sh/topic ", ""]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Target != "2026-12-31T23:59:59Z" || cfg.Caption != "New Year" {
		t.Fatalf("Target/Caption = %q/%q, want trimmed values", cfg.Target, cfg.Caption)
	}
	if cfg.Labels != "Jours|Heures|Minutes" {
		t.Fatalf("Labels = %q", cfg.Labels)
	}
	if cfg.Tick != 250*time.Millisecond || cfg.FlipDuration != 0 {
		t.Fatalf("Tick/FlipDuration = %v/%v, want 250ms/0s", cfg.Tick, cfg.FlipDuration)
	}
	if cfg.Curve != "linear" || cfg.Policy != countdown.PolicyOverlap || !cfg.ExitOnExpire {
		t.Fatalf("Curve=%q Policy=%s ExitOnExpire=%v", cfg.Curve, cfg.Policy, cfg.ExitOnExpire)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" || cfg.HTTPAddr != "127.0.0.1:7490" {
		t.Fatalf("LogLevel=%q HTTPAddr=%q", cfg.LogLevel, cfg.HTTPAddr)
	}
	if len(cfg.Notify) != 1 || cfg.Notify[0] != "ntfy://ntfy.sh/topic" {
		t.Fatalf("Notify = %v, want one trimmed URL", cfg.Notify)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, "config.yaml", `
schedule: "0 17 * * 5"
caption: Weekend
tick: 2s
notify:
  - generic://example.com/hook
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Schedule != "0 17 * * 5" || cfg.Caption != "Weekend" || cfg.Tick != 2*time.Second {
		t.Fatalf("cfg = %+v, want YAML values", cfg)
	}
	if cfg.Labels != defaultLabels {
		t.Fatalf("Labels = %q, want default", cfg.Labels)
	}
	if len(cfg.Notify) != 1 {
		t.Fatalf("Notify = %v, want one URL", cfg.Notify)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, "config.toml", `
labels = "   "
tick = ""
log_file = ""
log_level = " "
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := Default()
	if cfg.Labels != want.Labels || cfg.Tick != want.Tick || cfg.LogFile != want.LogFile || cfg.LogLevel != want.LogLevel {
		t.Fatalf("cfg = %+v, want defaults %+v", cfg, want)
	}
}

func TestLoad_CurveIsCaseInsensitive(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(writeConfig(t, "config.toml", `curve = " Ease-In "`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Curve != "ease-in" {
		t.Fatalf("Curve = %q, want ease-in", cfg.Curve)
	}
}

func TestLoad_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantMsg string
	}{
		{"invalid toml", "config.toml", `target = [`, "parse config"},
		{"invalid yaml", "config.yml", "tick: [1s", "parse config"},
		{"bad duration", "config.toml", `tick = "soon"`, "invalid tick"},
		{"zero tick", "config.toml", `tick = "0s"`, "invalid tick"},
		{"negative flip", "config.toml", `flip_duration = "-1s"`, "invalid flip_duration"},
		{"bad policy", "config.toml", `policy = "queue"`, "invalid policy"},
		{"bad curve", "config.toml", `curve = "bounce"`, "invalid curve"},
		{"bad level", "config.toml", `log_level = "trace"`, "invalid log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tt.wantMsg)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestConfig_Input(t *testing.T) {
	cfg := Default()
	cfg.Target = "2026-12-31"
	cfg.Caption = "Eve"
	cfg.Policy = countdown.PolicyOverlap

	in := cfg.Input()
	if in.Target != "2026-12-31" || in.Caption != "Eve" || in.Labels != defaultLabels || in.Policy != countdown.PolicyOverlap {
		t.Fatalf("Input = %+v", in)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := ExpandPath("   "); err == nil {
		t.Fatalf("ExpandPath returned nil error, want error")
	}
}

func TestDefaultPath_UnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got := DefaultPath()
	if !strings.HasPrefix(got, home) || !strings.HasSuffix(got, filepath.FromSlash("/flipclock/config.toml")) {
		t.Fatalf("DefaultPath = %q", got)
	}
}
