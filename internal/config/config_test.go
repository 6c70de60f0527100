package config

import (
	"os"
	"testing"
)

// chdir emulates testing.T.Chdir, which requires Go 1.24+.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(old) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DISCORD_TOKEN", "tok-123")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "tok-123" {
		t.Errorf("Token = %q", cfg.Token)
	}
	if cfg.DefaultPrefix != "," {
		t.Errorf("DefaultPrefix = %q, want %q", cfg.DefaultPrefix, ",")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
}

func TestLoadTokenEnvPrecedence(t *testing.T) {
	chdir(t, t.TempDir())

	t.Setenv("BOT_TOKEN", "legacy")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "legacy" {
		t.Errorf("Token = %q, want the BOT_TOKEN fallback", cfg.Token)
	}

	t.Setenv("DISCORD_TOKEN", "primary")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token != "primary" {
		t.Errorf("Token = %q, DISCORD_TOKEN should win over BOT_TOKEN", cfg.Token)
	}
}

func TestLoadMissingToken(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("BOT_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load accepted an empty token")
	}
}
