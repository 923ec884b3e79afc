package config

import (
	"os"
	"path/filepath"
	"testing"
)

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TALLY_CONFIG", "")
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Store.Backend != BackendJSON {
		t.Errorf("backend = %q, want json", c.Store.Backend)
	}
	if c.Store.Namespace != "PREFS_NAME" {
		t.Errorf("namespace = %q, want PREFS_NAME", c.Store.Namespace)
	}
	if c.Log.Level != "info" {
		t.Errorf("log level = %q, want info", c.Log.Level)
	}
	if c.UI.Theme != "classic" {
		t.Errorf("theme = %q, want classic", c.UI.Theme)
	}
	if c.Store.Dir == "" || c.Log.File == "" {
		t.Errorf("store dir %q / log file %q should default", c.Store.Dir, c.Log.File)
	}
}

func TestLoadFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	data := []byte(`
[store]
backend = "sqlite"
namespace = "OTHER"

[ui]
theme = "neon"

[credits]
title = "Thanks"
lines = ["one", "two"]
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Store.Backend != BackendSQLite {
		t.Errorf("backend = %q, want sqlite", c.Store.Backend)
	}
	if c.Store.Namespace != "OTHER" {
		t.Errorf("namespace = %q, want OTHER", c.Store.Namespace)
	}
	if c.UI.Theme != "neon" {
		t.Errorf("theme = %q, want neon", c.UI.Theme)
	}
	if c.Credits.Title != "Thanks" || len(c.Credits.Lines) != 2 {
		t.Errorf("credits = %+v", c.Credits)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("TALLY_STORE_BACKEND", "memory")
	t.Setenv("TALLY_STORE_DIR", dir)
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Store.Backend != BackendMemory {
		t.Errorf("backend = %q, want memory", c.Store.Backend)
	}
	if c.Store.Dir != dir {
		t.Errorf("dir = %q, want %q", c.Store.Dir, dir)
	}
}

func TestUnknownBackendRejected(t *testing.T) {
	isolate(t)
	t.Setenv("TALLY_STORE_BACKEND", "redis")
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestMalformedFileRejected(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[store\nbackend ="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
