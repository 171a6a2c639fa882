package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", c.Server.Port)
	}
	if c.BusyTimeout() != 5*time.Second {
		t.Errorf("busy timeout = %v, want 5s", c.BusyTimeout())
	}
	if c.TokenDuration() != 24*time.Hour {
		t.Errorf("token duration = %v, want 24h", c.TokenDuration())
	}
	if !c.Metrics.Enabled {
		t.Error("metrics should be enabled by default")
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	file := filepath.Join(dir, "custom.yaml")
	yaml := "server:\n  port: 9090\ndatabase:\n  path: /tmp/x.db\nlog:\n  level: debug\n"
	if err := os.WriteFile(file, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PANTRY_SERVER_PORT", "9191")
	t.Setenv("PANTRY_JWT_SECRET", "from-env")

	c, err := Load(file)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Server.Port != 9191 {
		t.Errorf("env should override file: port = %d", c.Server.Port)
	}
	if c.Database.Path != "/tmp/x.db" {
		t.Errorf("database path = %q", c.Database.Path)
	}
	if c.JWT.Secret != "from-env" {
		t.Errorf("jwt secret = %q", c.JWT.Secret)
	}
	if c.Log.Level != "debug" {
		t.Errorf("log level = %q", c.Log.Level)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PANTRY_JWT_TOKEN_HOURS=2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("PANTRY_JWT_TOKEN_HOURS") })

	c, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.JWT.TokenHours != 2 {
		t.Errorf("token hours = %d, want 2 from .env", c.JWT.TokenHours)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PANTRY_LOG_LEVEL", "loud")
	t.Setenv("PANTRY_SERVER_PORT", "0")

	if _, err := Load(""); err == nil {
		t.Error("expected validation error")
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
