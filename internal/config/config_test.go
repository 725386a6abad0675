package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// noEnvFile points Load at a file that does not exist so a developer's .env
// cannot leak into tests.
func noEnvFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestDefaults(t *testing.T) {
	cfg, err := Load(nil, noEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Addr != ":8080" {
		t.Errorf("expected addr :8080, got %q", cfg.Addr)
	}
	if cfg.Driver != "sqlite" || cfg.DSN != DefaultSQLitePath {
		t.Errorf("unexpected database config: %s %s", cfg.Driver, cfg.DSN)
	}
	if cfg.APIURL != "http://127.0.0.1:8080" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
	if len(cfg.CORSOrigins) != 0 {
		t.Errorf("expected no cors origins, got %v", cfg.CORSOrigins)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SHOPLIST_ADDR", "localhost:9000")
	t.Setenv("SHOPLIST_LOG", "/tmp/from-env.log")

	cfg, err := Load([]string{"-a", "127.0.0.1:7000", "-d", "list.db"}, noEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != "127.0.0.1:7000" {
		t.Errorf("expected flag addr, got %q", cfg.Addr)
	}
	if cfg.DSN != "list.db" {
		t.Errorf("expected flag dsn, got %q", cfg.DSN)
	}
	if cfg.LogPath != "/tmp/from-env.log" {
		t.Errorf("expected env log path, got %q", cfg.LogPath)
	}
	if cfg.APIURL != "http://127.0.0.1:7000" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
}

func TestEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "SHOPLIST_CORS_ORIGINS=http://localhost:5173, https://list.example.com\nSHOPLIST_API_URL=http://api.internal:8080/\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("SHOPLIST_CORS_ORIGINS")
		os.Unsetenv("SHOPLIST_API_URL")
	})

	cfg, err := Load(nil, path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://list.example.com" {
		t.Errorf("unexpected cors origins %v", cfg.CORSOrigins)
	}
	if cfg.APIURL != "http://api.internal:8080" {
		t.Errorf("unexpected api url %q", cfg.APIURL)
	}
}

func TestDriverValidation(t *testing.T) {
	if _, err := Load([]string{"-driver", "postgres"}, noEnvFile(t)); err == nil {
		t.Error("expected error for unsupported driver")
	}
	if _, err := Load([]string{"-driver", "mysql"}, noEnvFile(t)); err == nil {
		t.Error("expected error for mysql without dsn")
	}

	cfg, err := Load([]string{"-driver", "mysql", "-db", "user:pass@tcp(localhost:3306)/shoplist"}, noEnvFile(t))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Driver != "mysql" {
		t.Errorf("expected mysql driver, got %q", cfg.Driver)
	}
}

func TestHelpAndBadArgs(t *testing.T) {
	if _, err := Load([]string{"-h"}, noEnvFile(t)); !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
	if _, err := Load([]string{"extra"}, noEnvFile(t)); err == nil {
		t.Error("expected error for positional argument")
	}
	if _, err := Load([]string{"-a", "no-port"}, noEnvFile(t)); err == nil {
		t.Error("expected error for address without port")
	}
}

func TestAPIURLFromAddr(t *testing.T) {
	tests := []struct {
		addr, want string
	}{
		{":8080", "http://127.0.0.1:8080"},
		{"0.0.0.0:9000", "http://127.0.0.1:9000"},
		{"[::]:9000", "http://127.0.0.1:9000"},
		{"localhost:3000", "http://localhost:3000"},
		{"[::1]:3000", "http://[::1]:3000"},
	}
	for _, tt := range tests {
		got, err := apiURLFromAddr(tt.addr)
		if err != nil {
			t.Errorf("%s: %v", tt.addr, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.addr, tt.want, got)
		}
	}
}
