package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("TH_TEST_STR", "hello")

	if got := GetEnv("TH_TEST_STR", "x"); got != "hello" {
		t.Errorf("got %q, want %q", got, "hello")
	}
	if got := GetEnv("TH_TEST_UNSET", "x"); got != "x" {
		t.Errorf("got %q, want fallback %q", got, "x")
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("TH_TEST_INT", " 42 ")
	t.Setenv("TH_TEST_BAD", "forty")

	if got := GetEnvInt("TH_TEST_INT", 1); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	if got := GetEnvInt("TH_TEST_BAD", 7); got != 7 {
		t.Errorf("got %d, want fallback 7", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		value    string
		fallback bool
		want     bool
	}{
		{"1", false, true},
		{"TRUE", false, true},
		{"on", false, true},
		{"0", true, false},
		{"off", true, false},
		{"maybe", true, true},
		{"maybe", false, false},
	}
	for _, tt := range tests {
		t.Setenv("TH_TEST_BOOL", tt.value)
		if got := GetEnvBool("TH_TEST_BOOL", tt.fallback); got != tt.want {
			t.Errorf("GetEnvBool(%q, %v) = %v, want %v", tt.value, tt.fallback, got, tt.want)
		}
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	if err := os.WriteFile(path, []byte("TH_TEST_DOTENV=from-file\nTH_TEST_KEEP=from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TH_TEST_KEEP", "from-env")
	t.Cleanup(func() { os.Unsetenv("TH_TEST_DOTENV") })

	if err := LoadDotEnv(path, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("TH_TEST_DOTENV"); got != "from-file" {
		t.Errorf("got %q, want %q", got, "from-file")
	}
	if got := os.Getenv("TH_TEST_KEEP"); got != "from-env" {
		t.Errorf("got %q, want existing variable kept", got)
	}
}
