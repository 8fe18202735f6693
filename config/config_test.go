package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestInitConfigWritesDefault(t *testing.T) {
	t.Cleanup(viper.Reset)
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(t.TempDir()) // keep ./config out of the search path

	if err := InitConfig(""); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "ytlc", "ytlc.toml"))
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if string(data) != string(Default()) {
		t.Error("written config differs from the embedded default")
	}
	if got := viper.GetDuration("auto-interval"); got != 2*time.Second {
		t.Errorf("auto-interval = %s", got)
	}
	if got := viper.GetString("listen"); got != "127.0.0.1:8123" {
		t.Errorf("listen = %q", got)
	}
}

func TestInitConfigExplicitFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	path := filepath.Join(t.TempDir(), "custom.toml")
	os.WriteFile(path, []byte("base-first = true\nrate-burst = 3\n"), 0644)

	if err := InitConfig(path); err != nil {
		t.Fatal(err)
	}
	if !viper.GetBool("base-first") || viper.GetInt("rate-burst") != 3 {
		t.Error("explicit config file values not loaded")
	}
}

func TestInitConfigMissingExplicitFile(t *testing.T) {
	t.Cleanup(viper.Reset)
	if err := InitConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit config should fail")
	}
}
