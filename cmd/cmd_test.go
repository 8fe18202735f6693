package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gregriff/ytlc/internal/stylesheet"
)

// execute runs the root command with a throwaway config and database.
func execute(t *testing.T, stdin string, args ...string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := filepath.Join(dir, "ytlc.toml")
	if err := os.WriteFile(cfg, []byte("log-level = \"error\"\n"), 0644); err != nil {
		t.Fatal(err)
	}
	return executeIn(t, cfg, stdin, args...)
}

func executeIn(t *testing.T, cfg, stdin string, args ...string) (string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", cfg}, args...))
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("%v failed: %v\n%s", args, err, stderr.String())
	}
	return stdout.String(), stderr.String()
}

func TestConvertCommand(t *testing.T) {
	src := "yt-live-chat-text-message-renderer #message { color: red; }\n#message { font-size: 14px; }\n"
	out, errOut := execute(t, src, "convert", "--conflicts")

	if !strings.HasPrefix(out, ".yt-live-chat-message .message-text { color: red; }") {
		t.Errorf("converted output starts %q", out[:min(len(out), 60)])
	}
	if !strings.Contains(out, stylesheet.BaseStylesMarker) {
		t.Error("base styles missing")
	}
	if !strings.Contains(errOut, ".message-text") {
		t.Errorf("conflicts not reported: %q", errOut)
	}
}

func TestConvertFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.css")
	os.WriteFile(path, []byte("#author-name { font-weight: bold; }"), 0644)
	out, _ := execute(t, "", "convert", path)
	if !strings.HasPrefix(out, ".author-name { font-weight: bold; }") {
		t.Errorf("converted output starts %q", out[:min(len(out), 60)])
	}
}

func TestStylesheetCommands(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "ytlc.toml")
	db := filepath.Join(dir, "ytlc.db")
	os.WriteFile(cfg, []byte("log-level = \"error\"\ndatabase = \""+filepath.ToSlash(db)+"\"\n"), 0644)

	out, _ := executeIn(t, cfg, "", "stylesheet", "show")
	if out != stylesheet.DefaultTemplate {
		t.Error("show without a saved stylesheet should print the default template")
	}

	css := ".saved { color: teal; }"
	executeIn(t, cfg, css, "stylesheet", "save")
	out, errOut := executeIn(t, cfg, "", "stylesheet", "show")
	if out != css {
		t.Errorf("show after save = %q", out)
	}
	if !strings.HasPrefix(errOut, "saved ") {
		t.Errorf("show should report when the stylesheet was saved, got %q", errOut)
	}

	exportDir := t.TempDir()
	executeIn(t, cfg, "", "stylesheet", "export", exportDir)
	exported := filepath.Join(exportDir, stylesheet.DefaultExportName)
	if data, err := os.ReadFile(exported); err != nil || string(data) != css {
		t.Fatalf("exported %q, %v", data, err)
	}

	if out, _ := executeIn(t, cfg, "", "stylesheet", "reset"); out != stylesheet.DefaultTemplate {
		t.Error("reset should print the default template")
	}
	if out, _ := executeIn(t, cfg, "", "stylesheet", "show"); out != css {
		t.Error("reset must not touch the saved stylesheet")
	}

	executeIn(t, cfg, "", "stylesheet", "forget")
	if out, _ := executeIn(t, cfg, "", "stylesheet", "show"); out != stylesheet.DefaultTemplate {
		t.Error("forget should bring back the default template")
	}

	executeIn(t, cfg, "", "stylesheet", "import", exported)
	if out, _ := executeIn(t, cfg, "", "stylesheet", "show"); out != css {
		t.Errorf("show after import = %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	out, _ := execute(t, "", "config")
	if !strings.HasSuffix(strings.TrimSpace(out), "ytlc.toml") {
		t.Errorf("config path = %q", out)
	}
	out, _ = execute(t, "", "config", "--default")
	if !strings.Contains(out, "rate-limit") {
		t.Errorf("default config = %q", out)
	}
}
