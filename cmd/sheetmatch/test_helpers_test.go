package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"sheetmatch/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	outputDir  string
	sheetPath  string
	imageDir   string
}

// setupCLITestEnv writes a config, a three-label sheet and four images:
// two exact matches, a later shot of one of them and an unrecognisable name.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SHEETMATCH_OUTPUT_DIR", "")

	env := &cliTestEnv{
		baseDir:   base,
		outputDir: filepath.Join(base, "out"),
		imageDir:  filepath.Join(base, "upload"),
	}
	env.configPath = filepath.Join(base, "config.toml")
	writeTestConfig(t, env.configPath, env.outputDir)

	env.sheetPath = testsupport.WriteSheet(t, filepath.Join(base, "sheet"), "Red Mug", "Blue Lamp", "Oak Desk")
	testsupport.WriteImages(t, env.imageDir, "blue_lamp.png", "red_mug.jpg", "red_mug_2.jpg", "zzz.jpg")
	return env
}

func writeTestConfig(t *testing.T, path, outputDir string) {
	t.Helper()

	content := fmt.Sprintf(`[matching]
match_threshold = 75.0
review_threshold = 65.0

[images]
reencode = false

[export]
output_dir = %q

[logging]
level = "error"
`, outputDir)
	testsupport.WriteFile(t, path, content)
}

func (e *cliTestEnv) archivePath() string {
	return filepath.Join(e.outputDir, "TM PRO.zip")
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\noutput:\n%s", needle, haystack)
	}
}

func requireNotContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if strings.Contains(haystack, needle) {
		t.Fatalf("expected output not to contain %q\noutput:\n%s", needle, haystack)
	}
}
