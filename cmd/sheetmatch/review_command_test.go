package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReviewSession(t *testing.T) {
	env := setupCLITestEnv(t)
	target := filepath.Join(env.baseDir, "reviewed.zip")

	script := strings.Join([]string{
		"list all",
		"suggest 4",
		"labels desk",
		"rebind 4 Oak Desk",
		"confirm 4",
		"remove 1",
		"bulk-remove 2 3",
		"frobnicate",
		"history",
		"export " + target,
		"quit",
		"summary",
	}, "\n")

	out, _, err := runCLI(t, []string{"review", "--sheet", env.sheetPath, env.imageDir}, env.configPath, script)
	if err != nil {
		t.Fatalf("review: %v", err)
	}

	requireNotContains(t, out, "sheetmatch> ")
	requireContains(t, out, "DUPLICATE (1)")
	requireContains(t, out, "red_mug_2.jpg")
	requireContains(t, out, "Suggestions for #4 zzz.jpg")
	requireContains(t, out, "Labels (1)")
	requireContains(t, out, `Rebound #4 to "Oak Desk" (CHECK)`)
	requireContains(t, out, `Confirmed #4 as "Oak Desk"`)
	requireContains(t, out, "Removed #1")
	requireContains(t, out, "error: bulk_remove item 3")
	requireContains(t, out, `error: unknown command "frobnicate"`)
	requireContains(t, out, "History")
	requireContains(t, out, "classified")
	requireContains(t, out, "Exported 2 image(s) to "+target)

	// Nothing after quit runs.
	if strings.Count(out, "MATCH 2 · CHECK 1") != 1 {
		t.Fatalf("expected a single summary line\n%s", out)
	}

	entries := readArchive(t, target)
	got := entryNames(entries)
	want := []string{"TM PRO/Red Mug.jpg", "TM PRO/Oak Desk.jpg"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("archive entries = %v, want %v", got, want)
	}
	if entries[1].body != "image:zzz.jpg" {
		t.Fatalf("unexpected payload for confirmed item: %q", entries[1].body)
	}
}

func TestReviewRebindRejectsUnknownLabel(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"review", "-s", env.sheetPath, env.imageDir}, env.configPath, "rebind 4 oak desk\nconfirm 9\nlist\n")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	requireContains(t, out, "error:")
	requireContains(t, out, "oak desk")
	requireContains(t, out, "error: no item #9")
}

func TestReviewReloadStartsNewBatch(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"review", "-s", env.sheetPath, env.imageDir}, env.configPath, "remove 1\nreload\nlist removed\n")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	requireContains(t, out, "Reloaded; previous review actions were discarded")
	requireContains(t, out, "REMOVED: none")
}

func TestRestOfLine(t *testing.T) {
	tests := []struct {
		line string
		n    int
		want string
	}{
		{"rebind 4 Oak  Desk", 2, "Oak  Desk"},
		{"  export   /tmp/a b.zip ", 1, "/tmp/a b.zip"},
		{"export", 1, ""},
		{"rebind 4", 2, ""},
	}
	for _, tt := range tests {
		if got := restOfLine(tt.line, tt.n); got != tt.want {
			t.Errorf("restOfLine(%q, %d) = %q, want %q", tt.line, tt.n, got, tt.want)
		}
	}
}

func TestReviewExportRefusesEmptyMatch(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"review", "-s", env.sheetPath, env.imageDir}, env.configPath, "bulk-remove 1 2\nexport\n")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	requireContains(t, out, "Removed 2 item(s)")
	requireContains(t, out, "error: export: nothing to export")
	if _, err := os.Stat(env.archivePath()); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("empty export wrote an archive: %v", err)
	}
}

func TestReviewResetReclassifiesLoadedImages(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"review", "-s", env.sheetPath, env.imageDir}, env.configPath, "remove 1\nconfirm 4\nreset\nsummary\n")
	if err != nil {
		t.Fatalf("review: %v", err)
	}
	requireContains(t, out, "Reset; every image was classified again")
	// Initial summary, one after reset, one from "summary".
	if got := strings.Count(out, "MATCH 2 · CHECK 1 · DUPLICATE 1 · REMOVED 0"); got != 3 {
		t.Fatalf("expected the original classification three times, got %d\n%s", got, out)
	}
}
