package testsupport

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSheet writes a CSV reference sheet in the default layout: labels in
// column 3 under a header row, column 4 left empty.
func WriteSheet(t testing.TB, dir string, labels ...string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("sku,category,name,image\n")
	for i, label := range labels {
		b.WriteString(strings.Join([]string{strconv.Itoa(i + 1), "test", `"` + strings.ReplaceAll(label, `"`, `""`) + `"`, ""}, ","))
		b.WriteByte('\n')
	}
	return WriteFile(t, filepath.Join(dir, "labels.csv"), b.String())
}

// WriteImages writes one small file per name into dir, each holding
// "image:<name>", and returns dir.
func WriteImages(t testing.TB, dir string, names ...string) string {
	t.Helper()

	for _, name := range names {
		WriteFile(t, filepath.Join(dir, name), "image:"+name)
	}
	return dir
}

// PNG returns a solid-colour PNG of the given size.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 40, G: 120, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}
