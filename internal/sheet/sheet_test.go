package sheet_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"sheetmatch/internal/sheet"
)

var defaultOpts = sheet.Options{LabelColumn: 3, SkipFilledColumn: 4, HasHeader: true}

func TestParseCSVSkipsAssignedRows(t *testing.T) {
	input := "\ufeffsku,category,name,image\n" +
		"1,mugs,Red Mug,\n" +
		"2,mugs,Blue Mug,blue.jpg\n" +
		"3,lamps,  Desk Lamp  ,\n" +
		"4,lamps,,\n" +
		"5,short\n" +
		"6,mugs,\"Mug, Large\",\n"

	got, err := sheet.Parse(strings.NewReader(input), sheet.FormatCSV, defaultOpts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []string{"Red Mug", "Desk Lamp", "Mug, Large"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %q, want %q", got, want)
	}
}

func TestParseCSVWithoutHeaderOrFilter(t *testing.T) {
	input := "Lamp\nDesk\nLamp\n"
	got, err := sheet.Parse(strings.NewReader(input), sheet.FormatCSV, sheet.Options{LabelColumn: 1})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := []string{"Lamp", "Desk", "Lamp"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %q, want %q", got, want)
	}
}

func TestParseTSV(t *testing.T) {
	input := "a\tb\tname\tdone\n1\t2\tChair\t\n1\t2\tStool\tyes\n"
	got, err := sheet.Parse(strings.NewReader(input), sheet.FormatTSV, defaultOpts)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := []string{"Chair"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %q, want %q", got, want)
	}
}

func TestParseText(t *testing.T) {
	got, err := sheet.Parse(strings.NewReader("\ufeffRed Mug\r\n\n  Blue Mug \n"), sheet.FormatText, sheet.Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if want := []string{"Red Mug", "Blue Mug"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("labels = %q, want %q", got, want)
	}
}

func TestParseRejectsBadColumn(t *testing.T) {
	if _, err := sheet.Parse(strings.NewReader("a\n"), sheet.FormatCSV, sheet.Options{}); err == nil {
		t.Fatal("expected error for label column 0")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "labels.txt")
	if err := os.WriteFile(path, []byte("Lamp\nDesk\n"), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}
	got, err := sheet.Load(path, defaultOpts)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("labels = %q", got)
	}

	if _, err := sheet.Load(filepath.Join(dir, "labels.xlsx"), defaultOpts); !errors.Is(err, sheet.ErrUnsupportedFormat) {
		t.Fatalf("xlsx error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := sheet.Load(filepath.Join(dir, "missing.csv"), defaultOpts); err == nil {
		t.Fatal("expected error for missing file")
	}
}
