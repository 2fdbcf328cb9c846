package config

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReportClose_RemovesCopies(t *testing.T) {
	dir := t.TempDir()
	r, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(dir, "source.html")
	if err := os.WriteFile(src, []byte("<p>x</p>"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := r.StoreCopy("sources/source.html", src); err != nil {
		t.Fatalf("StoreCopy() error = %v", err)
	}
	if len(r.copies) != 1 {
		t.Fatalf("got %d copies, want 1", len(r.copies))
	}
	copyDir := r.copies[0]

	r.StoreData("renderings/source.txt", []byte("x\n"))
	r.Store("final.log", filepath.Join(dir, "missing.log"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if _, err := os.Stat(copyDir); !os.IsNotExist(err) {
		t.Errorf("temporary copy %s was not removed", copyDir)
	}
	if _, err := os.Stat(src); err != nil {
		t.Errorf("stored source should stay: %v", err)
	}

	zr, err := zip.OpenReader(filepath.Join(dir, "report.zip"))
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		files[f.Name] = string(data)
	}
	if files["renderings/source.txt"] != "x\n" {
		t.Errorf("rendering = %q", files["renderings/source.txt"])
	}
	if files["sources/source.html"] != "<p>x</p>" {
		t.Errorf("source copy = %q", files["sources/source.html"])
	}
	if _, ok := files["final.log"]; ok {
		t.Error("absent file should not be archived")
	}
	manifest := files["MANIFEST"]
	if !strings.Contains(manifest, "final.log") || strings.Index(manifest, "renderings/") > strings.Index(manifest, "sources/") {
		t.Errorf("unexpected manifest:\n%s", manifest)
	}
}

func TestReportStoreCopy_Versioned(t *testing.T) {
	dir := t.TempDir()
	r := &Report{entries: make(map[string]entry)}
	src := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(src, []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	defer func() {
		for _, d := range r.copies {
			os.RemoveAll(d)
		}
	}()

	for range 2 {
		if err := r.StoreCopy("a", src); err != nil {
			t.Fatalf("StoreCopy() error = %v", err)
		}
	}
	if len(r.entries) != 2 {
		t.Errorf("got %d entries, want 2", len(r.entries))
	}
}

func TestReportStoreData_Duplicate(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	r.StoreData("x", []byte("1"))
	defer func() {
		if recover() == nil {
			t.Error("StoreData() with duplicate name should panic")
		}
	}()
	r.StoreData("x", []byte("2"))
}

func TestReportClose_NilReport(t *testing.T) {
	var r *Report
	if err := r.Close(); err != nil {
		t.Errorf("Close on nil report should not error, got: %v", err)
	}
	r.Store("x", "y")
	r.StoreData("x", nil)
	r.StoreRendering(0, "a.html", "a.html", nil, "")
	if r.Name() != "" {
		t.Errorf("Name() on nil report = %q", r.Name())
	}
}

func TestReportClose_NilFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close with nil file should not error, got: %v", err)
	}
}

func TestReportStoreRendering(t *testing.T) {
	dir := t.TempDir()
	r, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	src := filepath.Join(dir, "page.html")
	if err := os.WriteFile(src, []byte("<p>a</p>"), 0644); err != nil {
		t.Fatal(err)
	}
	r.StoreRendering(0, filepath.Join("run", "page.html"), src, nil, "a\n")
	// same base name from an archive must not clash
	r.StoreRendering(1, "page.html", "", []byte("<p>b</p>"), "b\n")

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	zr, err := zip.OpenReader(filepath.Join(dir, "report.zip"))
	if err != nil {
		t.Fatalf("unable to open report: %v", err)
	}
	defer zr.Close()

	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		data, _ := io.ReadAll(rc)
		rc.Close()
		files[f.Name] = string(data)
	}
	want := map[string]string{
		"sources/000-page.html":        "<p>a</p>",
		"renderings/000-page.html.txt": "a\n",
		"sources/001-page.html":        "<p>b</p>",
		"renderings/001-page.html.txt": "b\n",
	}
	for name, content := range want {
		if got, ok := files[name]; !ok || got != content {
			t.Errorf("entry %s = %q (present %v), want %q", name, got, ok, content)
		}
	}
}
