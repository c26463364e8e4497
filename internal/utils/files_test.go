package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSafeWriteFileAndFindSessionRoot(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "a", "b")
	if err := EnsureDir(nested); err != nil {
		t.Fatal(err)
	}
	data, err := PrettyJSON(map[string]string{"name": "x"})
	if err != nil {
		t.Fatal(err)
	}
	if err := SafeWriteFile(filepath.Join(dir, "session.json"), data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "session.json.tmp")); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
	root, err := FindSessionRoot(nested)
	if err != nil || root != dir {
		t.Fatalf("root = %q, %v; want %q", root, err, dir)
	}
}

func TestExpandGlobs(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []string{"a.csv", "b.csv", "c.tsv"} {
		if err := os.WriteFile(filepath.Join(dir, n), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := ExpandGlobs([]string{filepath.Join(dir, "*.csv"), filepath.Join(dir, "a.csv"), filepath.Join(dir, "c.tsv")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || filepath.Base(got[0]) != "a.csv" || filepath.Base(got[2]) != "c.tsv" {
		t.Fatalf("got %v", got)
	}
}
