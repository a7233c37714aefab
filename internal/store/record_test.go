package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var storeComparer = cmp.AllowUnexported(Store{}, taxonomy{})

func populated(t *testing.T) *Store {
	t.Helper()
	s := New()
	s.AddOS("linux")
	s.AddOS("macos")
	s.AddCategory("editor")
	s.AddCategory("shell")
	s.AddCategory("unused")
	if err := s.SetDocument("linux", "editor", "use vim\n:wq to save"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetDocument("macos", "shell", ""); err != nil {
		t.Fatal(err)
	}
	s.AddApp("git")
	s.AddAppCategory("aliases")
	if err := s.SetAppDocument("git", "aliases", "st = status"); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPersistLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs")
	want := populated(t)
	if err := want.Persist(path); err != nil {
		t.Fatalf("persist: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(want, got, storeComparer); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestPersistCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "doclog", "logs")
	if err := New().Persist(path); err != nil {
		t.Fatalf("persist: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected file at %s: %v", path, err)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the document file, found %d entries", len(entries))
	}
}

func TestPersistReportsStorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := New().Persist(filepath.Join(blocker, "doclog", "logs"))
	if !errors.Is(err, ErrStorageUnavailable) {
		t.Fatalf("persist err = %v, want ErrStorageUnavailable", err)
	}
}

func TestPersistKeepsFileMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs")
	if err := os.WriteFile(path, nil, 0o640); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(path, 0o640); err != nil {
		t.Fatal(err)
	}
	if err := populated(t).Persist(path); err != nil {
		t.Fatalf("persist: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := info.Mode().Perm(); got != 0o640 {
		t.Fatalf("mode = %v, want 0640", got)
	}
}

func TestPersistFollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "shared", "logs")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(target, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(dir, "logs")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	want := populated(t)
	if err := want.Persist(link); err != nil {
		t.Fatalf("persist: %v", err)
	}
	info, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("%s is no longer a symlink", link)
	}
	got, err := Load(target)
	if err != nil {
		t.Fatalf("load target: %v", err)
	}
	if diff := cmp.Diff(want, got, storeComparer); diff != "" {
		t.Fatalf("target mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(s.ListOS()) != 0 || len(s.ListApps()) != 0 {
		t.Fatalf("expected empty store, got os=%v apps=%v", s.ListOS(), s.ListApps())
	}
}

func TestLoadLegacyTwoFieldRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs")
	legacy := strings.TrimSpace(`
categories:
  shell:
    linux: use zsh
  editor:
    linux: use vim
    macos: use textmate
  empty: {}
os_list: [linux, macos]
`)
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load legacy: %v", err)
	}
	if len(s.ListApps()) != 0 {
		t.Fatalf("expected no apps, got %v", s.ListApps())
	}
	if got := s.ListCategoriesForApp("linux"); len(got) != 0 {
		t.Fatalf("expected no app categories, got %v", got)
	}
	if diff := cmp.Diff([]string{"shell", "editor"}, s.ListCategoriesForOS("linux")); diff != "" {
		t.Fatalf("legacy order mismatch (-want +got):\n%s", diff)
	}
	doc, err := s.GetDocument("macos", "editor")
	if err != nil || doc != "use textmate" {
		t.Fatalf("GetDocument = %q, %v", doc, err)
	}
	if _, err := s.GetDocument("linux", "empty"); err != nil {
		t.Fatalf("empty legacy category should exist: %v", err)
	}
}

func TestLoadLegacyFourFieldJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs")
	legacy := `{"categories": {"editor": {"linux": "use vim"}}, "os_list": ["linux"],
"app_list": ["git"], "app_categories": {"aliases": {"git": "st = status"}}}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load legacy json: %v", err)
	}
	if diff := cmp.Diff([]string{"git"}, s.ListApps()); diff != "" {
		t.Fatalf("apps mismatch (-want +got):\n%s", diff)
	}
	doc, err := s.GetAppDocument("git", "aliases")
	if err != nil || doc != "st = status" {
		t.Fatalf("GetAppDocument = %q, %v", doc, err)
	}
}

func TestLoadCorruptState(t *testing.T) {
	cases := map[string]string{
		"garbage":         "\x80\x04\x95 not yaml: [",
		"empty":           "",
		"scalar":          "just a string",
		"sequence":        "- a\n- b\n",
		"future version":  "version: 99\ncategories: []\n",
		"missing os_list": "categories: {}\n",
		"bad category":    "categories:\n  editor: [1, 2]\nos_list: []\n",
		"duplicate":       "version: 1\ncategories:\n  - name: a\n  - name: a\nos_list: []\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "logs")
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); !errors.Is(err, ErrCorruptState) {
				t.Fatalf("load err = %v, want ErrCorruptState", err)
			}
		})
	}
}

func TestLoadDirectoryIsCorrupt(t *testing.T) {
	if _, err := Load(t.TempDir()); !errors.Is(err, ErrCorruptState) {
		t.Fatalf("load err = %v, want ErrCorruptState", err)
	}
}
