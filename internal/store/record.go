package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// recordVersion is the schema version written by Persist.
const recordVersion = 1

// record is the on-disk shape of a Store. Categories are a sequence so their
// order survives a round trip.
type record struct {
	Version       int              `yaml:"version"`
	Categories    []categoryRecord `yaml:"categories"`
	OSList        []string         `yaml:"os_list"`
	AppList       []string         `yaml:"app_list"`
	AppCategories []categoryRecord `yaml:"app_categories"`
}

type categoryRecord struct {
	Name      string            `yaml:"name"`
	Documents map[string]string `yaml:"documents"`
}

// legacyRecord covers files written before the version field existed: the
// two-field shape (categories, os_list) and the four-field shape. Categories
// are mappings of category name to documents.
type legacyRecord struct {
	Categories    yaml.Node `yaml:"categories"`
	OSList        *[]string `yaml:"os_list"`
	AppList       []string  `yaml:"app_list"`
	AppCategories yaml.Node `yaml:"app_categories"`
}

// Load reads the store persisted at path. A missing file yields an empty
// store; anything that exists but cannot be decoded is ErrCorruptState.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrCorruptState, path, err)
	}
	s, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptState, path, err)
	}
	return s, nil
}

// Persist writes all four collections to path in one unit, creating the
// parent directory when needed. The file is replaced atomically. A symlinked
// path is followed so the link survives, and an existing file keeps its mode.
func (s *Store) Persist(path string) error {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	}
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(target); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrStorageUnavailable, dir, err)
	}
	data, err := yaml.Marshal(s.record())
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".doclog-*")
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, path, err)
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, path, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %s: %v", ErrStorageUnavailable, path, err)
	}
	return nil
}

func (s *Store) record() record {
	return record{
		Version:       recordVersion,
		Categories:    s.categories.records(),
		OSList:        s.ListOS(),
		AppList:       s.ListApps(),
		AppCategories: s.appCategories.records(),
	}
}

func (t *taxonomy) records() []categoryRecord {
	out := make([]categoryRecord, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, categoryRecord{Name: name, Documents: t.docs[name]})
	}
	return out
}

func decode(data []byte) (*Store, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("empty document")
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping", root.Line)
	}

	var head struct {
		Version *int `yaml:"version"`
	}
	if err := root.Decode(&head); err != nil {
		return nil, err
	}
	if head.Version == nil {
		return decodeLegacy(root)
	}
	if *head.Version != recordVersion {
		return nil, fmt.Errorf("unsupported version %d", *head.Version)
	}

	var rec record
	if err := root.Decode(&rec); err != nil {
		return nil, err
	}
	s := New()
	s.oses = append(s.oses, rec.OSList...)
	s.apps = append(s.apps, rec.AppList...)
	if err := s.categories.fill(rec.Categories); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	if err := s.appCategories.fill(rec.AppCategories); err != nil {
		return nil, fmt.Errorf("app_categories: %w", err)
	}
	return s, nil
}

func decodeLegacy(root *yaml.Node) (*Store, error) {
	var rec legacyRecord
	if err := root.Decode(&rec); err != nil {
		return nil, err
	}
	if rec.Categories.Kind == 0 || rec.OSList == nil {
		return nil, errors.New("unversioned record needs categories and os_list")
	}
	s := New()
	s.oses = append(s.oses, (*rec.OSList)...)
	s.apps = append(s.apps, rec.AppList...)
	if err := s.categories.fillMapping(&rec.Categories); err != nil {
		return nil, fmt.Errorf("categories: %w", err)
	}
	if err := s.appCategories.fillMapping(&rec.AppCategories); err != nil {
		return nil, fmt.Errorf("app_categories: %w", err)
	}
	return s, nil
}

func (t *taxonomy) fill(records []categoryRecord) error {
	for _, rec := range records {
		if _, dup := t.docs[rec.Name]; dup {
			return fmt.Errorf("duplicate category %q", rec.Name)
		}
		t.add(rec.Name)
		for key, text := range rec.Documents {
			t.docs[rec.Name][key] = text
		}
	}
	return nil
}

// fillMapping reads a legacy name -> documents mapping, keeping the order
// the categories appear in the file. An absent or null node is empty.
func (t *taxonomy) fillMapping(node *yaml.Node) error {
	if node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null") {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		var name string
		if err := node.Content[i].Decode(&name); err != nil {
			return err
		}
		var docs map[string]string
		if err := node.Content[i+1].Decode(&docs); err != nil {
			return fmt.Errorf("category %q: %w", name, err)
		}
		t.add(name)
		for key, text := range docs {
			t.docs[name][key] = text
		}
	}
	return nil
}
