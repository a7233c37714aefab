package store

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownCategory is returned when a document lookup or save names a
	// category that was never created.
	ErrUnknownCategory = errors.New("store: unknown category")

	// ErrCorruptState is returned by Load when the document file exists but
	// cannot be read or decoded.
	ErrCorruptState = errors.New("store: corrupt state")

	// ErrStorageUnavailable is returned by Persist when the document file or
	// its directory cannot be written.
	ErrStorageUnavailable = errors.New("store: storage unavailable")
)

// Store holds both taxonomies for one session. It is not safe for
// concurrent use; a single session owns it from Load to Persist.
type Store struct {
	oses          []string
	categories    *taxonomy
	apps          []string
	appCategories *taxonomy
}

// New returns an empty store.
func New() *Store {
	return &Store{
		oses:          []string{},
		categories:    newTaxonomy(),
		apps:          []string{},
		appCategories: newTaxonomy(),
	}
}

// ListOS returns the logged operating systems in the order they were added.
func (s *Store) ListOS() []string {
	return append([]string(nil), s.oses...)
}

// AddOS appends an operating system. Duplicates are kept.
func (s *Store) AddOS(name string) {
	s.oses = append(s.oses, name)
}

// ListApps returns the logged applications in the order they were added.
func (s *Store) ListApps() []string {
	return append([]string(nil), s.apps...)
}

// AddApp appends an application. Duplicates are kept.
func (s *Store) AddApp(name string) {
	s.apps = append(s.apps, name)
}

// AddCategory creates an OS category with no documents. Existing categories
// are left untouched.
func (s *Store) AddCategory(name string) {
	s.categories.add(name)
}

// AddAppCategory creates an application category with no documents.
func (s *Store) AddAppCategory(name string) {
	s.appCategories.add(name)
}

// ListCategoriesForOS returns the categories holding a document for os.
// Categories without a saved document for os are not listed, even if they
// exist.
func (s *Store) ListCategoriesForOS(os string) []string {
	return s.categories.keyedBy(os)
}

// ListCategoriesForApp returns the categories holding a document for app.
func (s *Store) ListCategoriesForApp(app string) []string {
	return s.appCategories.keyedBy(app)
}

// GetDocument returns the text saved for os under category, or "" when none
// was saved. The category itself must exist.
func (s *Store) GetDocument(os, category string) (string, error) {
	return s.categories.get(os, category)
}

// SetDocument saves text for os under an existing category.
func (s *Store) SetDocument(os, category, text string) error {
	return s.categories.set(os, category, text)
}

// GetAppDocument returns the text saved for app under category.
func (s *Store) GetAppDocument(app, category string) (string, error) {
	return s.appCategories.get(app, category)
}

// SetAppDocument saves text for app under an existing category.
func (s *Store) SetAppDocument(app, category, text string) error {
	return s.appCategories.set(app, category, text)
}

// taxonomy maps category -> key -> text and remembers category insertion
// order so listings are stable.
type taxonomy struct {
	order []string
	docs  map[string]map[string]string
}

func newTaxonomy() *taxonomy {
	return &taxonomy{docs: map[string]map[string]string{}}
}

func (t *taxonomy) add(category string) {
	if _, ok := t.docs[category]; ok {
		return
	}
	t.order = append(t.order, category)
	t.docs[category] = map[string]string{}
}

func (t *taxonomy) keyedBy(key string) []string {
	var out []string
	for _, category := range t.order {
		if _, ok := t.docs[category][key]; ok {
			out = append(out, category)
		}
	}
	return out
}

func (t *taxonomy) get(key, category string) (string, error) {
	entries, ok := t.docs[category]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return entries[key], nil
}

func (t *taxonomy) set(key, category, text string) error {
	entries, ok := t.docs[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	entries[key] = text
	return nil
}
