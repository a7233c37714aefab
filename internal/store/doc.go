// Package store owns DocLog's documents. Two taxonomies live side by side:
// documents filed by (operating system, category) and documents filed by
// (application, category). A Store is loaded once per session, mutated in
// memory, and written back as a single YAML record by Persist.
//
// Persist follows a symlinked document path and rewrites the file it points
// to, keeping that file's permission bits. A dangling link is replaced by a
// regular file.
//
// There is no locking against the document file. Two sessions sharing a path
// overwrite each other and the last Persist wins.
package store
