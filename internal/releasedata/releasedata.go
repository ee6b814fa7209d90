// Package releasedata gives read-only access to a persisted release document.
package releasedata

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/newstack-cloud/bluelink-docs/internal/releases"
)

// Data is a loaded release document. The zero value holds no releases.
type Data struct {
	doc releases.Document
}

// Empty returns data with no installer and no releases.
func Empty() *Data {
	return &Data{}
}

// FromDocument wraps an in-memory document. The document is copied.
func FromDocument(doc *releases.Document) *Data {
	if doc == nil {
		return Empty()
	}
	d := &Data{doc: releases.Document{
		GeneratedAt:      doc.GeneratedAt,
		WindowsInstaller: doc.WindowsInstaller.Clone(),
	}}
	for _, c := range doc.Components {
		d.doc.Components = append(d.doc.Components, releases.ComponentReleases{
			Key:      c.Key,
			Releases: cloneReleases(c.Releases),
		})
	}
	return d
}

// Parse reads a release document from JSON.
func Parse(data []byte) (*Data, error) {
	var doc releases.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse release document: %w", err)
	}
	return &Data{doc: doc}, nil
}

// Load reads the release document at path. A missing file yields empty data,
// so pages render their "no releases" state before the first fetch.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("failed to read release document: %w", err)
	}
	return Parse(raw)
}

// GeneratedAt returns when the document was produced.
func (d *Data) GeneratedAt() string {
	return d.doc.GeneratedAt
}

// Components returns the component keys present in the document.
func (d *Data) Components() []string {
	return d.doc.Keys()
}

// ComponentReleases returns the releases of a component, newest first.
// Unknown components yield an empty list.
func (d *Data) ComponentReleases(key string) []releases.ComponentRelease {
	list, ok := d.doc.Releases(key)
	if !ok {
		return []releases.ComponentRelease{}
	}
	return cloneReleases(list)
}

// WindowsInstaller returns the installer record, or nil when none was published.
func (d *Data) WindowsInstaller() *releases.WindowsInstaller {
	return d.doc.WindowsInstaller.Clone()
}

// Available reports whether a component has at least one release.
func (d *Data) Available(key string) bool {
	list, _ := d.doc.Releases(key)
	return len(list) > 0
}

// Document returns a copy of the underlying document.
func (d *Data) Document() *releases.Document {
	out := FromDocument(&d.doc)
	return &out.doc
}

func cloneReleases(in []releases.ComponentRelease) []releases.ComponentRelease {
	out := make([]releases.ComponentRelease, 0, len(in))
	for _, r := range in {
		out = append(out, r.Clone())
	}
	return out
}
