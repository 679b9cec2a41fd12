// Package vault implements the filesystem document store: it enumerates
// markdown documents under a root directory, resolves them to parsed heading
// lists and watches the tree for changes.
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Darsh-A/obsidian-auto-headers/pkg/index"
)

// Vault is a directory tree of markdown documents. Document ids are
// vault-relative slash paths.
type Vault struct {
	root string
	exts map[string]struct{}
}

// Open validates root and returns a vault over it. extensions defaults to
// markdown when empty.
func Open(root string, extensions []string) (*Vault, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault root %s is not a directory", abs)
	}

	if len(extensions) == 0 {
		extensions = []string{".md", ".markdown"}
	}
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Vault{root: abs, exts: exts}, nil
}

// Root returns the absolute vault root.
func (v *Vault) Root() string {
	return v.root
}

// indexable reports whether name is a document of the indexed kind.
func (v *Vault) indexable(name string) bool {
	_, ok := v.exts[strings.ToLower(filepath.Ext(name))]
	return ok
}

// idFor maps an absolute or vault-relative file path to its document id.
// ok is false for paths outside the vault or of the wrong kind.
func (v *Vault) idFor(p string) (string, bool) {
	if !v.indexable(p) {
		return "", false
	}
	if !filepath.IsAbs(p) {
		return filepath.ToSlash(p), true
	}
	rel, err := filepath.Rel(v.root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// ListDocuments walks the vault and returns every indexable document id.
// Hidden directories are skipped.
func (v *Vault) ListDocuments() []string {
	var ids []string
	err := filepath.WalkDir(v.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != v.root && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if id, ok := v.idFor(p); ok {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		log.Warnf("walking vault %s: %v", v.root, err)
	}
	return ids
}

// ResolveDocument implements index.Store. A document that no longer exists
// or is not of the indexed kind resolves to ok=false; one that exists but
// cannot be read resolves with zero headings.
func (v *Vault) ResolveDocument(id string) (index.Document, bool) {
	if !v.indexable(id) || strings.HasPrefix(id, "..") {
		return index.Document{}, false
	}
	full := filepath.Join(v.root, filepath.FromSlash(id))

	data, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return index.Document{}, false
		}
		log.Warnf("reading %s: %v", id, err)
		data = nil
	}

	base := path.Base(id)
	name := strings.TrimSuffix(base, path.Ext(base))
	folder := path.Dir(id)
	if folder == "." {
		folder = ""
	}

	return index.Document{
		ID:       id,
		Name:     name,
		Folder:   folder,
		Headings: ExtractHeadings(data),
	}, true
}
