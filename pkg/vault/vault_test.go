package vault

import (
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestVault(t *testing.T) *Vault {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "README.md", "# Readme\n")
	writeFile(t, root, "notes/setup.md", "## Getting Started\n")
	writeFile(t, root, "notes/extra.markdown", "# Extra\n")
	writeFile(t, root, "notes/image.png", "not markdown")
	writeFile(t, root, ".obsidian/workspace.md", "# Hidden\n")

	v, err := Open(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestOpenRejectsNonDirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "plain.md")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(file, nil); err == nil {
		t.Fatal("Open on a file must fail")
	}
	if _, err := Open(filepath.Join(root, "missing"), nil); err == nil {
		t.Fatal("Open on a missing path must fail")
	}
}

func TestListDocuments(t *testing.T) {
	v := newTestVault(t)

	got := v.ListDocuments()
	sort.Strings(got)
	want := []string{"README.md", "notes/extra.markdown", "notes/setup.md"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListDocuments = %v, want %v", got, want)
	}
}

func TestResolveDocument(t *testing.T) {
	v := newTestVault(t)

	doc, ok := v.ResolveDocument("notes/setup.md")
	if !ok {
		t.Fatal("expected document to resolve")
	}
	if doc.Name != "setup" || doc.Folder != "notes" {
		t.Fatalf("doc = %+v, want name setup in folder notes", doc)
	}
	if len(doc.Headings) != 1 || doc.Headings[0].Text != "Getting Started" {
		t.Fatalf("headings = %+v, want parsed heading", doc.Headings)
	}

	doc, ok = v.ResolveDocument("README.md")
	if !ok || doc.Folder != "" {
		t.Fatalf("doc = %+v ok=%v, want root document with empty folder", doc, ok)
	}
}

func TestResolveDocumentMissing(t *testing.T) {
	v := newTestVault(t)

	if _, ok := v.ResolveDocument("gone.md"); ok {
		t.Fatal("missing document must not resolve")
	}
	if _, ok := v.ResolveDocument("notes/image.png"); ok {
		t.Fatal("non-indexable file must not resolve")
	}
	if _, ok := v.ResolveDocument("../outside.md"); ok {
		t.Fatal("path outside the vault must not resolve")
	}
}

func TestIDFor(t *testing.T) {
	v := newTestVault(t)

	id, ok := v.idFor(filepath.Join(v.Root(), "notes", "setup.md"))
	if !ok || id != "notes/setup.md" {
		t.Fatalf("idFor = %q ok=%v, want vault-relative slash id", id, ok)
	}
	if _, ok := v.idFor(filepath.Join(v.Root(), "notes", "image.png")); ok {
		t.Fatal("wrong kind must not map to an id")
	}
	if _, ok := v.idFor(filepath.Join(os.TempDir(), "elsewhere.md")); ok {
		t.Fatal("path outside the vault must not map to an id")
	}
}

func TestOpenCustomExtensions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "page.txt", "# Text\n")
	writeFile(t, root, "page.md", "# Markdown\n")

	v, err := Open(root, []string{".txt"})
	if err != nil {
		t.Fatal(err)
	}
	got := v.ListDocuments()
	if len(got) != 1 || got[0] != "page.txt" {
		t.Fatalf("ListDocuments = %v, want only the configured extension", got)
	}
}
