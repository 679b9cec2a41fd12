package index

// Heading is one parsed heading line of a document.
type Heading struct {
	Text  string
	Level int
}

// Document is the resolved view of one indexable document.
type Document struct {
	ID       string
	Name     string
	Folder   string
	Headings []Heading
}

// Store is the document-store collaborator the index reads from. A document
// that disappeared or changed kind between scheduling and flush resolves to
// ok=false and its entries are dropped, never treated as an error.
type Store interface {
	// ListDocuments returns the ids of every indexable document.
	ListDocuments() []string

	// ResolveDocument resolves id to a live document.
	ResolveDocument(id string) (Document, bool)
}
