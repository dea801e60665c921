// Package registry holds the process-scoped caches of externally loaded
// facts the validator checks documents against: CSS class/ID sets, label
// sets, and the locales those labels cover.
//
// The store is the only deliberately shared mutable state in the
// compiler. Entries are keyed by source file URI and replaced wholesale
// on reload: an update is a single atomic swap under the store's lock,
// never a partial in-place mutation, so a concurrent reader never
// observes a half-updated entry. Readers receive snapshot values and may
// run from any number of in-flight compilations.
package registry

import (
	"log/slog"
	"sync"
)

// CSSEntry is the class and ID inventory of one stylesheet, in encounter
// order (suggestion tie-breaking depends on that order).
type CSSEntry struct {
	Classes []string
	IDs     []string
}

// LabelEntry is one label definition from a labels file.
type LabelEntry struct {
	ID               string
	TranslationCount int
	LanguageCodes    []string
}

// docImports associates a document with the registry files it imports.
type docImports struct {
	styles []string
	labels []string
}

// View is the read surface the validator consumes. Passing the interface
// rather than the store keeps validation a pure function of its inputs.
type View interface {
	CSSIndex(docURI string) CSSIndex
	LabelIndex(docURI string) LabelIndex
}

// Store owns registry lifecycle: populate on load, atomically replace on
// update, remove on document close.
type Store struct {
	mu      sync.RWMutex
	css     map[string]CSSEntry
	labels  map[string][]LabelEntry
	imports map[string]docImports
	log     *slog.Logger
}

// NewStore returns an empty registry store. A nil logger disables
// lifecycle logging.
func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		css:     make(map[string]CSSEntry),
		labels:  make(map[string][]LabelEntry),
		imports: make(map[string]docImports),
		log:     logger,
	}
}

// SetCSS replaces the CSS entry for a stylesheet URI.
func (s *Store) SetCSS(fileURI string, entry CSSEntry) {
	s.mu.Lock()
	s.css[fileURI] = entry
	s.mu.Unlock()
	s.log.Debug("css registry updated", "file", fileURI,
		"classes", len(entry.Classes), "ids", len(entry.IDs))
}

// SetLabels replaces the label entries for a labels file URI.
func (s *Store) SetLabels(fileURI string, entries []LabelEntry) {
	s.mu.Lock()
	s.labels[fileURI] = entries
	s.mu.Unlock()
	s.log.Debug("label registry updated", "file", fileURI, "labels", len(entries))
}

// RemoveFile drops a loaded file's entry (file deleted on disk).
func (s *Store) RemoveFile(fileURI string) {
	s.mu.Lock()
	delete(s.css, fileURI)
	delete(s.labels, fileURI)
	s.mu.Unlock()
	s.log.Debug("registry entry removed", "file", fileURI)
}

// SetDocumentImports records which registry files a document reaches
// through its imports. Order is preserved; it decides suggestion
// tie-breaking across files.
func (s *Store) SetDocumentImports(docURI string, styles, labels []string) {
	s.mu.Lock()
	s.imports[docURI] = docImports{styles: styles, labels: labels}
	s.mu.Unlock()
}

// CloseDocument removes a document's import associations when its editor
// buffer closes. File entries stay; other documents may import them.
func (s *Store) CloseDocument(docURI string) {
	s.mu.Lock()
	delete(s.imports, docURI)
	s.mu.Unlock()
	s.log.Debug("document closed", "doc", docURI)
}

// CSSIndex is the merged, snapshot view of every stylesheet a document
// imports. HasSources is false when the document has no loaded style
// imports, in which case selector validation is skipped rather than
// reporting every token unknown.
type CSSIndex struct {
	Classes    []string
	IDs        []string
	HasSources bool

	classSet map[string]bool
	idSet    map[string]bool
}

// HasClass reports whether a class token exists in the index.
func (x CSSIndex) HasClass(name string) bool { return x.classSet[name] }

// HasID reports whether an ID token exists in the index.
func (x CSSIndex) HasID(name string) bool { return x.idSet[name] }

// CSSIndex implements View.
func (s *Store) CSSIndex(docURI string) CSSIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := CSSIndex{
		classSet: make(map[string]bool),
		idSet:    make(map[string]bool),
	}

	for _, fileURI := range s.imports[docURI].styles {
		entry, ok := s.css[fileURI]
		if !ok {
			continue
		}
		idx.HasSources = true
		for _, c := range entry.Classes {
			if !idx.classSet[c] {
				idx.classSet[c] = true
				idx.Classes = append(idx.Classes, c)
			}
		}
		for _, id := range entry.IDs {
			if !idx.idSet[id] {
				idx.idSet[id] = true
				idx.IDs = append(idx.IDs, id)
			}
		}
	}

	return idx
}

// LabelIndex is the merged, snapshot view of every labels file a
// document imports.
type LabelIndex struct {
	IDs        []string
	Languages  []string
	HasSources bool

	set map[string]bool
}

// Has reports whether a label identifier exists in the index.
func (x LabelIndex) Has(id string) bool { return x.set[id] }

// LabelIndex implements View.
func (s *Store) LabelIndex(docURI string) LabelIndex {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := LabelIndex{set: make(map[string]bool)}
	langSeen := make(map[string]bool)

	for _, fileURI := range s.imports[docURI].labels {
		entries, ok := s.labels[fileURI]
		if !ok {
			continue
		}
		idx.HasSources = true
		for _, entry := range entries {
			if !idx.set[entry.ID] {
				idx.set[entry.ID] = true
				idx.IDs = append(idx.IDs, entry.ID)
			}
			for _, lang := range entry.LanguageCodes {
				if !langSeen[lang] {
					langSeen[lang] = true
					idx.Languages = append(idx.Languages, lang)
				}
			}
		}
	}

	return idx
}
