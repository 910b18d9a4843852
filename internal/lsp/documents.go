package lsp

import "sync"

// DocumentRegistry holds the language identifier of each open document,
// keyed by URI.
type DocumentRegistry struct {
	mu   sync.RWMutex
	docs map[string]string
}

func NewDocumentRegistry() *DocumentRegistry {
	return &DocumentRegistry{docs: make(map[string]string)}
}

// Open records the language of uri, replacing any previous entry.
func (r *DocumentRegistry) Open(uri, languageID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs[uri] = languageID
}

// Close forgets uri. Closing an unknown document is a no-op.
func (r *DocumentRegistry) Close(uri string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, uri)
}

func (r *DocumentRegistry) Language(uri string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lang, ok := r.docs[uri]
	return lang, ok
}
