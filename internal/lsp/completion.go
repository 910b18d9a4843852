package lsp

import (
	"github.com/snippets-ls/snippets-ls/internal/snippets"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Snippet is a single completion candidate.
type Snippet struct {
	Trigger string
	Body    string
}

// SnippetsFor returns the snippets available in the document at uri, sorted
// by trigger. An unknown document or a language without snippets yields an
// empty result.
func SnippetsFor(docs *DocumentRegistry, table snippets.Table, uri string) []Snippet {
	lang, ok := docs.Language(uri)
	if !ok {
		return []Snippet{}
	}
	set, ok := table.Lookup(lang)
	if !ok {
		return []Snippet{}
	}

	out := make([]Snippet, 0, len(set))
	for _, trigger := range set.Triggers() {
		out = append(out, Snippet{Trigger: trigger, Body: set[trigger]})
	}
	return out
}

// completionItems converts snippets to LSP completion items. Bodies are
// passed through untouched; placeholder expansion is left to the client.
func completionItems(language string, items []Snippet) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindSnippet
	format := protocol.InsertTextFormatSnippet

	out := make([]protocol.CompletionItem, 0, len(items))
	for _, s := range items {
		out = append(out, protocol.CompletionItem{
			Label:            s.Trigger,
			Kind:             &kind,
			Detail:           strPtr(language),
			InsertText:       strPtr(s.Body),
			InsertTextFormat: &format,
		})
	}
	return out
}

func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	lang, _ := s.docs.Language(uri)
	return completionItems(lang, SnippetsFor(s.docs, s.table(), uri)), nil
}

func strPtr(s string) *string {
	return &s
}
