package config

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/snippets-ls/snippets-ls/internal/snippets"
)

// Option keys recognised in initializationOptions.
const (
	KeySnippetsFile       = "snippetsFile"
	KeySnippetsFileLegacy = "snippets_file"
	KeySnippets           = "snippets"
)

// Options is the coerced form of the initializationOptions object sent by
// the editor.
type Options struct {
	// Present is false when the editor sent no initializationOptions at all.
	Present bool

	// SnippetsFile is the user snippets file as given, before ~/ expansion.
	// Empty means no file source.
	SnippetsFile string

	// DefaultFile is set when no snippetsFile was given, in which case the
	// default location is read.
	DefaultFile bool

	// Snippets is the inline snippet table, empty if absent or invalid.
	Snippets snippets.Table

	// Warnings describes options that were present but unusable.
	Warnings []string
}

// ParseOptions coerces a loosely-typed initializationOptions value. It never
// fails: unusable options are dropped and reported in Warnings.
func ParseOptions(raw any) Options {
	if raw == nil {
		return Options{}
	}

	opts := Options{Present: true, Snippets: snippets.Table{}}

	m, ok := raw.(map[string]any)
	if !ok {
		opts.Warnings = append(opts.Warnings,
			fmt.Sprintf("initializationOptions: expected an object, got %T", raw))
		return opts
	}

	key := KeySnippetsFile
	path, found := m[key]
	if !found {
		key = KeySnippetsFileLegacy
		path, found = m[key]
	}
	switch {
	case !found:
		opts.DefaultFile = true
	default:
		if s, ok := path.(string); ok {
			opts.SnippetsFile = s
		} else {
			opts.Warnings = append(opts.Warnings,
				fmt.Sprintf("%s: expected a string, got %T", key, path))
		}
	}

	if inline, found := m[KeySnippets]; found {
		table, err := decodeTable(inline)
		if err != nil {
			opts.Warnings = append(opts.Warnings, fmt.Sprintf("%s: %v", KeySnippets, err))
		} else {
			opts.Snippets = table
		}
	}

	return opts
}

// decodeTable decodes an arbitrary JSON-like value into a snippet table.
// Values are not coerced: a number or null where a body is expected is an
// error.
func decodeTable(raw any) (snippets.Table, error) {
	if err := rejectNulls(raw); err != nil {
		return nil, err
	}

	var table snippets.Table
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: &table,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, err
	}
	if table == nil {
		table = snippets.Table{}
	}
	return table, nil
}

// rejectNulls reports JSON nulls at either level of the table; the decoder
// turns them into zero values.
func rejectNulls(raw any) error {
	if raw == nil {
		return fmt.Errorf("expected an object of languages, got null")
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	for lang, v := range m {
		if v == nil {
			return fmt.Errorf("language %q: expected a table of snippets, got null", lang)
		}
		set, ok := v.(map[string]any)
		if !ok {
			continue
		}
		for trigger, body := range set {
			if body == nil {
				return fmt.Errorf("%s.%s: expected a string body, got null", lang, trigger)
			}
		}
	}
	return nil
}
