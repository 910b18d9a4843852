// Package snippets holds the snippet lookup table and the built-in defaults.
package snippets

import (
	"fmt"
	"sort"
)

// Set maps a trigger to its snippet body. Bodies are opaque.
type Set map[string]string

// Table maps a language identifier to its snippet set.
type Table map[string]Set

// Triggers returns the set's triggers in sorted order.
func (s Set) Triggers() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Languages returns the table's languages in sorted order.
func (t Table) Languages() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Lookup returns the snippet set for language.
func (t Table) Lookup(language string) (Set, bool) {
	set, ok := t[language]
	return set, ok
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	out := make(Table, len(t))
	for lang, set := range t {
		cp := make(Set, len(set))
		for trigger, body := range set {
			cp[trigger] = body
		}
		out[lang] = cp
	}
	return out
}

// Merge returns base with overlay applied on top of it. Entries are merged
// per (language, trigger): a body in overlay replaces the body in base for
// the same pair, and languages or triggers only present in overlay are
// added. Neither argument is modified.
func Merge(base, overlay Table) Table {
	out := base.Clone()
	for lang, set := range overlay {
		dest, ok := out[lang]
		if !ok {
			dest = make(Set, len(set))
			out[lang] = dest
		}
		for trigger, body := range set {
			dest[trigger] = body
		}
	}
	return out
}

// FromMap converts a generic two-level document, as produced by the config
// parsers, into a Table. Every language must map to a table and every body
// must be a string.
func FromMap(m map[string]any) (Table, error) {
	out := make(Table, len(m))
	for lang, v := range m {
		entries, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("language %q: expected a table of snippets, got %T", lang, v)
		}
		set := make(Set, len(entries))
		for trigger, body := range entries {
			s, ok := body.(string)
			if !ok {
				return nil, fmt.Errorf("%s.%s: expected a string body, got %T", lang, trigger, body)
			}
			set[trigger] = s
		}
		out[lang] = set
	}
	return out, nil
}

// ToMap is the inverse of FromMap.
func (t Table) ToMap() map[string]any {
	out := make(map[string]any, len(t))
	for lang, set := range t {
		entries := make(map[string]any, len(set))
		for trigger, body := range set {
			entries[trigger] = body
		}
		out[lang] = entries
	}
	return out
}
