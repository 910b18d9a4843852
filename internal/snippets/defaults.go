package snippets

import (
	_ "embed"
	"fmt"

	"github.com/knadh/koanf/parsers/toml"
)

//go:embed defaults.toml
var defaultsTOML []byte

// Parse decodes a TOML document of the form
//
//	[language]
//	trigger = "body"
//
// into a Table.
func Parse(data []byte) (Table, error) {
	m, err := toml.Parser().Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parsing snippets: %w", err)
	}
	return FromMap(m)
}

// Defaults parses the built-in snippet definitions compiled into the binary.
// Each call returns a fresh Table.
func Defaults() (Table, error) {
	t, err := Parse(defaultsTOML)
	if err != nil {
		return nil, fmt.Errorf("built-in snippets: %w", err)
	}
	return t, nil
}

// MustDefaults is like Defaults but panics if the built-in definitions are
// malformed.
func MustDefaults() Table {
	t, err := Defaults()
	if err != nil {
		panic(err)
	}
	return t
}
