// Package config turns editor-supplied settings and user snippet files into
// snippet tables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	"github.com/snippets-ls/snippets-ls/internal/snippets"
	"github.com/zclconf/go-cty/cty"
)

// ErrNotFound is returned by LoadFile when the snippets file does not exist.
var ErrNotFound = errors.New("snippets file not found")

// parserFor picks a parser by file extension. Unknown extensions are read
// as TOML.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Parser()
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// LoadFile reads a user snippets file. The format is chosen by extension:
// .json, .yaml/.yml, .hcl, anything else is TOML. The result is all or
// nothing: a file that fails to parse yields an error and no table.
func LoadFile(path string) (snippets.Table, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading snippets file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return ParseHCL(src, path)
	}

	m, err := parserFor(path).Unmarshal(src)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	table, err := snippets.FromMap(m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ParseHCL parses snippets written as HCL. Each language is either an
// attribute holding an object
//
//	ruby = {
//	  pry = "binding.pry"
//	}
//
// or a block
//
//	ruby {
//	  pry = "binding.pry"
//	}
//
// The object form allows triggers that are not valid identifiers. Bodies are
// HCL strings, so placeholders must be escaped as "$${1}".
func ParseHCL(src []byte, filename string) (snippets.Table, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	body := file.Body.(*hclsyntax.Body)
	table := make(snippets.Table)

	for name, attr := range body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("evaluating %s: %s", name, diags.Error())
		}
		if err := addLanguageValue(table, name, val); err != nil {
			return nil, err
		}
	}

	for _, block := range body.Blocks {
		if err := addLanguageBlock(table, block); err != nil {
			return nil, err
		}
	}

	return table, nil
}

func languageSet(table snippets.Table, language string) snippets.Set {
	set, ok := table[language]
	if !ok {
		set = make(snippets.Set)
		table[language] = set
	}
	return set
}

func addLanguageValue(table snippets.Table, language string, val cty.Value) error {
	if val.IsNull() || !val.IsWhollyKnown() {
		return fmt.Errorf("%s: expected an object of snippets", language)
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return fmt.Errorf("%s: expected an object of snippets, got %s", language, ty.FriendlyName())
	}

	set := languageSet(table, language)
	for it := val.ElementIterator(); it.Next(); {
		k, v := it.Element()
		trigger := k.AsString()
		body, err := bodyString(language, trigger, v)
		if err != nil {
			return err
		}
		set[trigger] = body
	}
	return nil
}

func addLanguageBlock(table snippets.Table, block *hclsyntax.Block) error {
	if len(block.Labels) > 0 {
		return fmt.Errorf("%s: language blocks take no labels", block.Type)
	}
	if len(block.Body.Blocks) > 0 {
		return fmt.Errorf("%s: nested blocks are not allowed", block.Type)
	}

	set := languageSet(table, block.Type)
	for name, attr := range block.Body.Attributes {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("evaluating %s.%s: %s", block.Type, name, diags.Error())
		}
		body, err := bodyString(block.Type, name, val)
		if err != nil {
			return err
		}
		set[name] = body
	}
	return nil
}

func bodyString(language, trigger string, v cty.Value) (string, error) {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.String) {
		return "", fmt.Errorf("%s.%s: expected a string body, got %s", language, trigger, v.Type().FriendlyName())
	}
	return v.AsString(), nil
}
