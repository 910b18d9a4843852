// Package export writes a snippet table back out in one of the formats the
// snippets file accepts.
package export

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"
	"github.com/snippets-ls/snippets-ls/internal/snippets"
	"github.com/zclconf/go-cty/cty"
)

// Formats lists the supported output formats.
var Formats = []string{"toml", "json", "yaml", "hcl"}

// ErrUnknownFormat is returned by Encode for a format not in Formats.
var ErrUnknownFormat = errors.New("unknown format")

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)

// Encode serialises table in the given format.
func Encode(table snippets.Table, format string) ([]byte, error) {
	var p koanf.Parser
	switch format {
	case "toml":
		p = toml.Parser()
	case "json":
		p = json.Parser()
	case "yaml":
		p = yaml.Parser()
	case "hcl":
		return encodeHCL(table)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	out, err := p.Marshal(table.ToMap())
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", format, err)
	}
	return out, nil
}

// encodeHCL writes one attribute per language holding an object of
// trigger = body pairs. Languages are written in sorted order.
func encodeHCL(table snippets.Table) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	for i, lang := range table.Languages() {
		if !hclsyntax.ValidIdentifier(lang) {
			return nil, fmt.Errorf("encoding hcl: language %q is not a valid identifier", lang)
		}
		if i > 0 {
			body.AppendNewline()
		}
		body.SetAttributeValue(lang, setValue(table[lang]))
	}

	formatted := hclwrite.Format(f.Bytes())
	return multipleBlankLines.ReplaceAll(formatted, []byte("\n\n")), nil
}

func setValue(set snippets.Set) cty.Value {
	if len(set) == 0 {
		return cty.EmptyObjectVal
	}
	vals := make(map[string]cty.Value, len(set))
	for trigger, body := range set {
		vals[trigger] = cty.StringVal(body)
	}
	return cty.ObjectVal(vals)
}
