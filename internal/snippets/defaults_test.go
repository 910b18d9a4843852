package snippets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultsParse(t *testing.T) {
	table, err := Defaults()
	if err != nil {
		t.Fatalf("Defaults() error: %v", err)
	}

	if got := table["javascript"]["clo"]; got != "console.log('$1:', $1)" {
		t.Errorf("javascript.clo = %q, want %q", got, "console.log('$1:', $1)")
	}
	if got := table["ruby"]["pry"]; got != "binding.pry" {
		t.Errorf("ruby.pry = %q, want %q", got, "binding.pry")
	}
	if got := table["go"]["iferr"]; got != "if err != nil {\n\treturn ${1:err}\n}" {
		t.Errorf("go.iferr = %q", got)
	}
}

func TestDefaultsFreshCopy(t *testing.T) {
	a := MustDefaults()
	a["ruby"]["pry"] = "changed"

	b := MustDefaults()
	if b["ruby"]["pry"] != "binding.pry" {
		t.Errorf("Defaults() returned shared state: ruby.pry = %q", b["ruby"]["pry"])
	}
}

func TestParse(t *testing.T) {
	src := `
[ruby]
pry = "binding.pry"
irb = "binding.irb"

[javascript]
clo = "console.log('$1:', $1)"
`
	got, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	want := Table{
		"ruby":       {"pry": "binding.pry", "irb": "binding.irb"},
		"javascript": {"clo": "console.log('$1:', $1)"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"invalid toml", "[ruby\npry = "},
		{"top-level body", `pry = "binding.pry"`},
		{"non-string body", "[ruby]\npry = 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.src)); err == nil {
				t.Error("Parse() expected error, got nil")
			}
		})
	}
}
