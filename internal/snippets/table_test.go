package snippets

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMergeEmpty(t *testing.T) {
	got := Merge(Table{}, Table{})
	if len(got) != 0 {
		t.Errorf("Merge of empty tables = %v, want empty", got)
	}
}

func TestMergeIdentity(t *testing.T) {
	a := Table{
		"ruby":       {"pry": "binding.pry", "irb": "binding.irb"},
		"javascript": {"clo": "console.log('$1:', $1)"},
	}

	if diff := cmp.Diff(a, Merge(a, Table{})); diff != "" {
		t.Errorf("Merge(a, {}) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(a, Merge(Table{}, a)); diff != "" {
		t.Errorf("Merge({}, a) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(a, Merge(nil, a)); diff != "" {
		t.Errorf("Merge(nil, a) mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeAddLanguage(t *testing.T) {
	base := Table{"javascript": {"clo": "console.log('$1:', $1)"}}
	overlay := Table{"ruby": {"irb": "binding.irb"}}

	want := Table{
		"javascript": {"clo": "console.log('$1:', $1)"},
		"ruby":       {"irb": "binding.irb"},
	}
	if diff := cmp.Diff(want, Merge(base, overlay)); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeOverrideTrigger(t *testing.T) {
	base := Table{"ruby": {"pry": "binding.pry"}}
	overlay := Table{"ruby": {"pry": "require 'pry'; binding.pry"}}

	want := Table{"ruby": {"pry": "require 'pry'; binding.pry"}}
	if diff := cmp.Diff(want, Merge(base, overlay)); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeKeepsUntouchedTriggers(t *testing.T) {
	base := Table{"ruby": {"pry": "binding.pry", "irb": "binding.irb"}}
	overlay := Table{"ruby": {"pry": "require 'pry'; binding.pry", "p": "p ${1}"}}

	want := Table{"ruby": {
		"pry": "require 'pry'; binding.pry",
		"irb": "binding.irb",
		"p":   "p ${1}",
	}}
	if diff := cmp.Diff(want, Merge(base, overlay)); diff != "" {
		t.Errorf("Merge mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeIdempotent(t *testing.T) {
	a := Table{"ruby": {"pry": "binding.pry"}, "go": {"pln": "fmt.Println()"}}
	b := Table{"ruby": {"pry": "require 'pry'"}, "rust": {"dbg": "dbg!()"}}

	once := Merge(a, b)
	twice := Merge(once, b)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("Merge not idempotent (-once +twice):\n%s", diff)
	}
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	base := Table{"ruby": {"pry": "binding.pry"}}
	overlay := Table{"ruby": {"pry": "other"}, "go": {"x": "y"}}

	merged := Merge(base, overlay)
	merged["ruby"]["new"] = "added"

	want := Table{"ruby": {"pry": "binding.pry"}}
	if diff := cmp.Diff(want, base); diff != "" {
		t.Errorf("base was mutated (-want +got):\n%s", diff)
	}
	if _, ok := overlay["ruby"]["new"]; ok {
		t.Error("overlay was mutated")
	}
}

func TestCloneIsDeep(t *testing.T) {
	orig := Table{"ruby": {"pry": "binding.pry"}}
	cp := orig.Clone()
	cp["ruby"]["pry"] = "changed"
	cp["go"] = Set{}

	if orig["ruby"]["pry"] != "binding.pry" {
		t.Errorf("orig[ruby][pry] = %q, want %q", orig["ruby"]["pry"], "binding.pry")
	}
	if _, ok := orig["go"]; ok {
		t.Error("Clone shares the top-level map")
	}
}

func TestSortedKeys(t *testing.T) {
	table := Table{
		"ruby":   {"pry": "a", "irb": "b", "p": "c"},
		"go":     {},
		"python": {},
	}

	if diff := cmp.Diff([]string{"go", "python", "ruby"}, table.Languages()); diff != "" {
		t.Errorf("Languages() mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"irb", "p", "pry"}, table["ruby"].Triggers()); diff != "" {
		t.Errorf("Triggers() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromMap(t *testing.T) {
	tests := []struct {
		name    string
		input   map[string]any
		want    Table
		wantErr bool
	}{
		{
			name:  "two levels",
			input: map[string]any{"ruby": map[string]any{"pry": "binding.pry"}},
			want:  Table{"ruby": {"pry": "binding.pry"}},
		},
		{
			name:  "empty language",
			input: map[string]any{"ruby": map[string]any{}},
			want:  Table{"ruby": {}},
		},
		{
			name:    "language is not a table",
			input:   map[string]any{"ruby": "binding.pry"},
			wantErr: true,
		},
		{
			name:    "body is not a string",
			input:   map[string]any{"ruby": map[string]any{"pry": int64(1)}},
			wantErr: true,
		},
		{
			name:    "nested too deep",
			input:   map[string]any{"ruby": map[string]any{"pry": map[string]any{"x": "y"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromMap(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("FromMap() = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("FromMap() error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromMap() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestToMapRoundTrip(t *testing.T) {
	table := Table{"ruby": {"pry": "binding.pry"}, "go": {"pln": "fmt.Println()"}}
	got, err := FromMap(table.ToMap())
	if err != nil {
		t.Fatalf("FromMap() error: %v", err)
	}
	if diff := cmp.Diff(table, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
