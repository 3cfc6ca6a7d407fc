package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Path
		err  bool
	}{
		{"empty", "", nil, false},
		{"single", "a", Path{"a"}, false},
		{"dotted", "read_data.file_name", Path{"read_data", "file_name"}, false},
		{"deep", "a.b.c.d", Path{"a", "b", "c", "d"}, false},
		{"quoted", `outer."dotted.key"`, Path{"outer", "dotted.key"}, false},
		{"quoted first", `"a b".c`, Path{"a b", "c"}, false},
		{"quoted escape", `"say \"hi\""`, Path{`say "hi"`}, false},
		{"unterminated", `"a`, nil, true},
		{"empty segment", "a..b", nil, true},
		{"trailing dot", "a.", nil, true},
		{"trailing dot after quote", `"a b".`, nil, true},
		{"missing dot after quote", `"a"b`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			if tt.err {
				if err == nil {
					t.Fatalf("ParsePath(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePath(%q): %v", tt.in, err)
			}
			if d := cmp.Diff(tt.want, got); d != "" {
				t.Errorf("ParsePath(%q) mismatch (-want +got):\n%s", tt.in, d)
			}
		})
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	paths := []Path{
		{"a"},
		{"read_data", "file_name"},
		{"outer", "dotted.key"},
		{"with space", "x"},
		{`q"uote`, "y"},
	}
	for _, p := range paths {
		got, err := ParsePath(p.String())
		if err != nil {
			t.Errorf("ParsePath(%q): %v", p.String(), err)
			continue
		}
		if d := cmp.Diff(p, got); d != "" {
			t.Errorf("round trip of %q mismatch (-want +got):\n%s", p.String(), d)
		}
	}
}

func TestPathChildAppend(t *testing.T) {
	p := Path{"a", "b"}
	c := p.Child("c")
	if d := cmp.Diff(Path{"a", "b", "c"}, c); d != "" {
		t.Errorf("Child mismatch (-want +got):\n%s", d)
	}
	q := p.Append("x", "y")
	if d := cmp.Diff(Path{"a", "b", "x", "y"}, q); d != "" {
		t.Errorf("Append mismatch (-want +got):\n%s", d)
	}
	if d := cmp.Diff(Path{"a", "b"}, p); d != "" {
		t.Errorf("receiver modified (-want +got):\n%s", d)
	}
}
