package parse

import (
	"errors"
	"strings"
	"testing"

	"github.com/stagekit/conftree/encode"
	"github.com/stagekit/conftree/ir"
)

func TestParseRoundTrip(t *testing.T) {
	// each doc is in canonical form: encoding the parse reproduces it
	docs := []string{
		"{}\n",
		"a: 1\n",
		"a: null\n",
		"a: true\nb: false\n",
		"a: 0.5\nb: 3.0\n",
		"name: svc\n",
		"msg: \"a: b\"\n",
		"\"dotted.key\": 1\n",
		"\"\": empty\n",
		"a: {}\nb: []\n",
		"outer:\n  inner: 1\n  deeper:\n    x: y\n",
		"xs:\n  - 1\n  - 2\n  - 3\n",
		"xs:\n  - a\n  - null\n  - true\n",
		"xs:\n  - !tag a\n  - b\n",
		"grid:\n  - - 1\n    - 2\n  - - 3\n    - 4\n",
		"deep:\n  - - - x\n",
		"mixed:\n  - []\n  - 1\n",
		"expr: !expr a + b\n",
		"a: 1\nsub:\n  b: 2\nc: 3\n",
	}
	for _, doc := range docs {
		t.Run(strings.ReplaceAll(doc, "\n", ";"), func(t *testing.T) {
			node, err := Parse([]byte(doc))
			if err != nil {
				t.Fatalf("# doc\n%s\n# error %v", doc, err)
			}
			got := encode.MustString(node) + "\n"
			if got != doc {
				t.Errorf("round trip mismatch\n# in\n%s# out\n%s", doc, got)
			}
		})
	}
}

func TestParseEquivalentForms(t *testing.T) {
	// same tree, non-canonical spellings
	tests := []struct {
		name     string
		in, want string
	}{
		{"empty", "", "{}\n"},
		{"blank lines", "\n\na: 1\n\n", "a: 1\n"},
		{"comments", "# head\na: 1 # trailing\n", "a: 1\n"},
		{"comment only", "# nothing else\n", "{}\n"},
		{"extra spaces after colon", "a:   1\n", "a: 1\n"},
		{"quoted simple key", "\"a\": 1\n", "a: 1\n"},
		{"quoted bare string", "a: \"hello\"\n", "a: hello\n"},
		{"hash inside quotes", "a: \"x # y\"\n", "a: \"x # y\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Parse([]byte(tt.in))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			got := encode.MustString(node) + "\n"
			if got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestVerboseRendersReparse(t *testing.T) {
	in := "a: 1\nsub:\n  b: x\nxs:\n  - 1\n  - 2\n"
	node, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	node.MarkUsed(&ir.Site{File: "main.go", Line: 10, Func: "main.run"})

	var buf strings.Builder
	if err := encode.Encode(node, &buf, encode.Render(encode.Verbose)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	back, err := Parse([]byte(buf.String()))
	if err != nil {
		t.Fatalf("reparse of verbose render: %v\n%s", err, buf.String())
	}
	if !ir.Equal(node, back) {
		t.Errorf("verbose render parsed to a different tree\n%s", buf.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"duplicate key", "a: 1\na: 2\n"},
		{"element outside list", "- 1\n"},
		{"bad indent", "a: 1\n   b: 2\n"},
		{"over-indented block", "a:\n    b: 1\n  c: 2\n"},
		{"missing colon", "a\n"},
		{"no space after colon", "a:1\n"},
		{"tag without value", "a: !tag\n"},
		{"unterminated quoted key", "\"a: 1\n"},
		{"bad quoted scalar", "a: \"x\ny\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			if err == nil {
				t.Fatalf("Parse(%q) = nil error, want error", tt.in)
			}
			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v is not ErrParse", err)
			}
		})
	}
}

func TestParseFilenameInError(t *testing.T) {
	_, err := Parse([]byte("a: 1\na: 2\n"), Filename("app.conf"))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "app.conf:2") {
		t.Errorf("error %q does not name app.conf:2", err.Error())
	}
}
