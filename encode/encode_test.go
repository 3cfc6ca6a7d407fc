package encode

import (
	"strings"
	"testing"

	"github.com/stagekit/conftree/format"
	"github.com/stagekit/conftree/ir"
)

func testTree() *ir.Node {
	root := ir.NewObject()
	root.SetField("name", ir.FromString("svc"))
	sub := ir.NewObject()
	sub.SetField("port", ir.FromInt(8080))
	sub.SetField("ratio", ir.FromFloat(0.5))
	root.SetField("server", sub)
	root.SetField("tags", ir.FromSlice([]*ir.Node{
		ir.FromString("a"), ir.FromString("b"),
	}))
	root.SetField("empty", ir.NewObject())
	return root
}

func TestEncodeText(t *testing.T) {
	var buf strings.Builder
	if err := Encode(testTree(), &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `name: svc
server:
  port: 8080
  ratio: 0.5
tags:
  - a
  - b
empty: {}
`
	if buf.String() != want {
		t.Errorf("got\n%s\nwant\n%s", buf.String(), want)
	}
}

func TestEncodeJSON(t *testing.T) {
	var buf strings.Builder
	if err := Encode(testTree(), &buf, EncodeFormat(format.JSONFormat)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := `{"name":"svc","server":{"port":8080,"ratio":0.5},"tags":["a","b"],"empty":{}}`
	if buf.String() != want {
		t.Errorf("got %s\nwant %s", buf.String(), want)
	}
}

func TestEncodeVerbose(t *testing.T) {
	root := ir.NewObject()
	root.SetField("a", ir.FromInt(1))
	site := &ir.Site{File: "w.go", Line: 7, Func: "pkg.setup"}
	root.StampWriter(site)
	root.Get("a").MarkUsed(&ir.Site{File: "r.go", Line: 9, Func: "pkg.run"})

	var buf strings.Builder
	if err := Encode(root, &buf, Render(Verbose)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "a: 1  # used=true writer=w.go:7:pkg.setup type=Int\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestEncodeOpaque(t *testing.T) {
	root := ir.NewObject()
	root.SetField("conn", ir.FromOpaque(strings.NewReader("")))

	var buf strings.Builder
	if err := Encode(root, &buf); err == nil {
		t.Fatalf("opaque value encoded without EncodeOpaque")
	}
	buf.Reset()
	if err := Encode(root, &buf, EncodeOpaque(true)); err != nil {
		t.Fatalf("Encode with EncodeOpaque: %v", err)
	}
	if !strings.Contains(buf.String(), "<opaque *strings.Reader>") {
		t.Errorf("got %q, want opaque placeholder", buf.String())
	}

	buf.Reset()
	err := Encode(root, &buf, EncodeFormat(format.JSONFormat), EncodeOpaque(true))
	if err == nil {
		t.Errorf("opaque value encoded as JSON")
	}
}

func TestEncodeNonObjectRoot(t *testing.T) {
	var buf strings.Builder
	if err := Encode(ir.FromInt(1), &buf); err == nil {
		t.Errorf("scalar root encoded, want error")
	}
}

func TestEncodeObjectInList(t *testing.T) {
	root := ir.NewObject()
	inner := ir.NewObject()
	inner.SetField("x", ir.FromInt(1))
	list := &ir.Node{Type: ir.ListType}
	inner.Parent = list
	list.Values = append(list.Values, inner)
	root.SetField("xs", list)

	var buf strings.Builder
	if err := Encode(root, &buf); err == nil {
		t.Errorf("object inside a list encoded, want error")
	}
}

func TestMustString(t *testing.T) {
	root := ir.NewObject()
	root.SetField("a", ir.FromInt(1))
	if got := MustString(root); got != "a: 1" {
		t.Errorf("MustString = %q, want %q", got, "a: 1")
	}
	if got := MustString(ir.FromString("x")); got != "x" {
		t.Errorf("MustString(scalar) = %q, want %q", got, "x")
	}
}
