package token

import (
	"testing"

	"github.com/stagekit/conftree/ir"
)

func TestScalarRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		node *ir.Node
		enc  string
	}{
		{"null", ir.Null(), "null"},
		{"true", ir.FromBool(true), "true"},
		{"false", ir.FromBool(false), "false"},
		{"int", ir.FromInt(42), "42"},
		{"negative int", ir.FromInt(-7), "-7"},
		{"float", ir.FromFloat(0.5), "0.5"},
		{"integral float", ir.FromFloat(3), "3.0"},
		{"zero float", ir.FromFloat(0), "0.0"},
		{"bare string", ir.FromString("hello"), "hello"},
		{"spacey string", ir.FromString("a b"), "a b"},
		{"empty string", ir.FromString(""), `""`},
		{"numeric string", ir.FromString("42"), `"42"`},
		{"keyword string", ir.FromString("null"), `"null"`},
		{"colon string", ir.FromString("a:b"), `"a:b"`},
		{"hash string", ir.FromString("a#b"), `"a#b"`},
		{"leading space", ir.FromString(" x"), `" x"`},
		{"marker string", ir.FromString("- x"), `"- x"`},
		{"bang string", ir.FromString("!tag"), `"!tag"`},
		{"newline string", ir.FromString("a\nb"), `"a\nb"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enc, err := EncodeScalar(tt.node)
			if err != nil {
				t.Fatalf("EncodeScalar: %v", err)
			}
			if enc != tt.enc {
				t.Fatalf("EncodeScalar = %q, want %q", enc, tt.enc)
			}
			back, err := ParseScalar(enc)
			if err != nil {
				t.Fatalf("ParseScalar(%q): %v", enc, err)
			}
			if !ir.Equal(tt.node, back) {
				t.Errorf("round trip changed value: %s -> %q -> %s",
					tt.node.Type, enc, back.Type)
			}
		})
	}
}

func TestParseScalarClassification(t *testing.T) {
	tests := []struct {
		in   string
		want ir.Type
	}{
		{"null", ir.NullType},
		{"true", ir.BoolType},
		{"22", ir.IntType},
		{"1e14", ir.FloatType},
		{"0.5", ir.FloatType},
		{"hello", ir.StringType},
		{`"22"`, ir.StringType},
		{`"null"`, ir.StringType},
	}
	for _, tt := range tests {
		got, err := ParseScalar(tt.in)
		if err != nil {
			t.Errorf("ParseScalar(%q): %v", tt.in, err)
			continue
		}
		if got.Type != tt.want {
			t.Errorf("ParseScalar(%q).Type = %s, want %s", tt.in, got.Type, tt.want)
		}
	}
}

func TestNeedsKeyQuote(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"port", false},
		{"read_data", false},
		{"", true},
		{"dotted.key", true},
		{"a:b", true},
		{"a#b", true},
		{"-flag", true},
		{" pad", true},
		{"!tag", true},
	}
	for _, tt := range tests {
		if got := NeedsKeyQuote(tt.key); got != tt.want {
			t.Errorf("NeedsKeyQuote(%q) = %t, want %t", tt.key, got, tt.want)
		}
	}
}

func TestEncodeScalarNonScalar(t *testing.T) {
	if _, err := EncodeScalar(ir.NewObject()); err == nil {
		t.Errorf("EncodeScalar(Object) = nil error, want error")
	}
}
