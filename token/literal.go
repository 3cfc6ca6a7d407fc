package token

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stagekit/conftree/ir"
)

// ParseScalar converts one scalar literal into a leaf node.  Quoted
// input always yields a string; bare input is classified by shape.
func ParseScalar(v string) (*ir.Node, error) {
	if IsQuoted(v) {
		s, err := strconv.Unquote(v)
		if err != nil {
			return nil, fmt.Errorf("bad quoted scalar %s: %w", v, err)
		}
		return ir.FromString(s), nil
	}
	switch v {
	case "null":
		return ir.Null(), nil
	case "true":
		return ir.FromBool(true), nil
	case "false":
		return ir.FromBool(false), nil
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return ir.FromInt(i), nil
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return ir.FromFloat(f), nil
	}
	return ir.FromString(v), nil
}

// EncodeScalar renders a leaf node as one scalar literal, quoting
// strings that would not read back as themselves.
func EncodeScalar(y *ir.Node) (string, error) {
	switch y.Type {
	case ir.NullType:
		return "null", nil
	case ir.BoolType:
		return strconv.FormatBool(y.Bool), nil
	case ir.IntType:
		return strconv.FormatInt(y.Int64, 10), nil
	case ir.FloatType:
		v := strconv.FormatFloat(y.Float64, 'f', -1, 64)
		// zero and integral floats keep a decimal point so they read
		// back as floats
		if !strings.ContainsAny(v, ".eE") {
			v += ".0"
		}
		return v, nil
	case ir.StringType:
		if NeedsQuote(y.String) {
			return Quote(y.String), nil
		}
		return y.String, nil
	default:
		return "", fmt.Errorf("%s is not a scalar type", y.Type)
	}
}

// IsQuoted reports whether v is a Go-quoted string literal.
func IsQuoted(v string) bool {
	return len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"'
}

// Quote renders v with Go string quoting.
func Quote(v string) string {
	return strconv.Quote(v)
}

// NeedsQuote reports whether the string v must be quoted to read back as
// a string with the same content.
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	switch v {
	case "null", "true", "false", "{}", "[]":
		return true
	}
	if _, err := strconv.ParseInt(v, 10, 64); err == nil {
		return true
	}
	if _, err := strconv.ParseFloat(v, 64); err == nil {
		return true
	}
	if v[0] == ' ' || v[len(v)-1] == ' ' || v[0] == '!' || v[0] == '"' {
		return true
	}
	if strings.HasPrefix(v, "- ") || v == "-" {
		return true
	}
	if strings.ContainsAny(v, ":#\n\t\r") {
		return true
	}
	return false
}

// NeedsKeyQuote reports whether an object key must be quoted on its
// "key:" line.  Dots quote so a rendered key reads back as one path
// segment.
func NeedsKeyQuote(k string) bool {
	if k == "" {
		return true
	}
	if k[0] == ' ' || k[len(k)-1] == ' ' || k[0] == '!' || k[0] == '"' || k[0] == '-' {
		return true
	}
	return strings.ContainsAny(k, ":#.\n\t\r")
}
