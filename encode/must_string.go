package encode

import (
	"bytes"
	"strings"

	"github.com/stagekit/conftree/ir"
)

// MustString renders a tree for error messages and logs.  Opaque leaves
// are admitted; scalars render without their key context.
func MustString(node *ir.Node, opts ...EncodeOption) string {
	if node.Type != ir.ObjectType {
		s, err := scalarString(node)
		if err != nil {
			panic(err)
		}
		return s
	}
	buf := bytes.NewBuffer(nil)
	opts = append([]EncodeOption{EncodeOpaque(true)}, opts...)
	if err := Encode(node, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func scalarString(node *ir.Node) (string, error) {
	buf := bytes.NewBuffer(nil)
	es := &EncState{indent: 2, opaque: true}
	if node.Type == ir.ListType {
		if len(node.Values) == 0 {
			return "[]", nil
		}
		if err := encodeListBody(node, buf, es); err != nil {
			return "", err
		}
		return strings.TrimRight(buf.String(), "\n"), nil
	}
	if err := encodeScalar(node, buf, es); err != nil {
		return "", err
	}
	return buf.String(), nil
}
