package conftree

import (
	"bytes"
	"fmt"

	"github.com/stagekit/conftree/encode"
	"github.com/stagekit/conftree/format"
	"github.com/stagekit/conftree/ir"
	"github.com/stagekit/conftree/parse"
)

// IsSerializable reports whether every leaf holds a representable
// payload.  Opaque values make the tree renderable but not
// serializable.
func (c *Config) IsSerializable() bool {
	ok := true
	c.node.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if !isPost && n.Type == ir.OpaqueType {
			ok = false
		}
		return ok, nil
	})
	return ok
}

// ToLiteral serializes the tree to the concise text form.  Parsing the
// result back yields an equal tree.
func (c *Config) ToLiteral() (string, error) {
	if !c.IsSerializable() {
		return "", fmt.Errorf("config holds non-serializable values")
	}
	var buf bytes.Buffer
	if err := encode.Encode(c.node, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FromLiteral parses the text form produced by ToLiteral.
func FromLiteral(text string, opts ...Option) (*Config, error) {
	node, err := parse.Parse([]byte(text))
	if err != nil {
		return nil, err
	}
	node.StampWriter(ir.CallerSite(1))
	return &Config{node: node, shared: newShared(opts)}, nil
}

// ToJSON serializes the tree as a compact JSON object, key order
// preserved.
func (c *Config) ToJSON() ([]byte, error) {
	if !c.IsSerializable() {
		return nil, fmt.Errorf("config holds non-serializable values")
	}
	var buf bytes.Buffer
	if err := encode.Encode(c.node, &buf, encode.EncodeFormat(format.JSONFormat)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromJSON parses a JSON object into a tree, key order preserved.  The
// root must be an object.
func FromJSON(d []byte, opts ...Option) (*Config, error) {
	node, err := parse.ParseJSON(d)
	if err != nil {
		return nil, err
	}
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("JSON root is %s, want Object", node.Type)
	}
	node.StampWriter(ir.CallerSite(1))
	return &Config{node: node, shared: newShared(opts)}, nil
}

// Render returns a human-readable rendition in the given mode.  Unlike
// ToLiteral it tolerates opaque values and never fails, so it is safe
// in error paths and logs.
func (c *Config) Render(mode encode.RenderMode) string {
	var buf bytes.Buffer
	err := encode.Encode(c.node, &buf,
		encode.Render(mode),
		encode.EncodeOpaque(true),
	)
	if err != nil {
		return "<unrenderable config>"
	}
	return buf.String()
}

// String renders concisely, for fmt verbs and debug output.
func (c *Config) String() string {
	return c.Render(encode.Concise)
}
