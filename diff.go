package conftree

import (
	jsonpatch "github.com/evanphx/json-patch"

	"github.com/stagekit/conftree/debug"
	"github.com/stagekit/conftree/encode"
	"github.com/stagekit/conftree/ir"
	"github.com/stagekit/conftree/parse"
)

// Diff computes a JSON merge patch (RFC 7386) turning a into b.
// ApplyDiff on a tree equal to a reproduces b up to key order.
func Diff(a, b *Config) ([]byte, error) {
	aj, err := a.ToJSON()
	if err != nil {
		return nil, err
	}
	bj, err := b.ToJSON()
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(aj, bj)
	if err != nil {
		return nil, err
	}
	if debug.Diff() {
		debug.Logf("diff %s\n", string(patch))
	}
	return patch, nil
}

// ApplyDiff applies a JSON merge patch to the tree in place.  The patch
// bypasses per-key policy, but a frozen tree still refuses it; usage
// state and provenance restart from the applying call site.
func (c *Config) ApplyDiff(patch []byte) error {
	if ro := c.node.ReadOnlyAncestor(); ro != nil {
		return &ir.ReadOnlyConfigError{
			Path: c.node.Path(),
			Tree: c.render(),
		}
	}
	cj, err := c.ToJSON()
	if err != nil {
		return err
	}
	merged, err := jsonpatch.MergePatch(cj, patch)
	if err != nil {
		return err
	}
	node, err := parse.ParseJSON(merged)
	if err != nil {
		return err
	}
	if debug.Diff() {
		debug.Logf("apply diff at %s\n%s\n", c.node.Path(), encode.MustString(node))
	}
	node.StampWriter(ir.CallerSite(1))
	node.Parent = c.node.Parent
	node.ParentIndex = c.node.ParentIndex
	node.ParentField = c.node.ParentField
	node.Modes = c.node.Modes
	node.ReadOnly = c.node.ReadOnly
	*c.node = *node
	for _, v := range c.node.Values {
		v.Parent = c.node
	}
	for _, f := range c.node.Fields {
		f.Parent = c.node
	}
	return nil
}
