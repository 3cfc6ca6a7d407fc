package conftree

import "github.com/stagekit/conftree/ir"

// PathValue is one flattened setting: the full path of a leaf and its
// Go payload.
type PathValue struct {
	Path  Path
	Value any
}

// Flatten lists every leaf as a (path, value) pair in depth-first
// insertion order.  Empty subconfigs do not appear; use ToMapping with
// keepEmptyNodes to preserve them.
func (c *Config) Flatten() []PathValue {
	var res []PathValue
	base := len(c.node.Path())
	c.node.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if isPost || n == c.node {
			return true, nil
		}
		if n.Type.IsLeaf() {
			res = append(res, PathValue{
				Path:  n.Path()[base:],
				Value: n.ToAny(),
			})
			return false, nil
		}
		return true, nil
	})
	return res
}

// Unflatten rebuilds a tree from Flatten's output.  It is the inverse
// of Flatten for trees without empty subconfigs.
func Unflatten(pairs []PathValue, opts ...Option) (*Config, error) {
	c := New(opts...)
	for _, pv := range pairs {
		if err := c.SetChild(pv.Path, pv.Value); err != nil {
			return nil, err
		}
	}
	return c, nil
}
