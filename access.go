package conftree

import (
	"fmt"

	"github.com/stagekit/conftree/ir"
)

// resolve walks path from c's node without side effects.  Absent paths
// yield a KeyNotFoundError naming the deepest resolved ancestor and the
// keys valid there.
func (c *Config) resolve(path Path) (*ir.Node, error) {
	cur := c.node
	for _, seg := range path {
		if cur.Type != ir.ObjectType {
			return nil, &ir.KeyNotFoundError{
				Path:     c.node.Path().Append(path...),
				Resolved: cur.Path(),
				Tree:     c.render(),
			}
		}
		next := cur.Get(seg)
		if next == nil {
			return nil, &ir.KeyNotFoundError{
				Path:      c.node.Path().Append(path...),
				Resolved:  cur.Path(),
				ValidKeys: cur.Keys(),
				Tree:      c.render(),
			}
		}
		cur = next
	}
	return cur, nil
}

// GetChild returns the value at path: the Go payload of a leaf, or a
// *Config handle on a nested subconfig.  Usage state is untouched.
func (c *Config) GetChild(path []string) (any, error) {
	node, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	return c.valueOf(node), nil
}

// GetAndMarkUsed is the consuming read: like GetChild, but every leaf
// contributing to the returned value is marked used, with the caller's
// site recorded for later audits.
func (c *Config) GetAndMarkUsed(path []string) (any, error) {
	node, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	node.MarkUsed(ir.CallerSite(1))
	return c.valueOf(node), nil
}

func (c *Config) valueOf(node *ir.Node) any {
	if node.Type == ir.ObjectType {
		return &Config{node: node, shared: c.shared}
	}
	return node.ToAny()
}

// Get returns the value at path, or def when the path is absent.  It
// never marks usage and never fails.
func (c *Config) Get(path []string, def any) any {
	node, err := c.resolve(path)
	if err != nil {
		return def
	}
	return c.valueOf(node)
}

// GetTyped is Get with a type check: an absent path yields def, a
// present value of any other type fails with a TypeMismatchError.
func (c *Config) GetTyped(path []string, def any, want ir.Type) (any, error) {
	node, err := c.resolve(path)
	if err != nil {
		return def, nil
	}
	if node.Type != want {
		return nil, &ir.TypeMismatchError{
			Path: c.node.Path().Append(path...),
			Want: want,
			Got:  node.Type,
			Tree: c.render(),
		}
	}
	return c.valueOf(node), nil
}

func (c *Config) GetString(path []string, def string) (string, error) {
	v, err := c.GetTyped(path, def, ir.StringType)
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Config) GetInt(path []string, def int64) (int64, error) {
	v, err := c.GetTyped(path, def, ir.IntType)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

func (c *Config) GetFloat(path []string, def float64) (float64, error) {
	v, err := c.GetTyped(path, def, ir.FloatType)
	if err != nil {
		return 0, err
	}
	return v.(float64), nil
}

func (c *Config) GetBool(path []string, def bool) (bool, error) {
	v, err := c.GetTyped(path, def, ir.BoolType)
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

// Contains reports whether path resolves, with no side effects.
func (c *Config) Contains(path []string) bool {
	_, err := c.resolve(path)
	return err == nil
}

// WasUsed reports whether the leaf at path has been consumed.  For a
// subconfig it reports whether any leaf below it has.
func (c *Config) WasUsed(path []string) (bool, error) {
	node, err := c.resolve(path)
	if err != nil {
		return false, err
	}
	return node.AnyUsed(), nil
}

// SetChild writes value at path through the policy engine.  Missing
// intermediate subconfigs are created as part of the same single write,
// so a refused write leaves no partial state.  value may be a plain Go
// value, an *ir.Node, or a *Config (deep-copied, never aliased).
func (c *Config) SetChild(path []string, value any, opts ...SetOption) error {
	return c.setChild(path, value, newWriteOpts(ir.CallerSite(1), opts))
}

func (c *Config) setChild(path []string, value any, wo *writeOpts) error {
	if len(path) == 0 {
		return fmt.Errorf("empty path")
	}
	val := c.toNode(value)

	// find the deepest existing parent along path
	cur := c.node
	i := 0
	for i < len(path)-1 {
		if cur.Type != ir.ObjectType {
			break
		}
		next := cur.Get(path[i])
		if next == nil {
			break
		}
		cur = next
		i++
	}
	if cur.Type != ir.ObjectType {
		// an intermediate segment resolved to a leaf; the write targets
		// that leaf's key, replacing it with the missing subtree, and
		// the policy engine decides whether that is allowed
		i--
		cur = cur.Parent
	}
	// wrap the remaining segments below path[i] around val
	for j := len(path) - 1; j > i; j-- {
		obj := ir.NewObject()
		obj.SetField(path[j], val)
		val = obj
	}
	full := c.node.Path().Append(path...)
	return c.write(cur, full, path[i], val, wo)
}

func (c *Config) toNode(value any) *ir.Node {
	switch v := value.(type) {
	case *Config:
		return v.node.Clone()
	case *ir.Node:
		return v.Clone()
	default:
		return ir.FromAny(value)
	}
}

// AddSubconfig creates an empty nested subconfig under name and returns
// a handle on it, subject to the same guard and policy checks as any
// write.
func (c *Config) AddSubconfig(name string, opts ...SetOption) (*Config, error) {
	wo := newWriteOpts(ir.CallerSite(1), opts)
	if err := c.setChild([]string{name}, ir.NewObject(), wo); err != nil {
		return nil, err
	}
	return c.Child(name)
}

// Child returns a handle on the subconfig under name.  Chained child
// access observes the same tree as multi-segment path access.
func (c *Config) Child(name string) (*Config, error) {
	node, err := c.resolve(Path{name})
	if err != nil {
		return nil, err
	}
	if node.Type != ir.ObjectType {
		return nil, &ir.TypeMismatchError{
			Path: node.Path(),
			Want: ir.ObjectType,
			Got:  node.Type,
			Tree: c.render(),
		}
	}
	return &Config{node: node, shared: c.shared}, nil
}

// UnusedPaths lists every leaf never consumed by a read, in tree order.
// It is the audit view for "declared but never consumed" settings.
func (c *Config) UnusedPaths() []Path {
	var res []Path
	c.node.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if !isPost && n.Type.IsLeaf() && n.Parent != nil && n.Parent.Type == ir.ObjectType && !n.State.Used {
			res = append(res, n.Path())
		}
		return n.Type == ir.ObjectType, nil
	})
	return res
}
