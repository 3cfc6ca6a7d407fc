package conftree

import "github.com/stagekit/conftree/ir"

// Freeze makes this node and everything below it read-only.  Any
// mutation until Unfreeze fails with a ReadOnlyConfigError.
func (c *Config) Freeze() {
	c.node.ReadOnly = true
}

// IsFrozen reports whether c is read-only, directly or through an
// ancestor.
func (c *Config) IsFrozen() bool {
	return c.node.ReadOnlyAncestor() != nil
}

// Unfreeze makes this node writable again.  When the subtree contains
// used leaves, unfreezing requires AllowWriteAfterUse (per-call or
// effective), since it reopens the door to clobbering consumed
// settings; otherwise it fails with a ClobberError.  An ancestor's
// freeze is not cleared by unfreezing a descendant.
func (c *Config) Unfreeze(opts ...SetOption) error {
	wo := newWriteOpts(nil, opts)
	if c.node.AnyUsed() && c.clobberMode(c.node, wo) != AllowWriteAfterUse {
		return &ir.ClobberError{
			Path:   c.node.Path(),
			Reader: firstReader(c.node),
			Tree:   c.render(),
		}
	}
	c.node.ReadOnly = false
	return nil
}
