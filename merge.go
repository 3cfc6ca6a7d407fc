package conftree

import (
	"github.com/stagekit/conftree/debug"
	"github.com/stagekit/conftree/encode"
	"github.com/stagekit/conftree/ir"
)

// Merge combines src into c in place, leaving src untouched.  Where both
// sides hold a subconfig under the same key the subtrees merge key by
// key; every leaf write goes through the policy engine with the single
// update mode given for the whole call.  Keys unique to src are always
// added.  Merged values are deep copies: the two trees share nothing
// afterwards.  Each merged leaf records the merging call site as its
// writer and starts unused, since nothing in c has consumed it yet.
func (c *Config) Merge(src *Config, update UpdateMode, opts ...SetOption) error {
	wo := newWriteOpts(ir.CallerSite(1), opts)
	wo.update = &update
	if debug.Merge() {
		debug.Logf("merge into %s\n%s\n", c.node.Path(), encode.MustString(src.node))
	}
	return c.mergeNode(c.node, src.node, c.node.Path(), wo)
}

func (c *Config) mergeNode(dst, src *ir.Node, path Path, wo *writeOpts) error {
	for i, sField := range src.Fields {
		key := sField.String
		sv := src.Values[i]
		dv := dst.Get(key)
		if dv != nil && dv.Type == ir.ObjectType && sv.Type == ir.ObjectType {
			if err := c.mergeNode(dv, sv, path.Child(key), wo); err != nil {
				return err
			}
			continue
		}
		val := sv.Clone()
		val.ClearUsed()
		if err := c.write(dst, path.Child(key), key, val, wo); err != nil {
			return err
		}
	}
	return nil
}
