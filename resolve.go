package conftree

import (
	"fmt"

	"github.com/expr-lang/expr"

	"github.com/stagekit/conftree/debug"
	"github.com/stagekit/conftree/ir"
)

// ExprTag marks a string leaf holding an expression to evaluate against
// the rest of the tree.
const ExprTag = "!expr"

// Resolve evaluates every string leaf tagged with ExprTag, replacing it
// with the evaluated result.  Expressions see the whole tree as their
// environment, with sibling and cousin settings addressable by key
// (`server.port * 2`).  Each replacement goes through the policy engine
// as an overwrite, so frozen or consumed settings refuse it; the
// environment is rebuilt after every replacement, so earlier results
// feed later expressions in tree order.
func (c *Config) Resolve(opts ...SetOption) error {
	wo := newWriteOpts(ir.CallerSite(1), opts)
	mode := Overwrite
	if wo.update == nil {
		wo.update = &mode
	}
	for _, target := range c.exprLeaves() {
		env := c.node.Root().ToAny().(map[string]any)
		if debug.Resolve() {
			debug.Logf("resolve %s: %s\n", target.Path(), target.String)
		}
		prg, err := expr.Compile(target.String, expr.Env(env))
		if err != nil {
			return fmt.Errorf("%s: %w", target.Path(), err)
		}
		out, err := expr.Run(prg, env)
		if err != nil {
			return fmt.Errorf("%s: %w", target.Path(), err)
		}
		val := ir.FromAny(out)
		if err := c.write(target.Parent, target.Path(), target.ParentField, val, wo); err != nil {
			return err
		}
	}
	return nil
}

// exprLeaves lists the expression leaves in tree order.  Only leaves
// directly under an object are addressable; a tagged string inside a
// list value is left alone.
func (c *Config) exprLeaves() []*ir.Node {
	var res []*ir.Node
	c.node.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if !isPost && n.Type == ir.StringType && n.Tag == ExprTag &&
			n.Parent != nil && n.Parent.Type == ir.ObjectType {
			res = append(res, n)
		}
		return true, nil
	})
	return res
}
