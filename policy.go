package conftree

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"go.uber.org/zap"

	"github.com/stagekit/conftree/debug"
	"github.com/stagekit/conftree/encode"
	"github.com/stagekit/conftree/ir"
)

// SetOption overrides node modes for a single call.
type SetOption func(*writeOpts)

func WithUpdateMode(m UpdateMode) SetOption {
	return func(wo *writeOpts) { wo.update = &m }
}

func WithClobberMode(m ClobberMode) SetOption {
	return func(wo *writeOpts) { wo.clobber = &m }
}

func WithReportMode(m ReportMode) SetOption {
	return func(wo *writeOpts) { wo.report = &m }
}

type writeOpts struct {
	update  *UpdateMode
	clobber *ClobberMode
	report  *ReportMode
	site    *ir.Site
}

func newWriteOpts(site *ir.Site, opts []SetOption) *writeOpts {
	wo := &writeOpts{site: site}
	for _, opt := range opts {
		opt(wo)
	}
	return wo
}

// effective mode resolution: per-call override, then the nearest node
// override walking up from node, then the tree defaults.

func (c *Config) updateMode(node *ir.Node, wo *writeOpts) UpdateMode {
	if wo != nil && wo.update != nil {
		return *wo.update
	}
	for n := node; n != nil; n = n.Parent {
		if n.Modes.Update != nil {
			return *n.Modes.Update
		}
	}
	return c.shared.defaults.Update
}

func (c *Config) clobberMode(node *ir.Node, wo *writeOpts) ClobberMode {
	if wo != nil && wo.clobber != nil {
		return *wo.clobber
	}
	for n := node; n != nil; n = n.Parent {
		if n.Modes.Clobber != nil {
			return *n.Modes.Clobber
		}
	}
	return c.shared.defaults.Clobber
}

func (c *Config) reportMode(node *ir.Node, wo *writeOpts) ReportMode {
	if wo != nil && wo.report != nil {
		return *wo.report
	}
	for n := node; n != nil; n = n.Parent {
		if n.Modes.Report != nil {
			return *n.Modes.Report
		}
	}
	return c.shared.defaults.Report
}

// write is the single decision procedure behind every mutation.  It
// installs val under key in parent, or refuses.  All checks precede the
// one structural mutation, so a refused write leaves no partial state.
// path is the full path of the written key, for error messages.
func (c *Config) write(parent *ir.Node, path Path, key string, val *ir.Node, wo *writeOpts) error {
	if debug.Policy() {
		debug.Logf("write %s mode %s\n", path, c.updateMode(parent, wo))
	}
	if ro := parent.ReadOnlyAncestor(); ro != nil {
		return c.refuse(parent, wo, nil, val, &ir.ReadOnlyConfigError{
			Path: path,
			Tree: c.render(),
		})
	}
	existing := parent.Get(key)
	if existing == nil {
		val.StampWriter(wo.site)
		parent.SetField(key, val)
		return nil
	}
	used := existing.AnyUsed()
	switch c.updateMode(parent, wo) {
	case AssignIfMissing:
		c.shared.logger.Debug("assign-if-missing: key exists, write skipped",
			zap.String("path", path.String()),
			zap.String("old", encode.MustString(existing)),
			zap.String("new", encode.MustString(val)))
		return nil
	case AssertOnOverwrite:
		return c.refuse(parent, wo, existing, val, &ir.OverwriteError{
			Path: path,
			Old:  encode.MustString(existing),
			New:  encode.MustString(val),
			Tree: c.render(),
		})
	case Overwrite:
		if used && c.clobberMode(parent, wo) == AssertOnWriteAfterUse {
			return c.refuse(parent, wo, existing, val, &ir.ClobberError{
				Path:   path,
				Reader: firstReader(existing),
				Tree:   c.render(),
			})
		}
		val.ClearUsed()
		val.StampWriter(wo.site)
		parent.SetField(key, val)
		return nil
	default:
		panic("update mode")
	}
}

// refuse applies the report mode to a failed write: fail fast surfaces
// err, warn-and-skip logs it and leaves the tree unchanged.
func (c *Config) refuse(parent *ir.Node, wo *writeOpts, old, attempted *ir.Node, err error) error {
	if c.reportMode(parent, wo) == FailFast {
		return err
	}
	fields := []zap.Field{zap.String("reason", err.Error())}
	if old != nil {
		oldS := encode.MustString(old)
		newS := encode.MustString(attempted)
		fields = append(fields,
			zap.String("old", oldS),
			zap.String("new", newS))
		if strings.Contains(oldS, "\n") || strings.Contains(newS, "\n") {
			dmp := diffmatchpatch.New()
			diffs := dmp.DiffMain(oldS, newS, false)
			fields = append(fields, zap.String("diff", dmp.DiffPrettyText(diffs)))
		}
	}
	c.shared.logger.Warn("config write skipped", fields...)
	return nil
}

// firstReader returns the consuming-read site of the first used leaf in
// the subtree.
func firstReader(y *ir.Node) *ir.Site {
	var site *ir.Site
	y.Visit(func(n *ir.Node, isPost bool) (bool, error) {
		if !isPost && site == nil && n.State.Used {
			site = n.State.Reader
		}
		return site == nil, nil
	})
	return site
}
