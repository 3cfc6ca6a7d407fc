// Package conftree provides a hierarchical configuration tree for
// threading structured, audited settings through multi-stage pipelines.
//
// A Config is an ordered tree of settings.  Every write goes through one
// policy engine that resolves update, clobber and report modes; reads
// through GetAndMarkUsed record per-leaf usage and call-site provenance
// so stale settings can be audited after a run.  Trees freeze into
// read-only views, merge recursively, and round-trip losslessly through
// a human-diffable literal text form.
//
// A Config is owned by one goroutine at a time.  There is no internal
// locking; hand a stage its own tree, or a frozen view it will not mark
// usage on.
package conftree

import (
	"bytes"

	"go.uber.org/zap"

	"github.com/stagekit/conftree/encode"
	"github.com/stagekit/conftree/ir"
)

// Aliases so callers need the ir package only for advanced tree surgery.
type (
	Path        = ir.Path
	UpdateMode  = ir.UpdateMode
	ClobberMode = ir.ClobberMode
	ReportMode  = ir.ReportMode
)

const (
	AssertOnOverwrite = ir.AssertOnOverwrite
	Overwrite         = ir.Overwrite
	AssignIfMissing   = ir.AssignIfMissing

	AssertOnWriteAfterUse = ir.AssertOnWriteAfterUse
	AllowWriteAfterUse    = ir.AllowWriteAfterUse

	FailFast    = ir.FailFast
	WarnAndSkip = ir.WarnAndSkip
)

// ParsePath parses a dotted path string, see ir.ParsePath.
func ParsePath(s string) (Path, error) {
	return ir.ParsePath(s)
}

// Defaults are the tree-wide fallback modes, inherited by every node
// that carries no override.  The zero value is the default policy:
// assert on overwrite, assert on write after use, fail fast.
type Defaults struct {
	Update  UpdateMode
	Clobber ClobberMode
	Report  ReportMode
}

type shared struct {
	defaults Defaults
	logger   *zap.Logger
}

// Config is a handle on a node of a configuration tree.  Handles into
// the same tree share defaults and logger; Child returns a handle, not a
// copy, so chained child access and multi-segment path access observe
// the same tree.
type Config struct {
	node   *ir.Node
	shared *shared
}

type Option func(*shared)

// WithDefaults sets the tree-wide fallback modes.
func WithDefaults(d Defaults) Option {
	return func(s *shared) { s.defaults = d }
}

// WithLogger routes warn-and-skip reports and policy traces to l.  The
// default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *shared) { s.logger = l }
}

// New returns an empty writable tree.
func New(opts ...Option) *Config {
	return &Config{
		node:   ir.NewObject(),
		shared: newShared(opts),
	}
}

func newShared(opts []Option) *shared {
	s := &shared{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Node exposes the underlying tree node for advanced use.  Mutating it
// directly bypasses the policy engine.
func (c *Config) Node() *ir.Node {
	return c.node
}

// Root returns a handle on the top of the tree c belongs to.
func (c *Config) Root() *Config {
	return &Config{node: c.node.Root(), shared: c.shared}
}

// Path returns c's position relative to the tree root.
func (c *Config) Path() Path {
	return c.node.Path()
}

// Keys returns the keys directly under c, in insertion order.
func (c *Config) Keys() []string {
	return c.node.Keys()
}

// Len returns the number of keys directly under c.
func (c *Config) Len() int {
	return len(c.node.Fields)
}

// SetUpdateMode overrides the update mode for this node and its
// descendants.
func (c *Config) SetUpdateMode(m UpdateMode) {
	c.node.Modes.Update = &m
}

// SetClobberMode overrides the clobber mode for this node and its
// descendants.
func (c *Config) SetClobberMode(m ClobberMode) {
	c.node.Modes.Clobber = &m
}

// SetReportMode overrides the report mode for this node and its
// descendants.
func (c *Config) SetReportMode(m ReportMode) {
	c.node.Modes.Report = &m
}

// render is the tree rendition embedded in every error.
func (c *Config) render() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(c.node.Root(), buf, encode.EncodeOpaque(true)); err != nil {
		return "<unrenderable config>"
	}
	return buf.String()
}
