package conftree

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stagekit/conftree/ir"
)

func TestDefaultPolicyRefusesOverwrite(t *testing.T) {
	c := New()
	if err := c.SetChild(Path{"a"}, 1); err != nil {
		t.Fatalf("initial write: %v", err)
	}
	err := c.SetChild(Path{"a"}, 2)
	if err == nil {
		t.Fatalf("overwrite succeeded under the default policy")
	}
	if !errors.Is(err, ir.ErrOverwrite) {
		t.Errorf("error %v is not ErrOverwrite", err)
	}
	v, gerr := c.GetInt(Path{"a"}, 0)
	if gerr != nil || v != 1 {
		t.Errorf("a = %d, %v; want 1 after refused overwrite", v, gerr)
	}
}

func TestOverwriteMode(t *testing.T) {
	c := New()
	if err := c.SetChild(Path{"a"}, 1); err != nil {
		t.Fatalf("initial write: %v", err)
	}
	if err := c.SetChild(Path{"a"}, 2, WithUpdateMode(Overwrite)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, err := c.GetInt(Path{"a"}, 0)
	if err != nil || v != 2 {
		t.Errorf("a = %d, %v; want 2", v, err)
	}
}

func TestAssignIfMissing(t *testing.T) {
	c := New()
	if err := c.SetChild(Path{"a"}, 1); err != nil {
		t.Fatalf("initial write: %v", err)
	}
	if err := c.SetChild(Path{"a"}, 2, WithUpdateMode(AssignIfMissing)); err != nil {
		t.Fatalf("assign-if-missing on present key: %v", err)
	}
	v, _ := c.GetInt(Path{"a"}, 0)
	if v != 1 {
		t.Errorf("a = %d, want 1: present key must keep its value", v)
	}
	if err := c.SetChild(Path{"b"}, 3, WithUpdateMode(AssignIfMissing)); err != nil {
		t.Fatalf("assign-if-missing on absent key: %v", err)
	}
	v, _ = c.GetInt(Path{"b"}, 0)
	if v != 3 {
		t.Errorf("b = %d, want 3", v)
	}
}

func TestClobberProtection(t *testing.T) {
	c := New()
	if err := c.SetChild(Path{"a"}, 1); err != nil {
		t.Fatalf("initial write: %v", err)
	}
	if _, err := c.GetAndMarkUsed(Path{"a"}); err != nil {
		t.Fatalf("consuming read: %v", err)
	}
	err := c.SetChild(Path{"a"}, 2, WithUpdateMode(Overwrite))
	if err == nil {
		t.Fatalf("overwrite of a consumed setting succeeded")
	}
	var ce *ir.ClobberError
	if !errors.As(err, &ce) {
		t.Fatalf("error %v is not a ClobberError", err)
	}
	if ce.Reader == nil {
		t.Errorf("ClobberError names no reader site")
	}
	if !errors.Is(err, ir.ErrClobber) {
		t.Errorf("error %v is not ErrClobber", err)
	}

	// same write with clobbering allowed
	err = c.SetChild(Path{"a"}, 2,
		WithUpdateMode(Overwrite), WithClobberMode(AllowWriteAfterUse))
	if err != nil {
		t.Fatalf("allowed clobber: %v", err)
	}
	v, _ := c.GetInt(Path{"a"}, 0)
	if v != 2 {
		t.Errorf("a = %d, want 2", v)
	}
	used, _ := c.WasUsed(Path{"a"})
	if used {
		t.Errorf("overwritten setting still marked used")
	}
}

func TestNonConsumingReadsDoNotArmClobber(t *testing.T) {
	c := New()
	if err := c.SetChild(Path{"a"}, 1); err != nil {
		t.Fatalf("initial write: %v", err)
	}
	if _, err := c.GetChild(Path{"a"}); err != nil {
		t.Fatalf("GetChild: %v", err)
	}
	if got := c.Get(Path{"a"}, 0); got != int64(1) {
		t.Fatalf("Get = %v", got)
	}
	if !c.Contains(Path{"a"}) {
		t.Fatalf("Contains = false")
	}
	err := c.SetChild(Path{"a"}, 2, WithUpdateMode(Overwrite))
	if err != nil {
		t.Errorf("overwrite after non-consuming reads: %v", err)
	}
}

func TestNodeModeOverrides(t *testing.T) {
	c := New(WithDefaults(Defaults{Update: Overwrite}))
	if err := c.SetChild(Path{"sub", "x"}, 1); err != nil {
		t.Fatalf("write: %v", err)
	}
	sub, err := c.Child("sub")
	if err != nil {
		t.Fatalf("Child: %v", err)
	}
	sub.SetUpdateMode(AssertOnOverwrite)

	// the subtree override beats the tree default
	if err := sub.SetChild(Path{"x"}, 2); err == nil {
		t.Errorf("overwrite under assert-on-overwrite subtree succeeded")
	}
	// elsewhere the default still applies
	if err := c.SetChild(Path{"y"}, 1); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := c.SetChild(Path{"y"}, 2); err != nil {
		t.Errorf("overwrite under tree default Overwrite: %v", err)
	}
	// per-call override beats the subtree override
	if err := sub.SetChild(Path{"x"}, 3, WithUpdateMode(Overwrite)); err != nil {
		t.Errorf("per-call override: %v", err)
	}
}

func TestWarnAndSkip(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := New(WithLogger(zap.New(core)))
	if err := c.SetChild(Path{"a"}, 1); err != nil {
		t.Fatalf("initial write: %v", err)
	}
	err := c.SetChild(Path{"a"}, 2, WithReportMode(WarnAndSkip))
	if err != nil {
		t.Fatalf("warn-and-skip surfaced an error: %v", err)
	}
	v, _ := c.GetInt(Path{"a"}, 0)
	if v != 1 {
		t.Errorf("a = %d, want 1: skipped write must leave the tree unchanged", v)
	}
	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "config write skipped" {
		t.Errorf("log message %q", entry.Message)
	}
	fields := entry.ContextMap()
	if fields["old"] != "1" || fields["new"] != "2" {
		t.Errorf("log fields old=%v new=%v", fields["old"], fields["new"])
	}
}

func TestWarnAndSkipDowngradesClobber(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	c := New(WithLogger(zap.New(core)), WithDefaults(Defaults{Report: WarnAndSkip}))
	if err := c.SetChild(Path{"a"}, 1); err != nil {
		t.Fatalf("initial write: %v", err)
	}
	if _, err := c.GetAndMarkUsed(Path{"a"}); err != nil {
		t.Fatalf("consuming read: %v", err)
	}
	if err := c.SetChild(Path{"a"}, 2, WithUpdateMode(Overwrite)); err != nil {
		t.Fatalf("warn-and-skip surfaced an error: %v", err)
	}
	if logs.Len() != 1 {
		t.Fatalf("logged %d entries, want 1", logs.Len())
	}
	v, _ := c.GetInt(Path{"a"}, 0)
	if v != 1 {
		t.Errorf("a = %d, want 1", v)
	}
}

func TestOverwriteErrorDetail(t *testing.T) {
	c := New()
	if err := c.SetChild(Path{"sub", "a"}, 1); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := c.SetChild(Path{"sub", "a"}, 2)
	var oe *ir.OverwriteError
	if !errors.As(err, &oe) {
		t.Fatalf("error %v is not an OverwriteError", err)
	}
	if oe.Path.String() != "sub.a" {
		t.Errorf("path = %q, want sub.a", oe.Path.String())
	}
	if oe.Old != "1" || oe.New != "2" {
		t.Errorf("old=%q new=%q", oe.Old, oe.New)
	}
	if oe.Tree == "" {
		t.Errorf("error carries no tree rendition")
	}
}
