package conftree

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/stagekit/conftree/ir"
)

func TestFlatten(t *testing.T) {
	c := New()
	mustSet(t, c, Path{"read_data", "file_name"}, "a.txt")
	mustSet(t, c, Path{"read_data", "nrows"}, 10)
	mustSet(t, c, Path{"verbose"}, true)
	mustSet(t, c, Path{"tags"}, []any{"x", "y"})

	got := c.Flatten()
	want := []PathValue{
		{Path: Path{"read_data", "file_name"}, Value: "a.txt"},
		{Path: Path{"read_data", "nrows"}, Value: int64(10)},
		{Path: Path{"verbose"}, Value: true},
		{Path: Path{"tags"}, Value: []any{"x", "y"}},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Flatten (-want +got):\n%s", d)
	}
}

func TestFlattenRelativeToHandle(t *testing.T) {
	c := New()
	mustSet(t, c, Path{"sub", "x"}, 1)
	sub, err := c.Child("sub")
	if err != nil {
		t.Fatalf("Child: %v", err)
	}
	got := sub.Flatten()
	want := []PathValue{{Path: Path{"x"}, Value: int64(1)}}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("Flatten (-want +got):\n%s", d)
	}
}

func TestFlattenDropsEmptySubconfigs(t *testing.T) {
	c := New()
	mustSet(t, c, Path{"a"}, 1)
	if _, err := c.AddSubconfig("empty"); err != nil {
		t.Fatalf("AddSubconfig: %v", err)
	}
	got := c.Flatten()
	if len(got) != 1 || got[0].Path.String() != "a" {
		t.Errorf("Flatten = %v, want just a", got)
	}
}

func TestUnflattenRoundTrip(t *testing.T) {
	c := New()
	mustSet(t, c, Path{"read_data", "file_name"}, "a.txt")
	mustSet(t, c, Path{"read_data", "nrows"}, 10)
	mustSet(t, c, Path{"verbose"}, true)

	back, err := Unflatten(c.Flatten())
	if err != nil {
		t.Fatalf("Unflatten: %v", err)
	}
	if !ir.Equal(c.Node(), back.Node()) {
		t.Errorf("round trip changed the tree:\n%s\nvs\n%s", c, back)
	}
}

func TestUnflattenConflict(t *testing.T) {
	_, err := Unflatten([]PathValue{
		{Path: Path{"a"}, Value: 1},
		{Path: Path{"a"}, Value: 2},
	})
	if err == nil {
		t.Errorf("conflicting pairs unflattened without error")
	}
}
