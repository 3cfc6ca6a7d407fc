// Package debug provides env-gated debug switches for conftree.
//
// Set CONFTREE_DEBUG_<AREA>=1 to enable an area.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Policy  bool
	Merge   bool
	Resolve bool
	Diff    bool
}

var d *debug

func init() {
	d = &debug{}
	d.Policy = boolEnv("CONFTREE_DEBUG_POLICY")
	d.Merge = boolEnv("CONFTREE_DEBUG_MERGE")
	d.Resolve = boolEnv("CONFTREE_DEBUG_RESOLVE")
	d.Diff = boolEnv("CONFTREE_DEBUG_DIFF")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Policy() bool {
	return d.Policy
}
func Merge() bool {
	return d.Merge
}
func Resolve() bool {
	return d.Resolve
}
func Diff() bool {
	return d.Diff
}
