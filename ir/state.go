package ir

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Site identifies a call site: the file, line and enclosing function of a
// write or consuming read.  Sites are immutable once captured and may be
// shared between cloned trees.
type Site struct {
	File string
	Line int
	Func string
}

func (s *Site) String() string {
	if s == nil {
		return "none"
	}
	return fmt.Sprintf("%s:%d:%s", s.File, s.Line, s.Func)
}

// CallerSite captures the caller's call site.  skip counts frames above
// the caller of CallerSite itself: 0 is the immediate caller, 1 its
// caller, and so on.  Returns nil if the stack cannot be resolved.
func CallerSite(skip int) *Site {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return nil
	}
	site := &Site{
		File: filepath.Base(file),
		Line: line,
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		site.Func = fn.Name()
	}
	return site
}

// State is the per-leaf usage record: whether a consuming read has
// happened, and the call sites of the most recent write and consuming
// read.
type State struct {
	Used   bool
	Writer *Site
	Reader *Site
}
