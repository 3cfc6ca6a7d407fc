package ir

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for class checks with errors.Is.  The typed error
// structs below wrap these and carry the offending path plus a full
// render of the tree at failure time, so a refused operation is
// debuggable from the message alone.
var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrOverwrite    = errors.New("would overwrite existing value")
	ErrClobber      = errors.New("would overwrite value already in use")
	ErrReadOnly     = errors.New("config is read-only")
	ErrTypeMismatch = errors.New("type mismatch")
)

// KeyNotFoundError reports a read of an absent path.  Resolved names the
// deepest existing ancestor and ValidKeys the keys available there.
type KeyNotFoundError struct {
	Path      Path
	Resolved  Path
	ValidKeys []string
	Tree      string
}

func (e *KeyNotFoundError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %q", ErrKeyNotFound, e.Path.String())
	if len(e.Resolved) > 0 {
		fmt.Fprintf(&b, " (deepest resolved ancestor %q)", e.Resolved.String())
	} else {
		b.WriteString(" (no segment resolved)")
	}
	fmt.Fprintf(&b, ", valid keys there: [%s]", strings.Join(e.ValidKeys, ", "))
	appendTree(&b, e.Tree)
	return b.String()
}

func (e *KeyNotFoundError) Unwrap() error { return ErrKeyNotFound }

// OverwriteError reports a write to an existing key under
// AssertOnOverwrite.
type OverwriteError struct {
	Path Path
	Old  string
	New  string
	Tree string
}

func (e *OverwriteError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %q holds %s, attempted %s", ErrOverwrite, e.Path.String(), e.Old, e.New)
	appendTree(&b, e.Tree)
	return b.String()
}

func (e *OverwriteError) Unwrap() error { return ErrOverwrite }

// ClobberError reports a write to an already consumed value under
// AssertOnWriteAfterUse, or an Unfreeze of a used subtree without
// AllowWriteAfterUse.
type ClobberError struct {
	Path   Path
	Reader *Site
	Tree   string
}

func (e *ClobberError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %q was consumed at %s", ErrClobber, e.Path.String(), e.Reader)
	appendTree(&b, e.Tree)
	return b.String()
}

func (e *ClobberError) Unwrap() error { return ErrClobber }

// ReadOnlyConfigError reports a mutation attempted while the node or one
// of its ancestors is frozen.
type ReadOnlyConfigError struct {
	Path Path
	Tree string
}

func (e *ReadOnlyConfigError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: cannot write %q", ErrReadOnly, e.Path.String())
	appendTree(&b, e.Tree)
	return b.String()
}

func (e *ReadOnlyConfigError) Unwrap() error { return ErrReadOnly }

// TypeMismatchError reports a typed read finding a value of the wrong
// type.
type TypeMismatchError struct {
	Path Path
	Want Type
	Got  Type
	Tree string
}

func (e *TypeMismatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v: %q holds %s, want %s", ErrTypeMismatch, e.Path.String(), e.Got, e.Want)
	appendTree(&b, e.Tree)
	return b.String()
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

func appendTree(b *strings.Builder, tree string) {
	if tree == "" {
		return
	}
	b.WriteString("\nfull config:\n")
	b.WriteString(tree)
}
