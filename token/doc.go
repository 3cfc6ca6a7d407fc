// Package token provides scalar literal classification and quoting for
// the conftree literal form.
//
// The literal form writes scalars bare whenever they can be read back
// unambiguously; everything else is quoted with Go string syntax.  A
// bare scalar is classified by shape: null, true/false, integer, float,
// and otherwise string.
package token
