// Package encode renders config trees as text.
//
// The text format is the conftree literal form: an indented, ordered,
// human-diffable rendition that parse reads back exactly.  Verbose
// rendering annotates every leaf with its usage state, last writer and
// type as a trailing comment; concise rendering is the literal form
// itself and is the round-trip target.
//
// JSON output is a compact single-line wire form used for diffing; tags
// and annotations do not survive it.
package encode
