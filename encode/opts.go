package encode

import "github.com/stagekit/conftree/format"

// RenderMode selects the amount of metadata in text output.
type RenderMode int

const (
	Concise RenderMode = iota
	Verbose
)

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

func Render(m RenderMode) EncodeOption {
	return func(es *EncState) { es.render = m }
}

// EncodeOpaque admits opaque leaves, rendering them as a non-reparseable
// placeholder.  Renders for error messages and debugging use this;
// serialization does not.
func EncodeOpaque(v bool) EncodeOption {
	return func(es *EncState) { es.opaque = v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

func Depth(n int) EncodeOption {
	return func(es *EncState) { es.depth = n }
}
