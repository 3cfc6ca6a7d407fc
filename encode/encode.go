package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stagekit/conftree/format"
	"github.com/stagekit/conftree/ir"
	"github.com/stagekit/conftree/token"
)

var ErrEncoding = fmt.Errorf("encoding error")

type EncState struct {
	depth, indent int
	render        RenderMode
	opaque        bool

	format format.Format

	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes the tree rooted at node to w.  The root must be an
// object.
func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if node.Type != ir.ObjectType {
		return fmt.Errorf("%w: root is %s, want Object", ErrEncoding, node.Type)
	}
	switch es.format {
	case format.TextFormat:
		return encodeText(node, w, es)
	case format.JSONFormat:
		return encodeJSON(node, w, es)
	default:
		return fmt.Errorf("%w: cannot encode %s", format.ErrBadFormat, es.format)
	}
}

// Text form

func encodeText(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) == 0 {
		return writeString(w, "{}\n")
	}
	return encodeObjectBody(node, w, es)
}

func encodeObjectBody(node *ir.Node, w io.Writer, es *EncState) error {
	for i, yField := range node.Fields {
		val := node.Values[i]
		if err := writeIndent(w, es); err != nil {
			return err
		}
		if err := writeField(w, yField.String, es); err != nil {
			return err
		}
		if err := encodeFieldValue(val, w, es); err != nil {
			return err
		}
	}
	return nil
}

func encodeFieldValue(val *ir.Node, w io.Writer, es *EncState) error {
	switch val.Type {
	case ir.ObjectType:
		if len(val.Fields) == 0 {
			if err := writeString(w, " "+applyColor(es, ir.ObjectType, SepColor, "{}")); err != nil {
				return err
			}
			return endLeafLine(val, w, es)
		}
		if err := endLine(w); err != nil {
			return err
		}
		es.depth++
		defer func() { es.depth-- }()
		return encodeObjectBody(val, w, es)
	case ir.ListType:
		if len(val.Values) == 0 {
			if err := writeString(w, " "+applyColor(es, ir.ListType, SepColor, "[]")); err != nil {
				return err
			}
			return endLeafLine(val, w, es)
		}
		// the list is one leaf; its annotation rides on the key line
		if err := writeAnnotation(val, w, es); err != nil {
			return err
		}
		if err := endLine(w); err != nil {
			return err
		}
		es.depth++
		defer func() { es.depth-- }()
		return encodeListBody(val, w, es)
	default:
		if err := writeString(w, " "); err != nil {
			return err
		}
		if err := writeTagIfPresent(val, w, es); err != nil {
			return err
		}
		if err := encodeScalar(val, w, es); err != nil {
			return err
		}
		return endLeafLine(val, w, es)
	}
}

func encodeListBody(node *ir.Node, w io.Writer, es *EncState) error {
	for _, v := range node.Values {
		if err := writeIndent(w, es); err != nil {
			return err
		}
		if err := writeElementMarker(w, es); err != nil {
			return err
		}
		if err := encodeElement(v, w, es); err != nil {
			return err
		}
	}
	return nil
}

// encodeElement writes one list element after its "- " marker, already
// positioned at the marker's column.
func encodeElement(v *ir.Node, w io.Writer, es *EncState) error {
	switch v.Type {
	case ir.ObjectType:
		return fmt.Errorf("%w: objects cannot nest inside list values", ErrEncoding)
	case ir.ListType:
		if len(v.Values) == 0 {
			if err := writeString(w, applyColor(es, ir.ListType, SepColor, "[]")); err != nil {
				return err
			}
			return endLine(w)
		}
		// nested list: first element on this line, the rest one level in
		es.depth++
		defer func() { es.depth-- }()
		if err := writeElementMarker(w, es); err != nil {
			return err
		}
		if err := encodeElement(v.Values[0], w, es); err != nil {
			return err
		}
		for _, vv := range v.Values[1:] {
			if err := writeIndent(w, es); err != nil {
				return err
			}
			if err := writeElementMarker(w, es); err != nil {
				return err
			}
			if err := encodeElement(vv, w, es); err != nil {
				return err
			}
		}
		return nil
	default:
		if err := writeTagIfPresent(v, w, es); err != nil {
			return err
		}
		if err := encodeScalar(v, w, es); err != nil {
			return err
		}
		return endLine(w)
	}
}

func encodeScalar(v *ir.Node, w io.Writer, es *EncState) error {
	if v.Type == ir.OpaqueType {
		if !es.opaque {
			return fmt.Errorf("%w: opaque value %T at %q", ErrEncoding, v.Opaque, v.Path().String())
		}
		s := fmt.Sprintf("<opaque %T>", v.Opaque)
		return writeString(w, applyColor(es, ir.OpaqueType, ValueColor, s))
	}
	s, err := token.EncodeScalar(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return writeString(w, applyColor(es, v.Type, ValueColor, s))
}

func endLeafLine(v *ir.Node, w io.Writer, es *EncState) error {
	if err := writeAnnotation(v, w, es); err != nil {
		return err
	}
	return endLine(w)
}

// writeAnnotation appends the verbose per-leaf metadata comment.
func writeAnnotation(v *ir.Node, w io.Writer, es *EncState) error {
	if es.render != Verbose {
		return nil
	}
	ann := fmt.Sprintf("  # used=%t writer=%s type=%s",
		v.State.Used, v.State.Writer, v.Type)
	return writeString(w, applyColor(es, v.Type, CommentColor, ann))
}

func writeField(w io.Writer, f string, es *EncState) error {
	if token.NeedsKeyQuote(f) {
		f = token.Quote(f)
	}
	fc := applyColor(es, ir.ObjectType, FieldColor, f)
	sep := applyColor(es, ir.ObjectType, SepColor, ":")
	return writeString(w, fc+sep)
}

func writeTagIfPresent(v *ir.Node, w io.Writer, es *EncState) error {
	if v.Tag == "" {
		return nil
	}
	return writeString(w, applyColor(es, v.Type, TagColor, v.Tag)+" ")
}

func writeElementMarker(w io.Writer, es *EncState) error {
	return writeString(w, applyColor(es, ir.ListType, SepColor, "-")+" ")
}

func writeIndent(w io.Writer, es *EncState) error {
	return writeString(w, strings.Repeat(strings.Repeat(" ", es.indent), es.depth))
}

func endLine(w io.Writer) error {
	return writeString(w, "\n")
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func applyColor(es *EncState, t ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(t, attr, v)
}

// JSON wire form

func encodeJSON(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		if err := writeString(w, "{"); err != nil {
			return err
		}
		for i, yField := range node.Fields {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			key, err := json.Marshal(yField.String)
			if err != nil {
				return err
			}
			if err := writeString(w, string(key)+":"); err != nil {
				return err
			}
			if err := encodeJSON(node.Values[i], w, es); err != nil {
				return err
			}
		}
		return writeString(w, "}")
	case ir.ListType:
		if err := writeString(w, "["); err != nil {
			return err
		}
		for i, v := range node.Values {
			if i > 0 {
				if err := writeString(w, ","); err != nil {
					return err
				}
			}
			if err := encodeJSON(v, w, es); err != nil {
				return err
			}
		}
		return writeString(w, "]")
	case ir.NullType:
		return writeString(w, "null")
	case ir.BoolType:
		return writeString(w, strconv.FormatBool(node.Bool))
	case ir.IntType:
		return writeString(w, strconv.FormatInt(node.Int64, 10))
	case ir.FloatType:
		return writeString(w, strconv.FormatFloat(node.Float64, 'g', -1, 64))
	case ir.StringType:
		d, err := json.Marshal(node.String)
		if err != nil {
			return err
		}
		return writeString(w, string(d))
	case ir.OpaqueType:
		return fmt.Errorf("%w: opaque value %T at %q", ErrEncoding, node.Opaque, node.Path().String())
	default:
		panic("type")
	}
}
