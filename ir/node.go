package ir

import (
	"fmt"
	"maps"
	"slices"
)

// Node is a single value in a config tree.  The Type field selects which
// payload fields are meaningful.  Objects hold keys in Fields (StringType
// nodes) parallel to Values, in insertion order.  Lists hold their
// elements in Values.  Leaves carry usage State.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	Tag string

	String  string
	Bool    bool
	Int64   int64
	Float64 float64
	Opaque  any

	// ReadOnly freezes this node and everything below it.
	ReadOnly bool
	// Modes are per-node policy overrides inherited by descendants.
	Modes Modes

	State State
}

func (y *Node) WithTag(tag string) *Node {
	y.Tag = tag
	return y
}

// Clone returns a deep copy of the node.  The copy has no parent; usage
// state and mode overrides travel with it.
func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.ParentIndex = y.ParentIndex
	dst.ParentField = y.ParentField
	dst.Tag = y.Tag
	dst.String = y.String
	dst.Bool = y.Bool
	dst.Int64 = y.Int64
	dst.Float64 = y.Float64
	dst.Opaque = y.Opaque
	dst.ReadOnly = y.ReadOnly
	dst.Modes = y.Modes.clone()
	dst.State = y.State
	dst.Fields = make([]*Node, len(y.Fields))
	dst.Values = make([]*Node, len(y.Values))
	for i, yf := range y.Fields {
		dstI := &Node{}
		yf.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yf.String
		dst.Fields[i] = dstI
	}
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	return dst
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: IntType, Int64: v}
}

func FromFloat(v float64) *Node {
	return &Node{Type: FloatType, Float64: v}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func FromOpaque(v any) *Node {
	return &Node{Type: OpaqueType, Opaque: v}
}

func NewObject() *Node {
	return &Node{Type: ObjectType}
}

func FromSlice(elems []*Node) *Node {
	res := &Node{Type: ListType}
	res.Values = make([]*Node, len(elems))
	for i, y := range elems {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

// FromMap builds an object node with keys in sorted order.  Use SetField
// on an empty object to control insertion order.
func FromMap(yMap map[string]*Node) *Node {
	res := NewObject()
	for _, key := range slices.Sorted(maps.Keys(yMap)) {
		res.SetField(key, yMap[key])
	}
	return res
}

// FromAny converts a plain Go value into a node.  Maps convert with
// sorted keys, slices element-wise, integers widen to int64.  Values of
// any other type become opaque leaves.
func FromAny(v any) *Node {
	switch x := v.(type) {
	case nil:
		return Null()
	case *Node:
		return x.Clone()
	case bool:
		return FromBool(x)
	case int:
		return FromInt(int64(x))
	case int32:
		return FromInt(int64(x))
	case int64:
		return FromInt(x)
	case uint:
		return FromInt(int64(x))
	case uint64:
		return FromInt(int64(x))
	case float32:
		return FromFloat(float64(x))
	case float64:
		return FromFloat(x)
	case string:
		return FromString(x)
	case []any:
		elems := make([]*Node, len(x))
		for i, e := range x {
			ev := FromAny(e)
			// lists hold scalar and list elements only; a map inside a
			// list is carried as an opaque payload
			if ev.Type == ObjectType {
				ev = FromOpaque(e)
			}
			elems[i] = ev
		}
		return FromSlice(elems)
	case map[string]any:
		res := NewObject()
		for _, key := range slices.Sorted(maps.Keys(x)) {
			res.SetField(key, FromAny(x[key]))
		}
		return res
	default:
		return FromOpaque(v)
	}
}

// ToAny converts a node back into a plain Go value.  Objects become
// map[string]any (key order is carried only by the mapping form), lists
// become []any, opaque leaves return their payload unchanged.
func (y *Node) ToAny() any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case IntType:
		return y.Int64
	case FloatType:
		return y.Float64
	case StringType:
		return y.String
	case OpaqueType:
		return y.Opaque
	case ListType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = v.ToAny()
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Fields))
		for i, f := range y.Fields {
			res[f.String] = y.Values[i].ToAny()
		}
		return res
	default:
		panic("type")
	}
}

// Get returns the value at field, or nil.
func (y *Node) Get(field string) *Node {
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// IndexOf returns the position of field, or -1.
func (y *Node) IndexOf(field string) int {
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return i
		}
	}
	return -1
}

// SetField inserts val under key, appending when the key is new and
// replacing in place (position preserved) when it exists.  It performs no
// policy checks; callers go through the conftree policy engine.
func (y *Node) SetField(key string, val *Node) {
	if y.Type != ObjectType {
		panic(fmt.Sprintf("SetField on %s node", y.Type))
	}
	val.ParentField = key
	if i := y.IndexOf(key); i >= 0 {
		val.Parent = y
		val.ParentIndex = i
		y.Values[i] = val
		return
	}
	i := len(y.Fields)
	yField := &Node{
		Parent:      y,
		ParentIndex: i,
		ParentField: key,
		Type:        StringType,
		String:      key,
	}
	val.Parent = y
	val.ParentIndex = i
	y.Fields = append(y.Fields, yField)
	y.Values = append(y.Values, val)
}

// RemoveField deletes key, preserving the order of the remaining fields.
// It reports whether the key was present.
func (y *Node) RemoveField(key string) bool {
	i := y.IndexOf(key)
	if i < 0 {
		return false
	}
	y.Fields = slices.Delete(y.Fields, i, i+1)
	y.Values = slices.Delete(y.Values, i, i+1)
	for j := i; j < len(y.Fields); j++ {
		y.Fields[j].ParentIndex = j
		y.Values[j].ParentIndex = j
	}
	return true
}

// Keys returns the object's keys in insertion order.
func (y *Node) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}

// Visit walks the tree depth first.  f is called before and after each
// node's values; returning false from the pre call skips the subtree.
func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}

// Path returns the node's position relative to the root it hangs off.
func (y *Node) Path() Path {
	if y.Parent == nil {
		return nil
	}
	if y.Parent.Type == ListType {
		return y.Parent.Path()
	}
	return append(y.Parent.Path(), y.ParentField)
}

// Root follows parent links to the top of the tree.
func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// AnyUsed reports whether the node or any leaf below it has been
// consumed.
func (y *Node) AnyUsed() bool {
	used := false
	y.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost && n.State.Used {
			used = true
		}
		return !used, nil
	})
	return used
}

// MarkUsed marks every leaf at or below the node as consumed by reader.
func (y *Node) MarkUsed(reader *Site) {
	y.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost && n.Type.IsLeaf() {
			n.State.Used = true
			n.State.Reader = reader
		}
		return true, nil
	})
}

// ClearUsed resets the usage flag on every leaf at or below the node.
func (y *Node) ClearUsed() {
	y.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost && n.Type.IsLeaf() {
			n.State.Used = false
			n.State.Reader = nil
		}
		return true, nil
	})
}

// StampWriter records site as the last writer of every leaf at or below
// the node.
func (y *Node) StampWriter(site *Site) {
	y.Visit(func(n *Node, isPost bool) (bool, error) {
		if !isPost && n.Type.IsLeaf() {
			n.State.Writer = site
		}
		return true, nil
	})
}

// ReadOnlyAncestor returns the nearest node at or above y with ReadOnly
// set, or nil.
func (y *Node) ReadOnlyAncestor() *Node {
	for n := y; n != nil; n = n.Parent {
		if n.ReadOnly {
			return n
		}
	}
	return nil
}
