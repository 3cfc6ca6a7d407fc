package conftree

import (
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/stagekit/conftree/ir"
)

// ToMapping converts the tree to its canonical structural view: a
// nested ordered mapping (yaml.MapSlice), with lists as []any and leaf
// payloads as plain Go values.  Empty subconfigs are dropped unless
// keepEmptyNodes is set.
func (c *Config) ToMapping(keepEmptyNodes bool) yaml.MapSlice {
	return toMapSlice(c.node, keepEmptyNodes)
}

func toMapSlice(node *ir.Node, keepEmpty bool) yaml.MapSlice {
	res := make(yaml.MapSlice, 0, len(node.Fields))
	for i, f := range node.Fields {
		v := node.Values[i]
		if v.Type == ir.ObjectType {
			sub := toMapSlice(v, keepEmpty)
			if len(sub) == 0 && len(v.Fields) > 0 {
				continue
			}
			if len(v.Fields) == 0 && !keepEmpty {
				continue
			}
			res = append(res, yaml.MapItem{Key: f.String, Value: sub})
			continue
		}
		res = append(res, yaml.MapItem{Key: f.String, Value: v.ToAny()})
	}
	return res
}

// FromMapping builds a tree from a nested mapping.  Ordered input
// (yaml.MapSlice) keeps its key order; plain map[string]any input is
// ordered by sorted keys.
func FromMapping(m any, opts ...Option) (*Config, error) {
	node, err := fromMappingValue(m)
	if err != nil {
		return nil, err
	}
	if node.Type != ir.ObjectType {
		return nil, fmt.Errorf("mapping root is %s, want Object", node.Type)
	}
	site := ir.CallerSite(1)
	node.StampWriter(site)
	return &Config{node: node, shared: newShared(opts)}, nil
}

func fromMappingValue(v any) (*ir.Node, error) {
	switch x := v.(type) {
	case yaml.MapSlice:
		res := ir.NewObject()
		for _, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				return nil, fmt.Errorf("mapping key %v is not a string", item.Key)
			}
			if res.Get(key) != nil {
				return nil, fmt.Errorf("duplicate mapping key %q", key)
			}
			val, err := fromMappingValue(item.Value)
			if err != nil {
				return nil, err
			}
			res.SetField(key, val)
		}
		return res, nil
	case map[string]any:
		return ir.FromAny(x), nil
	case []any:
		res := &ir.Node{Type: ir.ListType}
		for _, e := range x {
			ev, err := fromMappingValue(e)
			if err != nil {
				return nil, err
			}
			if ev.Type == ir.ObjectType {
				return nil, fmt.Errorf("objects cannot nest inside list values")
			}
			ev.Parent = res
			ev.ParentIndex = len(res.Values)
			res.Values = append(res.Values, ev)
		}
		return res, nil
	default:
		n := ir.FromAny(v)
		if n.Type == ir.ObjectType {
			return nil, fmt.Errorf("unsupported mapping value %T", v)
		}
		return n, nil
	}
}

// ToYAML serializes the mapping view, empty subconfigs included.
func (c *Config) ToYAML() ([]byte, error) {
	if !c.IsSerializable() {
		return nil, fmt.Errorf("config holds non-serializable values")
	}
	return yaml.Marshal(c.ToMapping(true))
}

// FromYAML builds a tree from a YAML document, preserving key order.
func FromYAML(d []byte, opts ...Option) (*Config, error) {
	var v any
	if err := yaml.UnmarshalWithOptions(d, &v, yaml.UseOrderedMap()); err != nil {
		return nil, err
	}
	if v == nil {
		return New(opts...), nil
	}
	return FromMapping(v, opts...)
}
