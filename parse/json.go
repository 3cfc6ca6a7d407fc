package parse

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/stagekit/conftree/ir"
)

// ParseJSON reads a JSON document into a tree, preserving object key
// order.  encoding/json's token stream delivers keys in document order,
// which an unmarshal into map[string]any would lose.
func ParseJSON(d []byte) (*ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(d))
	dec.UseNumber()
	res, err := jsonValue(dec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after JSON document", ErrParse)
	}
	return res, nil
}

func jsonValue(dec *json.Decoder) (*ir.Node, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return jsonValueFrom(dec, tok)
}

func jsonValueFrom(dec *json.Decoder, tok json.Token) (*ir.Node, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			res := ir.NewObject()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				val, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				res.SetField(key, val)
			}
			if _, err := dec.Token(); err != nil { // closing '}'
				return nil, err
			}
			return res, nil
		case '[':
			res := &ir.Node{Type: ir.ListType}
			for dec.More() {
				v, err := jsonValue(dec)
				if err != nil {
					return nil, err
				}
				if v.Type == ir.ObjectType {
					return nil, fmt.Errorf("object inside a list")
				}
				v.Parent = res
				v.ParentIndex = len(res.Values)
				res.Values = append(res.Values, v)
			}
			if _, err := dec.Token(); err != nil { // closing ']'
				return nil, err
			}
			return res, nil
		default:
			return nil, fmt.Errorf("unexpected delimiter %v", t)
		}
	case string:
		return ir.FromString(t), nil
	case bool:
		return ir.FromBool(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return ir.FromInt(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, err
		}
		return ir.FromFloat(f), nil
	case nil:
		return ir.Null(), nil
	default:
		return nil, fmt.Errorf("unexpected JSON token %v", tok)
	}
}
