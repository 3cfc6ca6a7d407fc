// Package parse reads the conftree literal form back into a tree.
//
// The grammar is line and indentation based: "key: scalar" leaf lines,
// "key:" lines opening an indented object or list block, "- " element
// markers, Go-quoted strings and keys, and "!tag" prefixes on scalar
// leaves.  Comments start at an unquoted '#' and run to end of line, so
// verbose renders parse as their concise equivalent.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stagekit/conftree/ir"
	"github.com/stagekit/conftree/token"
)

type line struct {
	indent int
	text   string
	num    int
}

// Parse reads a literal form document.  Empty input and "{}" both yield
// an empty object.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	po := &parseOpts{}
	for _, f := range opts {
		f(po)
	}
	p := &parser{opts: po}
	p.scan(string(d))
	if len(p.lines) == 0 {
		return ir.NewObject(), nil
	}
	if len(p.lines) == 1 && p.lines[0].text == "{}" && p.lines[0].indent == 0 {
		return ir.NewObject(), nil
	}
	i := 0
	res, err := p.parseObjectBody(&i, 0)
	if err != nil {
		return nil, err
	}
	if i < len(p.lines) {
		return nil, p.errf(p.lines[i].num, "unexpected indent %d", p.lines[i].indent)
	}
	return res, nil
}

type parser struct {
	opts  *parseOpts
	lines []line
}

func (p *parser) scan(d string) {
	for num, raw := range strings.Split(d, "\n") {
		text := stripComment(raw)
		text = strings.TrimRight(text, " \t\r")
		trimmed := strings.TrimLeft(text, " ")
		if trimmed == "" {
			continue
		}
		p.lines = append(p.lines, line{
			indent: len(text) - len(trimmed),
			text:   trimmed,
			num:    num + 1,
		})
	}
}

// stripComment removes an unquoted '#' and everything after it.
func stripComment(s string) string {
	inQuote := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			if inQuote {
				i++
			}
		case '"':
			inQuote = !inQuote
		case '#':
			if !inQuote {
				return s[:i]
			}
		}
	}
	return s
}

func (p *parser) errf(num int, msg string, args ...any) error {
	where := fmt.Sprintf("line %d", num)
	if p.opts.filename != "" {
		where = fmt.Sprintf("%s:%d", p.opts.filename, num)
	}
	return fmt.Errorf("%w: %s: %s", ErrParse, where, fmt.Sprintf(msg, args...))
}

func (p *parser) parseObjectBody(i *int, indent int) (*ir.Node, error) {
	res := ir.NewObject()
	for *i < len(p.lines) && p.lines[*i].indent == indent {
		ln := p.lines[*i]
		if isElement(ln.text) {
			return nil, p.errf(ln.num, "list element outside a list")
		}
		key, rest, err := splitKey(ln.text)
		if err != nil {
			return nil, p.errf(ln.num, "%v", err)
		}
		if res.Get(key) != nil {
			return nil, p.errf(ln.num, "duplicate key %q", key)
		}
		*i++
		val, err := p.parseValue(rest, i, indent, ln.num)
		if err != nil {
			return nil, err
		}
		res.SetField(key, val)
	}
	if *i < len(p.lines) && p.lines[*i].indent > indent {
		return nil, p.errf(p.lines[*i].num, "unexpected indent %d", p.lines[*i].indent)
	}
	return res, nil
}

// parseValue parses what follows "key:": an inline scalar, an empty
// composite, or an indented block on the following lines.
func (p *parser) parseValue(rest string, i *int, indent, num int) (*ir.Node, error) {
	switch rest {
	case "":
		if *i >= len(p.lines) || p.lines[*i].indent <= indent {
			return ir.Null(), nil
		}
		child := p.lines[*i].indent
		if isElement(p.lines[*i].text) {
			return p.parseListBody(i, child)
		}
		return p.parseObjectBody(i, child)
	case "{}":
		return ir.NewObject(), nil
	case "[]":
		return &ir.Node{Type: ir.ListType}, nil
	default:
		return p.parseScalar(rest, num)
	}
}

func (p *parser) parseListBody(i *int, col int) (*ir.Node, error) {
	res := &ir.Node{Type: ir.ListType}
	for *i < len(p.lines) && p.lines[*i].indent == col && isElement(p.lines[*i].text) {
		ln := p.lines[*i]
		*i++
		v, err := p.parseElement(elementText(ln.text), i, col+2, ln.num)
		if err != nil {
			return nil, err
		}
		appendElement(res, v)
	}
	if *i < len(p.lines) && p.lines[*i].indent > col {
		return nil, p.errf(p.lines[*i].num, "unexpected indent %d", p.lines[*i].indent)
	}
	return res, nil
}

// parseElement parses one list element whose text begins at column col.
// A nested list opens inline ("- - x") and continues on lines indented
// to the inner marker's column.
func (p *parser) parseElement(text string, i *int, col, num int) (*ir.Node, error) {
	if text == "" {
		return ir.Null(), nil
	}
	if text == "[]" {
		return &ir.Node{Type: ir.ListType}, nil
	}
	if isElement(text) {
		inner := &ir.Node{Type: ir.ListType}
		first, err := p.parseElement(elementText(text), i, col+2, num)
		if err != nil {
			return nil, err
		}
		appendElement(inner, first)
		for *i < len(p.lines) && p.lines[*i].indent == col && isElement(p.lines[*i].text) {
			ln := p.lines[*i]
			*i++
			v, err := p.parseElement(elementText(ln.text), i, col+2, ln.num)
			if err != nil {
				return nil, err
			}
			appendElement(inner, v)
		}
		return inner, nil
	}
	return p.parseScalar(text, num)
}

func (p *parser) parseScalar(text string, num int) (*ir.Node, error) {
	tag := ""
	if text[0] == '!' {
		sp := strings.IndexByte(text, ' ')
		if sp < 0 {
			return nil, p.errf(num, "tag %q without a value", text)
		}
		tag = text[:sp]
		text = strings.TrimLeft(text[sp+1:], " ")
		if text == "" {
			return nil, p.errf(num, "tag %q without a value", tag)
		}
	}
	y, err := token.ParseScalar(text)
	if err != nil {
		return nil, p.errf(num, "%v", err)
	}
	y.Tag = tag
	return y, nil
}

func isElement(text string) bool {
	return text == "-" || strings.HasPrefix(text, "- ")
}

func elementText(text string) string {
	if text == "-" {
		return ""
	}
	return text[2:]
}

func appendElement(list, v *ir.Node) {
	v.Parent = list
	v.ParentIndex = len(list.Values)
	list.Values = append(list.Values, v)
}

// splitKey splits "key: rest" handling Go-quoted keys.
func splitKey(text string) (string, string, error) {
	if text[0] == '"' {
		end := -1
		for j := 1; j < len(text); j++ {
			if text[j] == '\\' {
				j++
				continue
			}
			if text[j] == '"' {
				end = j
				break
			}
		}
		if end < 0 {
			return "", "", fmt.Errorf("unterminated quoted key in %q", text)
		}
		key, err := strconv.Unquote(text[:end+1])
		if err != nil {
			return "", "", fmt.Errorf("bad quoted key in %q: %v", text, err)
		}
		rest, err := keyRest(text[end+1:])
		if err != nil {
			return "", "", err
		}
		return key, rest, nil
	}
	idx := strings.IndexByte(text, ':')
	if idx < 0 {
		return "", "", fmt.Errorf("missing ':' in %q", text)
	}
	rest, err := keyRest(text[idx:])
	if err != nil {
		return "", "", err
	}
	return text[:idx], rest, nil
}

func keyRest(after string) (string, error) {
	if after == "" || after[0] != ':' {
		return "", fmt.Errorf("expected ':' after key, got %q", after)
	}
	rest := after[1:]
	if rest == "" {
		return "", nil
	}
	if rest[0] != ' ' {
		return "", fmt.Errorf("expected space after ':', got %q", rest)
	}
	return strings.TrimLeft(rest, " "), nil
}
