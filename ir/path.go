package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Path addresses a value in a config tree as a sequence of key segments.
// Multi-segment access and single-step chained access resolve
// identically.
type Path []string

// ParsePath parses a dotted path string such as "read_data.file_name".
// Segments containing dots, spaces or other special characters use Go
// string quoting: `outer."dotted.key"`.
func ParsePath(s string) (Path, error) {
	if s == "" {
		return nil, nil
	}
	var res Path
	i := 0
	for i < len(s) {
		if s[i] == '"' {
			j := i + 1
			for j < len(s) {
				if s[j] == '\\' {
					j += 2
					continue
				}
				if s[j] == '"' {
					break
				}
				j++
			}
			if j >= len(s) {
				return nil, fmt.Errorf("unterminated quote in path %q", s)
			}
			seg, err := strconv.Unquote(s[i : j+1])
			if err != nil {
				return nil, fmt.Errorf("bad path segment in %q: %w", s, err)
			}
			res = append(res, seg)
			i = j + 1
			if i < len(s) {
				if s[i] != '.' {
					return nil, fmt.Errorf("expected '.' at offset %d in path %q", i, s)
				}
				i++
				if i == len(s) {
					res = append(res, "")
				}
			}
			continue
		}
		j := strings.IndexByte(s[i:], '.')
		if j < 0 {
			res = append(res, s[i:])
			break
		}
		res = append(res, s[i:i+j])
		i += j + 1
		if i == len(s) {
			res = append(res, "")
		}
	}
	for _, seg := range res {
		if seg == "" {
			return nil, fmt.Errorf("empty segment in path %q", s)
		}
	}
	return res, nil
}

func (p Path) String() string {
	segs := make([]string, len(p))
	for i, seg := range p {
		if segNeedsQuote(seg) {
			segs[i] = strconv.Quote(seg)
		} else {
			segs[i] = seg
		}
	}
	return strings.Join(segs, ".")
}

func segNeedsQuote(seg string) bool {
	if seg == "" {
		return true
	}
	return strings.ContainsAny(seg, ".\" \t\n\\")
}

// Child returns a new path extended by name.  The receiver is not
// modified.
func (p Path) Child(name string) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, name)
}

// Append returns a new path extended by segs.  The receiver is not
// modified.
func (p Path) Append(segs ...string) Path {
	res := make(Path, len(p), len(p)+len(segs))
	copy(res, p)
	return append(res, segs...)
}

func (p Path) Clone() Path {
	return append(Path(nil), p...)
}
