package ir

import (
	"cmp"
	"fmt"
	"strings"
)

// Compare returns an integer comparing two nodes by value, ignoring
// usage state, modes and tags.
// The result is 0 if a==b, -1 if a < b, and +1 if a > b.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NullType:
		return 0
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case IntType:
		return cmp.Compare(a.Int64, b.Int64)
	case FloatType:
		return cmp.Compare(a.Float64, b.Float64)
	case StringType:
		return strings.Compare(a.String, b.String)
	case OpaqueType:
		return strings.Compare(fmt.Sprintf("%v", a.Opaque), fmt.Sprintf("%v", b.Opaque))
	case ListType:
		return compareLists(a, b)
	case ObjectType:
		return compareObjects(a, b)
	}
	return 0
}

// Equal reports value equality of two trees, key order included.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank orders types: Null < Bool < Int < Float < String < Opaque < List < Object.
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case IntType:
		return 2
	case FloatType:
		return 3
	case StringType:
		return 4
	case OpaqueType:
		return 5
	case ListType:
		return 6
	case ObjectType:
		return 7
	}
	return 100
}

func compareLists(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	for i := 0; i < min(lenA, lenB); i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	for i := 0; i < min(lenA, lenB); i++ {
		if c := strings.Compare(a.Fields[i].String, b.Fields[i].String); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
