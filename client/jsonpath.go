package client

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// JSONPath is a parsed path expression for finding a value inside a JSON document.
//
// The syntax is a small subset of JSONPath: property names separated by dots, and array
// indexes in brackets, optionally preceded by "$" for the document root. For example:
// "data.first_name", "$.data[0].id", "data[2]". An empty path, or "$", is the whole document.
type JSONPath struct {
	source   string
	segments []pathSegment
}

type pathSegment struct {
	key     string
	index   int
	isIndex bool
}

// ParsePath parses a path expression.
func ParsePath(path string) (JSONPath, error) {
	p := JSONPath{source: path}
	rest := strings.TrimPrefix(path, "$")
	rest = strings.TrimPrefix(rest, ".")
	if rest == "" {
		return p, nil
	}

	for _, part := range strings.Split(rest, ".") {
		if part == "" {
			return p, fmt.Errorf("invalid JSON path %q: empty property name", path)
		}
		key := part
		var indexes string
		if i := strings.Index(part, "["); i >= 0 {
			key, indexes = part[:i], part[i:]
		}
		if key != "" {
			p.segments = append(p.segments, pathSegment{key: key})
		}
		for indexes != "" {
			end := strings.Index(indexes, "]")
			if !strings.HasPrefix(indexes, "[") || end < 0 {
				return p, fmt.Errorf("invalid JSON path %q: malformed index in %q", path, part)
			}
			n, err := strconv.Atoi(indexes[1:end])
			if err != nil || n < 0 {
				return p, fmt.Errorf("invalid JSON path %q: bad array index %q", path, indexes[1:end])
			}
			p.segments = append(p.segments, pathSegment{index: n, isIndex: true})
			indexes = indexes[end+1:]
		}
	}
	return p, nil
}

// MustParsePath is like ParsePath but panics on error. It is meant for paths that are
// constants in test code.
func MustParsePath(path string) JSONPath {
	p, err := ParsePath(path)
	if err != nil {
		panic(err)
	}
	return p
}

func (p JSONPath) String() string {
	if p.source == "" {
		return "$"
	}
	return p.source
}

// Lookup finds the value at this path. It returns false if a property is missing, an index is
// out of range, or a value along the way is not an object or array as the path requires.
func (p JSONPath) Lookup(doc ldvalue.Value) (ldvalue.Value, bool) {
	current := doc
	for _, seg := range p.segments {
		if seg.isIndex {
			if current.Type() != ldvalue.ArrayType || seg.index >= current.Count() {
				return ldvalue.Null(), false
			}
			current = current.GetByIndex(seg.index)
			continue
		}
		if current.Type() != ldvalue.ObjectType || !hasKey(current, seg.key) {
			return ldvalue.Null(), false
		}
		current = current.GetByKey(seg.key)
	}
	return current, true
}

func hasKey(object ldvalue.Value, key string) bool {
	for _, k := range object.Keys() {
		if k == key {
			return true
		}
	}
	return false
}

func isValidJSON(data []byte) bool {
	return json.Valid(data)
}
