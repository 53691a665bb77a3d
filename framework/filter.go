package framework

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Filter is a function that can determine whether to run a specific test or not.
//
// It is called for groups as well as for individual tests, so a filter that rejects a group
// also excludes everything inside it.
type Filter func(TestID) bool

// RegexFilters selects tests with the same slash-separated pattern rules as "go test -run"
// and "go test -skip": each element of a pattern is matched against the corresponding element
// of the test path.
type RegexFilters struct {
	MustMatch    RegexList
	MustNotMatch RegexList
}

func (r RegexFilters) AsFilter(id TestID) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.anyMatchPrefix(id)) &&
		!r.MustNotMatch.anyMatchAll(id)
}

// IsDefined returns true if either list has any patterns.
func (r RegexFilters) IsDefined() bool {
	return r.MustMatch.IsDefined() || r.MustNotMatch.IsDefined()
}

type RegexList struct {
	patterns []pathPattern
}

type pathPattern struct {
	source   string
	elements []*regexp.Regexp
}

func (r RegexList) String() string {
	var ss []string
	for _, p := range r.patterns {
		ss = append(ss, `"`+p.source+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (r *RegexList) Set(value string) error {
	p := pathPattern{source: value}
	for _, element := range splitPattern(value) {
		rx, err := regexp.Compile(element)
		if err != nil {
			return fmt.Errorf("invalid regex: %w", err)
		}
		p.elements = append(p.elements, rx)
	}
	r.patterns = append(r.patterns, p)
	return nil
}

func (r RegexList) IsDefined() bool {
	return len(r.patterns) != 0
}

// anyMatchPrefix is true if some pattern matches every element the test and the pattern have
// in common. A group whose name matches the first element of a pattern therefore still runs,
// so that its subtests can be matched against the rest of the pattern.
func (r RegexList) anyMatchPrefix(id TestID) bool {
	for _, p := range r.patterns {
		ok := true
		for i := 0; i < len(p.elements) && i < len(id.Path); i++ {
			if !p.elements[i].MatchString(id.Path[i]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// anyMatchAll is true if some pattern matches the test path completely; the test may be deeper
// than the pattern, in which case the pattern matched one of its parents.
func (r RegexList) anyMatchAll(id TestID) bool {
	for _, p := range r.patterns {
		if len(id.Path) < len(p.elements) {
			continue
		}
		ok := true
		for i, rx := range p.elements {
			if !rx.MatchString(id.Path[i]) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// splitPattern splits a pattern on slashes that are not inside brackets or parentheses.
func splitPattern(pattern string) []string {
	var elements []string
	var current strings.Builder
	depth := 0
	for _, ch := range pattern {
		switch ch {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case '/':
			if depth == 0 {
				elements = append(elements, current.String())
				current.Reset()
				continue
			}
		}
		current.WriteRune(ch)
	}
	return append(elements, current.String())
}

func PrintFilterDescription(out io.Writer, filters RegexFilters) {
	if !filters.IsDefined() {
		return
	}
	fmt.Fprintln(out, "Some tests will be skipped based on the filter criteria for this test run:")
	if filters.MustMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any not matching %s\n", filters.MustMatch)
	}
	if filters.MustNotMatch.IsDefined() {
		fmt.Fprintf(out, "  skip any matching %s\n", filters.MustNotMatch)
	}
	fmt.Fprintln(out)
}
