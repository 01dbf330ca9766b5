package router

import (
	"regexp"
)

// Pattern is a route pattern: either Exact or Match.
type Pattern interface {
	// match reports whether path matches and returns the positional captures.
	match(path string) ([]string, bool)
	String() string
}

type exact string

// Exact matches a path by string equality.
func Exact(path string) Pattern {
	return exact(path)
}

func (p exact) match(path string) ([]string, bool) {
	return nil, string(p) == path
}

func (p exact) String() string {
	return string(p)
}

type expr struct {
	source string
	re     *regexp.Regexp
}

// Match matches a path against re. The expression must cover the whole path.
// It returns nil for a nil re.
func Match(re *regexp.Regexp) Pattern {
	if re == nil {
		return nil
	}
	source := re.String()
	return expr{
		source: source,
		re:     regexp.MustCompile(`^(?:` + source + `)$`),
	}
}

// MustMatch compiles s and returns Match of it. It panics on an invalid expression.
func MustMatch(s string) Pattern {
	return Match(regexp.MustCompile(s))
}

func (p expr) match(path string) ([]string, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

func (p expr) String() string {
	return p.source
}
