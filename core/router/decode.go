package router

import (
	"strings"
	"unicode/utf8"
)

// reserved bytes stay percent-encoded when a path is decoded, so an escaped
// "/" inside a segment never turns into a separator.
const reserved = ";/?:@&=+$,#"

// decodePath percent-decodes p, leaving escapes of reserved bytes as they
// are. A malformed escape or a result that is not valid UTF-8 yields p.
func decodePath(p string) string {
	if !strings.Contains(p, "%") {
		return p
	}

	var b strings.Builder
	b.Grow(len(p))
	for i := 0; i < len(p); i++ {
		if p[i] != '%' {
			b.WriteByte(p[i])
			continue
		}
		if i+2 >= len(p) || !isHex(p[i+1]) || !isHex(p[i+2]) {
			return p
		}
		c := unhex(p[i+1])<<4 | unhex(p[i+2])
		if strings.IndexByte(reserved, c) >= 0 {
			b.WriteString(p[i : i+3])
		} else {
			b.WriteByte(c)
		}
		i += 2
	}

	out := b.String()
	if !utf8.ValidString(out) {
		return p
	}
	return out
}

func isHex(c byte) bool {
	return '0' <= c && c <= '9' || 'a' <= c && c <= 'f' || 'A' <= c && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
