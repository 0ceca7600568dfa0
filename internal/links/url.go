package links

import (
	"regexp"
	"strings"
)

var urlPrefix = regexp.MustCompile(`^(?:http|ftp)s?://`)

// HasURLPrefix reports whether s is an absolute http(s) or ftp(s) URL.
func HasURLPrefix(s string) bool {
	return urlPrefix.MatchString(s)
}

// HTMLSafe escapes the characters that would start markup.
func HTMLSafe(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	return strings.ReplaceAll(s, "<", "&lt;")
}

func fragmentHash(id string) string {
	if id == "" {
		return ""
	}
	return "#" + id
}

const upperhex = "0123456789ABCDEF"

// EncodeURI percent-encodes s the way a browser-side encodeURI does, leaving
// URI delimiters such as '/', '#' and '?' intact. Existing %XX escapes are kept,
// so encoding an already encoded URL is a no-op.
func EncodeURI(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '%' && i+2 < len(s) && isHex(s[i+1]) && isHex(s[i+2]):
			b.WriteByte(c)
		case shouldKeep(c):
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(upperhex[c>>4])
			b.WriteByte(upperhex[c&15])
		}
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

func shouldKeep(c byte) bool {
	if 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' {
		return true
	}
	return strings.IndexByte(";,/?:@&=+$-_.!~*'()#", c) >= 0
}
