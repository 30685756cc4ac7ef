package grammar

import "strings"

// EscapeMarker wraps every reserved character or null literal in a payload.
const EscapeMarker = '/'

// Sentinel payloads. They are only recognised on raw payloads, before
// unescaping, because any literal "null" in a value is always escaped.
const (
	NullLiteral     = "null"
	HardNullLiteral = "db_null"
)

const reservedChars = `|:",[]{}`

// IsReserved reports whether c must be escaped inside scalars and keys.
func IsReserved(c byte) bool {
	return strings.IndexByte(reservedChars, c) >= 0
}

// Escape wraps each reserved character, and each occurrence of "null", in
// escape markers: "a,b" becomes "a/,/b".
func Escape(s string) string {
	if !needsEscape(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i := 0; i < len(s); {
		if strings.HasPrefix(s[i:], NullLiteral) {
			b.WriteByte(EscapeMarker)
			b.WriteString(NullLiteral)
			b.WriteByte(EscapeMarker)
			i += len(NullLiteral)
			continue
		}
		c := s[i]
		if IsReserved(c) {
			b.WriteByte(EscapeMarker)
			b.WriteByte(c)
			b.WriteByte(EscapeMarker)
		} else {
			b.WriteByte(c)
		}
		i++
	}
	return b.String()
}

// Unescape reverses Escape.
func Unescape(s string) string {
	if strings.IndexByte(s, EscapeMarker) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		switch markerWidth(s, i) {
		case len(NullLiteral) + 2:
			b.WriteString(NullLiteral)
			i += len(NullLiteral) + 2
		case 3:
			b.WriteByte(s[i+1])
			i += 3
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	return b.String()
}

func needsEscape(s string) bool {
	return strings.ContainsAny(s, reservedChars) || strings.Contains(s, NullLiteral)
}

// markerWidth returns the length of the escape marker starting at s[i], or 0.
func markerWidth(s string, i int) int {
	if s[i] != EscapeMarker {
		return 0
	}
	rest := s[i+1:]
	if strings.HasPrefix(rest, NullLiteral) && len(rest) > len(NullLiteral) && rest[len(NullLiteral)] == EscapeMarker {
		return len(NullLiteral) + 2
	}
	if len(rest) >= 2 && IsReserved(rest[0]) && rest[1] == EscapeMarker {
		return 3
	}
	return 0
}
