// Package grammar describes the syntax of represent strings: the three part
// kinds and their delimiters, the escaping of reserved characters, and an
// escape-aware cursor used to find where each part ends.
package grammar

import "fmt"

// PartKind is the syntactic kind of one part of a represent string.
type PartKind uint8

const (
	PartScalar PartKind = iota
	PartArray
	PartCollection
)

// String returns the kind name
func (k PartKind) String() string {
	switch k {
	case PartScalar:
		return "scalar"
	case PartArray:
		return "array"
	case PartCollection:
		return "collection"
	default:
		return fmt.Sprintf("PartKind(%d)", uint8(k))
	}
}

// PartInfo is the fixed delimiter description of a part kind.
type PartInfo struct {
	Kind   PartKind
	Opener byte
	Closer byte
	// Terminators are the two digraphs that may end the part inside a
	// collection body: the closer followed by ',' or '}'.
	Terminators [2]string
	// TrimLeading and TrimTrailing count the delimiter characters at each
	// end of the part's span that are not payload.
	TrimLeading  int
	TrimTrailing int
	// Balanced marks kinds whose closer must be depth-matched against
	// nested openers.
	Balanced bool
}

var partInfos = [...]PartInfo{
	PartScalar: {
		Kind:         PartScalar,
		Opener:       '"',
		Closer:       '"',
		Terminators:  [2]string{`",`, `"}`},
		TrimLeading:  1,
		TrimTrailing: 1,
	},
	PartArray: {
		Kind:         PartArray,
		Opener:       '[',
		Closer:       ']',
		Terminators:  [2]string{`],`, `]}`},
		TrimLeading:  1,
		TrimTrailing: 1,
	},
	PartCollection: {
		Kind:         PartCollection,
		Opener:       '{',
		Closer:       '}',
		Terminators:  [2]string{`},`, `}}`},
		TrimLeading:  1,
		TrimTrailing: 1,
		Balanced:     true,
	},
}

// Info returns the description of kind k.
func Info(k PartKind) PartInfo {
	return partInfos[k]
}

// Classify maps the first character of a part to its kind.
func Classify(c byte) (PartKind, bool) {
	for _, p := range partInfos {
		if p.Opener == c {
			return p.Kind, true
		}
	}
	return 0, false
}

// Payload strips the delimiters from span, which must be a whole part of
// this kind.
func (p PartInfo) Payload(span string) string {
	return span[p.TrimLeading : len(span)-p.TrimTrailing]
}

// Terminates reports whether digraph ends a part of this kind inside a
// collection body.
func (p PartInfo) Terminates(digraph string) bool {
	return digraph == p.Terminators[0] || digraph == p.Terminators[1]
}

// Delimiters of the collection header and dictionary entries.
const (
	TypeSeparator = "||"
	KeySeparator  = "::"
	ItemSeparator = ','
)
