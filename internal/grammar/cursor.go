package grammar

import (
	"fmt"
	"strings"

	"github.com/mcncl/nestrep/internal/errors"
)

// Cursor walks a represent string. All searches skip escape markers, so
// reserved characters inside payloads are never mistaken for delimiters.
type Cursor struct {
	src string
	pos int
}

// NewCursor returns a cursor at the start of src.
func NewCursor(src string) *Cursor {
	return &Cursor{src: src}
}

// Pos returns the current offset
func (c *Cursor) Pos() int { return c.pos }

// Done reports whether the whole input has been consumed
func (c *Cursor) Done() bool { return c.pos >= len(c.src) }

// Peek returns the next unconsumed byte.
func (c *Cursor) Peek() (byte, bool) {
	if c.Done() {
		return 0, false
	}
	return c.src[c.pos], true
}

// Advance moves the cursor forward by n bytes, stopping at the end.
func (c *Cursor) Advance(n int) {
	c.pos = min(c.pos+n, len(c.src))
}

// Slice returns src[from:to].
func (c *Cursor) Slice(from, to int) string {
	return c.src[from:to]
}

// Index returns the absolute offset of the first unescaped occurrence of sep
// at or after the cursor, or -1. It stops at limit when limit >= 0.
func (c *Cursor) Index(sep string, limit int) int {
	end := len(c.src)
	if limit >= 0 && limit < end {
		end = limit
	}
	for i := c.pos; i < end; {
		if w := markerWidth(c.src, i); w > 0 {
			i += w
			continue
		}
		if strings.HasPrefix(c.src[i:end], sep) {
			return i
		}
		i++
	}
	return -1
}

// Consume advances past s if the input continues with it.
func (c *Cursor) Consume(s string) bool {
	if strings.HasPrefix(c.src[c.pos:], s) {
		c.pos += len(s)
		return true
	}
	return false
}

// ScanPart finds the part starting at the cursor, classifying it by its
// opener, and advances past its closer. It returns the kind and the whole
// span including delimiters.
func (c *Cursor) ScanPart() (PartKind, string, error) {
	start := c.pos
	ch, ok := c.Peek()
	if !ok {
		return 0, "", errors.NewFormatError(fmt.Sprintf("expected a part at offset %d, found end of input", start), errors.ErrUnterminated)
	}
	kind, ok := Classify(ch)
	if !ok {
		return 0, "", errors.NewFormatError(fmt.Sprintf("unexpected character %q at offset %d", ch, start), nil)
	}
	end, err := c.matchCloser(Info(kind))
	if err != nil {
		return 0, "", err
	}
	c.pos = end
	return kind, c.src[start:end], nil
}

// matchCloser returns the offset just past the closer of the part at the
// cursor. Balanced kinds count nested openers.
func (c *Cursor) matchCloser(info PartInfo) (int, error) {
	depth := 0
	for i := c.pos; i < len(c.src); {
		if w := markerWidth(c.src, i); w > 0 {
			i += w
			continue
		}
		ch := c.src[i]
		switch {
		case i == c.pos:
			depth = 1
		case info.Balanced && ch == info.Opener:
			depth++
		case ch == info.Closer:
			depth--
		}
		if depth == 0 {
			return i + 1, nil
		}
		i++
	}
	return 0, errors.NewFormatError(
		fmt.Sprintf("unterminated %s starting at offset %d", info.Kind, c.pos),
		errors.ErrUnterminated,
	)
}

// ScanKey reads a dictionary entry key up to the next unescaped "::" and
// advances past the separator. The returned key is still escaped.
func (c *Cursor) ScanKey() (string, error) {
	start := c.pos
	for i := c.pos; i < len(c.src); {
		if w := markerWidth(c.src, i); w > 0 {
			i += w
			continue
		}
		if strings.HasPrefix(c.src[i:], KeySeparator) {
			c.pos = i + len(KeySeparator)
			return c.src[start:i], nil
		}
		if IsReserved(c.src[i]) {
			return "", errors.NewFormatError(
				fmt.Sprintf("expected %q after dictionary key at offset %d, found %q", KeySeparator, i, c.src[i]),
				nil,
			)
		}
		i++
	}
	return "", errors.NewFormatError(
		fmt.Sprintf("dictionary key starting at offset %d has no %q", start, KeySeparator),
		errors.ErrUnterminated,
	)
}
