// Package formatter renders collections and JSON values for humans.
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mcncl/nestrep/internal/config"
	"github.com/mcncl/nestrep/internal/errors"
	"github.com/mcncl/nestrep/internal/grammar"
	"github.com/mcncl/nestrep/internal/models"
)

// Formatter renders collections as indented trees and JSON documents
type Formatter struct {
	indent string
}

// NewFormatter creates a new Formatter indenting with two spaces
func NewFormatter() *Formatter {
	return &Formatter{indent: "  "}
}

// NewFormatterWithConfig creates a new Formatter using the configured indent
func NewFormatterWithConfig(cfg *config.Config) *Formatter {
	return &Formatter{indent: cfg.Format.Indent}
}

// Tree renders c one entry per line. Nested collections are indented below
// their entry, and scalars are quoted so empty strings stay visible.
func (f *Formatter) Tree(c models.Collection[string]) (string, error) {
	if models.IsNilCollection(c) {
		return "", errors.NewInvalidArgumentError("cannot format a nil collection", errors.ErrNilCollection)
	}
	var b strings.Builder
	b.WriteString(header(c))
	b.WriteByte('\n')
	f.writeEntries(&b, c, 1)
	return b.String(), nil
}

func (f *Formatter) writeEntries(b *strings.Builder, c models.Collection[string], depth int) {
	dict, isDict := c.(*models.NestableDictionary[string])
	prefix := strings.Repeat(f.indent, depth)

	for i, e := range c.All() {
		b.WriteString(prefix)
		if isDict {
			key, _ := dict.KeyAt(i)
			b.WriteString(strconv.Quote(key))
			b.WriteString(": ")
		} else {
			fmt.Fprintf(b, "[%d] ", i)
		}

		switch e.Kind() {
		case models.KindScalar:
			s, _ := e.Scalar()
			b.WriteString(scalarText(s))
			b.WriteByte('\n')
		case models.KindArray:
			items, _ := e.Array()
			b.WriteString(arrayText(items))
			b.WriteByte('\n')
		case models.KindCollection:
			nested, _ := e.Collection()
			b.WriteString(header(nested))
			b.WriteByte('\n')
			f.writeEntries(b, nested, depth+1)
		}
	}
}

func header(c models.Collection[string]) string {
	noun := "entries"
	if c.Len() == 1 {
		noun = "entry"
	}
	if d, ok := c.(*models.NestableDictionary[string]); ok && d.Key() != "" {
		return fmt.Sprintf("%s %q (%d %s)", c.Type(), d.Key(), c.Len(), noun)
	}
	return fmt.Sprintf("%s (%d %s)", c.Type(), c.Len(), noun)
}

func scalarText(s models.Scalar[string]) string {
	switch s.State() {
	case models.ScalarNull:
		return grammar.NullLiteral
	case models.ScalarHardNull:
		return grammar.HardNullLiteral
	}
	v, _ := s.Value()
	return strconv.Quote(v)
}

func arrayText(items []models.Scalar[string]) string {
	if items == nil {
		return "<absent array>"
	}
	parts := make([]string, len(items))
	for i, s := range items {
		parts[i] = scalarText(s)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// JSON renders v as an indented JSON document followed by a newline.
// HTML characters are left unescaped.
func (f *Formatter) JSON(v models.JSONValue) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", f.indent)
	if err := enc.Encode(v); err != nil {
		return "", errors.NewOutputError("failed to encode JSON", err)
	}
	return buf.String(), nil
}
