package generator

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mcncl/nestrep/internal/errors"
	"github.com/mcncl/nestrep/internal/grammar"
	"github.com/mcncl/nestrep/internal/logging"
	"github.com/mcncl/nestrep/internal/models"
)

// AbsentArray is written for an array element whose slice is nil. An
// unquoted null can never be a scalar, so it does not collide with ["null"].
const AbsentArray = "[" + grammar.NullLiteral + "]"

// Generator renders elements and collections as represent strings
type Generator[T comparable] struct {
	scalars models.ScalarCodec[T]
	logger  *zap.Logger
}

// NewGenerator creates a Generator that formats scalars with scalars.
func NewGenerator[T comparable](scalars models.ScalarCodec[T]) *Generator[T] {
	return &Generator[T]{
		scalars: scalars,
		logger:  logging.Logger(),
	}
}

// WithLogger sets the logger used for debug output and returns g.
func (g *Generator[T]) WithLogger(l *zap.Logger) *Generator[T] {
	if l != nil {
		g.logger = l
	}
	return g
}

// EncodeCollection renders c, for example {NestableListL||"a",[]}.
func (g *Generator[T]) EncodeCollection(c models.Collection[T]) (string, error) {
	if models.IsNilCollection(c) {
		return "", errors.NewInvalidArgumentError("cannot encode a nil collection", errors.ErrNilCollection)
	}
	var b strings.Builder
	if err := g.writeCollection(&b, c); err != nil {
		return "", err
	}
	g.logger.Debug("encoded collection",
		zap.Stringer("type", c.Type()),
		zap.Int("entries", c.Len()),
		zap.Int("bytes", b.Len()))
	return b.String(), nil
}

// EncodeElement renders a single element of any kind.
func (g *Generator[T]) EncodeElement(e models.Element[T]) (string, error) {
	var b strings.Builder
	if err := g.writeElement(&b, e); err != nil {
		return "", err
	}
	return b.String(), nil
}

// EncodeScalar renders one scalar, quotes included.
func (g *Generator[T]) EncodeScalar(s models.Scalar[T]) (string, error) {
	var b strings.Builder
	if err := g.writeScalar(&b, s); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (g *Generator[T]) writeElement(b *strings.Builder, e models.Element[T]) error {
	switch e.Kind() {
	case models.KindScalar:
		s, _ := e.Scalar()
		return g.writeScalar(b, s)
	case models.KindArray:
		items, _ := e.Array()
		return g.writeArray(b, items)
	case models.KindCollection:
		c, _ := e.Collection()
		return g.writeCollection(b, c)
	}
	return errors.NewInvalidArgumentError(fmt.Sprintf("unknown element kind %s", e.Kind()), nil)
}

func (g *Generator[T]) writeScalar(b *strings.Builder, s models.Scalar[T]) error {
	b.WriteByte(grammar.Info(grammar.PartScalar).Opener)
	switch s.State() {
	case models.ScalarNull:
		b.WriteString(grammar.NullLiteral)
	case models.ScalarHardNull:
		b.WriteString(grammar.HardNullLiteral)
	default:
		v, _ := s.Value()
		text, err := g.scalars.Format(v)
		if err != nil {
			return errors.NewInvalidArgumentError(fmt.Sprintf("cannot format scalar %v", v), err)
		}
		b.WriteString(grammar.Escape(text))
	}
	b.WriteByte(grammar.Info(grammar.PartScalar).Closer)
	return nil
}

func (g *Generator[T]) writeArray(b *strings.Builder, items []models.Scalar[T]) error {
	if items == nil {
		b.WriteString(AbsentArray)
		return nil
	}
	info := grammar.Info(grammar.PartArray)
	b.WriteByte(info.Opener)
	for i, s := range items {
		if i > 0 {
			b.WriteByte(grammar.ItemSeparator)
		}
		if err := g.writeScalar(b, s); err != nil {
			return err
		}
	}
	b.WriteByte(info.Closer)
	return nil
}

func (g *Generator[T]) writeCollection(b *strings.Builder, c models.Collection[T]) error {
	info := grammar.Info(grammar.PartCollection)
	dict, isDict := c.(*models.NestableDictionary[T])

	b.WriteByte(info.Opener)
	if isDict && dict.Key() != "" {
		b.WriteString(grammar.Escape(dict.Key()))
		b.WriteString(grammar.KeySeparator)
	}
	b.WriteString(c.Type().String())
	b.WriteString(grammar.TypeSeparator)

	for i, e := range c.All() {
		if i > 0 {
			b.WriteByte(grammar.ItemSeparator)
		}
		if isDict {
			key, _ := dict.KeyAt(i)
			b.WriteString(grammar.Escape(key))
			b.WriteString(grammar.KeySeparator)
		}
		if err := g.writeElement(b, e); err != nil {
			return fmt.Errorf("entry %d of %s: %w", i, c.Type(), err)
		}
	}
	b.WriteByte(info.Closer)
	return nil
}
