package parser

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mcncl/nestrep/internal/errors"
	"github.com/mcncl/nestrep/internal/grammar"
	"github.com/mcncl/nestrep/internal/logging"
	"github.com/mcncl/nestrep/internal/models"
)

// MaxDepth bounds collection nesting so hostile input cannot exhaust the stack.
const MaxDepth = 512

// Parser decodes represent strings back into elements and collections.
// Collection types are resolved through the registry it was built with.
type Parser[T comparable] struct {
	scalars  models.ScalarCodec[T]
	registry *models.Registry[T]
	logger   *zap.Logger
}

// NewParser creates a Parser. A nil registry means every collection type.
func NewParser[T comparable](scalars models.ScalarCodec[T], registry *models.Registry[T]) *Parser[T] {
	if registry == nil {
		registry = models.NewRegistry[T]()
	}
	return &Parser[T]{
		scalars:  scalars,
		registry: registry,
		logger:   logging.Logger(),
	}
}

// WithLogger sets the logger used for debug output and returns p.
func (p *Parser[T]) WithLogger(l *zap.Logger) *Parser[T] {
	if l != nil {
		p.logger = l
	}
	return p
}

// Decode repopulates target from s. The type named in s must match the
// type of target. Nothing in target changes unless the whole string decodes.
func (p *Parser[T]) Decode(s string, target models.Collection[T]) error {
	if models.IsNilCollection(target) {
		return errors.NewInvalidArgumentError("decode target must not be nil", errors.ErrNilCollection)
	}
	_, err := p.decodeTop(s, target)
	return err
}

// DecodeNew decodes s into a new collection of the type named in s.
func (p *Parser[T]) DecodeNew(s string) (models.Collection[T], error) {
	return p.decodeTop(s, nil)
}

func (p *Parser[T]) decodeTop(s string, target models.Collection[T]) (models.Collection[T], error) {
	span, err := wholePart(s, grammar.PartCollection)
	if err != nil {
		return nil, err
	}
	c, err := p.decodeCollection(span, 0, 0, target)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("decoded collection",
		zap.Stringer("type", c.Type()),
		zap.Int("entries", c.Len()),
		zap.Int("bytes", len(s)))
	return c, nil
}

// DecodeElement decodes a single part of any kind, chosen by its first character.
func (p *Parser[T]) DecodeElement(s string) (models.Element[T], error) {
	cur := grammar.NewCursor(s)
	kind, span, err := cur.ScanPart()
	if err != nil {
		return models.Element[T]{}, err
	}
	if !cur.Done() {
		return models.Element[T]{}, trailing(cur.Pos())
	}
	return p.decodePart(kind, span, 0, 0)
}

// DecodeScalar decodes a quoted scalar such as "a/,/b".
func (p *Parser[T]) DecodeScalar(s string) (models.Scalar[T], error) {
	span, err := wholePart(s, grammar.PartScalar)
	if err != nil {
		return models.Scalar[T]{}, err
	}
	return p.decodeScalar(span, 0)
}

// DecodeArray decodes an array such as ["a","b"]. [null] yields a nil slice.
func (p *Parser[T]) DecodeArray(s string) ([]models.Scalar[T], error) {
	span, err := wholePart(s, grammar.PartArray)
	if err != nil {
		return nil, err
	}
	return p.decodeArray(span, 0)
}

// wholePart checks that s is exactly one part of the wanted kind.
func wholePart(s string, want grammar.PartKind) (string, error) {
	info := grammar.Info(want)
	if len(s) < 2 || s[0] != info.Opener || s[len(s)-1] != info.Closer {
		return "", errors.NewFormatError(
			fmt.Sprintf("%s must start with %q and end with %q", want, info.Opener, info.Closer),
			nil,
		)
	}
	cur := grammar.NewCursor(s)
	_, span, err := cur.ScanPart()
	if err != nil {
		return "", err
	}
	if !cur.Done() {
		return "", trailing(cur.Pos())
	}
	return span, nil
}

func trailing(offset int) error {
	return errors.NewFormatError(fmt.Sprintf("unexpected trailing characters at offset %d", offset), nil)
}

// decodePart decodes span, which starts at offset base in the outer input.
func (p *Parser[T]) decodePart(kind grammar.PartKind, span string, base, depth int) (models.Element[T], error) {
	switch kind {
	case grammar.PartScalar:
		s, err := p.decodeScalar(span, base)
		if err != nil {
			return models.Element[T]{}, err
		}
		return models.NewScalarOf(s), nil
	case grammar.PartArray:
		items, err := p.decodeArray(span, base)
		if err != nil {
			return models.Element[T]{}, err
		}
		return models.NewArrayOf(items), nil
	default:
		c, err := p.decodeCollection(span, base, depth+1, nil)
		if err != nil {
			return models.Element[T]{}, err
		}
		return models.NewCollection(c)
	}
}

func (p *Parser[T]) decodeScalar(span string, base int) (models.Scalar[T], error) {
	raw := grammar.Info(grammar.PartScalar).Payload(span)
	switch raw {
	case grammar.NullLiteral:
		return models.Null[T](), nil
	case grammar.HardNullLiteral:
		return models.HardNull[T](), nil
	}
	v, err := p.scalars.Parse(grammar.Unescape(raw))
	if err != nil {
		return models.Scalar[T]{}, errors.NewFormatError(fmt.Sprintf("invalid scalar at offset %d", base), err)
	}
	return models.Of(v), nil
}

func (p *Parser[T]) decodeArray(span string, base int) ([]models.Scalar[T], error) {
	info := grammar.Info(grammar.PartArray)
	payload := info.Payload(span)
	switch payload {
	case "":
		return []models.Scalar[T]{}, nil
	case grammar.NullLiteral:
		return nil, nil
	}

	items := make([]models.Scalar[T], 0, 4)
	cur := grammar.NewCursor(span)
	cur.Advance(info.TrimLeading)
	end := len(span) - info.TrimTrailing
	for {
		start := cur.Pos()
		kind, part, err := cur.ScanPart()
		if err != nil {
			return nil, offsetError(err, base)
		}
		if kind != grammar.PartScalar {
			return nil, errors.NewFormatError(fmt.Sprintf("array item at offset %d is a %s, arrays hold scalars only", base+start, kind), nil)
		}
		s, err := p.decodeScalar(part, base+start)
		if err != nil {
			return nil, err
		}
		items = append(items, s)

		if cur.Pos() == end {
			return items, nil
		}
		if ch, _ := cur.Peek(); ch != grammar.ItemSeparator {
			return nil, errors.NewFormatError(fmt.Sprintf("expected ',' or ']' at offset %d", base+cur.Pos()), nil)
		}
		cur.Advance(1)
	}
}

// decodeCollection decodes a whole {...} span. When target is nil a new
// collection of the embedded type is built; otherwise the embedded type
// must match target and target is filled in place.
func (p *Parser[T]) decodeCollection(span string, base, depth int, target models.Collection[T]) (models.Collection[T], error) {
	if depth > MaxDepth {
		return nil, errors.NewFormatError(fmt.Sprintf("collections nested deeper than %d at offset %d", MaxDepth, base), nil)
	}
	info := grammar.Info(grammar.PartCollection)
	end := len(span) - info.TrimTrailing

	cur := grammar.NewCursor(span)
	cur.Advance(info.TrimLeading)
	hdr, err := readHeader(cur, end)
	if err != nil {
		return nil, offsetError(err, base)
	}

	ctor, err := p.registry.Resolve(hdr.typeName)
	if err != nil {
		return nil, err
	}
	if target != nil && target.Type() != ctor.Type {
		return nil, errors.NewTypeMismatchError(
			fmt.Sprintf("represent string holds a %s but the target is a %s", ctor.Type, target.Type()),
			nil,
		)
	}
	isDict := ctor.Type == models.TypeDictionary
	if hdr.hasKey && !isDict {
		return nil, errors.NewFormatError(fmt.Sprintf("%s cannot carry a key at offset %d", ctor.Type, base), nil)
	}

	var entries []models.Element[T]
	var keys []string
	for cur.Pos() < end {
		start := cur.Pos()
		if isDict {
			rawKey, err := cur.ScanKey()
			if err != nil {
				return nil, offsetError(err, base)
			}
			keys = append(keys, grammar.Unescape(rawKey))
		}

		partStart := cur.Pos()
		kind, part, err := cur.ScanPart()
		if err != nil {
			return nil, offsetError(err, base)
		}
		e, err := p.decodePart(kind, part, base+partStart, depth)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)

		if !grammar.Info(kind).Terminates(cur.Slice(cur.Pos()-1, cur.Pos()+1)) {
			return nil, errors.NewFormatError(fmt.Sprintf("entry at offset %d is not followed by ',' or '}'", base+start), nil)
		}
		if cur.Pos() == end {
			break
		}
		cur.Advance(1)
		if cur.Pos() == end {
			return nil, errors.NewFormatError(fmt.Sprintf("dangling ',' at offset %d", base+end-1), nil)
		}
	}

	if target == nil {
		target = ctor.NewSized(len(entries))
	}
	if err := models.Commit(target, entries, keys); err != nil {
		return nil, err
	}
	if d, ok := target.(*models.NestableDictionary[T]); ok {
		d.SetKey(hdr.key)
	}
	return target, nil
}

type header struct {
	key      string
	hasKey   bool
	typeName string
}

// readHeader reads KEY::TYPE|| or TYPE|| and leaves the cursor at the body.
func readHeader(cur *grammar.Cursor, end int) (header, error) {
	start := cur.Pos()
	sep := cur.Index(grammar.TypeSeparator, end)
	if sep < 0 {
		return header{}, errors.NewFormatError(fmt.Sprintf("missing %q after collection type at offset %d", grammar.TypeSeparator, start), nil)
	}
	var h header
	if k := cur.Index(grammar.KeySeparator, sep); k >= 0 {
		h.key = grammar.Unescape(cur.Slice(start, k))
		h.hasKey = true
		h.typeName = cur.Slice(k+len(grammar.KeySeparator), sep)
	} else {
		h.typeName = cur.Slice(start, sep)
	}
	cur.Advance(sep + len(grammar.TypeSeparator) - start)
	return h, nil
}

// offsetError adds the offset of the enclosing part to cursor errors, whose
// own offsets are relative to that part.
func offsetError(err error, base int) error {
	if base == 0 {
		return err
	}
	return fmt.Errorf("in part at offset %d: %w", base, err)
}
