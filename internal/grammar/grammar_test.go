package grammar

import (
	"testing"

	"github.com/mcncl/nestrep/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "hello", expected: "hello"},
		{name: "comma", input: "a,b", expected: "a/,/b"},
		{name: "null substring", input: "nullable", expected: "/null/able"},
		{name: "all reserved", input: `|:",[]{}`, expected: `/|//://"//,//[//]//{//}/`},
		{name: "slash is not reserved", input: "a/b", expected: "a/b"},
		{name: "empty", input: "", expected: ""},
		{name: "dictionary separator", input: "k::v", expected: "k/://:/v"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Escape(tt.input))
		})
	}
}

func TestUnescape_ReversesEscape(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"null",
		"db_null",
		"nullnull",
		`|:",[]{}`,
		"/",
		"//",
		"/,/",
		"/null/",
		",/",
		"/,",
		":/",
		"a/::/b",
		"{NestableListL||}",
		`"quoted", [list], {map}`,
		"/|//|/",
		"ünïcödé, ok",
	}

	for _, s := range inputs {
		t.Run(s, func(t *testing.T) {
			assert.Equal(t, s, Unescape(Escape(s)))
		})
	}
}

func TestUnescape_LeavesUnknownSlashes(t *testing.T) {
	assert.Equal(t, "/a/", Unescape("/a/"))
	assert.Equal(t, "x/", Unescape("x/"))
	assert.Equal(t, "/nul", Unescape("/nul"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ch   byte
		kind PartKind
		ok   bool
	}{
		{'"', PartScalar, true},
		{'[', PartArray, true},
		{'{', PartCollection, true},
		{'n', 0, false},
	}
	for _, tt := range tests {
		kind, ok := Classify(tt.ch)
		assert.Equal(t, tt.ok, ok, "classify %q", tt.ch)
		if ok {
			assert.Equal(t, tt.kind, kind)
		}
	}
}

func TestPartInfo(t *testing.T) {
	scalar := Info(PartScalar)
	assert.Equal(t, "abc", scalar.Payload(`"abc"`))
	assert.True(t, scalar.Terminates(`",`))
	assert.True(t, scalar.Terminates(`"}`))
	assert.False(t, scalar.Terminates(`"]`))

	coll := Info(PartCollection)
	assert.True(t, coll.Balanced)
	assert.False(t, Info(PartArray).Balanced)
	assert.Equal(t, "NestableListL||", coll.Payload("{NestableListL||}"))
}

func TestCursor_ScanPart(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  PartKind
		span  string
	}{
		{name: "scalar", input: `"abc",rest`, kind: PartScalar, span: `"abc"`},
		{name: "escaped quote in scalar", input: `"a/"/b"}`, kind: PartScalar, span: `"a/"/b"`},
		{name: "slash before closing quote", input: `"a/",`, kind: PartScalar, span: `"a/"`},
		{name: "empty array", input: `[],`, kind: PartArray, span: `[]`},
		{name: "array with escaped bracket", input: `["/]/","b"]}`, kind: PartArray, span: `["/]/","b"]`},
		{
			name:  "nested collections",
			input: `{NestableListL||{NestableListL||"x"},{NestableArray||}},"tail"`,
			kind:  PartCollection,
			span:  `{NestableListL||{NestableListL||"x"},{NestableArray||}}`,
		},
		{
			name:  "escaped braces are not counted",
			input: `{NestableListL||"/{//{/"},x`,
			kind:  PartCollection,
			span:  `{NestableListL||"/{//{/"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(tt.input)
			kind, span, err := c.ScanPart()
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.span, span)
			assert.Equal(t, len(tt.span), c.Pos())
		})
	}
}

func TestCursor_ScanPartErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "end of input", input: ""},
		{name: "bad opener", input: "abc"},
		{name: "unterminated scalar", input: `"abc`},
		{name: "unterminated array", input: `["a"`},
		{name: "unbalanced collection", input: `{NestableListL||{NestableArray||}`},
		{name: "escaped closer only", input: `{NestableListL||/}/`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewCursor(tt.input).ScanPart()
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrorTypeFormat))
		})
	}
}

func TestCursor_IndexSkipsMarkers(t *testing.T) {
	c := NewCursor("k/://:/x::rest")
	assert.Equal(t, 8, c.Index(KeySeparator, -1))
	assert.Equal(t, -1, c.Index(KeySeparator, 8))

	c = NewCursor("a/|//|/b||c")
	assert.Equal(t, 8, c.Index(TypeSeparator, -1))

	c = NewCursor("abc")
	c.Advance(10)
	assert.True(t, c.Done())
	_, ok := c.Peek()
	assert.False(t, ok)
}

func TestCursor_Consume(t *testing.T) {
	c := NewCursor("||rest")
	assert.False(t, c.Consume("::"))
	assert.True(t, c.Consume("||"))
	assert.Equal(t, 2, c.Pos())
	assert.Equal(t, "re", c.Slice(2, 4))
}

func TestCursor_ScanKey(t *testing.T) {
	c := NewCursor(`a/://:/b::"v"`)
	key, err := c.ScanKey()
	require.NoError(t, err)
	assert.Equal(t, "a/://:/b", key)
	assert.Equal(t, "a::b", Unescape(key))
	ch, _ := c.Peek()
	assert.Equal(t, byte('"'), ch)

	c = NewCursor(`::"v"`)
	key, err = c.ScanKey()
	require.NoError(t, err)
	assert.Equal(t, "", key)

	_, err = NewCursor(`"v"`).ScanKey()
	assert.True(t, errors.IsType(err, errors.ErrorTypeFormat))

	_, err = NewCursor(`novalue`).ScanKey()
	assert.ErrorIs(t, err, errors.ErrUnterminated)
}
