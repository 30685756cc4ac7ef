package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/nestrep/internal/config"
	"github.com/mcncl/nestrep/internal/errors"
	"github.com/mcncl/nestrep/internal/models"
	"github.com/mcncl/nestrep/internal/parser"
)

func decode(t *testing.T, s string) models.Collection[string] {
	t.Helper()
	c, err := parser.NewParser[string](models.StringCodec{}, nil).DecodeNew(s)
	require.NoError(t, err)
	return c
}

func TestTree(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty list",
			input:    `{NestableListL||}`,
			expected: "NestableListL (0 entries)\n",
		},
		{
			name:  "list with scalars and arrays",
			input: `{NestableListL||"a","",["1","null"],[null],"db_null"}`,
			expected: "NestableListL (5 entries)\n" +
				"  [0] \"a\"\n" +
				"  [1] \"\"\n" +
				"  [2] [\"1\", null]\n" +
				"  [3] <absent array>\n" +
				"  [4] db_null\n",
		},
		{
			name:  "nested dictionary",
			input: `{NestableDictionary||k1::"v",k2::{k2::NestableDictionary||x::["1","2"]}}`,
			expected: "NestableDictionary (2 entries)\n" +
				"  \"k1\": \"v\"\n" +
				"  \"k2\": NestableDictionary \"k2\" (1 entry)\n" +
				"    \"x\": [\"1\", \"2\"]\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := NewFormatter().Tree(decode(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestTree_ConfiguredIndent(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Format.Indent = "\t"

	out, err := NewFormatterWithConfig(cfg).Tree(decode(t, `{NestableArray||{NestableListL||"x"}}`))
	require.NoError(t, err)
	assert.Equal(t, "NestableArray (1 entry)\n\t[0] NestableListL (1 entry)\n\t\t[0] \"x\"\n", out)
}

func TestTree_NilCollection(t *testing.T) {
	_, err := NewFormatter().Tree(nil)
	assert.ErrorIs(t, err, errors.ErrNilCollection)
}

func TestJSON(t *testing.T) {
	out, err := NewFormatter().JSON(models.JSONObject{"b": models.JSONArray{"<x>", nil}, "a": true})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": true,\n  \"b\": [\n    \"<x>\",\n    null\n  ]\n}\n", out)
}
