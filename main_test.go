package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/nestrep/internal/config"
	"github.com/mcncl/nestrep/internal/errors"
)

func newTestContext(stdin string) (*Context, *bytes.Buffer) {
	var stdout bytes.Buffer
	return &Context{
		Config: config.NewConfig(),
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &bytes.Buffer{},
	}, &stdout
}

func TestEncodeCmd_Stdin(t *testing.T) {
	ctx, stdout := newTestContext(`{"name": "John", "tags": ["a", "b"]}`)

	require.NoError(t, (&EncodeCmd{}).Run(ctx))
	assert.Equal(t, "{NestableDictionary||name::\"John\",tags::[\"a\",\"b\"]}\n", stdout.String())
}

func TestEncodeCmd_ConfigApplied(t *testing.T) {
	ctx, stdout := newTestContext(`[{"userId": 1}]`)
	ctx.Config.RootType = "NestableArray"
	ctx.Config.Naming.KeyCase = config.KeyCaseSnake

	require.NoError(t, (&EncodeCmd{}).Run(ctx))
	assert.Equal(t, "{NestableArray||{NestableDictionary||user_id::\"1\"}}\n", stdout.String())
}

func TestDecodeCmd(t *testing.T) {
	ctx, stdout := newTestContext(`{NestableDictionary||id::"7",tags::["x"]}`)

	require.NoError(t, (&DecodeCmd{}).Run(ctx))
	assert.JSONEq(t, `{"id": 7, "tags": ["x"]}`, stdout.String())
}

func TestDecodeCmd_Expect(t *testing.T) {
	ctx, _ := newTestContext(`{NestableListL||"a"}`)

	err := (&DecodeCmd{Expect: "NestableDictionary"}).Run(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeTypeMismatch))

	ctx, stdout := newTestContext(`{NestableListL||"a"}`)
	require.NoError(t, (&DecodeCmd{Expect: "NestableListL"}).Run(ctx))
	assert.JSONEq(t, `["a"]`, stdout.String())
}

func TestDecodeCmd_ExpectUnknownType(t *testing.T) {
	ctx, _ := newTestContext(`{NestableListL||}`)

	err := (&DecodeCmd{Expect: "Stack"}).Run(ctx)
	assert.ErrorIs(t, err, errors.ErrUnknownType)
}

func TestInspectCmd(t *testing.T) {
	ctx, stdout := newTestContext(`{NestableListL||"a",{NestableArray||}}`)

	require.NoError(t, (&InspectCmd{}).Run(ctx))
	assert.Equal(t, "NestableListL (2 entries)\n  [0] \"a\"\n  [1] NestableArray (0 entries)\n", stdout.String())
}

func TestValidateCmd(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		errType  errors.ErrorType
	}{
		{
			name:     "valid",
			input:    `{NestableListL||"a",["b","c"],{NestableListL||"d"}}`,
			expected: "valid NestableListL: 3 entries, 4 leaf scalars\n",
		},
		{
			name:    "malformed",
			input:   `{NestableListL||"a"`,
			errType: errors.ErrorTypeFormat,
		},
		{
			name:    "empty",
			input:   "   ",
			errType: errors.ErrorTypeInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, stdout := newTestContext(tt.input)
			err := (&ValidateCmd{}).Run(ctx)
			if tt.errType != "" {
				require.Error(t, err)
				assert.True(t, errors.IsType(err, tt.errType), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, stdout.String())
		})
	}
}

func TestVersionCmd(t *testing.T) {
	ctx, stdout := newTestContext("")

	require.NoError(t, (&VersionCmd{}).Run(ctx))
	assert.Equal(t, "nestrep version "+Version+"\n", stdout.String())
}

func TestFileInputOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.json")
	output := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(input, []byte(`["a", null]`), 0644))

	ctx, stdout := newTestContext("")
	require.NoError(t, (&EncodeCmd{IOFlags{Input: input, Output: output}}).Run(ctx))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "{NestableListL||\"a\",\"null\"}\n", string(data))
}

func TestReadInput_MissingFile(t *testing.T) {
	ctx, _ := newTestContext("")

	_, err := readInput(ctx, filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, errors.ErrFileNotFound)
}

func TestCLI_ParsesCommands(t *testing.T) {
	originalCLI := CLI
	defer func() { CLI = originalCLI }()

	p, err := kong.New(&CLI, kong.Name("nestrep"))
	require.NoError(t, err)

	kctx, err := p.Parse([]string{"-d", "--root-type", "NestableArray", "decode", "-i", "x.txt", "--expect", "NestableListL"})
	require.NoError(t, err)

	assert.Equal(t, "decode", kctx.Command())
	assert.True(t, CLI.Debug)
	assert.Equal(t, "NestableArray", CLI.RootType)
	assert.Equal(t, "NestableListL", CLI.Decode.Expect)
	assert.True(t, strings.HasSuffix(CLI.Decode.Input, "x.txt"))
}
