package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/mcncl/nestrep/internal/analyzer"
	"github.com/mcncl/nestrep/internal/config"
	"github.com/mcncl/nestrep/internal/errors"
	"github.com/mcncl/nestrep/internal/formatter"
	"github.com/mcncl/nestrep/internal/generator"
	"github.com/mcncl/nestrep/internal/logging"
	"github.com/mcncl/nestrep/internal/models"
	"github.com/mcncl/nestrep/internal/parser"
)

// IOFlags are shared by every command that reads input and writes output
type IOFlags struct {
	Input  string `help:"Path to the input file. If not specified, reads from stdin." short:"i" type:"path"`
	Output string `help:"Path to the output file. If not specified, writes to stdout." short:"o" type:"path"`
}

// EncodeCmd converts JSON to a represent string
type EncodeCmd struct {
	IOFlags
}

// DecodeCmd converts a represent string to JSON
type DecodeCmd struct {
	IOFlags
	Expect string `help:"Require the root collection to have this type."`
}

// InspectCmd prints a represent string as an indented tree
type InspectCmd struct {
	IOFlags
}

// ValidateCmd checks that a represent string decodes
type ValidateCmd struct {
	IOFlags
}

// VersionCmd prints the version
type VersionCmd struct{}

// CLI defines the command-line interface
var CLI struct {
	Config   string `help:"Path to a config file (.yml, .yaml or .toml)." short:"c" type:"path"`
	RootType string `help:"Collection type for JSON array roots." short:"r"`
	KeyCase  string `help:"Rename JSON object keys: none, snake, camel, lower_camel or kebab." short:"k"`
	Debug    bool   `help:"Enable debug logging." short:"d"`

	Encode   EncodeCmd   `cmd:"" help:"Convert a JSON document to a represent string."`
	Decode   DecodeCmd   `cmd:"" help:"Convert a represent string to JSON."`
	Inspect  InspectCmd  `cmd:"" help:"Print a represent string as an indented tree."`
	Validate ValidateCmd `cmd:"" help:"Check that a represent string decodes."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
}

// Context holds the runtime context handed to every command
type Context struct {
	Config *config.Config
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	parser := kong.Must(&CLI,
		kong.Name("nestrep"),
		kong.Description("Convert nested collections between JSON and the represent string format"),
		kong.UsageOnError(),
	)

	kctx, err := parser.Parse(os.Args[1:])
	if err != nil {
		parser.FatalIfErrorf(err)
	}

	if err := execute(kctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: nestrep --help\n")
		os.Exit(1)
	}
}

func execute(kctx *kong.Context) error {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}
	cfg, err := config.LoadConfigWithCLI(configPath, CLI.RootType, CLI.KeyCase, CLI.Debug)
	if err != nil {
		return errors.NewConfigError(err.Error(), err)
	}

	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Development: cfg.Log.Development})
	if err != nil {
		return errors.NewConfigError(fmt.Sprintf("failed to build logger: %v", err), err)
	}
	defer func() { _ = logger.Sync() }()
	logging.SetLogger(logger)

	logger.Debug("starting command",
		zap.String("command", kctx.Command()),
		zap.String("config", configPath),
	)

	return kctx.Run(&Context{
		Config: cfg,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
}

// Run converts the JSON input to a represent string
func (c *EncodeCmd) Run(ctx *Context) error {
	text, err := readInput(ctx, c.Input)
	if err != nil {
		return err
	}
	root, err := parser.ParseJSONString(text)
	if err != nil {
		return err
	}

	coll, err := analyzer.NewAnalyzerWithConfig(ctx.Config).FromJSON(root)
	if err != nil {
		return err
	}

	out, err := generator.NewGenerator[string](models.StringCodec{}).EncodeCollection(coll)
	if err != nil {
		return err
	}
	return writeOutput(ctx, c.Output, out)
}

// Run converts the represent string input to JSON
func (c *DecodeCmd) Run(ctx *Context) error {
	coll, err := decodeInput(ctx, c.Input, c.Expect)
	if err != nil {
		return err
	}

	v, err := analyzer.NewAnalyzerWithConfig(ctx.Config).ToJSON(coll)
	if err != nil {
		return err
	}

	out, err := formatter.NewFormatterWithConfig(ctx.Config).JSON(v)
	if err != nil {
		return err
	}
	return writeOutput(ctx, c.Output, out)
}

// Run prints the decoded tree
func (c *InspectCmd) Run(ctx *Context) error {
	coll, err := decodeInput(ctx, c.Input, "")
	if err != nil {
		return err
	}

	out, err := formatter.NewFormatterWithConfig(ctx.Config).Tree(coll)
	if err != nil {
		return err
	}
	return writeOutput(ctx, c.Output, out)
}

// Run reports whether the input decodes, with a short summary
func (c *ValidateCmd) Run(ctx *Context) error {
	coll, err := decodeInput(ctx, c.Input, "")
	if err != nil {
		return err
	}

	leaves := 0
	for range coll.Enumerate() {
		leaves++
	}
	out := fmt.Sprintf("valid %s: %d entries, %d leaf scalars", coll.Type(), coll.Len(), leaves)
	return writeOutput(ctx, c.Output, out)
}

// Run prints the version
func (c *VersionCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintf(ctx.Stdout, "nestrep version %s\n", Version)
	return err
}

// decodeInput reads a represent string and decodes it. A non-empty expect
// name decodes into a fresh collection of that type so mismatches fail.
func decodeInput(ctx *Context, path, expect string) (models.Collection[string], error) {
	text, err := readInput(ctx, path)
	if err != nil {
		return nil, err
	}

	p := parser.NewParser[string](models.StringCodec{}, nil)
	if expect == "" {
		return p.DecodeNew(text)
	}

	target, err := models.NewRegistry[string]().New(expect)
	if err != nil {
		return nil, err
	}
	if err := p.Decode(text, target); err != nil {
		return nil, err
	}
	return target, nil
}

// readInput reads from a file or stdin
func readInput(ctx *Context, path string) (string, error) {
	if path != "" {
		return parser.ReadFile(path)
	}

	if f, ok := ctx.Stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return "", errors.NewInputError("failed to access stdin", err)
		}
		if info.Mode()&os.ModeCharDevice != 0 {
			return "", errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}

	text, err := parser.ReadString(ctx.Stdin)
	if err != nil {
		return "", err
	}
	return text, nil
}

// writeOutput writes text to a file or stdout, ending with a newline
func writeOutput(ctx *Context, path, text string) error {
	text = strings.TrimRight(text, "\n") + "\n"

	if path != "" {
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", path), err)
		}
		fmt.Fprintf(ctx.Stderr, "Output written to %s\n", path)
		return nil
	}

	if _, err := io.WriteString(ctx.Stdout, text); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}
