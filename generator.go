package classlint

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"text/template"

	"github.com/yacobolo/classlint/internal/rule"
	"github.com/yacobolo/classlint/internal/vocab"
)

// GenerateConfig holds the settings of a declaration-module generation
type GenerateConfig struct {
	Cwd     string
	Options rule.Options

	// Styles, when set, is the stylesheet content and replaces
	// Options.Stylesheet (for a stylesheet read from stdin).
	Styles *string

	// Compiler produces the vocabulary. Nil runs this executable's extract
	// subcommand.
	Compiler vocab.Compiler
	Logger   *slog.Logger
}

// GenerateResult is a rendered TypeScript module
type GenerateResult struct {
	Source  []byte
	Classes int
}

//go:embed templates/classes.ts.tmpl
var moduleTemplateSource string

var moduleTemplate = template.Must(template.New("classes.ts").
	Funcs(template.FuncMap{"quote": strconv.Quote}).
	Parse(moduleTemplateSource))

// Generate compiles the vocabulary and renders a TypeScript module exporting a
// class-name builder typed over exactly those classes.
func Generate(config GenerateConfig) (*GenerateResult, error) {
	if config.Cwd == "" {
		config.Cwd = "."
	}
	cwd, err := filepath.Abs(config.Cwd)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}

	if config.Compiler == nil {
		command, err := vocab.DefaultCommand()
		if err != nil {
			return nil, err
		}
		config.Compiler = vocab.NewProcessCompiler(command, vocab.DefaultMaxOutput)
	}
	provider := vocab.NewProvider(config.Compiler, nil, config.Logger)

	var classes vocab.Vocabulary
	if config.Styles != nil {
		classes, err = provider.Load(vocab.Request{Cwd: cwd, Styles: *config.Styles, Config: config.Options.Config})
	} else {
		classes, err = config.Options.Vocabulary(provider, cwd)
	}
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteModule(&buf, classes.Sorted()); err != nil {
		return nil, err
	}
	return &GenerateResult{Source: buf.Bytes(), Classes: classes.Len()}, nil
}

// WriteModule renders the TypeScript module for classes, in the given order.
func WriteModule(w io.Writer, classes []string) error {
	if err := moduleTemplate.Execute(w, classes); err != nil {
		return fmt.Errorf("render module: %w", err)
	}
	return nil
}
