// Package rule holds the user-facing options of the unknown-class check.
package rule

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/yacobolo/classlint/internal/vocab"
)

// ErrInvalidOptions is returned for options that fail the schema.
var ErrInvalidOptions = errors.New("invalid rule options")

var (
	DefaultClassNameAttributes = []string{"className", "class"}
	DefaultClassNameBuilders   = []string{"clsx", "classcat", "classnames", "classNames"}
)

// Options configure which sinks are checked and where the vocabulary comes from.
type Options struct {
	// Config selects the compiler configuration.
	Config vocab.ConfigSelector
	// Stylesheet is the input stylesheet relative to the working directory;
	// empty means the default stylesheet.
	Stylesheet string
	// ClassNameAttributes are the markup attributes holding class names.
	ClassNameAttributes []string
	// ClassNameBuilders are the trusted class-name builder functions.
	ClassNameBuilders []string
}

// Defaults returns the options used when nothing is configured.
func Defaults() Options {
	return Options{
		Config:              vocab.TailwindConfig(""),
		ClassNameAttributes: slices.Clone(DefaultClassNameAttributes),
		ClassNameBuilders:   slices.Clone(DefaultClassNameBuilders),
	}
}

// IsAttribute reports whether name is a class-name attribute.
func (o Options) IsAttribute(name string) bool {
	return slices.Contains(o.ClassNameAttributes, name)
}

// IsBuilder reports whether name is a trusted builder function.
func (o Options) IsBuilder(name string) bool {
	return slices.Contains(o.ClassNameBuilders, name)
}

// Vocabulary returns the vocabulary for these options through p.
func (o Options) Vocabulary(p *vocab.Provider, cwd string) (vocab.Vocabulary, error) {
	return p.Get(o.Stylesheet, o.Config, cwd)
}

type document struct {
	Config              json.RawMessage `json:"config"`
	Stylesheet          *string         `json:"stylesheet"`
	ClassNameAttributes *[]string       `json:"classNameAttributes"`
	ClassNameBuilders   *[]string       `json:"classNameBuilders"`
}

// Decode validates a rule configuration document and merges it over Defaults.
// Keys are config, stylesheet, classNameAttributes and classNameBuilders.
func Decode(doc map[string]any) (Options, error) {
	if doc == nil {
		return Defaults(), nil
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	return DecodeJSON(data)
}

// DecodeJSON is Decode for an encoded document.
func DecodeJSON(data []byte) (Options, error) {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	if err := optionsSchema.Validate(v); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	var d document
	if err := json.Unmarshal(data, &d); err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}

	opts := Defaults()
	if d.Stylesheet != nil {
		opts.Stylesheet = *d.Stylesheet
	}
	if d.ClassNameAttributes != nil {
		opts.ClassNameAttributes = *d.ClassNameAttributes
	}
	if d.ClassNameBuilders != nil {
		opts.ClassNameBuilders = *d.ClassNameBuilders
	}

	config, err := decodeConfig(d.Config)
	if err != nil {
		return Options{}, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	opts.Config = config

	return opts, nil
}

// decodeConfig accepts a Tailwind config path, null, or a selector object.
func decodeConfig(raw json.RawMessage) (vocab.ConfigSelector, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return vocab.TailwindConfig(""), nil
	}

	if raw[0] == '"' {
		var path string
		if err := json.Unmarshal(raw, &path); err != nil {
			return vocab.ConfigSelector{}, err
		}
		return vocab.TailwindConfig(path), nil
	}

	var sel vocab.ConfigSelector
	if err := json.Unmarshal(raw, &sel); err != nil {
		return vocab.ConfigSelector{}, err
	}
	return sel, nil
}
