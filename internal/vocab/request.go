package vocab

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// ConfigSelector chooses how the compiler finds its configuration: either
// PostCSS config discovery, or a Tailwind config file (Tailwind nil means the
// compiler's default lookup).
//
// On the wire it is {"postcss": true} or {"tailwind": "path" | null}.
type ConfigSelector struct {
	PostCSS  bool
	Tailwind *string
}

// TailwindConfig selects a Tailwind config file; an empty path selects the default.
func TailwindConfig(path string) ConfigSelector {
	if path == "" {
		return ConfigSelector{}
	}
	return ConfigSelector{Tailwind: &path}
}

// PostCSSConfig selects PostCSS config discovery.
func PostCSSConfig() ConfigSelector {
	return ConfigSelector{PostCSS: true}
}

func (c ConfigSelector) String() string {
	switch {
	case c.PostCSS:
		return "postcss"
	case c.Tailwind != nil:
		return "tailwind:" + *c.Tailwind
	default:
		return "tailwind:default"
	}
}

func (c ConfigSelector) MarshalJSON() ([]byte, error) {
	if c.PostCSS {
		return []byte(`{"postcss":true}`), nil
	}
	return json.Marshal(struct {
		Tailwind *string `json:"tailwind"`
	}{c.Tailwind})
}

func (c *ConfigSelector) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("config selector: %w", err)
	}

	if v, ok := raw["postcss"]; ok {
		var postcss bool
		if err := json.Unmarshal(v, &postcss); err != nil || !postcss {
			return fmt.Errorf("config selector: postcss must be true")
		}
		*c = ConfigSelector{PostCSS: true}
		return nil
	}

	v, ok := raw["tailwind"]
	if !ok {
		return fmt.Errorf("config selector: expected a postcss or tailwind key")
	}
	var tailwind *string
	if err := json.Unmarshal(v, &tailwind); err != nil {
		return fmt.Errorf("config selector: tailwind: %w", err)
	}
	*c = ConfigSelector{Tailwind: tailwind}
	return nil
}

// Request is the single document sent to a compiler on stdin.
type Request struct {
	Cwd        string         `json:"cwd"`
	Styles     string         `json:"styles"`
	StylesPath *string        `json:"stylesPath"`
	Config     ConfigSelector `json:"config"`
}

const requestSchemaURL = "classlint://extract-request.json"

const requestSchema = `{
	"type": "object",
	"properties": {
		"cwd": {"type": "string"},
		"styles": {"type": "string"},
		"stylesPath": {"type": ["string", "null"]},
		"config": {
			"type": "object",
			"oneOf": [
				{
					"properties": {"postcss": {"type": "boolean", "enum": [true]}},
					"additionalProperties": false,
					"required": ["postcss"]
				},
				{
					"properties": {"tailwind": {"type": ["string", "null"]}},
					"additionalProperties": false,
					"required": ["tailwind"]
				}
			]
		}
	},
	"additionalProperties": false,
	"required": ["cwd", "styles", "stylesPath", "config"]
}`

var requestSchemaCompiled = jsonschema.MustCompileString(requestSchemaURL, requestSchema)

// DecodeRequest validates data against the request schema and decodes it.
func DecodeRequest(data []byte) (Request, error) {
	var doc interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return Request{}, &ExtractionError{Err: ErrInvalidRequest, Detail: err.Error()}
	}
	if err := requestSchemaCompiled.Validate(doc); err != nil {
		return Request{}, &ExtractionError{Err: ErrInvalidRequest, Detail: err.Error()}
	}

	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return Request{}, &ExtractionError{Err: ErrInvalidRequest, Detail: err.Error()}
	}
	return req, nil
}

// Encode validates the request against the schema and returns its JSON form.
func (r Request) Encode() ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, &ExtractionError{Err: ErrInvalidRequest, Detail: err.Error()}
	}
	if _, err := DecodeRequest(data); err != nil {
		return nil, err
	}
	return data, nil
}
