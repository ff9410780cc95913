package rule

import "github.com/santhosh-tekuri/jsonschema/v5"

// The four branches allow either list to be emptied only when the other is
// given and non-empty.
const optionsSchemaSource = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"definitions": {
		"config": {
			"title": "Class Compiler Configuration",
			"description": "A Tailwind config path relative to the working directory, or a selector object.",
			"oneOf": [
				{"type": ["string", "null"]},
				{
					"type": "object",
					"properties": {"postcss": {"type": "boolean", "enum": [true]}},
					"additionalProperties": false,
					"required": ["postcss"]
				},
				{
					"type": "object",
					"properties": {"tailwind": {"type": ["string", "null"]}},
					"additionalProperties": false,
					"required": ["tailwind"]
				}
			]
		},
		"stylesheet": {
			"title": "Input Stylesheet",
			"description": "The path to the source stylesheet, relative to the working directory.",
			"type": ["string", "null"]
		},
		"classNameAttributes": {
			"title": "Class Attributes",
			"description": "Markup attribute names holding class names.",
			"type": "array",
			"items": {"type": "string"}
		},
		"classNameBuilders": {
			"title": "Class Name Builder Functions",
			"description": "Names of functions that build class name values.",
			"type": "array",
			"items": {"type": "string"}
		}
	},
	"oneOf": [
		{
			"properties": {
				"config": {"$ref": "#/definitions/config"},
				"stylesheet": {"$ref": "#/definitions/stylesheet"}
			},
			"additionalProperties": false
		},
		{
			"properties": {
				"config": {"$ref": "#/definitions/config"},
				"stylesheet": {"$ref": "#/definitions/stylesheet"},
				"classNameAttributes": {"allOf": [{"$ref": "#/definitions/classNameAttributes"}, {"minItems": 1}]},
				"classNameBuilders": {"allOf": [{"$ref": "#/definitions/classNameBuilders"}, {"maxItems": 0}]}
			},
			"additionalProperties": false,
			"required": ["classNameAttributes"]
		},
		{
			"properties": {
				"config": {"$ref": "#/definitions/config"},
				"stylesheet": {"$ref": "#/definitions/stylesheet"},
				"classNameAttributes": {"allOf": [{"$ref": "#/definitions/classNameAttributes"}, {"maxItems": 0}]},
				"classNameBuilders": {"allOf": [{"$ref": "#/definitions/classNameBuilders"}, {"minItems": 1}]}
			},
			"additionalProperties": false,
			"required": ["classNameBuilders"]
		},
		{
			"properties": {
				"config": {"$ref": "#/definitions/config"},
				"stylesheet": {"$ref": "#/definitions/stylesheet"},
				"classNameAttributes": {"allOf": [{"$ref": "#/definitions/classNameAttributes"}, {"minItems": 1}]},
				"classNameBuilders": {"allOf": [{"$ref": "#/definitions/classNameBuilders"}, {"minItems": 1}]}
			},
			"additionalProperties": false,
			"required": ["classNameAttributes", "classNameBuilders"]
		}
	]
}`

var optionsSchema = jsonschema.MustCompileString("classlint://rule-options.json", optionsSchemaSource)

// Schema returns the JSON schema of the rule configuration document.
func Schema() string {
	return optionsSchemaSource
}
