package validate

import "strings"

// MessageID identifies a diagnostic message template.
type MessageID string

const (
	UnknownInLiteral      MessageID = "unknownInLiteral"
	UnknownInValue        MessageID = "unknownInValue"
	DynamicSourceArgument MessageID = "dynamicSourceArgument"
	DynamicSourceValue    MessageID = "dynamicSourceValue"
	DynamicTargetArgument MessageID = "dynamicTargetArgument"
	DynamicTargetValue    MessageID = "dynamicTargetValue"
)

// Messages is the message catalog. Templates interpolate {{param}} placeholders.
var Messages = map[MessageID]string{
	UnknownInLiteral:      "Unknown utility or component class '{{name}}'.",
	UnknownInValue:        "Unknown utility or component class in value.",
	DynamicSourceArgument: "Unexpected source of dynamic '{{name}}' argument.",
	DynamicSourceValue:    "Unexpected source of dynamic '{{name}}' value.",
	DynamicTargetArgument: "Unexpected dynamic '{{name}}' argument.",
	DynamicTargetValue:    "Unexpected dynamic '{{name}}' value.",
}

// Render interpolates params into the template for id.
func Render(id MessageID, params map[string]string) string {
	tmpl, ok := Messages[id]
	if !ok {
		return string(id)
	}
	if len(params) == 0 {
		return tmpl
	}

	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}
