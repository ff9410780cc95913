// Package validate decides whether class-name sinks are built only from known
// classes, reporting unknown names and expressions it cannot follow.
package validate

import (
	"slices"

	"github.com/yacobolo/classlint/internal/jsast"
	"github.com/yacobolo/classlint/internal/rawstring"
	"github.com/yacobolo/classlint/internal/scope"
)

// ClassSet is the vocabulary of known class names.
type ClassSet interface {
	Has(name string) bool
}

// grammar selects which node kinds are accepted besides the shared ones.
type grammar int

const (
	// attributeValue is the grammar of an attribute expression container.
	attributeValue grammar = iota
	// argument is the grammar of a builder call argument. It also accepts
	// array and object literals.
	argument
)

// Validator checks sinks against a vocabulary. A Validator is bound to one
// Reporter and is not safe for concurrent use.
type Validator struct {
	classes  ClassSet
	builders []string
	reporter *Reporter

	scope     jsast.Scope
	resolving map[*jsast.Declaration]bool
}

// New returns a Validator. builders lists the trusted class-name builder functions.
func New(classes ClassSet, builders []string, reporter *Reporter) *Validator {
	return &Validator{
		classes:  classes,
		builders: builders,
		reporter: reporter,
	}
}

// ValidateAttribute checks a class attribute. s is the scope enclosing it.
// The returned error is non-nil only for an *InvariantError.
func (v *Validator) ValidateAttribute(attr *jsast.Attribute, s jsast.Scope) (valid bool, err error) {
	v.begin(attr, s)
	defer v.finish(&valid, &err)

	if attr.Value == nil {
		return true, nil
	}
	if !attr.Container {
		if lit, ok := attr.Value.(*jsast.StringLit); ok {
			return v.validateLiteral(lit), nil
		}
		v.reporter.ReportDynamicExpression(attr.Value)
		return false, nil
	}

	return v.validate(attr.Value, attributeValue), nil
}

// ValidateCall checks the arguments of a builder call. s is the scope enclosing it.
func (v *Validator) ValidateCall(call *jsast.Call, s jsast.Scope) (valid bool, err error) {
	v.begin(call, s)
	defer v.finish(&valid, &err)

	if call.Callee == "" {
		invariant(nil, "builder call without an identifier callee")
	}

	valid = true
	for _, arg := range call.Args {
		if !v.validate(arg, argument) {
			valid = false
		}
	}
	return valid, nil
}

func (v *Validator) begin(sink jsast.Sink, s jsast.Scope) {
	v.scope = s
	v.resolving = make(map[*jsast.Declaration]bool)
	v.reporter.SetCurrent(sink)
}

func (v *Validator) finish(valid *bool, err *error) {
	v.reporter.SetCurrent(nil)
	v.scope = nil
	v.resolving = nil

	if r := recover(); r != nil {
		ie, ok := r.(*InvariantError)
		if !ok {
			panic(r)
		}
		*valid = false
		*err = ie
	}
}

func (v *Validator) validate(e jsast.Expr, g grammar) bool {
	switch n := e.(type) {
	case *jsast.StringLit:
		return v.validateLiteral(n)
	case *jsast.Ident:
		return v.validateIdentifier(n, g)
	case *jsast.Logical:
		// the left operand is a guard
		return v.validate(n.Right, g)
	case *jsast.Conditional:
		consequent := v.validate(n.Consequent, g)
		alternate := v.validate(n.Alternate, g)
		return consequent && alternate
	case *jsast.Array:
		if g == argument {
			return v.validateArray(n)
		}
	case *jsast.Object:
		if g == argument {
			return v.validateObject(n)
		}
	case *jsast.Call:
		if v.isBuilder(n) {
			return true
		}
	case nil:
		invariant(nil, "nil expression")
	}

	v.reporter.ReportDynamicExpression(e)
	return false
}

func (v *Validator) validateLiteral(lit *jsast.StringLit) bool {
	tokens, err := rawstring.ExtractTokens(lit.Raw, lit.Value, lit.Span.Start)
	if err != nil {
		invariant(err, "string literal at %d", lit.Span.Start)
	}

	valid := true
	for _, tok := range tokens {
		if !v.classes.Has(tok.Text) {
			v.reporter.ReportUnknownClass(tok)
			valid = false
		}
	}
	return valid
}

func (v *Validator) validateIdentifier(ident *jsast.Ident, g grammar) bool {
	res, err := scope.Resolve(ident.Name, v.scope)
	if err != nil {
		invariant(err, "identifier %q", ident.Name)
	}

	switch res.Outcome {
	case scope.Unresolved:
		// undefined references are left to other checks
		return true
	case scope.Global:
		v.reporter.ReportDynamicGlobal(ident, res.Binding)
		return false
	case scope.NoStaticValue:
		v.reporter.ReportDynamicDefinition(ident, res.Binding, res.Declaration)
		return false
	}

	decl := res.Declaration
	if v.resolving[decl] {
		// initializer refers back to itself
		v.reporter.ReportDynamicExpression(ident)
		return false
	}
	v.resolving[decl] = true
	outer := v.scope
	if decl.Scope != nil {
		v.scope = decl.Scope
	}

	valid := v.validate(decl.Init, g)

	v.scope = outer
	delete(v.resolving, decl)

	if !valid {
		v.reporter.ReportUnknownInValue(ident)
	}
	return valid
}

func (v *Validator) validateArray(arr *jsast.Array) bool {
	valid := true
	for _, el := range arr.Elements {
		if spread, ok := el.(*jsast.Spread); ok {
			el = spread.Argument
		}
		if !v.validate(el, argument) {
			valid = false
		}
	}
	return valid
}

func (v *Validator) validateObject(obj *jsast.Object) bool {
	valid := true
	for _, prop := range obj.Properties {
		if !v.validateProperty(prop) {
			valid = false
		}
	}
	return valid
}

// validateProperty checks a property key; values are conditions and are ignored.
func (v *Validator) validateProperty(prop *jsast.Property) bool {
	switch {
	case prop.Spread != nil:
		return v.validate(prop.Spread.Argument, argument)
	case prop.Computed:
		return v.validate(prop.Key, attributeValue)
	}

	var name string
	switch key := prop.Key.(type) {
	case *jsast.Ident:
		name = key.Name
	case *jsast.StringLit:
		name = key.Value
	case nil:
		invariant(nil, "object property without a key at %d", prop.Span.Start)
	default:
		v.reporter.ReportDynamicExpression(key)
		return false
	}

	if !v.classes.Has(name) {
		v.reporter.ReportUnknownClassName(name, prop.Key)
		return false
	}
	return true
}

func (v *Validator) isBuilder(call *jsast.Call) bool {
	return call.Callee != "" && slices.Contains(v.builders, call.Callee)
}
