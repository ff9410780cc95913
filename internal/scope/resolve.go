// Package scope resolves identifier references to their declaration through a
// lexical scope chain supplied by the host parser.
package scope

import (
	"errors"
	"fmt"

	"github.com/yacobolo/classlint/internal/jsast"
)

// ErrAmbiguousBinding is returned for a binding with more than one declaration
// site, as produced by a redeclared var or function.
var ErrAmbiguousBinding = errors.New("binding has more than one declaration")

// Outcome classifies a resolution.
type Outcome int

const (
	// Unresolved means no scope in the chain declares the name.
	Unresolved Outcome = iota
	// Global means the name is a declared global with no declaration site.
	Global
	// NoStaticValue means the single declaration carries no initializer the
	// validator can follow (a parameter, an import, an uninitialized let).
	NoStaticValue
	// Resolved means the name is a variable with an initializer in Init.
	Resolved
)

func (o Outcome) String() string {
	switch o {
	case Unresolved:
		return "unresolved"
	case Global:
		return "global"
	case NoStaticValue:
		return "no-static-value"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Resolution is the result of Resolve. Binding is set for every outcome except
// Unresolved; Declaration is set for NoStaticValue and Resolved.
type Resolution struct {
	Outcome     Outcome
	Binding     *jsast.Binding
	Declaration *jsast.Declaration
}

// Init returns the initializer of a Resolved resolution, or nil.
func (r Resolution) Init() jsast.Expr {
	if r.Outcome != Resolved {
		return nil
	}
	return r.Declaration.Init
}

// Lookup walks the chain from s outwards and returns the first binding named name.
func Lookup(name string, s jsast.Scope) (*jsast.Binding, bool) {
	for ; s != nil; s = s.Upper() {
		if b, ok := s.Lookup(name); ok {
			return b, true
		}
	}
	return nil, false
}

// Resolve finds the declaration name refers to from the scope s.
func Resolve(name string, s jsast.Scope) (Resolution, error) {
	binding, ok := Lookup(name, s)
	if !ok {
		return Resolution{Outcome: Unresolved}, nil
	}

	switch len(binding.Declarations) {
	case 0:
		return Resolution{Outcome: Global, Binding: binding}, nil
	case 1:
	default:
		return Resolution{}, fmt.Errorf("%w: %q has %d", ErrAmbiguousBinding, name, len(binding.Declarations))
	}

	decl := &binding.Declarations[0]
	if decl.Kind != jsast.DeclVariable || decl.Init == nil {
		return Resolution{Outcome: NoStaticValue, Binding: binding, Declaration: decl}, nil
	}

	return Resolution{Outcome: Resolved, Binding: binding, Declaration: decl}, nil
}
