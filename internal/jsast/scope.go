package jsast

// DeclKind classifies how a binding was introduced.
type DeclKind int

const (
	// DeclVariable is a var/let/const declarator.
	DeclVariable DeclKind = iota
	// DeclParameter is a function or catch-clause parameter.
	DeclParameter
	// DeclFunction is a function declaration or named function expression.
	DeclFunction
	// DeclClass is a class declaration.
	DeclClass
	// DeclImport is an import binding.
	DeclImport
)

func (k DeclKind) String() string {
	switch k {
	case DeclVariable:
		return "variable"
	case DeclParameter:
		return "parameter"
	case DeclFunction:
		return "function"
	case DeclClass:
		return "class"
	case DeclImport:
		return "import"
	default:
		return "unknown"
	}
}

// Declaration is one declaration site of a binding.
//
// Node covers the whole declaring construct (the variable declarator, the
// parameter, the import specifier); Name covers the declared identifier.
// Init is only set for variable declarators with an initializer, and Scope is
// the scope Init is evaluated in (nil when the host does not track it).
type Declaration struct {
	Kind  DeclKind
	Node  Span
	Name  Span
	Init  Expr
	Scope Scope
}

// Binding is a named entry of a scope.
//
// A binding with no declarations is a declared global; GlobalComments then
// lists the spans of the annotation comments that introduced it, if any.
type Binding struct {
	Name           string
	Declarations   []Declaration
	GlobalComments []Span
}

// Scope is one level of the lexical scope chain. Implementations are supplied
// by the host parser.
type Scope interface {
	// Lookup returns the binding declared directly in this scope.
	Lookup(name string) (*Binding, bool)
	// Upper returns the enclosing scope, or nil for the outermost one.
	Upper() Scope
}
