// Package jsast defines the expression shapes a class-name sink can hold and the
// lexical scope model used to resolve identifiers back to their initializers.
//
// The node set is closed: every expression the host parser lowers is one of the
// Expr variants below, and anything the validator cannot decompose arrives as
// *Other. Positions are byte offsets into the source file.
package jsast

// Span is a half-open byte range [Start, End) in the source file.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Node is anything that occupies a source range.
type Node interface {
	Pos() Span
}

// Expr is an expression node. The set of implementations is closed.
type Expr interface {
	Node
	exprNode()
}

// StringLit is a string literal. Raw is the literal text exactly as written in
// the source, quotes included; Value is the decoded string value.
type StringLit struct {
	Span  Span
	Raw   string
	Value string
}

// Ident is a reference to a binding by name.
type Ident struct {
	Span Span
	Name string
}

// Logical is a short-circuit expression (&&, ||, ??). Only Right can end up as
// the expression's value when the guard passes.
type Logical struct {
	Span     Span
	Operator string
	Left     Expr
	Right    Expr
}

// Conditional is a ternary expression.
type Conditional struct {
	Span       Span
	Test       Expr
	Consequent Expr
	Alternate  Expr
}

// Array is an array literal. Elements may be *Spread.
type Array struct {
	Span     Span
	Elements []Expr
}

// Spread is a spread element (...x) inside an array or object literal.
type Spread struct {
	Span     Span
	Argument Expr
}

// Object is an object literal.
type Object struct {
	Span       Span
	Properties []*Property
}

// Property is a single entry of an object literal. For spread entries Spread is
// set and Key/Value are nil. Computed reports a [key] property; shorthand
// properties carry the same *Ident as Key and Value.
type Property struct {
	Span     Span
	Key      Expr
	Value    Expr
	Computed bool
	Spread   *Spread
}

// Call is a call expression. Callee is the callee name when the callee is a
// plain identifier, and empty otherwise (member calls, IIFEs, ...).
type Call struct {
	Span       Span
	Callee     string
	CalleeSpan Span
	Args       []Expr
}

// Other is any expression outside the supported grammar. Kind is the parser's
// node type and is kept for diagnostics and debugging only.
type Other struct {
	Span Span
	Kind string
}

func (n *StringLit) Pos() Span   { return n.Span }
func (n *Ident) Pos() Span       { return n.Span }
func (n *Logical) Pos() Span     { return n.Span }
func (n *Conditional) Pos() Span { return n.Span }
func (n *Array) Pos() Span       { return n.Span }
func (n *Spread) Pos() Span      { return n.Span }
func (n *Object) Pos() Span      { return n.Span }
func (n *Property) Pos() Span    { return n.Span }
func (n *Call) Pos() Span        { return n.Span }
func (n *Other) Pos() Span       { return n.Span }

func (*StringLit) exprNode()   {}
func (*Ident) exprNode()       {}
func (*Logical) exprNode()     {}
func (*Conditional) exprNode() {}
func (*Array) exprNode()       {}
func (*Spread) exprNode()      {}
func (*Object) exprNode()      {}
func (*Call) exprNode()        {}
func (*Other) exprNode()       {}

// Attribute is a markup attribute sink such as className="...".
//
// Value is nil for a valueless attribute (<div className />). A quoted value is
// a *StringLit; an expression container holds its inner expression in Value and
// sets Container. Any other value form (an element, a fragment) is *Other.
type Attribute struct {
	Span      Span
	Name      string
	Value     Expr
	Container bool
}

func (n *Attribute) Pos() Span { return n.Span }

// Sink is a top-level validation target: an *Attribute or a builder *Call.
type Sink interface {
	Node
	// SinkName is the attribute name or the builder name.
	SinkName() string
}

// SinkName implements Sink.
func (n *Attribute) SinkName() string { return n.Name }

// SinkName implements Sink.
func (n *Call) SinkName() string { return n.Callee }
