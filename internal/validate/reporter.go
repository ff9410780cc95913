package validate

import (
	"github.com/yacobolo/classlint/internal/jsast"
	"github.com/yacobolo/classlint/internal/rawstring"
)

// Diagnostic is a single finding.
type Diagnostic struct {
	MessageID MessageID
	Params    map[string]string
	Span      jsast.Span
}

// Message renders the diagnostic text.
func (d Diagnostic) Message() string {
	return Render(d.MessageID, d.Params)
}

// Reporter collects diagnostics for one file. It is not safe for concurrent use.
//
// The current sink decides how "dynamic" findings are phrased: an attribute
// sink yields the *Value messages, a builder call the *Argument ones. Reporting
// a dynamic finding with no current sink is an invariant violation.
type Reporter struct {
	current     jsast.Sink
	diagnostics []Diagnostic
}

func NewReporter() *Reporter {
	return &Reporter{}
}

// SetCurrent sets the sink being validated; nil clears it.
func (r *Reporter) SetCurrent(sink jsast.Sink) {
	r.current = sink
}

// Current returns the sink being validated, or nil.
func (r *Reporter) Current() jsast.Sink {
	return r.current
}

// Diagnostics returns the findings in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// Reset drops collected findings and the current sink.
func (r *Reporter) Reset() {
	r.current = nil
	r.diagnostics = nil
}

func (r *Reporter) add(id MessageID, params map[string]string, span jsast.Span) {
	r.diagnostics = append(r.diagnostics, Diagnostic{MessageID: id, Params: params, Span: span})
}

// ReportUnknownClass reports a token of a string literal that is not a known class.
func (r *Reporter) ReportUnknownClass(tok rawstring.Token) {
	r.add(UnknownInLiteral, map[string]string{"name": tok.Text}, tok.Range)
}

// ReportUnknownClassName reports a whole name, such as a static object key,
// that is not a known class. The location is the node's own range.
func (r *Reporter) ReportUnknownClassName(name string, node jsast.Node) {
	r.add(UnknownInLiteral, map[string]string{"name": name}, node.Pos())
}

// ReportUnknownInValue reports an identifier whose value holds an unknown class.
func (r *Reporter) ReportUnknownInValue(node jsast.Node) {
	r.add(UnknownInValue, nil, node.Pos())
}

// ReportDynamicExpression reports an expression that cannot be checked statically.
func (r *Reporter) ReportDynamicExpression(node jsast.Node) {
	r.dynamic(false, node.Pos())
}

// ReportDynamicGlobal reports a reference to a declared global, plus one source
// finding for every annotation comment that declared it.
func (r *Reporter) ReportDynamicGlobal(ident *jsast.Ident, binding *jsast.Binding) {
	r.dynamic(false, ident.Pos())
	for _, comment := range binding.GlobalComments {
		r.dynamic(true, comment)
	}
}

// ReportDynamicDefinition reports a reference to a binding without a static
// value. The source finding covers the whole declarator for variables and the
// declared name otherwise.
func (r *Reporter) ReportDynamicDefinition(ident *jsast.Ident, binding *jsast.Binding, decl *jsast.Declaration) {
	source := decl.Name
	if decl.Kind == jsast.DeclVariable {
		source = decl.Node
	}
	r.dynamic(false, ident.Pos())
	r.dynamic(true, source)
}

func (r *Reporter) dynamic(source bool, span jsast.Span) {
	var id MessageID
	switch r.current.(type) {
	case *jsast.Call:
		id = DynamicTargetArgument
		if source {
			id = DynamicSourceArgument
		}
	case *jsast.Attribute:
		id = DynamicTargetValue
		if source {
			id = DynamicSourceValue
		}
	case nil:
		invariant(nil, "dynamic finding reported outside of a sink")
	default:
		invariant(nil, "unexpected sink type %T", r.current)
	}

	r.add(id, map[string]string{"name": r.current.SinkName()}, span)
}
