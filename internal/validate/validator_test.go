package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/classlint/internal/jsast"
	"github.com/yacobolo/classlint/internal/rawstring"
	"github.com/yacobolo/classlint/internal/scope"
)

type classSet map[string]bool

func (c classSet) Has(name string) bool { return c[name] }

type testScope struct {
	bindings map[string]*jsast.Binding
	upper    jsast.Scope
}

func (s *testScope) Lookup(name string) (*jsast.Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

func (s *testScope) Upper() jsast.Scope { return s.upper }

var defaultBuilders = []string{"clsx", "classcat", "classnames", "classNames"}

// lit builds a double-quoted literal starting at offset start.
func lit(start int, value string) *jsast.StringLit {
	raw := `"` + value + `"`
	return &jsast.StringLit{Span: jsast.Span{Start: start, End: start + len(raw)}, Raw: raw, Value: value}
}

func ident(start int, name string) *jsast.Ident {
	return &jsast.Ident{Span: jsast.Span{Start: start, End: start + len(name)}, Name: name}
}

func classNameAttr(value jsast.Expr) *jsast.Attribute {
	return &jsast.Attribute{Span: jsast.Span{Start: 0, End: 100}, Name: "className", Value: value, Container: true}
}

func ids(diags []Diagnostic) []MessageID {
	out := make([]MessageID, 0, len(diags))
	for _, d := range diags {
		out = append(out, d.MessageID)
	}
	return out
}

func TestUnknownClassInLiteral(t *testing.T) {
	classes := classSet{"text-white": true, "bg-black": true}
	r := NewReporter()
	v := New(classes, defaultBuilders, r)

	attr := &jsast.Attribute{Name: "className", Value: lit(0, "text-white bg-missing")}
	valid, err := v.ValidateAttribute(attr, nil)
	require.NoError(t, err)
	assert.False(t, valid)

	diags := r.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, UnknownInLiteral, diags[0].MessageID)
	assert.Equal(t, "bg-missing", diags[0].Params["name"])
	assert.Equal(t, jsast.Span{Start: 13, End: 23}, diags[0].Span)
	assert.Equal(t, 10, diags[0].Span.Len())
	assert.Equal(t, "Unknown utility or component class 'bg-missing'.", diags[0].Message())
}

func TestIdentifierValueWithUnknownClass(t *testing.T) {
	// const cls = "p-1 unknownCls"; <div className={cls} />
	src := `const cls = "p-1 unknownCls"; <div className={cls} />`
	initStart := strings.Index(src, `"`)
	useStart := strings.Index(src, "{cls}") + 1

	decl := jsast.Declaration{
		Kind: jsast.DeclVariable,
		Node: jsast.Span{Start: 6, End: 28},
		Name: jsast.Span{Start: 6, End: 9},
		Init: lit(initStart, "p-1 unknownCls"),
	}
	program := &testScope{bindings: map[string]*jsast.Binding{
		"cls": {Name: "cls", Declarations: []jsast.Declaration{decl}},
	}}

	r := NewReporter()
	v := New(classSet{"p-1": true}, defaultBuilders, r)

	valid, err := v.ValidateAttribute(classNameAttr(ident(useStart, "cls")), program)
	require.NoError(t, err)
	assert.False(t, valid)

	diags := r.Diagnostics()
	require.Len(t, diags, 2)
	assert.Equal(t, UnknownInLiteral, diags[0].MessageID)
	assert.Equal(t, "unknownCls", diags[0].Params["name"])
	assert.Equal(t, "unknownCls", src[diags[0].Span.Start:diags[0].Span.End])
	assert.Equal(t, UnknownInValue, diags[1].MessageID)
	assert.Equal(t, "cls", src[diags[1].Span.Start:diags[1].Span.End])
}

func TestObjectKeysInBuilderCall(t *testing.T) {
	// clsx({ "text-white": cond, "not-a-class": other })
	src := `clsx({ "text-white": cond, "not-a-class": other })`
	white := lit(strings.Index(src, `"text-white"`), "text-white")
	missing := lit(strings.Index(src, `"not-a-class"`), "not-a-class")

	call := &jsast.Call{
		Span:   jsast.Span{Start: 0, End: len(src)},
		Callee: "clsx",
		Args: []jsast.Expr{&jsast.Object{Properties: []*jsast.Property{
			{Key: white, Value: ident(21, "cond")},
			{Key: missing, Value: ident(42, "other")},
		}}},
	}

	r := NewReporter()
	v := New(classSet{"text-white": true}, defaultBuilders, r)

	valid, err := v.ValidateCall(call, nil)
	require.NoError(t, err)
	assert.False(t, valid)

	diags := r.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, UnknownInLiteral, diags[0].MessageID)
	assert.Equal(t, "not-a-class", diags[0].Params["name"])
	assert.Equal(t, `"not-a-class"`, src[diags[0].Span.Start:diags[0].Span.End])
}

func TestConditionalVisitsBothBranches(t *testing.T) {
	cond := &jsast.Conditional{
		Test:       ident(1, "on"),
		Consequent: lit(10, "bad-a"),
		Alternate:  lit(20, "bad-b"),
	}

	r := NewReporter()
	v := New(classSet{}, defaultBuilders, r)
	valid, err := v.ValidateAttribute(classNameAttr(cond), nil)
	require.NoError(t, err)
	assert.False(t, valid)

	// same findings as validating each branch on its own
	separate := NewReporter()
	sv := New(classSet{}, defaultBuilders, separate)
	_, err = sv.ValidateAttribute(classNameAttr(cond.Consequent), nil)
	require.NoError(t, err)
	_, err = sv.ValidateAttribute(classNameAttr(cond.Alternate), nil)
	require.NoError(t, err)

	assert.Equal(t, separate.Diagnostics(), r.Diagnostics())
	require.Len(t, r.Diagnostics(), 2)
}

func TestBuilderTrust(t *testing.T) {
	globals := &testScope{bindings: map[string]*jsast.Binding{
		"someUndeclaredGlobal": {Name: "someUndeclaredGlobal"},
	}}
	call := &jsast.Call{
		Span:   jsast.Span{Start: 11, End: 37},
		Callee: "clsx",
		Args:   []jsast.Expr{ident(16, "someUndeclaredGlobal")},
	}

	t.Run("configured builder", func(t *testing.T) {
		r := NewReporter()
		v := New(classSet{}, []string{"clsx"}, r)

		valid, err := v.ValidateAttribute(classNameAttr(call), globals)
		require.NoError(t, err)
		assert.True(t, valid)
		assert.Empty(t, r.Diagnostics())
	})

	t.Run("builder removed", func(t *testing.T) {
		r := NewReporter()
		v := New(classSet{}, []string{"classnames"}, r)

		valid, err := v.ValidateAttribute(classNameAttr(call), globals)
		require.NoError(t, err)
		assert.False(t, valid)
		require.Len(t, r.Diagnostics(), 1)
		assert.Equal(t, DynamicTargetValue, r.Diagnostics()[0].MessageID)
		assert.Equal(t, call.Span, r.Diagnostics()[0].Span)
		assert.Equal(t, "Unexpected dynamic 'className' value.", r.Diagnostics()[0].Message())
	})
}

func TestValidateAttributeValueForms(t *testing.T) {
	tests := []struct {
		name  string
		attr  *jsast.Attribute
		valid bool
		want  []MessageID
	}{
		{
			name:  "no value",
			attr:  &jsast.Attribute{Name: "class"},
			valid: true,
		},
		{
			name:  "quoted known",
			attr:  &jsast.Attribute{Name: "class", Value: lit(7, "btn")},
			valid: true,
		},
		{
			name:  "non-container other value",
			attr:  &jsast.Attribute{Name: "class", Value: &jsast.Other{Kind: "jsx_element"}},
			valid: false,
			want:  []MessageID{DynamicTargetValue},
		},
		{
			name:  "logical validates the right operand only",
			attr:  classNameAttr(&jsast.Logical{Operator: "&&", Left: &jsast.Other{Kind: "call_expression"}, Right: lit(20, "btn")}),
			valid: true,
		},
		{
			name:  "array is not accepted in an attribute",
			attr:  classNameAttr(&jsast.Array{Elements: []jsast.Expr{lit(3, "btn")}}),
			valid: false,
			want:  []MessageID{DynamicTargetValue},
		},
		{
			name:  "template literal is dynamic",
			attr:  classNameAttr(&jsast.Other{Kind: "template_string"}),
			valid: false,
			want:  []MessageID{DynamicTargetValue},
		},
		{
			name:  "non-builder call is dynamic",
			attr:  classNameAttr(&jsast.Call{Callee: "cn"}),
			valid: false,
			want:  []MessageID{DynamicTargetValue},
		},
		{
			name:  "unresolved identifier is left alone",
			attr:  classNameAttr(ident(12, "undeclared")),
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReporter()
			v := New(classSet{"btn": true}, defaultBuilders, r)

			valid, err := v.ValidateAttribute(tt.attr, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.want, nilIfEmpty(ids(r.Diagnostics())))
			assert.Nil(t, r.Current())
		})
	}
}

func TestValidateCallArguments(t *testing.T) {
	tests := []struct {
		name  string
		args  []jsast.Expr
		valid bool
		want  []MessageID
	}{
		{
			name:  "array with spread",
			args:  []jsast.Expr{&jsast.Array{Elements: []jsast.Expr{lit(5, "btn"), &jsast.Spread{Argument: &jsast.Array{Elements: []jsast.Expr{lit(20, "nope")}}}}}},
			valid: false,
			want:  []MessageID{UnknownInLiteral},
		},
		{
			name:  "empty array",
			args:  []jsast.Expr{&jsast.Array{}},
			valid: true,
		},
		{
			name: "identifier key must be a known class",
			args: []jsast.Expr{&jsast.Object{Properties: []*jsast.Property{
				{Key: ident(7, "btn"), Value: ident(12, "on")},
				{Key: ident(16, "card"), Value: ident(22, "on")},
			}}},
			valid: false,
			want:  []MessageID{UnknownInLiteral},
		},
		{
			name: "static key is not split on whitespace",
			args: []jsast.Expr{&jsast.Object{Properties: []*jsast.Property{
				{Key: lit(7, "btn btn"), Value: ident(18, "on")},
			}}},
			valid: false,
			want:  []MessageID{UnknownInLiteral},
		},
		{
			name: "computed key uses the attribute grammar",
			args: []jsast.Expr{&jsast.Object{Properties: []*jsast.Property{
				{Key: &jsast.Array{Elements: []jsast.Expr{lit(9, "btn")}}, Value: ident(20, "on"), Computed: true},
			}}},
			valid: false,
			want:  []MessageID{DynamicTargetArgument},
		},
		{
			name: "computed literal key is tokenized",
			args: []jsast.Expr{&jsast.Object{Properties: []*jsast.Property{
				{Key: lit(8, "btn nope"), Value: ident(20, "on"), Computed: true},
			}}},
			valid: false,
			want:  []MessageID{UnknownInLiteral},
		},
		{
			name: "spread property is validated as an argument",
			args: []jsast.Expr{&jsast.Object{Properties: []*jsast.Property{
				{Spread: &jsast.Spread{Argument: &jsast.Object{Properties: []*jsast.Property{
					{Key: ident(12, "nope"), Value: ident(18, "on")},
				}}}},
			}}},
			valid: false,
			want:  []MessageID{UnknownInLiteral},
		},
		{
			name: "property values are not checked",
			args: []jsast.Expr{&jsast.Object{Properties: []*jsast.Property{
				{Key: ident(7, "btn"), Value: &jsast.Other{Kind: "call_expression"}},
			}}},
			valid: true,
		},
		{
			name: "numeric key is dynamic",
			args: []jsast.Expr{&jsast.Object{Properties: []*jsast.Property{
				{Key: &jsast.Other{Kind: "number"}, Value: ident(10, "on")},
			}}},
			valid: false,
			want:  []MessageID{DynamicTargetArgument},
		},
		{
			name:  "nested builder is trusted",
			args:  []jsast.Expr{&jsast.Call{Callee: "classnames", Args: []jsast.Expr{&jsast.Other{Kind: "member_expression"}}}},
			valid: true,
		},
		{
			name:  "every argument is reported",
			args:  []jsast.Expr{lit(5, "nope"), &jsast.Other{Kind: "member_expression"}, lit(20, "btn")},
			valid: false,
			want:  []MessageID{UnknownInLiteral, DynamicTargetArgument},
		},
		{
			name:  "no arguments",
			valid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReporter()
			v := New(classSet{"btn": true}, defaultBuilders, r)

			call := &jsast.Call{Callee: "clsx", Args: tt.args}
			valid, err := v.ValidateCall(call, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.want, nilIfEmpty(ids(r.Diagnostics())))
			for _, d := range r.Diagnostics() {
				if d.MessageID == DynamicTargetArgument {
					assert.Equal(t, "clsx", d.Params["name"])
				}
			}
		})
	}
}

func TestDynamicSources(t *testing.T) {
	param := jsast.Declaration{
		Kind: jsast.DeclParameter,
		Node: jsast.Span{Start: 10, End: 25},
		Name: jsast.Span{Start: 10, End: 15},
	}
	uninitialized := jsast.Declaration{
		Kind: jsast.DeclVariable,
		Node: jsast.Span{Start: 40, End: 45},
		Name: jsast.Span{Start: 40, End: 45},
	}
	s := &testScope{bindings: map[string]*jsast.Binding{
		"props": {Name: "props", Declarations: []jsast.Declaration{param}},
		"later": {Name: "later", Declarations: []jsast.Declaration{uninitialized}},
		"theme": {Name: "theme", GlobalComments: []jsast.Span{{Start: 0, End: 18}, {Start: 19, End: 40}}},
	}}

	tests := []struct {
		name  string
		ident string
		want  []Diagnostic
	}{
		{
			name:  "parameter",
			ident: "props",
			want: []Diagnostic{
				{MessageID: DynamicTargetArgument, Params: map[string]string{"name": "clsx"}, Span: jsast.Span{Start: 80, End: 85}},
				{MessageID: DynamicSourceArgument, Params: map[string]string{"name": "clsx"}, Span: param.Name},
			},
		},
		{
			name:  "variable without initializer",
			ident: "later",
			want: []Diagnostic{
				{MessageID: DynamicTargetArgument, Params: map[string]string{"name": "clsx"}, Span: jsast.Span{Start: 80, End: 85}},
				{MessageID: DynamicSourceArgument, Params: map[string]string{"name": "clsx"}, Span: uninitialized.Node},
			},
		},
		{
			name:  "declared global",
			ident: "theme",
			want: []Diagnostic{
				{MessageID: DynamicTargetArgument, Params: map[string]string{"name": "clsx"}, Span: jsast.Span{Start: 80, End: 85}},
				{MessageID: DynamicSourceArgument, Params: map[string]string{"name": "clsx"}, Span: jsast.Span{Start: 0, End: 18}},
				{MessageID: DynamicSourceArgument, Params: map[string]string{"name": "clsx"}, Span: jsast.Span{Start: 19, End: 40}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReporter()
			v := New(classSet{}, defaultBuilders, r)

			use := &jsast.Ident{Span: jsast.Span{Start: 80, End: 85}, Name: tt.ident}
			valid, err := v.ValidateCall(&jsast.Call{Callee: "clsx", Args: []jsast.Expr{use}}, s)
			require.NoError(t, err)
			assert.False(t, valid)
			assert.Equal(t, tt.want, r.Diagnostics())
		})
	}
}

func TestIdentifierUsesDeclarationGrammar(t *testing.T) {
	arr := &jsast.Array{Elements: []jsast.Expr{lit(14, "btn")}}
	s := &testScope{bindings: map[string]*jsast.Binding{
		"list": {Name: "list", Declarations: []jsast.Declaration{{Kind: jsast.DeclVariable, Init: arr}}},
	}}

	t.Run("argument", func(t *testing.T) {
		r := NewReporter()
		v := New(classSet{"btn": true}, defaultBuilders, r)
		valid, err := v.ValidateCall(&jsast.Call{Callee: "clsx", Args: []jsast.Expr{ident(40, "list")}}, s)
		require.NoError(t, err)
		assert.True(t, valid)
		assert.Empty(t, r.Diagnostics())
	})

	t.Run("attribute", func(t *testing.T) {
		r := NewReporter()
		v := New(classSet{"btn": true}, defaultBuilders, r)
		valid, err := v.ValidateAttribute(classNameAttr(ident(40, "list")), s)
		require.NoError(t, err)
		assert.False(t, valid)
		assert.Equal(t, []MessageID{DynamicTargetValue, UnknownInValue}, ids(r.Diagnostics()))
	})
}

func TestInitializerResolvesInDeclarationScope(t *testing.T) {
	program := &testScope{bindings: map[string]*jsast.Binding{
		"base": {Name: "base", Declarations: []jsast.Declaration{{Kind: jsast.DeclVariable, Init: lit(13, "btn")}}},
	}}
	program.bindings["cls"] = &jsast.Binding{Name: "cls", Declarations: []jsast.Declaration{
		{Kind: jsast.DeclVariable, Init: ident(30, "base"), Scope: program},
	}}
	// a parameter named base shadows the outer one at the use site only
	function := &testScope{
		bindings: map[string]*jsast.Binding{
			"base": {Name: "base", Declarations: []jsast.Declaration{{Kind: jsast.DeclParameter}}},
		},
		upper: program,
	}

	r := NewReporter()
	v := New(classSet{"btn": true}, defaultBuilders, r)
	valid, err := v.ValidateAttribute(classNameAttr(ident(60, "cls")), function)
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Empty(t, r.Diagnostics())
}

func TestSelfReferentialInitializer(t *testing.T) {
	s := &testScope{bindings: map[string]*jsast.Binding{}}
	s.bindings["a"] = &jsast.Binding{Name: "a", Declarations: []jsast.Declaration{{Kind: jsast.DeclVariable, Init: ident(20, "b")}}}
	s.bindings["b"] = &jsast.Binding{Name: "b", Declarations: []jsast.Declaration{{Kind: jsast.DeclVariable, Init: ident(40, "a")}}}

	r := NewReporter()
	v := New(classSet{}, defaultBuilders, r)
	valid, err := v.ValidateAttribute(classNameAttr(ident(60, "a")), s)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, []MessageID{DynamicTargetValue, UnknownInValue, UnknownInValue}, ids(r.Diagnostics()))
}

func TestInvariantViolations(t *testing.T) {
	t.Run("literal value does not match raw text", func(t *testing.T) {
		r := NewReporter()
		v := New(classSet{}, defaultBuilders, r)

		bad := &jsast.StringLit{Raw: `"abc"`, Value: "xyz"}
		valid, err := v.ValidateAttribute(classNameAttr(bad), nil)
		assert.False(t, valid)

		var ie *InvariantError
		require.ErrorAs(t, err, &ie)
		require.ErrorIs(t, err, rawstring.ErrRawMismatch)
		assert.Nil(t, r.Current())
	})

	t.Run("binding with two declarations", func(t *testing.T) {
		s := &testScope{bindings: map[string]*jsast.Binding{
			"x": {Name: "x", Declarations: make([]jsast.Declaration, 2)},
		}}
		r := NewReporter()
		v := New(classSet{}, defaultBuilders, r)

		_, err := v.ValidateCall(&jsast.Call{Callee: "clsx", Args: []jsast.Expr{ident(5, "x")}}, s)
		require.ErrorIs(t, err, scope.ErrAmbiguousBinding)
		assert.Nil(t, r.Current())
	})

	t.Run("call without identifier callee", func(t *testing.T) {
		v := New(classSet{}, defaultBuilders, NewReporter())
		_, err := v.ValidateCall(&jsast.Call{}, nil)
		var ie *InvariantError
		require.ErrorAs(t, err, &ie)
	})

	t.Run("dynamic finding outside a sink", func(t *testing.T) {
		r := NewReporter()
		assert.PanicsWithError(t, "invariant violation: dynamic finding reported outside of a sink", func() {
			r.ReportDynamicExpression(ident(0, "x"))
		})
	})
}

func nilIfEmpty(in []MessageID) []MessageID {
	if len(in) == 0 {
		return nil
	}
	return in
}
