// Package jsx parses JavaScript and TypeScript modules with tree-sitter and
// lowers their class-name sinks to jsast nodes, together with the lexical
// scope each sink is evaluated in.
package jsx

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/yacobolo/classlint/internal/jsast"
	"github.com/yacobolo/classlint/internal/rawstring"
	"github.com/yacobolo/classlint/internal/rule"
)

// ErrUnsupportedFile is returned for a path with no known grammar.
var ErrUnsupportedFile = errors.New("unsupported source file")

// Extensions are the file extensions ParseFile understands.
var Extensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}

// Sink is a class-name sink and the scope its expressions resolve in.
type Sink struct {
	Node  jsast.Sink
	Scope jsast.Scope
}

// File is a parsed source file.
type File struct {
	Path   string
	Source []byte
	// Sinks are in source order; an attribute precedes the sinks nested in it.
	Sinks []Sink
	// SyntaxErrors is set when the parser had to recover from malformed input.
	SyntaxErrors bool

	lines []int
}

func language(path string) *sitter.Language {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js", ".jsx", ".mjs", ".cjs":
		return javascript.GetLanguage()
	case ".tsx":
		return tsx.GetLanguage()
	case ".ts", ".mts", ".cts":
		return typescript.GetLanguage()
	default:
		return nil
	}
}

// Supported reports whether path has a known grammar.
func Supported(path string) bool {
	return language(path) != nil
}

// ParseFile parses src and collects the sinks selected by opts: attributes
// named in ClassNameAttributes and calls of ClassNameBuilders.
func ParseFile(ctx context.Context, path string, src []byte, opts rule.Options) (*File, error) {
	lang := language(path)
	if lang == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang)

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("parse %s: no syntax tree", path)
	}

	global := newScope(nil, globalScope)
	b := &builder{src: src, opts: opts, global: global}
	b.walkChildren(root, newScope(global, moduleScope))

	return &File{
		Path:         path,
		Source:       src,
		Sinks:        b.sinks,
		SyntaxErrors: root.HasError(),
		lines:        lineStarts(src),
	}, nil
}

type builder struct {
	src    []byte
	opts   rule.Options
	global *scope
	sinks  []Sink
}

func (b *builder) text(n *sitter.Node) string {
	return n.Content(b.src)
}

func span(n *sitter.Node) jsast.Span {
	return jsast.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

// namedChildren returns the named children of n, comments excluded.
func namedChildren(n *sitter.Node) []*sitter.Node {
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := range count {
		c := n.NamedChild(i)
		if c == nil || c.Type() == "comment" {
			continue
		}
		out = append(out, c)
	}
	return out
}

func (b *builder) walkChildren(n *sitter.Node, s *scope) {
	for i := range int(n.NamedChildCount()) {
		if c := n.NamedChild(i); c != nil {
			b.walk(c, s)
		}
	}
}

// walk builds scopes and collects sinks below n.
func (b *builder) walk(n *sitter.Node, s *scope) {
	switch n.Type() {
	case "comment":
		b.globalComment(n)

	case "import_statement":
		b.importBindings(n, s)

	case "lexical_declaration", "variable_declaration":
		target := s
		if declarationKeyword(n) == "var" {
			target = s.hoistTarget()
		}
		for _, d := range namedChildren(n) {
			if d.Type() == "variable_declarator" {
				b.declarator(d, target, s)
			}
		}

	case "function_declaration", "generator_function_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			s.declare(b.text(name), jsast.Declaration{Kind: jsast.DeclFunction, Node: span(n), Name: span(name)})
		}
		b.function(n, s, false)

	case "function", "function_expression", "generator_function", "arrow_function":
		b.function(n, s, true)

	case "method_definition":
		if name := n.ChildByFieldName("name"); name != nil {
			b.walk(name, s)
		}
		b.function(n, s, false)

	case "class_declaration":
		if name := n.ChildByFieldName("name"); name != nil {
			s.declare(b.text(name), jsast.Declaration{Kind: jsast.DeclClass, Node: span(n), Name: span(name)})
		}
		b.walkChildren(n, s)

	case "class":
		inner := s
		if name := n.ChildByFieldName("name"); name != nil {
			inner = newScope(s, blockScope)
			inner.declare(b.text(name), jsast.Declaration{Kind: jsast.DeclClass, Node: span(n), Name: span(name)})
		}
		b.walkChildren(n, inner)

	case "statement_block", "switch_body", "class_static_block":
		b.walkChildren(n, newScope(s, blockScope))

	case "for_statement":
		b.walkChildren(n, newScope(s, blockScope))

	case "for_in_statement":
		b.forIn(n, s)

	case "catch_clause":
		cs := newScope(s, blockScope)
		if p := n.ChildByFieldName("parameter"); p != nil {
			b.bindPattern(p, cs, jsast.DeclParameter, span(p), cs)
		}
		if body := n.ChildByFieldName("body"); body != nil {
			b.walk(body, cs)
		}

	case "jsx_attribute":
		if attr := b.attribute(n); attr != nil {
			b.sinks = append(b.sinks, Sink{Node: attr, Scope: s})
		}
		b.walkChildren(n, s)

	case "call_expression":
		if fn := n.ChildByFieldName("function"); fn != nil && fn.Type() == "identifier" && b.opts.IsBuilder(b.text(fn)) {
			if call, ok := b.lower(n).(*jsast.Call); ok {
				b.sinks = append(b.sinks, Sink{Node: call, Scope: s})
			}
		}
		b.walkChildren(n, s)

	default:
		b.walkChildren(n, s)
	}
}

// function opens a function scope for a function-like node. Named function
// expressions see their own name.
func (b *builder) function(n *sitter.Node, s *scope, bindName bool) {
	fn := newScope(s, functionScope)
	if name := n.ChildByFieldName("name"); bindName && name != nil {
		fn.declare(b.text(name), jsast.Declaration{Kind: jsast.DeclFunction, Node: span(n), Name: span(name)})
	}

	// arrow functions with a single bare parameter
	if p := n.ChildByFieldName("parameter"); p != nil {
		b.bindPattern(p, fn, jsast.DeclParameter, span(p), fn)
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		for _, p := range namedChildren(params) {
			b.bindPattern(p, fn, jsast.DeclParameter, span(p), fn)
		}
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return
	}
	if body.Type() == "statement_block" {
		b.walkChildren(body, fn)
		return
	}
	b.walk(body, fn)
}

// forIn handles for-in and for-of loops, whose head may declare the loop variable.
func (b *builder) forIn(n *sitter.Node, s *scope) {
	fs := newScope(s, blockScope)

	if left := n.ChildByFieldName("left"); left != nil {
		switch keyword := declarationKeyword(n); keyword {
		case "":
			b.walk(left, fs)
		case "var":
			b.bindPattern(left, s.hoistTarget(), jsast.DeclVariable, span(left), fs)
		default:
			b.bindPattern(left, fs, jsast.DeclVariable, span(left), fs)
		}
	}
	if right := n.ChildByFieldName("right"); right != nil {
		b.walk(right, fs)
	}
	if body := n.ChildByFieldName("body"); body != nil {
		b.walk(body, fs)
	}
}

// attribute lowers a jsx_attribute, or returns nil when its name is not a
// class-name attribute.
func (b *builder) attribute(n *sitter.Node) *jsast.Attribute {
	children := namedChildren(n)
	if len(children) == 0 {
		return nil
	}

	name := b.text(children[0])
	if !b.opts.IsAttribute(name) {
		return nil
	}

	attr := &jsast.Attribute{Span: span(n), Name: name}
	if len(children) < 2 {
		return attr
	}

	value := children[1]
	switch value.Type() {
	case "string", "jsx_string":
		// markup strings have no escapes
		raw := b.text(value)
		if len(raw) < 2 {
			attr.Value = &jsast.Other{Span: span(value), Kind: value.Type()}
			break
		}
		attr.Value = &jsast.StringLit{Span: span(value), Raw: raw, Value: raw[1 : len(raw)-1]}
	case "jsx_expression":
		attr.Container = true
		inner := namedChildren(value)
		if len(inner) == 0 {
			attr.Value = &jsast.Other{Span: span(value), Kind: "jsx_empty_expression"}
			break
		}
		attr.Value = b.lower(inner[0])
	default:
		attr.Value = &jsast.Other{Span: span(value), Kind: value.Type()}
	}
	return attr
}

// lower converts an expression node to its jsast form.
func (b *builder) lower(n *sitter.Node) jsast.Expr {
	sp := span(n)

	switch n.Type() {
	case "string":
		raw := b.text(n)
		value, err := rawstring.Decode(raw)
		if err != nil {
			break
		}
		return &jsast.StringLit{Span: sp, Raw: raw, Value: value}

	case "identifier", "undefined":
		return &jsast.Ident{Span: sp, Name: b.text(n)}

	case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
		if inner := namedChildren(n); len(inner) > 0 {
			return b.lower(inner[0])
		}

	case "binary_expression":
		op := n.ChildByFieldName("operator")
		left, right := n.ChildByFieldName("left"), n.ChildByFieldName("right")
		if op == nil || left == nil || right == nil {
			break
		}
		switch op.Type() {
		case "&&", "||", "??":
			return &jsast.Logical{Span: sp, Operator: op.Type(), Left: b.lower(left), Right: b.lower(right)}
		}

	case "ternary_expression":
		test := n.ChildByFieldName("condition")
		consequent := n.ChildByFieldName("consequence")
		alternate := n.ChildByFieldName("alternative")
		if test == nil || consequent == nil || alternate == nil {
			break
		}
		return &jsast.Conditional{Span: sp, Test: b.lower(test), Consequent: b.lower(consequent), Alternate: b.lower(alternate)}

	case "array":
		arr := &jsast.Array{Span: sp}
		for _, el := range namedChildren(n) {
			arr.Elements = append(arr.Elements, b.element(el))
		}
		return arr

	case "object":
		return b.object(n)

	case "call_expression":
		return b.call(n)
	}

	return &jsast.Other{Span: sp, Kind: n.Type()}
}

func (b *builder) element(n *sitter.Node) jsast.Expr {
	if n.Type() == "spread_element" {
		return b.spread(n)
	}
	return b.lower(n)
}

func (b *builder) spread(n *sitter.Node) *jsast.Spread {
	s := &jsast.Spread{Span: span(n)}
	if inner := namedChildren(n); len(inner) > 0 {
		s.Argument = b.lower(inner[0])
	} else {
		s.Argument = &jsast.Other{Span: span(n), Kind: "spread_element"}
	}
	return s
}

func (b *builder) call(n *sitter.Node) jsast.Expr {
	args := n.ChildByFieldName("arguments")
	if args == nil || args.Type() != "arguments" {
		// tagged template
		return &jsast.Other{Span: span(n), Kind: n.Type()}
	}

	call := &jsast.Call{Span: span(n)}
	if fn := n.ChildByFieldName("function"); fn != nil {
		call.CalleeSpan = span(fn)
		if fn.Type() == "identifier" {
			call.Callee = b.text(fn)
		}
	}
	for _, arg := range namedChildren(args) {
		call.Args = append(call.Args, b.element(arg))
	}
	return call
}

func (b *builder) object(n *sitter.Node) *jsast.Object {
	obj := &jsast.Object{Span: span(n)}

	for _, p := range namedChildren(n) {
		prop := &jsast.Property{Span: span(p)}

		switch p.Type() {
		case "pair":
			key, value := p.ChildByFieldName("key"), p.ChildByFieldName("value")
			if key == nil || value == nil {
				continue
			}
			prop.Key, prop.Computed = b.propertyKey(key)
			prop.Value = b.lower(value)
		case "shorthand_property_identifier":
			id := &jsast.Ident{Span: span(p), Name: b.text(p)}
			prop.Key, prop.Value = id, id
		case "spread_element":
			prop.Spread = b.spread(p)
		case "method_definition":
			if name := p.ChildByFieldName("name"); name != nil {
				prop.Key, prop.Computed = b.propertyKey(name)
			} else {
				prop.Key = &jsast.Other{Span: span(p), Kind: p.Type()}
			}
			prop.Value = &jsast.Other{Span: span(p), Kind: p.Type()}
		default:
			prop.Key = &jsast.Other{Span: span(p), Kind: p.Type()}
			prop.Value = prop.Key
		}

		obj.Properties = append(obj.Properties, prop)
	}

	return obj
}

// propertyKey lowers an object key and reports whether it is computed.
func (b *builder) propertyKey(key *sitter.Node) (jsast.Expr, bool) {
	switch key.Type() {
	case "property_identifier":
		return &jsast.Ident{Span: span(key), Name: b.text(key)}, false
	case "computed_property_name":
		if inner := namedChildren(key); len(inner) > 0 {
			return b.lower(inner[0]), true
		}
		return &jsast.Other{Span: span(key), Kind: key.Type()}, true
	default:
		return b.lower(key), false
	}
}
