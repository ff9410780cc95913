package jsx

import (
	"regexp"
	"strings"
	"unicode"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/classlint/internal/jsast"
)

type scopeKind int

const (
	globalScope scopeKind = iota
	moduleScope
	functionScope
	blockScope
)

// scope is one level of a file's lexical scope chain.
type scope struct {
	kind     scopeKind
	upper    *scope
	bindings map[string]*jsast.Binding
}

func newScope(upper *scope, kind scopeKind) *scope {
	return &scope{kind: kind, upper: upper, bindings: make(map[string]*jsast.Binding)}
}

// Lookup implements jsast.Scope.
func (s *scope) Lookup(name string) (*jsast.Binding, bool) {
	b, ok := s.bindings[name]
	return b, ok
}

// Upper implements jsast.Scope.
func (s *scope) Upper() jsast.Scope {
	if s.upper == nil {
		return nil
	}
	return s.upper
}

func (s *scope) binding(name string) *jsast.Binding {
	b, ok := s.bindings[name]
	if !ok {
		b = &jsast.Binding{Name: name}
		s.bindings[name] = b
	}
	return b
}

func (s *scope) declare(name string, decl jsast.Declaration) {
	b := s.binding(name)
	b.Declarations = append(b.Declarations, decl)
}

func (s *scope) annotate(name string, comment jsast.Span) {
	b := s.binding(name)
	b.GlobalComments = append(b.GlobalComments, comment)
}

// hoistTarget is the scope var declarations land in.
func (s *scope) hoistTarget() *scope {
	t := s
	for t.kind == blockScope && t.upper != nil {
		t = t.upper
	}
	return t
}

var (
	globalDirective = regexp.MustCompile(`^/\*\s*globals?\s([\s\S]*)\*/$`)
	globalValueSep  = regexp.MustCompile(`\s*:\s*`)
)

// globalComment registers the names of a /* global a, b:writable */ comment.
func (b *builder) globalComment(n *sitter.Node) {
	m := globalDirective.FindStringSubmatch(b.text(n))
	if m == nil {
		return
	}

	list := globalValueSep.ReplaceAllString(m[1], ":")
	items := strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, item := range items {
		name, value, _ := strings.Cut(item, ":")
		if name == "" || value == "off" {
			continue
		}
		b.global.annotate(name, span(n))
	}
}

// bindPattern declares every identifier bound by a binding pattern into target.
// Default values are walked in s.
func (b *builder) bindPattern(n *sitter.Node, target *scope, kind jsast.DeclKind, node jsast.Span, s *scope) {
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		target.declare(b.text(n), jsast.Declaration{Kind: kind, Node: node, Name: span(n)})
	case "assignment_pattern", "object_assignment_pattern":
		if left := n.ChildByFieldName("left"); left != nil {
			b.bindPattern(left, target, kind, node, s)
		}
		if right := n.ChildByFieldName("right"); right != nil {
			b.walk(right, s)
		}
	case "pair_pattern":
		if key := n.ChildByFieldName("key"); key != nil && key.Type() == "computed_property_name" {
			b.walk(key, s)
		}
		if value := n.ChildByFieldName("value"); value != nil {
			b.bindPattern(value, target, kind, node, s)
		}
	case "object_pattern", "array_pattern", "rest_pattern":
		for _, c := range namedChildren(n) {
			b.bindPattern(c, target, kind, node, s)
		}
	case "required_parameter", "optional_parameter":
		if pattern := n.ChildByFieldName("pattern"); pattern != nil {
			b.bindPattern(pattern, target, kind, node, s)
		}
		if value := n.ChildByFieldName("value"); value != nil {
			b.walk(value, s)
		}
	default:
		// assignment targets such as member expressions bind nothing
		b.walk(n, s)
	}
}

// declarator handles one variable_declarator.
func (b *builder) declarator(d *sitter.Node, target, s *scope) {
	name := d.ChildByFieldName("name")
	if name == nil {
		return
	}
	value := d.ChildByFieldName("value")

	if name.Type() == "identifier" {
		decl := jsast.Declaration{Kind: jsast.DeclVariable, Node: span(d), Name: span(name)}
		if value != nil {
			decl.Init = b.lower(value)
			decl.Scope = s
		}
		target.declare(b.text(name), decl)
	} else {
		b.bindPattern(name, target, jsast.DeclVariable, span(d), s)
	}

	if value != nil {
		b.walk(value, s)
	}
}

// importBindings declares the local names of an import statement.
func (b *builder) importBindings(n *sitter.Node, s *scope) {
	for _, clause := range namedChildren(n) {
		if clause.Type() != "import_clause" {
			continue
		}
		for _, c := range namedChildren(clause) {
			switch c.Type() {
			case "identifier":
				s.declare(b.text(c), jsast.Declaration{Kind: jsast.DeclImport, Node: span(c), Name: span(c)})
			case "namespace_import":
				for _, id := range namedChildren(c) {
					if id.Type() == "identifier" {
						s.declare(b.text(id), jsast.Declaration{Kind: jsast.DeclImport, Node: span(c), Name: span(id)})
					}
				}
			case "named_imports":
				for _, spec := range namedChildren(c) {
					if spec.Type() != "import_specifier" {
						continue
					}
					local := spec.ChildByFieldName("alias")
					if local == nil {
						local = spec.ChildByFieldName("name")
					}
					if local != nil && local.Type() == "identifier" {
						s.declare(b.text(local), jsast.Declaration{Kind: jsast.DeclImport, Node: span(spec), Name: span(local)})
					}
				}
			}
		}
	}
}

// declarationKeyword returns the var/let/const keyword of a declaration or
// for-in head, or "".
func declarationKeyword(n *sitter.Node) string {
	for i := range int(n.ChildCount()) {
		c := n.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case "var", "let", "const":
			return c.Type()
		}
	}
	return ""
}
