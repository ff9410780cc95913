package extract

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCSSClasses(t *testing.T) {
	tests := []struct {
		name string
		css  string
		want []string
	}{
		{
			name: "simple rule",
			css:  `.btn { color: red; }`,
			want: []string{"btn"},
		},
		{
			name: "compound and descendant selectors",
			css:  `.card.is-active .title > .icon { margin: 0 }`,
			want: []string{"card", "icon", "is-active", "title"},
		},
		{
			name: "comma selectors",
			css:  `.a, .b:hover, div.c { display: none }`,
			want: []string{"a", "b", "c"},
		},
		{
			name: "functional pseudo-classes",
			css:  `.x:not(.y):is(.z, :where(.w)) { top: 0 }`,
			want: []string{"w", "x", "y", "z"},
		},
		{
			name: "pseudo-class names are not classes",
			css:  `.link:focus-visible::after { content: ".fake" }`,
			want: []string{"link"},
		},
		{
			name: "rules inside at-rule blocks",
			css:  "@media (min-width: 640px) { .sm\\:p-2 { padding: .5rem } }\n@layer components { .btn { } }",
			want: []string{"btn", "sm:p-2"},
		},
		{
			name: "nested rules",
			css:  `.card { color: red; .title { font-weight: 700 } &:hover .icon { opacity: 1 } }`,
			want: []string{"card", "icon", "title"},
		},
		{
			name: "escaped identifiers",
			css:  `.w-1\/2 { } .\32xl\:text-lg { } .hover\:bg-red-500:hover { }`,
			want: []string{"2xl:text-lg", "hover:bg-red-500", "w-1/2"},
		},
		{
			name: "numbers and declarations are ignored",
			css:  `.p-0\.5 { padding: .125rem; width: calc(100% - .5em); }`,
			want: []string{"p-0.5"},
		},
		{
			name: "statement at-rules",
			css:  "@tailwind base;\n@tailwind utilities;\n@apply font-bold;",
			want: []string{},
		},
		{
			name: "comments",
			css:  `/* .commented { } */ .real { }`,
			want: []string{"real"},
		},
		{
			name: "keyframes",
			css:  `@keyframes spin { from { transform: rotate(0) } to { transform: rotate(360deg) } } .animate-spin { animation: spin 1s }`,
			want: []string{"animate-spin"},
		},
		{
			name: "duplicates",
			css:  `.a { } .a:hover { } .b .a { }`,
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCSS(tt.css)
			require.Equal(t, tt.want, got.Classes)
		})
	}
}

func TestParseCSSImports(t *testing.T) {
	css := `@import "base.css";
@import 'components/buttons.css' layer(components);
@import url(utilities.css);
@import url("theme.css") screen;
.x { }`

	got := ParseCSS(css)
	require.Equal(t, []string{"base.css", "components/buttons.css", "utilities.css", "theme.css"}, got.Imports)
	require.Equal(t, []string{"x"}, got.Classes)
}

func TestUnescapeIdent(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `btn`, want: "btn"},
		{in: `hover\:bg-red`, want: "hover:bg-red"},
		{in: `w-1\/2`, want: "w-1/2"},
		{in: `\32 xl`, want: "2xl"},
		{in: `\31 0`, want: "10"},
		{in: `a\000041b`, want: "aAb"},
		{in: `\[mask\]`, want: "[mask]"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, unescapeIdent(tt.in))
		})
	}
}
