// Package classlint checks that class-name attributes and class-name builder
// calls in JavaScript and TypeScript sources only use classes defined by a
// project stylesheet.
//
// The vocabulary of known classes is produced by a compiler process that
// receives the stylesheet and configuration selector as JSON and answers with
// a JSON array of class names. The default compiler is the extract subcommand
// of the classlint binary itself.
//
// # Linting
//
//	result, err := classlint.Lint(ctx, classlint.LintConfig{
//		Cwd:     ".",
//		Paths:   []string{"src/**/*.{jsx,tsx}"},
//		Options: rule.Defaults(),
//	})
//
// Every string literal that reaches a class attribute is split on whitespace
// and each token is checked. Identifiers are followed to their initializer;
// values that cannot be followed statically are reported as dynamic.
//
// # Generation
//
// Generate renders a TypeScript module whose default export is a clsx-style
// builder typed over the union of all known classes.
//
// # CLI Tool
//
//	go install github.com/yacobolo/classlint/cmd/classlint@latest
package classlint
