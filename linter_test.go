package classlint

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/classlint/internal/rule"
	"github.com/yacobolo/classlint/internal/vocab"
)

// staticCompiler answers every request with a fixed vocabulary.
type staticCompiler struct {
	classes  []string
	err      error
	requests []vocab.Request
}

func (c *staticCompiler) Compile(req vocab.Request) ([]string, error) {
	c.requests = append(c.requests, req)
	if c.err != nil {
		return nil, c.err
	}
	return c.classes, nil
}

func (c *staticCompiler) Command() []string { return []string{"static"} }

func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		writeFile(t, filepath.Join(root, filepath.FromSlash(name)), content)
	}
	return root
}

func TestLint(t *testing.T) {
	root := newProject(t, map[string]string{
		"styles.css": ".btn {}",
		"src/Button.jsx": `import clsx from "clsx";
const base = "btn btn-ghost";
export function Button({ tone }) {
  return <button className={clsx(base, tone)} class="btn">{tone}</button>;
}
export const Link = () => <a className={base} />;
`,
		"src/Card.tsx": `export const Card = () => <div className="card" />;`,
	})

	compiler := &staticCompiler{classes: []string{"btn"}}
	opts := rule.Defaults()
	opts.Stylesheet = "styles.css"

	result, err := Lint(context.Background(), LintConfig{
		Cwd:      root,
		Paths:    []string{"src/**/*"},
		Options:  opts,
		Compiler: compiler,
	})
	require.NoError(t, err)
	require.Len(t, compiler.requests, 1)
	assert.Equal(t, ".btn {}", compiler.requests[0].Styles)

	assert.Equal(t, 2, result.FilesScanned)
	assert.Equal(t, 1, result.VocabularySize)
	// four in Button.jsx, one in Card.tsx
	assert.Equal(t, 5, result.SinksChecked)
	assert.Empty(t, result.Failures)

	type finding struct {
		file, code string
		line       int
	}
	got := make([]finding, 0, len(result.Issues))
	for _, issue := range result.Issues {
		got = append(got, finding{file: issue.Pos.Filename, code: issue.Code, line: issue.Pos.Line})
	}

	button := filepath.Join("src", "Button.jsx")
	card := filepath.Join("src", "Card.tsx")
	assert.Equal(t, []finding{
		// the literal behind base is reported once, for all its uses
		{file: button, code: "unknownInLiteral", line: 2},
		{file: button, code: "dynamicSourceArgument", line: 3},
		{file: button, code: "unknownInValue", line: 4},
		{file: button, code: "dynamicTargetArgument", line: 4},
		{file: button, code: "unknownInValue", line: 6},
		{file: card, code: "unknownInLiteral", line: 1},
	}, got)

	assert.Equal(t, 4, result.ErrorCount)
	assert.Equal(t, 2, result.WarningCount)
	assert.Equal(t, []ClassCount{{Name: "btn-ghost", Occurrences: 1}, {Name: "card", Occurrences: 1}}, result.UnknownClasses)

	first := result.Issues[0]
	assert.Equal(t, LinterName, first.FromLinter)
	assert.Equal(t, "Unknown utility or component class 'btn-ghost'.", first.Text)
	assert.Equal(t, SeverityError, first.Severity)
	assert.Equal(t, 19, first.Pos.Column)
	assert.Equal(t, []string{`const base = "btn btn-ghost";`}, first.SourceLines)
}

func TestLintVocabularyFailureAbortsRun(t *testing.T) {
	root := newProject(t, map[string]string{"src/a.jsx": `<a className="x" />`})
	compiler := &staticCompiler{err: &vocab.ExtractionError{Err: vocab.ErrCompilerFailed, Detail: "boom"}}

	_, err := Lint(context.Background(), LintConfig{Cwd: root, Paths: []string{"src/*"}, Options: rule.Defaults(), Compiler: compiler})
	require.ErrorIs(t, err, vocab.ErrCompilerFailed)
}

func TestLinterReusesVocabulary(t *testing.T) {
	root := newProject(t, map[string]string{
		"app.css":   ".a {}",
		"src/a.jsx": `<a className="a" />`,
	})
	compiler := &staticCompiler{classes: []string{"a"}}
	opts := rule.Defaults()
	opts.Stylesheet = "app.css"

	l, err := NewLinter(LintConfig{Cwd: root, Paths: []string{"src/*"}, Options: opts, Compiler: compiler})
	require.NoError(t, err)

	for range 3 {
		result, err := l.Run(context.Background())
		require.NoError(t, err)
		assert.Empty(t, result.Issues)
	}
	assert.Len(t, compiler.requests, 1)

	writeFile(t, filepath.Join(root, "app.css"), ".a {} .b {}")
	_, err = l.Run(context.Background())
	require.NoError(t, err)
	assert.Len(t, compiler.requests, 2)
}

func TestLintRecordsFailures(t *testing.T) {
	root := newProject(t, map[string]string{
		"src/dup.jsx": `var cls = "a"; var cls = "b"; <div className={cls} />;`,
	})

	result, err := Lint(context.Background(), LintConfig{
		Cwd:      root,
		Paths:    []string{"src/*"},
		Options:  rule.Defaults(),
		Compiler: &staticCompiler{classes: []string{"a", "b"}},
	})
	require.NoError(t, err)
	require.Len(t, result.Failures, 1)

	failure := result.Failures[0]
	assert.Equal(t, filepath.Join("src", "dup.jsx"), failure.Pos.Filename)
	assert.Equal(t, 1, failure.Pos.Line)
	assert.Contains(t, failure.Error(), "invariant violation")
}

func TestLintCanceled(t *testing.T) {
	root := newProject(t, map[string]string{"src/a.jsx": `<a className="a" />`})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Lint(ctx, LintConfig{Cwd: root, Paths: []string{"src/*"}, Options: rule.Defaults(), Compiler: &staticCompiler{}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestLintSourceSyntaxErrors(t *testing.T) {
	report, err := LintSource(context.Background(), "broken.jsx", []byte(`<div className="x" </`), staticSet{}, rule.Defaults())
	require.NoError(t, err)
	assert.True(t, report.SyntaxErrors)
}

func TestLintSourceUnsupported(t *testing.T) {
	_, err := LintSource(context.Background(), "a.vue", nil, staticSet{}, rule.Defaults())
	require.Error(t, err)
}

type staticSet map[string]bool

func (s staticSet) Has(name string) bool { return s[name] }

func TestLimitIssues(t *testing.T) {
	issues := []Issue{
		{Text: "a"}, {Text: "a"}, {Text: "a"}, {Text: "b"}, {Text: "c"},
	}

	tests := []struct {
		name          string
		config        LintConfig
		wantTexts     []string
		wantTruncated int
	}{
		{
			name:          "max issues",
			config:        LintConfig{MaxIssuesPerLinter: 2},
			wantTexts:     []string{"a", "a"},
			wantTruncated: 3,
		},
		{
			name:          "max same issues",
			config:        LintConfig{MaxSameIssues: 1},
			wantTexts:     []string{"a", "b", "c"},
			wantTruncated: 2,
		},
		{
			name:          "both",
			config:        LintConfig{MaxIssuesPerLinter: 4, MaxSameIssues: 2},
			wantTexts:     []string{"a", "a", "b"},
			wantTruncated: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := limitIssues(append([]Issue(nil), issues...), tt.config)
			texts := make([]string, 0, len(got))
			for _, issue := range got {
				texts = append(texts, issue.Text)
			}
			assert.Equal(t, tt.wantTexts, texts)
			assert.Equal(t, tt.wantTruncated, truncated)
		})
	}
}

func TestFailureError(t *testing.T) {
	f := Failure{Pos: IssuePos{Filename: "a.jsx"}, Err: os.ErrNotExist}
	assert.Equal(t, "a.jsx: file does not exist", f.Error())

	f = Failure{Pos: IssuePos{Filename: "a.jsx", Line: 2, Column: 5}, Err: errors.New("boom")}
	assert.Equal(t, "a.jsx:2:5: boom", f.Error())
}
