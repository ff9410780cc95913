// Package report renders lint results for terminals and CI logs.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yacobolo/classlint"
)

// Config controls how issues are printed.
type Config struct {
	// UseColors forces colored output; otherwise colors are detected.
	UseColors       bool
	PrintLines      bool
	PrintLinterName bool
}

// Reporter prints issues in golangci-lint format
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer, config Config) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(config.UseColors),
		printLines:      config.PrintLines,
		printLinterName: config.PrintLinterName,
	}
}

// ShouldUseColors reports whether output should be colored: forced by flag,
// by FORCE_COLOR, on GitHub Actions, or when stdout is a terminal.
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fi, err := os.Stdout.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		return true
	}
	return false
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}

// PrintIssues writes each issue in the order given; the linter already
// sorts them by file and offset.
func (r *Reporter) PrintIssues(issues []classlint.Issue) {
	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue writes file:line:col: message (linter), then the source lines
func (r *Reporter) printIssue(issue classlint.Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	style := StyleCyan
	if issue.Severity == classlint.SeverityWarning {
		style = StyleYellow
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(style, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if !r.printLines || len(issue.SourceLines) == 0 {
		return
	}
	for _, line := range issue.SourceLines {
		fmt.Fprintf(r.w, "\t%s\n", line)
	}
	caret := buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
	fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
}

// buildCaretIndicator returns a "^" under the 1-based rune column of
// sourceLine. Tabs in the prefix are kept so the caret lines up.
func buildCaretIndicator(sourceLine string, column int) string {
	if column <= 1 {
		return "^"
	}

	var padding strings.Builder
	n := 0
	for _, ch := range sourceLine {
		if n == column-1 {
			break
		}
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
		n++
	}
	return padding.String() + "^"
}

// PrintFailures writes the files and sinks that could not be checked.
func (r *Reporter) PrintFailures(failures []classlint.Failure) {
	if len(failures) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleRed, "Not checked", r.useColors))
	for _, f := range failures {
		fmt.Fprintf(r.w, "* %s\n", f.Error())
	}
}

// PrintSummary writes the issue counts
func (r *Reporter) PrintSummary(result classlint.LintResult) {
	total := len(result.Issues)
	errors, warnings := result.ErrorCount, result.WarningCount
	truncated := result.TruncatedCount

	fmt.Fprintln(r.w, "")

	if total == 0 && truncated == 0 && len(result.Failures) == 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleGreen, fmt.Sprintf("0 issues in %s.", pluralizeCount(result.FilesScanned, "file", "files")), r.useColors))
		return
	}

	var parts []string
	if errors > 0 && warnings > 0 {
		parts = append(parts, pluralizeCount(errors, "error", "errors"), pluralizeCount(warnings, "warning", "warnings"))
	}
	if truncated > 0 {
		parts = append(parts, pluralizeCount(truncated, "issue", "issues")+" truncated")
	}
	if len(parts) > 0 {
		fmt.Fprintf(r.w, "%s (%s):\n", pluralizeCount(total, "issue", "issues"), strings.Join(parts, "; "))
	} else {
		fmt.Fprintf(r.w, "%s:\n", pluralizeCount(total, "issue", "issues"))
	}

	codeCounts := make(map[string]int)
	var codes []string
	for _, issue := range result.Issues {
		if codeCounts[issue.Code] == 0 {
			codes = append(codes, issue.Code)
		}
		codeCounts[issue.Code]++
	}
	for _, code := range codes {
		fmt.Fprintf(r.w, "* %s: %d\n", code, codeCounts[code])
	}

	if len(result.Failures) > 0 {
		fmt.Fprintln(r.w, RenderStyle(StyleRed, pluralizeCount(len(result.Failures), "location", "locations")+" could not be checked", r.useColors))
	}

	if total > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run with --output-format full to see statistics and the most frequent unknown classes", r.useColors))
	}
}

func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}
