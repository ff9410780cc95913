package classlint

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/yacobolo/classlint/internal/jsast"
	"github.com/yacobolo/classlint/internal/jsx"
	"github.com/yacobolo/classlint/internal/rule"
	"github.com/yacobolo/classlint/internal/validate"
	"github.com/yacobolo/classlint/internal/vocab"
)

// LintConfig holds linting configuration
type LintConfig struct {
	Cwd     string   // Project root; stylesheet, patterns and compiler resolve against it
	Paths   []string // Patterns to scan (e.g., "src/**/*.{jsx,tsx}")
	Options rule.Options

	// Compiler produces the vocabulary. Nil runs this executable's extract
	// subcommand.
	Compiler vocab.Compiler
	Logger   *slog.Logger

	MaxIssuesPerLinter int // 0 = unlimited (default)
	MaxSameIssues      int // 0 = unlimited (default)
}

// LintResult contains the findings of one lint run
type LintResult struct {
	Issues []Issue

	// Failures are files or sinks that could not be checked at all.
	Failures []Failure

	Files          []string // Files scanned, absolute
	FilesScanned   int
	FilesSkipped   int
	SinksChecked   int
	VocabularySize int
	ErrorCount     int
	WarningCount   int
	TruncatedCount int // Issues removed due to limits

	// UnknownClasses are the unknown class names by frequency, most frequent first.
	UnknownClasses []ClassCount
}

// Failure is a file that could not be read or parsed, or a sink whose check
// hit an internal invariant violation.
type Failure struct {
	Pos IssuePos
	Err error
}

func (f Failure) Error() string {
	if f.Pos.Line == 0 {
		return fmt.Sprintf("%s: %v", f.Pos.Filename, f.Err)
	}
	return fmt.Sprintf("%s:%d:%d: %v", f.Pos.Filename, f.Pos.Line, f.Pos.Column, f.Err)
}

// ClassCount is an unknown class name and how often it was reported
type ClassCount struct {
	Name        string
	Occurrences int
}

// Linter lints a project repeatedly, keeping the compiled vocabulary between
// runs until the stylesheet or its configuration change.
type Linter struct {
	config   LintConfig
	provider *vocab.Provider
	logger   *slog.Logger
}

// NewLinter prepares a Linter. The project root defaults to the working directory.
func NewLinter(config LintConfig) (*Linter, error) {
	if config.Cwd == "" {
		config.Cwd = "."
	}
	cwd, err := filepath.Abs(config.Cwd)
	if err != nil {
		return nil, fmt.Errorf("resolve project root: %w", err)
	}
	config.Cwd = cwd

	if len(config.Paths) == 0 {
		config.Paths = DefaultPaths
	}

	if config.Compiler == nil {
		command, err := vocab.DefaultCommand()
		if err != nil {
			return nil, err
		}
		config.Compiler = vocab.NewProcessCompiler(command, vocab.DefaultMaxOutput)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Linter{
		config:   config,
		provider: vocab.NewProvider(config.Compiler, vocab.NewCache(), logger),
		logger:   logger,
	}, nil
}

// Lint performs a single lint run
func Lint(ctx context.Context, config LintConfig) (*LintResult, error) {
	l, err := NewLinter(config)
	if err != nil {
		return nil, err
	}
	return l.Run(ctx)
}

// Cwd returns the absolute project root.
func (l *Linter) Cwd() string {
	return l.config.Cwd
}

// Run lints every discovered file. Vocabulary failures abort the run; file
// level failures are collected in the result.
func (l *Linter) Run(ctx context.Context) (*LintResult, error) {
	opts := l.config.Options

	// Step 1: Vocabulary
	classes, err := opts.Vocabulary(l.provider, l.config.Cwd)
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	// Step 2: Discover files
	files, stats, err := DiscoverFiles(l.config.Cwd, l.config.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan files: %w", err)
	}
	l.logger.Debug("discovered files", "scanned", stats.FilesScanned, "skipped", stats.FilesSkipped)

	result := &LintResult{
		Files:          files,
		FilesScanned:   stats.FilesScanned,
		FilesSkipped:   stats.FilesSkipped,
		VocabularySize: classes.Len(),
	}

	// Step 3: Check each file
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		display := RelativePath(l.config.Cwd, path)

		// #nosec G304 - path comes from the configured lint patterns
		src, err := os.ReadFile(path)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Pos: IssuePos{Filename: display}, Err: err})
			continue
		}

		report, err := LintSource(ctx, path, src, classes, opts)
		if err != nil {
			result.Failures = append(result.Failures, Failure{Pos: IssuePos{Filename: display}, Err: err})
			continue
		}
		if report.SyntaxErrors {
			l.logger.Warn("file has syntax errors, findings may be incomplete", "file", display)
		}

		for i := range report.Issues {
			report.Issues[i].Pos.Filename = display
		}
		for i := range report.Failures {
			report.Failures[i].Pos.Filename = display
		}

		result.Issues = append(result.Issues, report.Issues...)
		result.Failures = append(result.Failures, report.Failures...)
		result.SinksChecked += report.Sinks
	}

	sortIssues(result.Issues)
	result.UnknownClasses = countUnknownClasses(result.Issues)

	// Step 4: Apply issue limiting if configured
	if l.config.MaxIssuesPerLinter > 0 || l.config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, l.config)
	}

	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		}
	}

	l.logger.Info("lint finished",
		"files", result.FilesScanned,
		"sinks", result.SinksChecked,
		"issues", len(result.Issues),
		"failures", len(result.Failures))

	return result, nil
}

// FileReport holds the findings of one source file
type FileReport struct {
	Issues       []Issue
	Failures     []Failure
	Sinks        int
	SyntaxErrors bool
}

// LintSource checks the class-name sinks of one source file against classes.
// Issue and failure positions carry path as their filename.
func LintSource(ctx context.Context, path string, src []byte, classes validate.ClassSet, opts rule.Options) (*FileReport, error) {
	f, err := jsx.ParseFile(ctx, path, src, opts)
	if err != nil {
		return nil, err
	}

	reporter := validate.NewReporter()
	v := validate.New(classes, opts.ClassNameBuilders, reporter)
	report := &FileReport{Sinks: len(f.Sinks), SyntaxErrors: f.SyntaxErrors}

	for _, sink := range f.Sinks {
		var err error
		switch n := sink.Node.(type) {
		case *jsast.Attribute:
			_, err = v.ValidateAttribute(n, sink.Scope)
		case *jsast.Call:
			_, err = v.ValidateCall(n, sink.Scope)
		}
		if err != nil {
			report.Failures = append(report.Failures, Failure{Pos: position(f, path, sink.Node.Pos().Start), Err: err})
		}
	}

	// a variable used by several sinks reports its initializer each time
	type finding struct {
		id   validate.MessageID
		span jsast.Span
	}
	seen := make(map[finding]bool)
	for _, d := range reporter.Diagnostics() {
		key := finding{id: d.MessageID, span: d.Span}
		if seen[key] {
			continue
		}
		seen[key] = true
		report.Issues = append(report.Issues, newIssue(f, path, d))
	}

	return report, nil
}

func position(f *jsx.File, path string, offset int) IssuePos {
	line, col := f.Position(offset)
	return IssuePos{Filename: path, Offset: offset, Line: line, Column: col}
}

func newIssue(f *jsx.File, path string, d validate.Diagnostic) Issue {
	pos := position(f, path, d.Span.Start)
	issue := Issue{
		FromLinter:  LinterName,
		Text:        d.Message(),
		Code:        string(d.MessageID),
		Class:       d.Params["name"],
		Severity:    severityOf(d.MessageID),
		SourceLines: []string{f.Line(pos.Line)},
		Pos:         pos,
	}

	if endLine, _ := f.Position(max(d.Span.Start, d.Span.End-1)); endLine > pos.Line {
		issue.LineRange = &LineRange{From: pos.Line, To: endLine}
	}
	return issue
}

// severityOf grades unknown classes as errors and unverifiable expressions as
// warnings.
func severityOf(id validate.MessageID) string {
	switch id {
	case validate.UnknownInLiteral, validate.UnknownInValue:
		return SeverityError
	default:
		return SeverityWarning
	}
}

func sortIssues(issues []Issue) {
	slices.SortStableFunc(issues, func(a, b Issue) int {
		return cmp.Or(
			cmp.Compare(a.Pos.Filename, b.Pos.Filename),
			cmp.Compare(a.Pos.Offset, b.Pos.Offset),
		)
	})
}

func countUnknownClasses(issues []Issue) []ClassCount {
	counts := make(map[string]int)
	for _, issue := range issues {
		if issue.Code != string(validate.UnknownInLiteral) {
			continue
		}
		counts[issue.Class]++
	}

	out := make([]ClassCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, ClassCount{Name: name, Occurrences: n})
	}
	slices.SortFunc(out, func(a, b ClassCount) int {
		return cmp.Or(cmp.Compare(b.Occurrences, a.Occurrences), cmp.Compare(a.Name, b.Name))
	})
	return out
}

// limitIssues applies max-issues-per-linter and max-same-issues constraints
func limitIssues(issues []Issue, config LintConfig) ([]Issue, int) {
	originalCount := len(issues)

	// Apply max-issues-per-linter
	if config.MaxIssuesPerLinter > 0 && len(issues) > config.MaxIssuesPerLinter {
		issues = issues[:config.MaxIssuesPerLinter]
	}

	// Apply max-same-issues (deduplication by message text)
	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	return issues, originalCount - len(issues)
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
