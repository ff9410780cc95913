package report

import (
	"fmt"
	"io"

	"github.com/yacobolo/classlint"
)

// maxUnknownClasses caps the unknown-class table.
const maxUnknownClasses = 10

// VerboseReporter prints run statistics
type VerboseReporter struct {
	w         io.Writer
	useColors bool
}

// NewVerboseReporter creates a verbose reporter
func NewVerboseReporter(w io.Writer, useColors bool) *VerboseReporter {
	return &VerboseReporter{w: w, useColors: useColors}
}

// PrintStatistics writes the scan and vocabulary counts
func (r *VerboseReporter) PrintStatistics(result classlint.LintResult) {
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Class Linter Statistics", r.useColors))
	fmt.Fprintln(r.w, "-----------------------")

	fmt.Fprintf(r.w, "Files Scanned:    %d\n", result.FilesScanned)
	fmt.Fprintf(r.w, "Files Skipped:    %d\n", result.FilesSkipped)
	fmt.Fprintf(r.w, "Sinks Checked:    %d\n", result.SinksChecked)
	fmt.Fprintf(r.w, "Known Classes:    %d\n", result.VocabularySize)
	fmt.Fprintf(r.w, "Errors:           %d\n", result.ErrorCount)
	fmt.Fprintf(r.w, "Warnings:         %d\n", result.WarningCount)
	if len(result.Failures) > 0 {
		fmt.Fprintf(r.w, "Not Checked:      %d\n", len(result.Failures))
	}
}

// PrintUnknownClasses lists the most frequent unknown classes.
func (r *VerboseReporter) PrintUnknownClasses(result classlint.LintResult) {
	if len(result.UnknownClasses) == 0 {
		return
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleYellow, "Unknown Classes", r.useColors))
	fmt.Fprintln(r.w, "---------------")

	for i, c := range result.UnknownClasses {
		if i >= maxUnknownClasses {
			fmt.Fprintf(r.w, "... and %d more\n", len(result.UnknownClasses)-maxUnknownClasses)
			break
		}
		fmt.Fprintf(r.w, "%d. %q - %s\n", i+1, c.Name, pluralizeCount(c.Occurrences, "occurrence", "occurrences"))
	}
}
