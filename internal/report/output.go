package report

import (
	"io"

	"github.com/yacobolo/classlint"
)

// WriteOutput writes result to w in the selected format.
func WriteOutput(w io.Writer, result *classlint.LintResult, format classlint.OutputFormat, config Config) error {
	switch format {
	case classlint.OutputJSON:
		return classlint.WriteJSON(w, result)

	case classlint.OutputSummary:
		verbose := NewVerboseReporter(w, ShouldUseColors(config.UseColors))
		verbose.PrintStatistics(*result)
		verbose.PrintUnknownClasses(*result)

	case classlint.OutputFull:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintFailures(result.Failures)
		reporter.PrintSummary(*result)

		verbose := NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(*result)
		verbose.PrintUnknownClasses(*result)

	default:
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintFailures(result.Failures)
		reporter.PrintSummary(*result)
	}
	return nil
}
