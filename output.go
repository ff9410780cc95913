package classlint

// OutputFormat selects how lint results are written
type OutputFormat string

// Output formats
const (
	OutputIssues  OutputFormat = "issues"  // golangci-lint style issues and a summary
	OutputSummary OutputFormat = "summary" // statistics and the most frequent unknown classes
	OutputFull    OutputFormat = "full"    // issues, summary and statistics
	OutputJSON    OutputFormat = "json"    // machine-readable export
)

// DetermineOutputFormat selects the output format from the flag value.
// Unknown or empty values fall back to OutputIssues.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// quiet keeps the default; the caller suppresses the output
	if quiet {
		return OutputIssues
	}

	switch OutputFormat(formatFlag) {
	case OutputIssues, OutputSummary, OutputFull, OutputJSON:
		return OutputFormat(formatFlag)
	}
	return OutputIssues
}
