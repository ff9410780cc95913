package classlint

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version        string          `json:"version"`
	Timestamp      string          `json:"timestamp"`
	Summary        JSONSummary     `json:"summary"`
	Stats          JSONStats       `json:"stats"`
	Issues         []JSONIssue     `json:"issues"`
	Failures       []JSONFailure   `json:"failures"`
	UnknownClasses []JSONClassStat `json:"unknown_classes"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Truncated    int `json:"truncated"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats contains scan statistics
type JSONStats struct {
	FilesSkipped   int `json:"files_skipped"`
	SinksChecked   int `json:"sinks_checked"`
	VocabularySize int `json:"vocabulary_size"`
}

// JSONIssue represents a single linting issue
type JSONIssue struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Linter   string `json:"linter"`
	Source   string `json:"source,omitempty"` // Optional source line
}

// JSONFailure is a file or sink that could not be checked
type JSONFailure struct {
	File   string `json:"file"`
	Line   int    `json:"line,omitempty"`
	Column int    `json:"column,omitempty"`
	Error  string `json:"error"`
}

// JSONClassStat is an unknown class and its number of occurrences
type JSONClassStat struct {
	Class       string `json:"class"`
	Occurrences int    `json:"occurrences"`
}

// WriteJSON writes the lint result as JSON
func WriteJSON(w io.Writer, result *LintResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts LintResult to JSONOutput
func buildJSONOutput(result *LintResult) JSONOutput {
	issues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		issues[i] = JSONIssue{
			File:     issue.Pos.Filename,
			Line:     issue.Pos.Line,
			Column:   issue.Pos.Column,
			Severity: issue.Severity,
			Code:     issue.Code,
			Message:  issue.Text,
			Linter:   issue.FromLinter,
			Source:   source,
		}
	}

	failures := make([]JSONFailure, len(result.Failures))
	for i, f := range result.Failures {
		failures[i] = JSONFailure{
			File:   f.Pos.Filename,
			Line:   f.Pos.Line,
			Column: f.Pos.Column,
			Error:  f.Err.Error(),
		}
	}

	unknown := make([]JSONClassStat, len(result.UnknownClasses))
	for i, c := range result.UnknownClasses {
		unknown[i] = JSONClassStat{Class: c.Name, Occurrences: c.Occurrences}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       result.ErrorCount,
			Warnings:     result.WarningCount,
			Truncated:    result.TruncatedCount,
			FilesScanned: result.FilesScanned,
		},
		Stats: JSONStats{
			FilesSkipped:   result.FilesSkipped,
			SinksChecked:   result.SinksChecked,
			VocabularySize: result.VocabularySize,
		},
		Issues:         issues,
		Failures:       failures,
		UnknownClasses: unknown,
	}
}
