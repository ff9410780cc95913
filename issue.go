package classlint

// LinterName is the FromLinter value of every issue.
const LinterName = "classlint"

// Issue represents a single finding in golangci-lint format
type Issue struct {
	FromLinter  string     `json:"FromLinter"`  // "classlint"
	Text        string     `json:"Text"`        // "Unknown utility or component class 'bg-missing'."
	Code        string     `json:"Code"`        // message identifier: "unknownInLiteral"
	Class       string     `json:"Class"`       // unknown class name, or the sink name for dynamic findings
	Severity    string     `json:"Severity"`    // "", "warning", "error"
	SourceLines []string   `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos   `json:"Pos"`         // Start of the finding
	LineRange   *LineRange `json:"LineRange"`   // Set when the finding spans lines
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/components/Button.tsx"
	Offset   int    `json:"Offset"`   // byte offset into the file
	Line     int    `json:"Line"`     // 12
	Column   int    `json:"Column"`   // 24 (1-based, in characters)
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)
