package domain

// Severity grades a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one immutable validation finding.
type Issue struct {
	RuleID      string   `json:"ruleId"`
	Severity    Severity `json:"severity"`
	Message     string   `json:"message"`
	Domain      Code     `json:"domain"`
	Variable    string   `json:"variable,omitempty"`
	RecordCount int      `json:"affectedRecordCount"`
}

// Result bundles the findings of one validator pass over one dataset.
// IsValid is true when no error-severity issue was raised.
type Result struct {
	Domain       Code    `json:"domain"`
	IsValid      bool    `json:"isValid"`
	TotalRecords int     `json:"totalRecords"`
	ErrorCount   int     `json:"errorCount"`
	WarningCount int     `json:"warningCount"`
	InfoCount    int     `json:"infoCount"`
	Issues       []Issue `json:"issues"`
}

// NewResult assembles a Result, computing severity counts from the issues.
func NewResult(domain Code, totalRecords int, issues []Issue) Result {
	result := Result{
		Domain:       domain,
		TotalRecords: totalRecords,
		Issues:       issues,
	}
	if result.Issues == nil {
		result.Issues = []Issue{}
	}
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			result.ErrorCount++
		case SeverityWarning:
			result.WarningCount++
		case SeverityInfo:
			result.InfoCount++
		}
	}
	result.IsValid = result.ErrorCount == 0
	return result
}

// Merge combines several results for the same domain into one bundle.
func Merge(domain Code, totalRecords int, results ...Result) Result {
	var issues []Issue
	for _, r := range results {
		issues = append(issues, r.Issues...)
	}
	return NewResult(domain, totalRecords, issues)
}
