package dto

import (
	"fmt"
	"strconv"
)

type IssueKind string

const (
	MissingMandatoryField IssueKind = "missing_mandatory_field"
	MissingOptionalField  IssueKind = "missing_optional_field"
	InvalidFormat         IssueKind = "invalid_format"
	SuspiciousValue       IssueKind = "suspicious_value"
)

// ValidationIssue is a single rule violation found on an extracted record.
type ValidationIssue struct {
	Kind  IssueKind `json:"kind"`
	Field string    `json:"field"`
	Value string    `json:"value,omitempty"`
	// Empty marks a mandatory list that held only blank entries.
	Empty bool `json:"-"`
}

// String renders the issue the way it is reported to callers.
func (i ValidationIssue) String() string {
	switch i.Kind {
	case MissingMandatoryField:
		if i.Empty {
			return fmt.Sprintf("Missing mandatory field: %s (Found empty)", i.Field)
		}
		return "Missing mandatory field: " + i.Field
	case MissingOptionalField:
		return "Missing field: " + i.Field
	case InvalidFormat:
		if i.Field == string(IdentifierPAN) {
			return "Invalid PAN format: " + i.Value
		}
		return fmt.Sprintf("Invalid %s format: %s", i.Field, i.Value)
	case SuspiciousValue:
		if i.Field == "salary" {
			return "Suspiciously low salary detected: " + i.Value
		}
		return fmt.Sprintf("Suspicious value for %s: %s", i.Field, i.Value)
	default:
		return fmt.Sprintf("%s: %s", i.Kind, i.Field)
	}
}

// FormatAmount renders a monetary value without trailing zeros.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// IssueMessages converts issues to their message strings.
func IssueMessages(issues []ValidationIssue) []string {
	out := make([]string, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.String())
	}
	return out
}
