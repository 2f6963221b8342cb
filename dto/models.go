package dto

import "strings"

type IdentifierKind string

const (
	IdentifierPAN     IdentifierKind = "pan"
	IdentifierAadhaar IdentifierKind = "aadhaar"
	IdentifierIFSC    IdentifierKind = "ifsc"
	IdentifierEmail   IdentifierKind = "email"
	IdentifierPhone   IdentifierKind = "phone"
)

// ExtractedRecord is the structured view of one salary slip. Numeric fields
// use 0 for "not found".
type ExtractedRecord struct {
	Identifiers     map[IdentifierKind]string `json:"identifiers"`
	Dates           []string                  `json:"dates"`
	Amounts         []string                  `json:"amounts"`
	Names           []string                  `json:"names"`
	Organizations   []string                  `json:"orgs"`
	BasicSalary     float64                   `json:"basic_salary"`
	HRA             float64                   `json:"hra"`
	NetPay          float64                   `json:"net_pay"`
	TotalEarnings   float64                   `json:"total_earnings"`
	TotalDeductions float64                   `json:"total_deductions"`
	Salary          float64                   `json:"salary"`
}

// NewExtractedRecord returns a record with every collection initialised.
func NewExtractedRecord() ExtractedRecord {
	return ExtractedRecord{
		Identifiers:   map[IdentifierKind]string{},
		Dates:         []string{},
		Amounts:       []string{},
		Names:         []string{},
		Organizations: []string{},
	}
}

// Identifier returns the matched value for kind, if any.
func (r ExtractedRecord) Identifier(kind IdentifierKind) (string, bool) {
	v, ok := r.Identifiers[kind]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// HasNames reports whether at least one non-blank name candidate exists.
func (r ExtractedRecord) HasNames() bool {
	for _, n := range r.Names {
		if strings.TrimSpace(n) != "" {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so pipeline stages never share backing arrays.
func (r ExtractedRecord) Clone() ExtractedRecord {
	out := r
	out.Identifiers = make(map[IdentifierKind]string, len(r.Identifiers))
	for k, v := range r.Identifiers {
		out.Identifiers[k] = v
	}
	out.Dates = append([]string{}, r.Dates...)
	out.Amounts = append([]string{}, r.Amounts...)
	out.Names = append([]string{}, r.Names...)
	out.Organizations = append([]string{}, r.Organizations...)
	return out
}

// EntitySpan is one labelled span returned by an entity recognizer.
type EntitySpan struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

// Labels produced by the trained salary-slip overlay and the general recognizer.
const (
	LabelSalary       = "SALARY"
	LabelNetPay       = "NET_PAY"
	LabelEmployeeName = "EMPLOYEE_NAME"
	LabelPerson       = "PERSON"
	LabelOrg          = "ORG"
)

type FraudStatus string

const (
	FraudNormal          FraudStatus = "Normal"
	FraudAnomalyDetected FraudStatus = "Anomaly Detected"
)

type FraudVerdict struct {
	Status FraudStatus `json:"status"`
	Reason string      `json:"reason,omitempty"`
}

type Eligibility string

const (
	Eligible Eligibility = "Eligible"
	Rejected Eligibility = "Rejected"
)

type RiskReport struct {
	Score       int         `json:"risk_score"`
	Eligibility Eligibility `json:"eligibility"`
}
