package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Aashish23092/salary-slip-risk/dto"
)

// SalaryField identifies one keyed monetary component of a salary slip.
type SalaryField string

const (
	FieldBasicSalary     SalaryField = "basic_salary"
	FieldHRA             SalaryField = "hra"
	FieldNetPay          SalaryField = "net_pay"
	FieldTotalEarnings   SalaryField = "total_earnings"
	FieldTotalDeductions SalaryField = "total_deductions"
)

// SalaryFields lists the keyed fields in extraction order.
var SalaryFields = []SalaryField{
	FieldBasicSalary,
	FieldHRA,
	FieldNetPay,
	FieldTotalEarnings,
	FieldTotalDeductions,
}

// FieldSynonyms maps each keyed field to the labels printed for it on slips.
var FieldSynonyms = map[SalaryField][]string{
	FieldBasicSalary:     {"Basic", "Basic Salary", "Basic Pay", "Basic & DA"},
	FieldHRA:             {"HRA", "House Rent Allowance"},
	FieldNetPay:          {"Net Pay", "Net Salary", "Take Home", "NET Salary", "NETPAY", "Net Payable"},
	FieldTotalEarnings:   {"Total Earnings", "Gross Salary", "Total Pay", "Total Addition", "Total Earning", "Total"},
	FieldTotalDeductions: {"Total Deductions", "Total Deduction"},
}

// labelExclusions lists words that, right after a synonym, mean the label
// belongs to another field ("Total Deductions" is not "Total").
var labelExclusions = map[string][]string{
	"Total": {"Deduction"},
}

// Empirically tuned for the documents seen so far; recalibrate against a
// larger corpus before treating them as fixed.
const (
	DefaultStreamWindow   = 100
	DefaultLookaheadLines = 1
)

// KeyValueOptions controls how far the extractor looks past a label.
type KeyValueOptions struct {
	// StreamWindow is the maximum gap, in characters, between a label and
	// its number in single-line OCR output.
	StreamWindow int
	// LookaheadLines is how many following lines may supply the number
	// when the label's own line has none.
	LookaheadLines int
	// NextLineGuards are keywords that mark a following line as a
	// different row of the table.
	NextLineGuards []string
}

func DefaultKeyValueOptions() KeyValueOptions {
	return KeyValueOptions{
		StreamWindow:   DefaultStreamWindow,
		LookaheadLines: DefaultLookaheadLines,
		NextLineGuards: []string{"Name", "Designation", "Month"},
	}
}

var numberRegex = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

type labelMatcher struct {
	label    *regexp.Regexp
	stream   *regexp.Regexp
	excluded []string
}

// find returns the first occurrence of the label in s that is not followed
// by an excluded word.
func (m labelMatcher) find(s string) []int {
	for _, loc := range m.label.FindAllStringIndex(s, -1) {
		if !m.isExcluded(s[loc[1]:]) {
			return loc
		}
	}
	return nil
}

func (m labelMatcher) isExcluded(rest string) bool {
	rest = strings.ToLower(strings.TrimLeft(rest, " \t\r\n:"))
	for _, w := range m.excluded {
		if strings.HasPrefix(rest, w) {
			return true
		}
	}
	return false
}

// SlipParser runs the regex side of field extraction. It is immutable after
// construction and safe for concurrent use.
type SlipParser struct {
	opts     KeyValueOptions
	patterns *PatternLibrary
	labels   map[SalaryField][]labelMatcher
	guards   []string
}

// NewSlipParser compiles label matchers for opts.
func NewSlipParser(opts KeyValueOptions) *SlipParser {
	if opts.StreamWindow <= 0 {
		opts.StreamWindow = DefaultStreamWindow
	}
	if opts.LookaheadLines < 0 {
		opts.LookaheadLines = 0
	}

	p := &SlipParser{
		opts:     opts,
		patterns: NewPatternLibrary(),
		labels:   make(map[SalaryField][]labelMatcher, len(FieldSynonyms)),
	}
	for field, synonyms := range FieldSynonyms {
		for _, syn := range synonyms {
			quoted := `\b` + regexp.QuoteMeta(syn) + `\b`
			var excluded []string
			for _, w := range labelExclusions[syn] {
				excluded = append(excluded, strings.ToLower(w))
			}
			p.labels[field] = append(p.labels[field], labelMatcher{
				label:    regexp.MustCompile(`(?i)` + quoted),
				stream:   regexp.MustCompile(fmt.Sprintf(`(?is)(%s).{0,%d}?(\d[\d,]*(?:\.\d+)?)`, quoted, opts.StreamWindow)),
				excluded: excluded,
			})
		}
	}
	for _, g := range opts.NextLineGuards {
		p.guards = append(p.guards, strings.ToLower(g))
	}
	return p
}

// Patterns exposes the recognizers used by the parser.
func (p *SlipParser) Patterns() *PatternLibrary {
	return p.patterns
}

var defaultParser = NewSlipParser(DefaultKeyValueOptions())

// ParseSalarySlip extracts structured data from salary slip OCR text using
// the default options.
func ParseSalarySlip(ocrText string) dto.ExtractedRecord {
	return defaultParser.Parse(ocrText)
}

// Parse extracts identifiers, dates, amounts, label-anchored names and the
// keyed salary components from text. It never fails; anything it cannot
// find is left at its zero value.
func (p *SlipParser) Parse(text string) dto.ExtractedRecord {
	rec := dto.NewExtractedRecord()

	identifiers := map[dto.IdentifierKind]PatternKind{
		dto.IdentifierPAN:     PatternPAN,
		dto.IdentifierAadhaar: PatternAadhaar,
		dto.IdentifierEmail:   PatternEmail,
		dto.IdentifierPhone:   PatternPhone,
		dto.IdentifierIFSC:    PatternIFSC,
	}
	for id, kind := range identifiers {
		if m, ok := p.patterns.Find(kind, text); ok {
			rec.Identifiers[id] = m
		}
	}

	rec.Dates = p.patterns.FindAll(PatternDate, text)
	rec.Amounts = p.patterns.FindAll(PatternAmount, text)
	rec.Names = ExtractNames(text)

	rec.BasicSalary = p.ExtractField(text, FieldBasicSalary)
	rec.HRA = p.ExtractField(text, FieldHRA)
	rec.NetPay = p.ExtractField(text, FieldNetPay)
	rec.TotalEarnings = p.ExtractField(text, FieldTotalEarnings)
	rec.TotalDeductions = p.ExtractField(text, FieldTotalDeductions)

	return rec
}

// ExtractField finds the number printed against one of field's labels.
// Structured, multi-line text is tried first; single-line OCR streams fall
// through to a bounded window search. Returns 0 when nothing is found.
func (p *SlipParser) ExtractField(text string, field SalaryField) float64 {
	matchers := p.labels[field]

	// 1. Line-based
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for _, m := range matchers {
			loc := m.find(line)
			if loc == nil {
				continue
			}

			if v, ok := firstAmount(line[loc[1]:]); ok {
				return v
			}
			if v, ok := firstAmount(line); ok {
				return v
			}

			for j := 1; j <= p.opts.LookaheadLines && i+j < len(lines); j++ {
				next := lines[i+j]
				if p.isGuarded(next) {
					break
				}
				if v, ok := firstAmount(next); ok {
					return v
				}
			}
		}
	}

	// 2. Stream-based
	for _, m := range matchers {
		for _, idx := range m.stream.FindAllStringSubmatchIndex(text, -1) {
			if m.isExcluded(text[idx[3]:]) {
				continue
			}
			if v, ok := ParseAmount(text[idx[4]:idx[5]]); ok && v > 0 {
				return v
			}
		}
	}

	return 0.0
}

func (p *SlipParser) isGuarded(line string) bool {
	lower := strings.ToLower(line)
	for _, g := range p.guards {
		if strings.Contains(lower, g) {
			return true
		}
	}
	return false
}

func firstAmount(s string) (float64, bool) {
	for _, tok := range numberRegex.FindAllString(s, -1) {
		if v, ok := ParseAmount(tok); ok && v > 0 {
			return v, true
		}
	}
	return 0, false
}
