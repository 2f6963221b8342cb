package utils

import (
	"fmt"
	"regexp"
)

// PatternKind names a fixed-format recognizer.
type PatternKind string

const (
	PatternPAN     PatternKind = "pan"
	PatternAadhaar PatternKind = "aadhaar"
	PatternEmail   PatternKind = "email"
	PatternPhone   PatternKind = "phone"
	PatternDate    PatternKind = "date"
	PatternAmount  PatternKind = "amount"
	PatternIFSC    PatternKind = "ifsc"
)

// PatternLibrary holds the compiled recognizers. It is read-only after
// construction and safe for concurrent use.
type PatternLibrary struct {
	patterns map[PatternKind]*regexp.Regexp
}

var defaultPatterns = map[PatternKind]string{
	PatternPAN:     `[A-Z]{5}[0-9]{4}[A-Z]`,
	PatternAadhaar: `\d{4}\s\d{4}\s\d{4}`,
	PatternEmail:   `[\w.-]+@[\w.-]+`,
	PatternPhone:   `(?:\+91[\-\s]?)?0?(?:91)?[789]\d{9}`,
	PatternDate:    `\d{2}[/-]\d{2}[/-]\d{4}`,
	PatternAmount:  `Rs\.?\s?[\d,]+(?:\.\d{2})?`,
	PatternIFSC:    `[A-Z]{4}0[A-Z0-9]{6}`,
}

// NewPatternLibrary compiles the default recognizers.
func NewPatternLibrary() *PatternLibrary {
	lib := &PatternLibrary{patterns: make(map[PatternKind]*regexp.Regexp, len(defaultPatterns))}
	for kind, expr := range defaultPatterns {
		lib.patterns[kind] = regexp.MustCompile(expr)
	}
	return lib
}

func (l *PatternLibrary) get(kind PatternKind) *regexp.Regexp {
	re, ok := l.patterns[kind]
	if !ok {
		panic(fmt.Sprintf("utils: unknown pattern kind %q", kind))
	}
	return re
}

// Find returns the first match of kind in text.
func (l *PatternLibrary) Find(kind PatternKind, text string) (string, bool) {
	m := l.get(kind).FindString(text)
	return m, m != ""
}

// FindAll returns every match of kind in document order.
func (l *PatternLibrary) FindAll(kind PatternKind, text string) []string {
	matches := l.get(kind).FindAllString(text, -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
