package utils

import (
	"regexp"
	"strings"
)

var (
	// The label alternatives are ordered longest first so the leftmost match
	// keeps the whole label.
	nameBeforeFieldRegex = regexp.MustCompile(`(?i)(?:Employee Name|Emp Name|Name)[\s:_]+([A-Za-z ]+?)\s+(?:Total|Designation|Id|Pan|Bank|Date|\d)`)
	nameAtLineEndRegex   = regexp.MustCompile(`(?i)(?:Employee Name|Emp Name|Name)[\s:_]+([A-Za-z ]+)(?:\n|$)`)
)

// Name words must start with a capital; the rest of each word may be either
// case ("MR SURESH KUMAR", "Mr. Rahul Sharma").
var honorificNameRegex = regexp.MustCompile(`(?i:\b(?:MRS|MR|MS|SHRI|SMT))\.?\s+([A-Z][A-Za-z]+(?: +[A-Z][A-Za-z]*){0,5})`)

var nameStopWords = map[string]bool{
	"pan":         true,
	"total":       true,
	"designation": true,
	"id":          true,
	"bank":        true,
	"date":        true,
	"account":     true,
	"acc":         true,
	"salary":      true,
	"amount":      true,
	"no":          true,
	"emp":         true,
}

// ExtractNames returns label-anchored person names found in text. The first
// rule that yields a non-blank name wins.
func ExtractNames(text string) []string {
	if m := nameBeforeFieldRegex.FindStringSubmatch(text); len(m) > 1 {
		if name := strings.TrimSpace(m[1]); name != "" {
			return []string{name}
		}
	}

	if m := nameAtLineEndRegex.FindStringSubmatch(text); len(m) > 1 {
		if name := strings.TrimSpace(m[1]); name != "" {
			return []string{name}
		}
	}

	if m := honorificNameRegex.FindStringSubmatch(text); len(m) > 1 {
		if name := cleanName(m[1]); name != "" {
			return []string{name}
		}
	}

	return []string{}
}

// cleanName cuts a candidate at the first word that belongs to another field.
func cleanName(s string) string {
	clean := []string{}
	for _, p := range strings.Fields(s) {
		if nameStopWords[strings.ToLower(p)] {
			break
		}
		clean = append(clean, p)
		if len(clean) == 4 {
			break
		}
	}
	return strings.Join(clean, " ")
}

// NormalizeString normalizes string for comparison (lowercase, remove spaces)
func NormalizeString(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	return s
}
