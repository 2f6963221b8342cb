package service

import (
	"github.com/Aashish23092/salary-slip-risk/dto"
)

const (
	// PANLength is the length of a well-formed PAN.
	PANLength = 10
	// SalaryFloor is the monthly salary below which a slip is suspicious.
	SalaryFloor = 1000.0
)

// Validate lists the problems of a reconciled record, in a fixed order:
// missing fields first, then PAN format, then salary.
func Validate(rec dto.ExtractedRecord) []dto.ValidationIssue {
	issues := []dto.ValidationIssue{}

	pan, hasPAN := rec.Identifier(dto.IdentifierPAN)
	if !hasPAN {
		issues = append(issues, dto.ValidationIssue{Kind: dto.MissingOptionalField, Field: "pan"})
	}

	if !rec.HasNames() {
		issues = append(issues, dto.ValidationIssue{
			Kind:  dto.MissingMandatoryField,
			Field: "names",
			Empty: len(rec.Names) > 0,
		})
	}

	if hasPAN && len(pan) != PANLength {
		issues = append(issues, dto.ValidationIssue{Kind: dto.InvalidFormat, Field: "pan", Value: pan})
	}

	if rec.Salary < SalaryFloor {
		issues = append(issues, dto.ValidationIssue{
			Kind:  dto.SuspiciousValue,
			Field: "salary",
			Value: dto.FormatAmount(rec.Salary),
		})
	}

	return issues
}
