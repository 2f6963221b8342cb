package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Aashish23092/salary-slip-risk/dto"
)

func validRecord() dto.ExtractedRecord {
	rec := dto.NewExtractedRecord()
	rec.Identifiers[dto.IdentifierPAN] = "ABCDE1234F"
	rec.Names = []string{"Rahul Sharma"}
	rec.Salary = 50000
	return rec
}

func TestValidate_Clean(t *testing.T) {
	issues := Validate(validRecord())

	assert.NotNil(t, issues)
	assert.Empty(t, issues)
}

func TestValidate_Rules(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*dto.ExtractedRecord)
		want   []string
	}{
		{
			name:   "missing pan is optional",
			modify: func(r *dto.ExtractedRecord) { delete(r.Identifiers, dto.IdentifierPAN) },
			want:   []string{"Missing field: pan"},
		},
		{
			name:   "missing names",
			modify: func(r *dto.ExtractedRecord) { r.Names = []string{} },
			want:   []string{"Missing mandatory field: names"},
		},
		{
			name:   "blank names",
			modify: func(r *dto.ExtractedRecord) { r.Names = []string{"", "  "} },
			want:   []string{"Missing mandatory field: names (Found empty)"},
		},
		{
			name:   "short pan",
			modify: func(r *dto.ExtractedRecord) { r.Identifiers[dto.IdentifierPAN] = "ABCDE123" },
			want:   []string{"Invalid PAN format: ABCDE123"},
		},
		{
			name:   "low salary",
			modify: func(r *dto.ExtractedRecord) { r.Salary = 999.5 },
			want:   []string{"Suspiciously low salary detected: 999.5"},
		},
		{
			name: "everything wrong",
			modify: func(r *dto.ExtractedRecord) {
				delete(r.Identifiers, dto.IdentifierPAN)
				r.Names = nil
				r.Salary = 0
			},
			want: []string{
				"Missing field: pan",
				"Missing mandatory field: names",
				"Suspiciously low salary detected: 0",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.modify(&rec)
			assert.Equal(t, tt.want, dto.IssueMessages(Validate(rec)))
		})
	}
}

func TestValidate_SalaryFloorIsExclusive(t *testing.T) {
	rec := validRecord()
	rec.Salary = SalaryFloor

	assert.Empty(t, Validate(rec))
}

func TestValidate_MissingNamesRejects(t *testing.T) {
	rec := validRecord()
	rec.Names = []string{}

	issues := Validate(rec)
	assert.Equal(t, dto.MissingMandatoryField, issues[0].Kind)

	for _, status := range []dto.FraudStatus{dto.FraudNormal, dto.FraudAnomalyDetected} {
		report := ScoreRisk(issues, status)
		assert.Equal(t, 100, report.Score)
		assert.Equal(t, dto.Rejected, report.Eligibility)
	}
}
