package service

import (
	"github.com/Aashish23092/salary-slip-risk/dto"
)

const maxRiskScore = 100

// RiskPolicy holds the scoring weights. The zero value is not useful; start
// from DefaultRiskPolicy.
type RiskPolicy struct {
	IssuePenalty         int
	AnomalyPenalty       int
	EligibilityThreshold int
}

func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		IssuePenalty:         20,
		AnomalyPenalty:       50,
		EligibilityThreshold: 40,
	}
}

// Score folds validation issues and the fraud verdict into a score in
// [0, 100]. A missing mandatory field rejects the slip outright.
func (p RiskPolicy) Score(issues []dto.ValidationIssue, status dto.FraudStatus) dto.RiskReport {
	for _, issue := range issues {
		if issue.Kind == dto.MissingMandatoryField {
			return dto.RiskReport{Score: maxRiskScore, Eligibility: dto.Rejected}
		}
	}

	score := p.IssuePenalty * len(issues)
	if status == dto.FraudAnomalyDetected {
		score += p.AnomalyPenalty
	}
	score = min(max(score, 0), maxRiskScore)

	eligibility := dto.Rejected
	if score < p.EligibilityThreshold {
		eligibility = dto.Eligible
	}
	return dto.RiskReport{Score: score, Eligibility: eligibility}
}

// ScoreRisk scores with DefaultRiskPolicy.
func ScoreRisk(issues []dto.ValidationIssue, status dto.FraudStatus) dto.RiskReport {
	return DefaultRiskPolicy().Score(issues, status)
}
