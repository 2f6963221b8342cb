package service

import (
	"github.com/Aashish23092/salary-slip-risk/dto"
	"github.com/Aashish23092/salary-slip-risk/utils"
)

// InferSalary picks the single salary figure used for validation: net pay,
// then total earnings, then the largest raw amount that is not a year.
func InferSalary(rec dto.ExtractedRecord) float64 {
	if rec.NetPay > 0 {
		return rec.NetPay
	}
	if rec.TotalEarnings > 0 {
		return rec.TotalEarnings
	}

	best := 0.0
	for _, raw := range rec.Amounts {
		if v, ok := utils.CleanAmount(raw); ok && v > best {
			best = v
		}
	}
	return best
}
