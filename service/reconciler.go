package service

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/Aashish23092/salary-slip-risk/dto"
)

// Reconcile derives at most one missing money field from the identity
// earnings = net + deductions. The input is not modified, and applying
// Reconcile to its own output changes nothing.
func Reconcile(rec dto.ExtractedRecord) dto.ExtractedRecord {
	out := rec.Clone()

	net := out.NetPay
	earnings := out.TotalEarnings
	deductions := out.TotalDeductions

	switch {
	case deductions == 0 && earnings > 0 && net > 0:
		if earnings >= net {
			out.TotalDeductions = balance(earnings, net)
		}
	case net == 0 && earnings > 0 && deductions > 0:
		if earnings >= deductions {
			out.NetPay = balance(earnings, deductions)
		}
	case earnings == 0 && net > 0 && deductions > 0:
		out.TotalEarnings = net + deductions
	}

	return out
}

// maxBalanceSteps bounds the ulp walk in balance; the decimal estimate is
// never more than a few ulps away.
const maxBalanceSteps = 64

// balance returns the part p such that known + p == total holds in float64.
// It starts from the exact decimal difference, which prints cleanly, and
// steps one ulp at a time until the sum lands on total.
func balance(total, known float64) float64 {
	p := decimal.NewFromFloat(total).Sub(decimal.NewFromFloat(known)).InexactFloat64()
	for i := 0; i < maxBalanceSteps; i++ {
		sum := known + p
		switch {
		case sum == total:
			return p
		case sum < total:
			p = math.Nextafter(p, math.Inf(1))
		default:
			p = math.Nextafter(p, math.Inf(-1))
		}
	}
	return total - known
}
