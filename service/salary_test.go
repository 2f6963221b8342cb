package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferSalary(t *testing.T) {
	rec := money(45000, 50000, 5000)
	rec.Amounts = []string{"Rs. 99,999"}
	assert.Equal(t, 45000.0, InferSalary(rec))

	rec = money(0, 50000, 0)
	assert.Equal(t, 50000.0, InferSalary(rec))

	rec = money(0, 0, 0)
	rec.Amounts = []string{"Rs. 12,000", "Rs. 2024", "Rs.48,500.00", "Rs. 900"}
	assert.Equal(t, 48500.0, InferSalary(rec))

	rec.Amounts = []string{"Rs. 2023"}
	assert.Zero(t, InferSalary(rec))

	assert.Zero(t, InferSalary(money(0, 0, 0)))
}

func TestInferSalary_NetPayWins(t *testing.T) {
	for _, net := range []float64{1, 500, 45000, 1e7} {
		rec := money(net, net*3, 17)
		rec.Amounts = []string{"Rs. 9,99,99,999"}
		assert.Equal(t, net, InferSalary(rec))
	}
}
