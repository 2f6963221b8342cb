package utils

import (
	"strings"
	"testing"

	"github.com/Aashish23092/salary-slip-risk/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tableSlip = `
Salary Slip NOV - 19
Emp No : CSE-8182
Name : Rahul Sharma
PAN NO : ABCDE1234F
Bank : HDFC BANK

Earnings        Rs.         Deduction       Rs.
Basic           16,000.00   Professional Tax 200.00
Conveyance      6,000.00    Employee PF     1,680.00
Performance     3,500.00    Income Tax      -

Total Earning   25,500.00   Total Deduction 1,880.00
Net Pay : 23,620.00/-
`

func TestParseSalarySlip(t *testing.T) {
	data := ParseSalarySlip(tableSlip)

	assert.Equal(t, []string{"Rahul Sharma"}, data.Names)
	assert.Equal(t, "ABCDE1234F", data.Identifiers[dto.IdentifierPAN])
	assert.Equal(t, 16000.0, data.BasicSalary)
	assert.Equal(t, 0.0, data.HRA)
	assert.Equal(t, 25500.0, data.TotalEarnings)
	assert.Equal(t, 1880.0, data.TotalDeductions)
	assert.Equal(t, 23620.0, data.NetPay)
	assert.Equal(t, 0.0, data.Salary)
}

func TestParseSalarySlip_Identifiers(t *testing.T) {
	text := `
		ABC Corp Ltd.
		Employee Name: John Doe
		PAN: ABCDE1234F  Aadhaar: 1234 5678 9012
		IFSC: HDFC0001234
		Email: john.doe@abccorp.com Phone: 9876543210
		Pay Date: 31/10/2025 Joining: 01/04/2020
		Total Earnings: Rs. 50,000.00
		Net Salary: Rs. 45,000
	`

	data := ParseSalarySlip(text)

	assert.Equal(t, "ABCDE1234F", data.Identifiers[dto.IdentifierPAN])
	assert.Equal(t, "1234 5678 9012", data.Identifiers[dto.IdentifierAadhaar])
	assert.Equal(t, "HDFC0001234", data.Identifiers[dto.IdentifierIFSC])
	assert.Equal(t, "john.doe@abccorp.com", data.Identifiers[dto.IdentifierEmail])
	assert.Equal(t, "9876543210", data.Identifiers[dto.IdentifierPhone])
	assert.Equal(t, []string{"31/10/2025", "01/04/2020"}, data.Dates)
	assert.Equal(t, []string{"Rs. 50,000.00", "Rs. 45,000"}, data.Amounts)
	assert.Equal(t, []string{"John Doe"}, data.Names)
	assert.Equal(t, 50000.0, data.TotalEarnings)
	assert.Equal(t, 45000.0, data.NetPay)
}

func TestParseSalarySlip_EmptyText(t *testing.T) {
	data := ParseSalarySlip("")

	assert.Empty(t, data.Identifiers)
	assert.NotNil(t, data.Dates)
	assert.NotNil(t, data.Amounts)
	assert.Empty(t, data.Names)
	assert.Empty(t, data.Organizations)
	assert.Zero(t, data.NetPay)
	assert.Zero(t, data.TotalEarnings)
}

func TestExtractField_NextLine(t *testing.T) {
	text := "Net Pay\n45,000.00\nDesignation: Engineer"

	assert.Equal(t, 45000.0, ParseSalarySlip(text).NetPay)
}

func TestExtractField_NextLineGuard(t *testing.T) {
	p := NewSlipParser(KeyValueOptions{StreamWindow: 5, LookaheadLines: 1, NextLineGuards: []string{"Designation"}})
	text := "Basic Pay\nDesignation Grade 7"

	assert.Zero(t, p.ExtractField(text, FieldBasicSalary))
}

func TestExtractField_SkipsCalendarYears(t *testing.T) {
	text := "Net Pay for March 2023 : 41,250.50"

	assert.Equal(t, 41250.5, ParseSalarySlip(text).NetPay)
}

func TestExtractField_YearOnlyIsNotMoney(t *testing.T) {
	for _, year := range []string{"1990", "2023", "2100"} {
		assert.Zero(t, ParseSalarySlip("Net Pay "+year).NetPay, year)
	}
}

func TestExtractField_SingleLine(t *testing.T) {
	// single-line OCR output with the value separated from its label
	text := "SALARY SLIP | Gross Salary (monthly, INR) .... 62,000 | Take Home >> 55,400.00 | Total Deductions: 6,600"

	data := ParseSalarySlip(text)

	assert.Equal(t, 62000.0, data.TotalEarnings)
	assert.Equal(t, 55400.0, data.NetPay)
	assert.Equal(t, 6600.0, data.TotalDeductions)
}

func TestExtractField_StreamWindow(t *testing.T) {
	p := NewSlipParser(DefaultKeyValueOptions())

	// the guard keeps the line pass off the number, so only the window
	// decides; the gap is spaces + newline + "Name "
	within := "Take Home" + strings.Repeat(" ", 94) + "\nName 12,345"
	beyond := "Take Home" + strings.Repeat(" ", 95) + "\nName 12,345"

	assert.Equal(t, 12345.0, p.ExtractField(within, FieldNetPay))
	assert.Zero(t, p.ExtractField(beyond, FieldNetPay))
}

func TestExtractField_WindowIsConfigurable(t *testing.T) {
	p := NewSlipParser(KeyValueOptions{StreamWindow: 10, LookaheadLines: 1, NextLineGuards: []string{"Name"}})
	text := "Take Home" + strings.Repeat(".", 20) + "\nName 12,345"

	assert.Zero(t, p.ExtractField(text, FieldNetPay))
}

func TestExtractField_LabelNeedsWordBoundary(t *testing.T) {
	text := "Name : Rahul Sharma\nPAN NO : ABCDE1234F"

	assert.Zero(t, ParseSalarySlip(text).HRA)
}

func TestExtractField_TotalIsNotTotalDeductions(t *testing.T) {
	text := "Total Deductions: 5,000\nGross Salary: 60,000"

	data := ParseSalarySlip(text)

	assert.Equal(t, 60000.0, data.TotalEarnings)
	assert.Equal(t, 5000.0, data.TotalDeductions)
	assert.Zero(t, ParseSalarySlip("Total Deduction 1,880.00").TotalEarnings)
	assert.Zero(t, ParseSalarySlip("Take Home 41,000 | Total Deductions: 6,600").TotalEarnings)
	assert.Equal(t, 25500.0, ParseSalarySlip("Total Deductions 1,880 Total 25,500").TotalEarnings)
}

func TestExtractNames(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"before next label", "Employee Name: Priya Nair Designation: Analyst", []string{"Priya Nair"}},
		{"stops at digit", "Name: Arjun Rao 2024-25", []string{"Arjun Rao"}},
		{"end of line", "Emp Name: Kavya Menon\nMonth: March", []string{"Kavya Menon"}},
		{"honorific", "Paid to MR SURESH KUMAR PAN ABCDE1234F", []string{"SURESH KUMAR"}},
		{"honorific mixed case", "Salary credited to Mr. Rahul Sharma\n", []string{"Rahul Sharma"}},
		{"honorific before label", "Paid to Mrs. Anita Desai Designation Manager", []string{"Anita Desai"}},
		{"blank label", "Employee Name: \n", []string{}},
		{"nothing", "Net Pay 45000", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractNames(tt.text))
		})
	}
}

func TestPatternLibrary_UnknownKindPanics(t *testing.T) {
	lib := NewPatternLibrary()

	require.Panics(t, func() { lib.Find(PatternKind("passport"), "X") })
}
