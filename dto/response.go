package dto

import "errors"

// Custom errors
var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoFiles           = errors.New("no files provided")
	ErrEmptyText         = errors.New("text is required")
	ErrUploadTooLarge    = errors.New("upload exceeds the maximum file size")
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// AnalysisResult is the terminal artifact of the pipeline for one document.
type AnalysisResult struct {
	ReportID         string          `json:"report_id"`
	Source           string          `json:"source"`
	ExtractedData    ExtractedRecord `json:"extracted_data"`
	ValidationIssues []string        `json:"validation_issues"`
	FraudStatus      FraudStatus     `json:"fraud_status"`
	FraudReason      *string         `json:"fraud_reason"`
	RiskScore        int             `json:"risk_score"`
	Eligibility      Eligibility     `json:"eligibility"`
	Summary          string          `json:"summary"`
	ProcessedAt      string          `json:"processed_at"`
}

// BatchFailure records a document that could not be analysed.
type BatchFailure struct {
	Source string `json:"source"`
	Error  string `json:"error"`
}

// BatchAnalysisResponse is the response for multi-document uploads.
type BatchAnalysisResponse struct {
	Results     []AnalysisResult `json:"results"`
	Failures    []BatchFailure   `json:"failures"`
	ProcessedAt string           `json:"processed_at"`
}
