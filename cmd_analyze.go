package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aashish23092/salary-slip-risk/dto"
)

var analyzeFlags struct {
	text     string
	password string
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file...]",
	Short: "Analyse salary slips and print the results as JSON",
	Long: `Analyse one or more salary slips (PDF or image) and print the analysis.

Usage:
  slipscore analyze slip.pdf
  slipscore analyze jan.pdf feb.pdf --password=secret
  slipscore analyze --text "Employee Name: John Doe  Net Pay: 45,000"`,
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.text, "text", "", "Analyse this text instead of files")
	f.StringVar(&analyzeFlags.password, "password", "", "Password for encrypted PDFs")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analyzeFlags.text == "" && len(args) == 0 {
		return errors.New("give at least one file or --text")
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	var out any

	switch {
	case analyzeFlags.text != "":
		out, err = a.service.AnalyzeText(ctx, "", analyzeFlags.text)
	case len(args) == 1:
		data, readErr := os.ReadFile(args[0])
		if readErr != nil {
			return fmt.Errorf("read %s: %w", args[0], readErr)
		}
		out, err = a.service.AnalyzeFile(ctx, filepath.Base(args[0]), data, analyzeFlags.password)
	default:
		docs := make([]dto.UploadedDocument, 0, len(args))
		for _, path := range args {
			data, readErr := os.ReadFile(path)
			if readErr != nil {
				return fmt.Errorf("read %s: %w", path, readErr)
			}
			docs = append(docs, dto.UploadedDocument{Filename: filepath.Base(path), Data: data, Password: analyzeFlags.password})
		}
		out, err = a.service.AnalyzeBatch(ctx, docs)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
