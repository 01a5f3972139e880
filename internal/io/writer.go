package io

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/pagegauge/pagegauge/internal/config"
	"github.com/pagegauge/pagegauge/pkg/models"
)

// ReportWriter writes the run report to the configured output
type ReportWriter struct {
	Config *config.IOConfig
}

// NewReportWriter creates a new report writer
func NewReportWriter(config *config.IOConfig) *ReportWriter {
	return &ReportWriter{
		Config: config,
	}
}

// SaveToFile wraps the page reports into a run report and writes it in the
// configured format.
func (w *ReportWriter) SaveToFile(reports []models.PageReport) (string, error) {
	run := models.RunReport{
		RunID:       uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Reports:     reports,
	}

	switch w.Config.OutputFormat {
	case "json":
		data, err := json.MarshalIndent(run, "", "  ")
		if err != nil {
			return "", err
		}
		return run.RunID, os.WriteFile(w.Config.OutputFile, data, 0644)

	case "csv":
		// Implement CSV output if needed
		return "", fmt.Errorf("CSV output not implemented yet")

	default:
		return "", fmt.Errorf("unsupported output format: %s", w.Config.OutputFormat)
	}
}
