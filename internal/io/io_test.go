package io

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagegauge/pagegauge/internal/config"
	"github.com/pagegauge/pagegauge/pkg/models"
)

func TestReadFromFileSkipsCommentsAndBlanks(t *testing.T) {
	content := `
# measurement targets
https://example.com

https://example.org
  https://example.net
`
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	reader := NewURLReader(&config.IOConfig{InputFile: path})
	urls, err := reader.GetURLs()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://example.com",
		"https://example.org",
		"https://example.net",
	}, urls)
}

func TestReadFromFileRejectsRelativeTargets(t *testing.T) {
	content := `
https://example.com
www.example.org
`
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	reader := NewURLReader(&config.IOConfig{InputFile: path})
	_, err := reader.GetURLs()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Contains(t, err.Error(), "www.example.org")
}

func TestReadFromFileRejectsNonHTTPSchemes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("file:///etc/hosts\n"), 0644))

	reader := NewURLReader(&config.IOConfig{InputFile: path})
	_, err := reader.GetURLs()
	assert.Error(t, err)
}

func TestGetURLsFallsBackToDefaults(t *testing.T) {
	reader := NewURLReader(&config.IOConfig{})
	urls, err := reader.GetURLs()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultURLs, urls)
}

func TestSaveToFileWritesRunReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.json")
	writer := NewReportWriter(&config.IOConfig{OutputFile: path, OutputFormat: "json"})

	ratio := 0.5
	reports := []models.PageReport{
		{
			URL: "https://example.com",
			Metrics: models.Metrics{
				PageWeight:          150,
				ResourceTypeWeights: map[models.ResourceKind]int64{models.KindImage: 150},
				DataReloadRatio:     &ratio,
			},
		},
	}

	runID, err := writer.SaveToFile(reports)
	require.NoError(t, err)
	_, err = uuid.Parse(runID)
	assert.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var run models.RunReport
	require.NoError(t, json.Unmarshal(data, &run))
	assert.Equal(t, runID, run.RunID)
	require.Len(t, run.Reports, 1)
	assert.Equal(t, int64(150), run.Reports[0].Metrics.PageWeight)
	require.NotNil(t, run.Reports[0].Metrics.DataReloadRatio)
	assert.Equal(t, 0.5, *run.Reports[0].Metrics.DataReloadRatio)
}

func TestSaveToFileRejectsUnknownFormat(t *testing.T) {
	writer := NewReportWriter(&config.IOConfig{OutputFile: "x", OutputFormat: "xml"})
	_, err := writer.SaveToFile(nil)
	assert.Error(t, err)
}
