package io

import (
	"bufio"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/pagegauge/pagegauge/internal/config"
)

// URLReader reads the URLs to measure
type URLReader struct {
	Config *config.IOConfig
}

// NewURLReader creates a new URL reader
func NewURLReader(config *config.IOConfig) *URLReader {
	return &URLReader{
		Config: config,
	}
}

// ReadFromFile reads measurement targets from a file, one URL per line.
// Blank lines and # comments are skipped; anything else must be an absolute
// http(s) URL, since the browser cannot navigate to a bare host name.
func (r *URLReader) ReadFromFile(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := checkTarget(line); err != nil {
			return nil, fmt.Errorf("URLReader: %s line %d: %w", filename, lineNo, err)
		}
		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return urls, nil
}

// GetURLs returns URLs from the configured source or default URLs
func (r *URLReader) GetURLs() ([]string, error) {
	if r.Config.InputFile != "" {
		return r.ReadFromFile(r.Config.InputFile)
	}

	return config.DefaultURLs, nil
}

func checkTarget(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse %q: %w", raw, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	return nil
}
