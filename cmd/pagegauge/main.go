package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/pagegauge/pagegauge/internal/browser"
	"github.com/pagegauge/pagegauge/internal/config"
	"github.com/pagegauge/pagegauge/internal/diag"
	"github.com/pagegauge/pagegauge/internal/io"
	"github.com/pagegauge/pagegauge/internal/measure"
	"github.com/pagegauge/pagegauge/internal/worker"
	"github.com/pagegauge/pagegauge/pkg/models"
)

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to configuration file (YAML)")
	inputFile := flag.String("input", "", "File containing URLs to measure (one per line)")
	outputFile := flag.String("output", "report.json", "File to save the run report to")
	numWorkers := flag.Int("workers", 0, "Number of concurrent workers")
	rateLimit := flag.Duration("rate-limit", 0, "Delay between measurement starts")
	timeout := flag.Duration("timeout", 0, "Navigation timeout per URL")
	settle := flag.Duration("settle", 0, "Network-idle settle window")
	scroll := flag.Bool("scroll", false, "Scroll to the bottom of each page to trigger lazy loading")
	noCache := flag.Bool("no-cache", false, "Disable the browser cache for every load")
	keepResources := flag.Bool("resources", false, "Include per-resource lists in the report")
	device := flag.String("device", "", "Mobile device emulation preset (iphone-x, pixel-2, galaxy-s5, ipad)")
	netPreset := flag.String("network", "", "Network condition preset (slow-3g, fast-3g, 4g)")
	reloadRatio := flag.Float64("data-reload-ratio", -1, "Use this data reload ratio instead of measuring it")
	headful := flag.Bool("headful", false, "Run the browser with a visible window")
	flag.Parse()

	// Load configuration: file first, then environment, then flag overrides
	var appConfig *config.AppConfig
	var err error
	if *configFile != "" {
		appConfig, err = config.Load(*configFile)
	} else {
		appConfig, err = config.FromEnv()
	}
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if *inputFile != "" {
		appConfig.IO.InputFile = *inputFile
	}
	if *outputFile != "report.json" {
		appConfig.IO.OutputFile = *outputFile
	}
	if *numWorkers > 0 {
		appConfig.Workers.Count = *numWorkers
	}
	if *rateLimit > 0 {
		appConfig.Workers.RateLimit = *rateLimit
	}
	if *timeout > 0 {
		appConfig.Measure.Timeout = *timeout
	}
	if *settle > 0 {
		appConfig.Measure.SettleWindow = *settle
	}
	if *scroll {
		appConfig.Measure.ScrollToBottom = true
	}
	if *noCache {
		appConfig.Measure.CacheEnabled = false
	}
	if *keepResources {
		appConfig.Measure.KeepResources = true
	}
	if *device != "" {
		appConfig.Emulation.Device = *device
	}
	if *netPreset != "" {
		appConfig.Emulation.Network = *netPreset
	}
	if *reloadRatio >= 0 {
		r := *reloadRatio
		appConfig.Measure.DataReloadRatio = &r
	}
	if *headful {
		appConfig.Browser.Headless = false
	}

	if err := appConfig.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := diag.NewLogger(appConfig.Logging.Level, appConfig.Logging.Development)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()
	sink := diag.NewZapSink(logger)

	// Get URLs to measure
	urlReader := io.NewURLReader(&appConfig.IO)
	urls, err := urlReader.GetURLs()
	if err != nil {
		logger.Sugar().Fatalf("Error reading URLs: %v", err)
	}
	if len(urls) == 0 {
		logger.Sugar().Fatal("No URLs to measure")
	}

	sink.Infof("measuring %d URLs with %d workers", len(urls), appConfig.Workers.Count)

	// Launch the browser; it is shared by all pipelines and always closed
	session, err := browser.NewSession(context.Background(), appConfig)
	if err != nil {
		logger.Sugar().Fatalf("Error starting browser: %v", err)
	}
	defer session.Close()

	// Create the worker pool over per-URL measurement pipelines
	measurer := measure.New(appConfig, session, sink)
	pool := worker.NewPool(&appConfig.Workers, measurer, urls, sink)
	pool.Start()
	pool.AddJobs(urls)

	// Collect results
	var reports []models.PageReport
	successCount := 0
	failureCount := 0

	for report := range pool.Results {
		reports = append(reports, report)

		if report.Err != "" {
			sink.Warnf("measurement of %s failed: %s", report.URL, report.Err)
			failureCount++
			continue
		}

		fmt.Printf("%s: page weight %d bytes", report.URL, report.Metrics.PageWeight)
		if report.Metrics.DataReloadRatio != nil {
			fmt.Printf(", data reload ratio %.3f", *report.Metrics.DataReloadRatio)
		}
		fmt.Printf(" (%v)\n", report.Duration.Round(time.Millisecond))
		successCount++
	}

	// Save the run report
	reportWriter := io.NewReportWriter(&appConfig.IO)
	runID, err := reportWriter.SaveToFile(reports)
	if err != nil {
		logger.Sugar().Fatalf("Error saving report: %v", err)
	}

	fmt.Printf("All URLs have been processed. Success: %d, Failures: %d\n", successCount, failureCount)
	fmt.Printf("Run %s saved to %s\n", runID, appConfig.IO.OutputFile)
}
