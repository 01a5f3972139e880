package measure

import (
	"context"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/pagegauge/pagegauge/internal/browser"
	"github.com/pagegauge/pagegauge/internal/capture"
	"github.com/pagegauge/pagegauge/internal/config"
	"github.com/pagegauge/pagegauge/internal/diag"
	"github.com/pagegauge/pagegauge/internal/extraction"
	"github.com/pagegauge/pagegauge/internal/metrics"
	"github.com/pagegauge/pagegauge/pkg/models"
)

// Measurer runs the full measurement pipeline for one URL at a time: a cold
// load, a cache-eligible reload on the same tab, and the metric fold over
// both captures.
type Measurer struct {
	cfg     *config.AppConfig
	session *browser.Session
	diag    diag.Sink
}

// New creates a measurer bound to a running browser session.
func New(cfg *config.AppConfig, session *browser.Session, sink diag.Sink) *Measurer {
	return &Measurer{cfg: cfg, session: session, diag: sink}
}

// Measure measures a single URL. Failures are reported on the returned
// PageReport; they never affect other URLs in the same run.
func (m *Measurer) Measure(url string) models.PageReport {
	start := time.Now()
	report := models.PageReport{URL: url, Timestamp: time.Now()}

	tabCtx, closeTab, err := m.session.NewTab()
	if err != nil {
		report.Err = err.Error()
		report.Duration = time.Since(start)
		return report
	}
	defer closeTab()

	ctx := tabCtx
	if m.cfg.Measure.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(tabCtx, m.cfg.Measure.Timeout)
		defer cancel()
	}

	recorder := capture.NewRecorder(m.cfg.Measure.SettleWindow, m.diag)
	opts := capture.Options{
		CacheEnabled:   m.cfg.Measure.CacheEnabled,
		ScrollToBottom: m.cfg.Measure.ScrollToBottom,
	}

	// Initial load on a fresh tab: nothing is cached yet, so this is the
	// cold measurement.
	initial, err := recorder.Record(ctx, url, opts)
	if err != nil {
		report.Err = err.Error()
		report.Duration = time.Since(start)
		return report
	}

	// Reload on the same tab; whatever the first load cached is now
	// eligible.
	opts.Reload = true
	reload, err := recorder.Record(ctx, url, opts)
	if err != nil {
		report.Err = err.Error()
		report.Duration = time.Since(start)
		return report
	}

	report.Metrics = metrics.Compute(initial, reload, m.cfg.Measure.DataReloadRatio, m.diag)
	if m.cfg.Measure.KeepResources {
		report.InitialResources = initial
		report.ReloadResources = reload
	}

	// Page metadata is context for the report, not part of the measurement;
	// a failure here is logged and the report stays valid.
	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
		m.diag.Warnf("read document HTML for %s: %v", url, err)
	} else if meta, err := extraction.FromHTML(html); err != nil {
		m.diag.Warnf("extract page metadata for %s: %v", url, err)
	} else {
		report.Title = meta.Title
		report.Description = meta.Description
	}

	report.Duration = time.Since(start)
	return report
}
