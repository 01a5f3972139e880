package browser

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/pagegauge/pagegauge/internal/config"
)

// Session owns one browser process for the lifetime of a run. Tabs for
// individual measurements are opened from it and closed independently.
type Session struct {
	browserCtx    context.Context
	browserCancel context.CancelFunc
	allocCancel   context.CancelFunc
	emulation     config.EmulationConfig
}

// NewSession launches the browser.
func NewSession(ctx context.Context, cfg *config.AppConfig) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Browser.Headless),
		chromedp.UserAgent(cfg.Browser.UserAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Launch eagerly so a broken Chrome install fails the run up front
	// instead of failing every URL.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("BrowserSession: launch browser: %w", err)
	}

	return &Session{
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		allocCancel:   allocCancel,
		emulation:     cfg.Emulation,
	}, nil
}

// NewTab opens a fresh tab with the configured emulation applied. The
// returned cancel closes the tab.
func (s *Session) NewTab() (context.Context, context.CancelFunc, error) {
	tabCtx, tabCancel := chromedp.NewContext(s.browserCtx)

	if err := s.applyEmulation(tabCtx); err != nil {
		tabCancel()
		return nil, nil, err
	}
	return tabCtx, tabCancel, nil
}

func (s *Session) applyEmulation(ctx context.Context) error {
	if s.emulation.Device != "" {
		dev := config.DevicePresets[s.emulation.Device]
		if err := chromedp.Run(ctx, chromedp.Emulate(dev)); err != nil {
			return fmt.Errorf("BrowserSession: emulate device %s: %w", s.emulation.Device, err)
		}
	}

	if s.emulation.Network != "" {
		cond := config.NetworkPresets[s.emulation.Network]
		if err := chromedp.Run(ctx,
			network.Enable(),
			network.EmulateNetworkConditions(false, cond.Latency, cond.DownloadThroughput, cond.UploadThroughput),
		); err != nil {
			return fmt.Errorf("BrowserSession: emulate network %s: %w", s.emulation.Network, err)
		}
	}
	return nil
}

// Close shuts the browser down. Always runs via defer in the caller.
func (s *Session) Close() {
	s.browserCancel()
	s.allocCancel()
}
