package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/pagegauge/pagegauge/internal/diag"
	"github.com/pagegauge/pagegauge/pkg/models"
)

const (
	idlePollInterval = 100 * time.Millisecond
	scrollStep       = 600
	scrollPause      = 100 * time.Millisecond

	scrollHeightJS = `document.documentElement.scrollHeight`
)

// Options selects how a single navigation is performed.
type Options struct {
	Reload         bool
	CacheEnabled   bool
	ScrollToBottom bool
}

// Recorder performs one navigation on an existing browser tab and produces
// the merged resource list for it.
type Recorder struct {
	settle time.Duration
	diag   diag.Sink
}

// NewRecorder creates a recorder. settle is the network-idle quiet period
// used as the navigation completion signal.
func NewRecorder(settle time.Duration, sink diag.Sink) *Recorder {
	return &Recorder{settle: settle, diag: sink}
}

// Record navigates the tab bound to ctx and returns every network resource
// captured during the load. Per-resource capture failures are logged and
// skipped; only setup and navigation failures surface as errors.
func (r *Recorder) Record(ctx context.Context, targetURL string, opts Options) ([]models.Resource, error) {
	// Make sure the tab exists so the session executor below is valid.
	if err := chromedp.Run(ctx); err != nil {
		return nil, fmt.Errorf("PageLoadRecorder: attach to tab: %w", err)
	}
	execCtx := cdp.WithExecutor(ctx, chromedp.FromContext(ctx).Target)

	rec := newRecording(r.diag)

	// Listeners live on a child context so they are torn down when this
	// function returns, whatever the navigation outcome.
	lctx, lcancel := context.WithCancel(ctx)
	defer lcancel()
	chromedp.ListenTarget(lctx, func(ev interface{}) {
		rec.handle(execCtx, ev)
	})

	if err := chromedp.Run(ctx,
		network.Enable(),
		network.SetCacheDisabled(!opts.CacheEnabled),
	); err != nil {
		return nil, fmt.Errorf("PageLoadRecorder: enable network instrumentation: %w", err)
	}

	var nav chromedp.Action = chromedp.Navigate(targetURL)
	if opts.Reload {
		nav = chromedp.Reload()
	}
	if err := chromedp.Run(ctx, nav); err != nil {
		return nil, fmt.Errorf("PageLoadRecorder: navigate %s: %w", targetURL, err)
	}

	if err := rec.waitIdle(ctx, r.settle); err != nil {
		return nil, fmt.Errorf("PageLoadRecorder: wait for network idle: %w", err)
	}

	if opts.ScrollToBottom {
		if err := r.scrollToBottom(ctx); err != nil {
			return nil, fmt.Errorf("PageLoadRecorder: scroll to bottom: %w", err)
		}
		// Scroll-triggered lazy loads need their own settle.
		if err := rec.waitIdle(ctx, r.settle); err != nil {
			return nil, fmt.Errorf("PageLoadRecorder: wait for network idle after scroll: %w", err)
		}
	}

	// Detach the transport session, then let outstanding body reads drain.
	lcancel()
	rec.bodyReads.Wait()

	return rec.merge(), nil
}

// scrollToBottom scrolls in steps until the current offset reaches the live
// document height. The height is re-read every step because lazy-loaded
// content grows the page while scrolling.
func (r *Recorder) scrollToBottom(ctx context.Context) error {
	var height int64
	if err := chromedp.Run(ctx, chromedp.Evaluate(scrollHeightJS, &height)); err != nil {
		return err
	}

	var offset int64
	for offset < height {
		offset += scrollStep
		if err := chromedp.Run(ctx,
			chromedp.Evaluate(fmt.Sprintf("window.scrollTo(0, %d)", offset), nil),
			chromedp.Sleep(scrollPause),
		); err != nil {
			return err
		}

		var live int64
		if err := chromedp.Run(ctx, chromedp.Evaluate(scrollHeightJS, &live)); err != nil {
			return err
		}
		r.noteShrink(height, live)
		height = live
	}
	return nil
}

// noteShrink warns when the live document height has dropped below the
// height read on the previous scroll step.
func (r *Recorder) noteShrink(prev, live int64) {
	if live < prev {
		r.diag.Warnf("page height shrank during scroll (%d -> %d)", prev, live)
	}
}

// capturedResource accumulates one response before the transfer-size merge.
type capturedResource struct {
	url               string
	kind              models.ResourceKind
	fromCache         bool
	fromServiceWorker bool
	size              int64
	skipped           bool
}

// recording holds all per-navigation capture state. It is created at
// navigation start and discarded after merge; nothing is shared across
// navigations.
type recording struct {
	diag      diag.Sink
	corr      *Correlator
	bodyReads sync.WaitGroup

	mu           sync.Mutex
	resources    []*capturedResource
	byID         map[network.RequestID]*capturedResource
	methods      map[network.RequestID]string
	served       map[network.RequestID]bool
	inflight     map[network.RequestID]bool
	lastActivity time.Time
}

func newRecording(sink diag.Sink) *recording {
	return &recording{
		diag:         sink,
		corr:         NewCorrelator(),
		byID:         make(map[network.RequestID]*capturedResource),
		methods:      make(map[network.RequestID]string),
		served:       make(map[network.RequestID]bool),
		inflight:     make(map[network.RequestID]bool),
		lastActivity: time.Now(),
	}
}

func (rec *recording) handle(execCtx context.Context, ev interface{}) {
	switch e := ev.(type) {
	case *network.EventRequestWillBeSent:
		rec.mu.Lock()
		rec.methods[e.RequestID] = e.Request.Method
		rec.inflight[e.RequestID] = true
		rec.lastActivity = time.Now()
		rec.mu.Unlock()

	case *network.EventRequestServedFromCache:
		rec.mu.Lock()
		rec.served[e.RequestID] = true
		rec.mu.Unlock()

	case *network.EventResponseReceived:
		rec.onResponse(e)

	case *network.EventLoadingFinished:
		rec.onLoadingFinished(execCtx, e)

	case *network.EventLoadingFailed:
		rec.mu.Lock()
		delete(rec.inflight, e.RequestID)
		rec.lastActivity = time.Now()
		rec.mu.Unlock()
	}
}

func (rec *recording) onResponse(e *network.EventResponseReceived) {
	rec.corr.ObserveResponse(e.RequestID, e.Response.URL)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.lastActivity = time.Now()

	if !IsNetworkResource(e.Response.URL) {
		return
	}
	if !HasBody(e.Response.Status, rec.methods[e.RequestID]) {
		return
	}

	cr := &capturedResource{
		url:               e.Response.URL,
		kind:              models.KindFromCDP(e.Type),
		fromCache:         e.Response.FromDiskCache || rec.served[e.RequestID],
		fromServiceWorker: e.Response.FromServiceWorker,
	}
	rec.resources = append(rec.resources, cr)
	rec.byID[e.RequestID] = cr
}

func (rec *recording) onLoadingFinished(execCtx context.Context, e *network.EventLoadingFinished) {
	rec.corr.ObserveLoadingFinished(e.RequestID, e.EncodedDataLength)

	rec.mu.Lock()
	delete(rec.inflight, e.RequestID)
	rec.lastActivity = time.Now()
	cr := rec.byID[e.RequestID]
	rec.mu.Unlock()

	if cr == nil {
		return
	}

	// The body is only guaranteed readable once loading has finished. Reads
	// run off the event loop so they interleave with the navigation wait.
	rec.bodyReads.Add(1)
	go func() {
		defer rec.bodyReads.Done()
		body, err := network.GetResponseBody(e.RequestID).Do(execCtx)

		rec.mu.Lock()
		defer rec.mu.Unlock()
		if err != nil {
			rec.diag.Warnf("read body of %s: %v, skipping resource", cr.url, err)
			cr.skipped = true
			return
		}
		cr.size = int64(len(body))
	}()
}

// waitIdle blocks until no request has been in flight for the settle window.
func (rec *recording) waitIdle(ctx context.Context, settle time.Duration) error {
	ticker := time.NewTicker(idlePollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rec.mu.Lock()
			idle := len(rec.inflight) == 0 && time.Since(rec.lastActivity) >= settle
			rec.mu.Unlock()
			if idle {
				return nil
			}
		}
	}
}

// merge resolves every captured resource against the correlator. A resource
// with no transport record keeps transfer size 0; that is degraded, not
// fatal.
func (rec *recording) merge() []models.Resource {
	rec.mu.Lock()
	defer rec.mu.Unlock()

	out := make([]models.Resource, 0, len(rec.resources))
	for _, cr := range rec.resources {
		if cr.skipped {
			continue
		}
		transfer, ok := rec.corr.Resolve(cr.url)
		if !ok {
			rec.diag.Warnf("no transfer size resolved for %s, assuming 0", cr.url)
			transfer = 0
		}
		out = append(out, models.Resource{
			URL:               cr.url,
			ResourceSize:      cr.size,
			TransferSize:      transfer,
			Kind:              cr.kind,
			FromCache:         cr.fromCache,
			FromServiceWorker: cr.fromServiceWorker,
		})
	}
	return out
}
