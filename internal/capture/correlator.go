package capture

import (
	"sync"

	"github.com/chromedp/cdproto/network"
)

// Correlator bridges the page-level response stream and the transport
// session's size accounting for a single navigation. Request identifiers are
// ephemeral, so responses are first held by identifier and only promoted to a
// URL-keyed transfer size once their loading-finished event arrives.
//
// A Correlator is owned by exactly one recording and must not be reused
// across navigations.
type Correlator struct {
	mu       sync.Mutex
	pending  map[network.RequestID]string
	finished map[string]int64
}

// NewCorrelator creates a correlator ready to observe transport events.
func NewCorrelator() *Correlator {
	return &Correlator{
		pending:  make(map[network.RequestID]string),
		finished: make(map[string]int64),
	}
}

// ObserveResponse records the URL a request identifier belongs to.
func (c *Correlator) ObserveResponse(id network.RequestID, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending[id] = url
}

// ObserveLoadingFinished resolves a pending request into its on-wire transfer
// size. An identifier with no matching response is dropped silently; that
// resource simply stays unresolved.
func (c *Correlator) ObserveLoadingFinished(id network.RequestID, encodedDataLength float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	url, ok := c.pending[id]
	if !ok {
		return
	}
	size := int64(encodedDataLength)
	if size < 0 {
		size = 0
	}
	c.finished[url] = size
}

// Resolve returns the transfer size recorded for a URL, if any. Meant to be
// queried after the transport session has been detached.
func (c *Correlator) Resolve(url string) (int64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	size, ok := c.finished[url]
	return size, ok
}
