package models

import (
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
)

// ResourceKind identifies the kind of network resource a response belongs to,
// as reported by the DevTools network domain. The set is closed: report
// consumers rely on these exact keys.
type ResourceKind string

const (
	KindDocument           ResourceKind = "document"
	KindStylesheet         ResourceKind = "stylesheet"
	KindImage              ResourceKind = "image"
	KindMedia              ResourceKind = "media"
	KindFont               ResourceKind = "font"
	KindScript             ResourceKind = "script"
	KindTextTrack          ResourceKind = "texttrack"
	KindXHR                ResourceKind = "xhr"
	KindFetch              ResourceKind = "fetch"
	KindEventSource        ResourceKind = "eventsource"
	KindWebSocket          ResourceKind = "websocket"
	KindManifest           ResourceKind = "manifest"
	KindSignedExchange     ResourceKind = "signedexchange"
	KindPing               ResourceKind = "ping"
	KindCSPViolationReport ResourceKind = "cspviolationreport"
	KindPreflight          ResourceKind = "preflight"
	KindOther              ResourceKind = "other"
)

// ResourceKinds lists every kind in reporting order.
var ResourceKinds = []ResourceKind{
	KindDocument, KindStylesheet, KindImage, KindMedia, KindFont, KindScript,
	KindTextTrack, KindXHR, KindFetch, KindEventSource, KindWebSocket,
	KindManifest, KindSignedExchange, KindPing, KindCSPViolationReport,
	KindPreflight, KindOther,
}

var validKinds = func() map[ResourceKind]bool {
	m := make(map[ResourceKind]bool, len(ResourceKinds))
	for _, k := range ResourceKinds {
		m[k] = true
	}
	return m
}()

// KindFromCDP maps a DevTools resource type onto the closed kind set.
// Unrecognized types collapse into KindOther.
func KindFromCDP(t network.ResourceType) ResourceKind {
	k := ResourceKind(strings.ToLower(string(t)))
	if !validKinds[k] {
		return KindOther
	}
	return k
}

// Resource is one captured network transfer within a single navigation.
// Immutable once the recorder has merged it with its transfer size.
type Resource struct {
	URL               string       `json:"url"`
	ResourceSize      int64        `json:"resourceSize"`
	TransferSize      int64        `json:"transferSize"`
	Kind              ResourceKind `json:"type"`
	FromCache         bool         `json:"fromCache"`
	FromServiceWorker bool         `json:"fromServiceWorker"`
}

// Metrics holds the derived weight figures for one measured URL.
type Metrics struct {
	PageWeight          int64                  `json:"pageWeight"`
	ResourceTypeWeights map[ResourceKind]int64 `json:"resourceTypeWeights"`
	DataReloadRatio     *float64               `json:"dataReloadRatio,omitempty"`
}

// PageReport is the result of measuring a single URL.
type PageReport struct {
	URL              string        `json:"url"`
	Title            string        `json:"title,omitempty"`
	Description      string        `json:"description,omitempty"`
	Metrics          Metrics       `json:"metrics"`
	InitialResources []Resource    `json:"initialResources,omitempty"`
	ReloadResources  []Resource    `json:"reloadResources,omitempty"`
	Err              string        `json:"error,omitempty"`
	Duration         time.Duration `json:"duration"`
	Timestamp        time.Time     `json:"timestamp"`
}

// RunReport wraps all page reports produced by one invocation.
type RunReport struct {
	RunID       string       `json:"runId"`
	GeneratedAt time.Time    `json:"generatedAt"`
	Reports     []PageReport `json:"reports"`
}
