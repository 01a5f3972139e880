package models

import (
	"testing"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
)

func TestKindFromCDP(t *testing.T) {
	cases := map[network.ResourceType]ResourceKind{
		network.ResourceTypeDocument:           KindDocument,
		network.ResourceTypeStylesheet:         KindStylesheet,
		network.ResourceTypeImage:              KindImage,
		network.ResourceTypeXHR:                KindXHR,
		network.ResourceTypeFetch:              KindFetch,
		network.ResourceTypeWebSocket:          KindWebSocket,
		network.ResourceTypeSignedExchange:     KindSignedExchange,
		network.ResourceTypeCSPViolationReport: KindCSPViolationReport,
		network.ResourceTypePreflight:          KindPreflight,
		network.ResourceTypeOther:              KindOther,
	}
	for in, want := range cases {
		assert.Equal(t, want, KindFromCDP(in), string(in))
	}
}

func TestKindFromCDPUnknownCollapsesToOther(t *testing.T) {
	assert.Equal(t, KindOther, KindFromCDP(network.ResourceType("FutureThing")))
}

func TestResourceKindsMatchesClosedSet(t *testing.T) {
	// Report consumers key on these exact strings.
	want := []ResourceKind{
		"document", "stylesheet", "image", "media", "font", "script",
		"texttrack", "xhr", "fetch", "eventsource", "websocket", "manifest",
		"signedexchange", "ping", "cspviolationreport", "preflight", "other",
	}
	assert.Equal(t, want, ResourceKinds)
}
