// Package metrics derives page-weight figures from captured resource lists.
// Everything here is pure computation; no I/O, no browser.
package metrics

import (
	"github.com/pagegauge/pagegauge/internal/diag"
	"github.com/pagegauge/pagegauge/pkg/models"
)

// Compute folds the initial-load and reload resource lists into a Metrics
// value. If supplied is non-nil, the reload-based ratio derivation is skipped
// and the supplied value carried through untouched.
func Compute(initial, reload []models.Resource, supplied *float64, sink diag.Sink) models.Metrics {
	weights := make(map[models.ResourceKind]int64)
	var pageWeight int64
	for _, res := range initial {
		weights[res.Kind] += res.TransferSize
		pageWeight += res.TransferSize
	}

	m := models.Metrics{
		PageWeight:          pageWeight,
		ResourceTypeWeights: weights,
	}

	if supplied != nil {
		m.DataReloadRatio = supplied
		return m
	}

	ratio := reloadRatio(initial, reload, pageWeight, sink)
	m.DataReloadRatio = &ratio
	return m
}

// reloadRatio estimates the fraction of the page weight that must be
// re-fetched on a repeat visit. Cached bytes are estimated from two distinct
// signals that are added together: bytes absent from the reload (inferred
// cached) and reload bytes the browser explicitly flags as cache-served.
// Flags alone undercount disk-cache hits, so both terms are required.
func reloadRatio(initial, reload []models.Resource, pageWeight int64, sink diag.Sink) float64 {
	var initialCacheWeight int64
	for _, res := range initial {
		if res.FromCache {
			initialCacheWeight += res.TransferSize
		}
	}
	if initialCacheWeight > 0 {
		sink.Warnf("initial load served %d bytes from cache; measurement was not cold", initialCacheWeight)
	}

	var reloadPageWeight, browserCacheOnReload int64
	for _, res := range reload {
		reloadPageWeight += res.TransferSize
		if res.FromCache {
			browserCacheOnReload += res.TransferSize
		}
	}

	// An empty page re-fetches everything there is, which is nothing.
	if pageWeight == 0 {
		return 1.0
	}

	assumeFromCache := pageWeight - reloadPageWeight
	assumedCacheWeight := assumeFromCache + browserCacheOnReload
	return float64(pageWeight-assumedCacheWeight) / float64(pageWeight)
}
