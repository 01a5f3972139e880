package config

import (
	"github.com/chromedp/chromedp/device"
)

// DefaultUserAgent is used when no user agent is configured
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// DefaultURLs provides a list of default URLs to measure if none are provided
var DefaultURLs = []string{
	"https://www.wikipedia.org",
	"https://www.example.com",
}

// DevicePresets maps preset names to mobile device emulation profiles
var DevicePresets = map[string]device.Info{
	"iphone-x":  device.IPhoneX.Device(),
	"pixel-2":   device.Pixel2.Device(),
	"galaxy-s5": device.GalaxyS5.Device(),
	"ipad":      device.IPad.Device(),
}

// NetworkConditions describes an emulated network link.
// Throughput values are bytes per second, latency is milliseconds.
type NetworkConditions struct {
	Latency            float64
	DownloadThroughput float64
	UploadThroughput   float64
}

// NetworkPresets maps preset names to emulated network conditions
var NetworkPresets = map[string]NetworkConditions{
	"slow-3g": {Latency: 2000, DownloadThroughput: 50_000, UploadThroughput: 25_000},
	"fast-3g": {Latency: 563, DownloadThroughput: 200_000, UploadThroughput: 93_750},
	"4g":      {Latency: 170, DownloadThroughput: 1_125_000, UploadThroughput: 750_000},
}
