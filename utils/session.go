package utils

import (
	"fmt"
	"strings"

	ua "github.com/mileusna/useragent"
)

// ParseUserAgent extracts useful information from User-Agent string
func ParseUserAgent(userAgent string) (browser, os, device string) {
	if userAgent == "" {
		return "Unknown Browser", "Unknown OS", "Desktop"
	}

	parsedUA := ua.Parse(userAgent)

	browser = parsedUA.Name
	if browser == "" {
		browser = "Unknown Browser"
	}

	os = parsedUA.OS
	if os == "" {
		os = "Unknown OS"
	}

	device = "Desktop"
	switch {
	case parsedUA.Mobile && strings.Contains(userAgent, "iPhone"):
		device = "iPhone"
	case parsedUA.Mobile:
		device = "Mobile"
	case parsedUA.Tablet:
		device = "Tablet"
	case parsedUA.Bot:
		device = "Bot"
	}

	return strings.TrimSpace(browser), strings.TrimSpace(os), device
}

// DeviceInfo renders a short label such as "Chrome on Windows (Desktop)"
func DeviceInfo(userAgent string) string {
	browser, os, device := ParseUserAgent(userAgent)
	return fmt.Sprintf("%s on %s (%s)", browser, os, device)
}
