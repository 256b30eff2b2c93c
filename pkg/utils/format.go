// Package utils provides shared utility functions.
package utils

import (
	"fmt"
	"math"
	"strings"
)

// FormatLatitude formats a latitude as "28.6139°N".
func FormatLatitude(lat float64) string {
	hemisphere := "N"
	if lat < 0 {
		hemisphere = "S"
	}
	return fmt.Sprintf("%.4f°%s", math.Abs(lat), hemisphere)
}

// FormatLongitude formats a longitude as "77.2090°E".
func FormatLongitude(lon float64) string {
	hemisphere := "E"
	if lon < 0 {
		hemisphere = "W"
	}
	return fmt.Sprintf("%.4f°%s", math.Abs(lon), hemisphere)
}

// FormatCoordinates formats a latitude/longitude pair.
func FormatCoordinates(lat, lon float64) string {
	return FormatLatitude(lat) + ", " + FormatLongitude(lon)
}

// FormatList joins items with ", ", or returns "-" when empty.
func FormatList(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

// Truncate shortens s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}
