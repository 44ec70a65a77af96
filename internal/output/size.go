package output

import "fmt"

var sizeUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatFileSize renders a byte count in human-readable form. The value is
// divided by 1024 until it fits the largest unit keeping the magnitude below
// 1024, formatted to one decimal place except for the plain byte unit.
func FormatFileSize(sizeBytes int64) string {
	if sizeBytes <= 0 {
		return "0 B"
	}
	value := float64(sizeBytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(sizeUnits)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%d B", sizeBytes)
	}
	return fmt.Sprintf("%.1f %s", value, sizeUnits[unitIndex])
}
