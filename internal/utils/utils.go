// Package utils contains general helper functions shared across treescan.
package utils

import (
	"strings"
)

// Configuration file constants used across the project.
const (
	// ConfigFileName is the name of the treescan configuration file.
	ConfigFileName = ".treescan.yaml"
	// GlobalConfigDirectoryName is the per-user directory holding the global configuration.
	GlobalConfigDirectoryName = ".treescan"
)

// LoggerInitializationFailedMessageFormat reports a logger bootstrap failure.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"

// ApplicationExecutionFailedMessage prefixes fatal application errors.
const ApplicationExecutionFailedMessage = "application execution failed"

// NormalizeExtensions lowercases extensions, prepends the leading dot where
// missing, and removes duplicates while preserving order. Blank entries are
// dropped.
func NormalizeExtensions(extensions []string) []string {
	encountered := make(map[string]struct{}, len(extensions))
	result := make([]string, 0, len(extensions))
	for _, extensionValue := range extensions {
		normalized := strings.ToLower(strings.TrimSpace(extensionValue))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if _, exists := encountered[normalized]; exists {
			continue
		}
		encountered[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}

// ContainsString checks if a slice of strings contains a specific target string.
func ContainsString(stringSlice []string, targetString string) bool {
	for _, currentString := range stringSlice {
		if currentString == targetString {
			return true
		}
	}
	return false
}

// TruncateLine shortens a line to maximumWidth runes, replacing the tail with
// an ellipsis marker. Lines within the bound are returned unchanged.
func TruncateLine(line string, maximumWidth int) string {
	runes := []rune(line)
	if len(runes) <= maximumWidth {
		return line
	}
	if maximumWidth <= 3 {
		return string(runes[:maximumWidth])
	}
	return string(runes[:maximumWidth-3]) + "..."
}
