// Package scan implements the directory traversal engine: a pure filter
// predicate, a single-threaded tree builder, and the bottom-up statistics
// aggregation performed while the tree is finalized.
package scan

import (
	"strings"

	"github.com/mdemp/treescan/internal/types"
	"github.com/mdemp/treescan/internal/utils"
)

const hiddenEntryPrefix = "."

// ShouldInclude decides whether a filesystem entry belongs in the tree. The
// predicate is pure: given identical inputs it always returns the same
// answer, independent of traversal order or prior calls.
//
// Depth and hidden-name rules apply to files and directories alike. The
// include-files, extension and size rules apply to files only; a directory is
// never excluded by them.
func ShouldInclude(entryName string, isDirectory bool, sizeBytes int64, depth int, configuration types.ScanConfig) bool {
	if configuration.DepthLimited() && depth > configuration.MaxDepth {
		return false
	}
	if !configuration.IncludeHidden && strings.HasPrefix(entryName, hiddenEntryPrefix) {
		return false
	}
	if isDirectory {
		return true
	}
	if !configuration.IncludeFiles {
		return false
	}
	if len(configuration.Extensions) > 0 {
		extension := strings.ToLower(fileExtension(entryName))
		if !utils.ContainsString(configuration.Extensions, extension) {
			return false
		}
	}
	if configuration.MinSize > 0 && sizeBytes < configuration.MinSize {
		return false
	}
	if configuration.MaxSize > 0 && sizeBytes > configuration.MaxSize {
		return false
	}
	return true
}

// fileExtension returns the suffix of a file name including the leading dot,
// or the empty string when the name has none. A name consisting solely of a
// leading dot separator (".bashrc") is treated as extensionless.
func fileExtension(entryName string) string {
	dotIndex := strings.LastIndex(entryName, ".")
	if dotIndex <= 0 {
		return ""
	}
	return entryName[dotIndex:]
}
