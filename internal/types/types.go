// Package types defines every cross-package data structure used by treescan.
package types

const (
	KindFile      = "file"
	KindDirectory = "directory"

	StyleUnicode = "unicode"
	StyleASCII   = "ascii"
	StyleSimple  = "simple"

	// UnlimitedDepth disables the depth bound when assigned to ScanConfig.MaxDepth.
	UnlimitedDepth = -1
)

// ScanConfig captures every traversal and rendering option for a single scan.
// A configuration is constructed once per scan and never mutated afterwards.
type ScanConfig struct {
	MaxDepth      int      `json:"maxDepth"`
	IncludeHidden bool     `json:"includeHidden"`
	IncludeFiles  bool     `json:"includeFiles"`
	Extensions    []string `json:"extensions,omitempty"`
	MinSize       int64    `json:"minSize,omitempty"`
	MaxSize       int64    `json:"maxSize,omitempty"`
	Style         string   `json:"style"`
}

// DefaultScanConfig returns the configuration used when no options are supplied:
// unlimited depth, files included, hidden entries excluded, no size or
// extension bounds, unicode rendering style.
func DefaultScanConfig() ScanConfig {
	return ScanConfig{
		MaxDepth:      UnlimitedDepth,
		IncludeHidden: false,
		IncludeFiles:  true,
		Style:         StyleUnicode,
	}
}

// DepthLimited reports whether the configuration bounds traversal depth.
func (configuration ScanConfig) DepthLimited() bool {
	return configuration.MaxDepth >= 0
}

// Node represents one filesystem entry in a built tree. For directories Size,
// FileCount and FolderCount aggregate the filtered subtree; they are computed
// exactly once during the bottom-up finalization pass and never mutated after
// the builder returns.
type Node struct {
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	Kind        string  `json:"kind"`
	Size        int64   `json:"size"`
	Depth       int     `json:"depth"`
	Extension   string  `json:"extension,omitempty"`
	Children    []*Node `json:"children,omitempty"`
	FileCount   int     `json:"fileCount,omitempty"`
	FolderCount int     `json:"folderCount,omitempty"`
}

// IsDirectory reports whether the node represents a directory.
func (node *Node) IsDirectory() bool {
	return node.Kind == KindDirectory
}

// Warning records one recoverable traversal failure: the affected path and
// the reason the subtree was skipped.
type Warning struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// TreeSummary aggregates the top-level statistics of a built tree.
type TreeSummary struct {
	TotalFiles   int   `json:"totalFiles"`
	TotalFolders int   `json:"totalFolders"`
	TotalSize    int64 `json:"totalSize"`
	MaxDepth     int   `json:"maxDepth"`
}

// ProgressHook is invoked by the builder after each directory is fully
// processed. It receives the directory path and the running totals so far.
// The hook is a notification mechanism for interactive shells, never a
// concurrency primitive: it is always called from the traversal goroutine.
type ProgressHook func(directoryPath string, totals TreeSummary)
