package output

import (
	"encoding/json"
	"fmt"

	"github.com/mdemp/treescan/internal/types"
)

const (
	jsonIndentPrefix = ""
	jsonIndentSpacer = "  "
)

// ScanInfo is the top-level metadata block of a JSON artifact: the summary
// statistics plus the configuration the tree was built with.
type ScanInfo struct {
	RootPath     string           `json:"rootPath"`
	TotalFiles   int              `json:"totalFiles"`
	TotalFolders int              `json:"totalFolders"`
	TotalSize    int64            `json:"totalSize"`
	MaxDepth     int              `json:"maxDepth"`
	Config       types.ScanConfig `json:"config"`
}

// Document is the complete JSON artifact schema. It is lossless: parsing a
// rendered document yields a tree structurally identical to the one rendered,
// with no rescan required.
type Document struct {
	ScanInfo ScanInfo    `json:"scanInfo"`
	Tree     *types.Node `json:"tree"`
}

// RenderJSON serializes the tree together with its summary statistics and
// the scan configuration.
func RenderJSON(root *types.Node, configuration types.ScanConfig) (string, error) {
	if root == nil {
		return "", fmt.Errorf(nilTreeMessage, ErrInvalidOptions)
	}
	summary := Summarize(root)
	document := Document{
		ScanInfo: ScanInfo{
			RootPath:     root.Path,
			TotalFiles:   summary.TotalFiles,
			TotalFolders: summary.TotalFolders,
			TotalSize:    summary.TotalSize,
			MaxDepth:     summary.MaxDepth,
			Config:       configuration,
		},
		Tree: root,
	}
	encoded, jsonEncodeError := json.MarshalIndent(document, jsonIndentPrefix, jsonIndentSpacer)
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encoded), nil
}

// ParseJSON decodes a previously rendered JSON artifact back into a document.
func ParseJSON(artifact string) (Document, error) {
	var document Document
	if jsonDecodeError := json.Unmarshal([]byte(artifact), &document); jsonDecodeError != nil {
		return Document{}, jsonDecodeError
	}
	return document, nil
}
