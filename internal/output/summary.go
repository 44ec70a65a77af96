package output

import "github.com/mdemp/treescan/internal/types"

// Summarize derives the top-level statistics of a built tree. The counts and
// size come straight from the root aggregates; the maximum depth reached is
// found by walking the finished tree, never the filesystem.
func Summarize(root *types.Node) types.TreeSummary {
	if root == nil {
		return types.TreeSummary{}
	}
	return types.TreeSummary{
		TotalFiles:   root.FileCount,
		TotalFolders: root.FolderCount,
		TotalSize:    root.Size,
		MaxDepth:     deepestNode(root),
	}
}

func deepestNode(node *types.Node) int {
	deepest := node.Depth
	for _, childNode := range node.Children {
		if childDeepest := deepestNode(childNode); childDeepest > deepest {
			deepest = childDeepest
		}
	}
	return deepest
}
