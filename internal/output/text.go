// Package output contains the renderers that turn a built tree into text,
// JSON, or HTML artifacts. Renderers are pure: they consume the tree
// read-only and never touch the filesystem.
package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mdemp/treescan/internal/types"
	"github.com/mdemp/treescan/internal/utils"
)

// ErrInvalidOptions marks renderer configuration rejected before any output
// was produced.
var ErrInvalidOptions = errors.New("invalid render options")

const (
	invalidWidthFormat = "%w: maximum width must be positive, got %d"
	invalidStyleFormat = "%w: unknown tree style %q"
	nilTreeMessage     = "%w: tree is nil"

	defaultMaxWidth = 100
)

// TextOptions controls the text renderer. Style selects the glyph family;
// ShowSize and ShowCount independently toggle the per-entry annotations;
// MaxWidth bounds the line length, longer lines are truncated with an
// ellipsis marker and never wrapped.
type TextOptions struct {
	Style     string
	ShowSize  bool
	ShowCount bool
	MaxWidth  int
}

// DefaultTextOptions returns the options used when the caller supplies none.
func DefaultTextOptions() TextOptions {
	return TextOptions{
		Style:     types.StyleUnicode,
		ShowSize:  true,
		ShowCount: true,
		MaxWidth:  defaultMaxWidth,
	}
}

// RenderText renders the tree as formatted text in depth-first pre-order.
// Malformed options fail fast before a single line is produced.
func RenderText(root *types.Node, options TextOptions) (string, error) {
	if root == nil {
		return "", fmt.Errorf(nilTreeMessage, ErrInvalidOptions)
	}
	if options.MaxWidth <= 0 {
		return "", fmt.Errorf(invalidWidthFormat, ErrInvalidOptions, options.MaxWidth)
	}
	glyphs, styleKnown := glyphSets[options.Style]
	if !styleKnown {
		return "", fmt.Errorf(invalidStyleFormat, ErrInvalidOptions, options.Style)
	}

	lines := make([]string, 0, root.FileCount+root.FolderCount+3)
	lines = append(lines, headerLine(root, options), "")
	renderNodeText(root, "", true, glyphs, options, &lines)
	return strings.Join(lines, "\n"), nil
}

// headerLine produces the leading summary line above the tree.
func headerLine(root *types.Node, options TextOptions) string {
	header := directoryGlyph + " " + root.Name
	switch {
	case options.ShowCount && options.ShowSize:
		header += fmt.Sprintf(" (%d folders, %d files, %s)", root.FolderCount, root.FileCount, FormatFileSize(root.Size))
	case options.ShowCount:
		header += fmt.Sprintf(" (%d folders, %d files)", root.FolderCount, root.FileCount)
	case options.ShowSize:
		header += fmt.Sprintf(" (%s)", FormatFileSize(root.Size))
	}
	return utils.TruncateLine(header, options.MaxWidth)
}

func renderNodeText(node *types.Node, prefix string, isLast bool, glyphs glyphSet, options TextOptions, lines *[]string) {
	connector := glyphs.Branch
	if isLast {
		connector = glyphs.Last
	}
	line := prefix + connector + nodeGlyph(node) + " " + node.Name + annotation(node, options)
	*lines = append(*lines, utils.TruncateLine(line, options.MaxWidth))

	if !node.IsDirectory() || len(node.Children) == 0 {
		return
	}
	childPrefix := prefix + glyphs.Vertical
	if isLast {
		childPrefix = prefix + glyphs.Space
	}
	for childIndex, childNode := range node.Children {
		renderNodeText(childNode, childPrefix, childIndex == len(node.Children)-1, glyphs, options, lines)
	}
}

// annotation formats the parenthesized size/count suffix of one entry.
func annotation(node *types.Node, options TextOptions) string {
	var infoParts []string
	if node.IsDirectory() {
		if options.ShowCount {
			totalItems := node.FileCount + node.FolderCount
			if totalItems > 0 {
				infoParts = append(infoParts, fmt.Sprintf("%d items", totalItems))
			}
		}
		if options.ShowSize && node.Size > 0 {
			infoParts = append(infoParts, FormatFileSize(node.Size))
		}
	} else if options.ShowSize {
		infoParts = append(infoParts, FormatFileSize(node.Size))
	}
	if len(infoParts) == 0 {
		return ""
	}
	return " (" + strings.Join(infoParts, ", ") + ")"
}
