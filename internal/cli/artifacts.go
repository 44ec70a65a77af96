package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/fatih/color"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mdemp/treescan/internal/output"
	"github.com/mdemp/treescan/internal/types"
)

const (
	artifactFileMode = 0o644

	savedTextFormat = "Tree saved to: %s"
	savedHTMLFormat = "Interactive HTML saved to: %s"
	savedJSONFormat = "JSON data saved to: %s"
	copiedMessage   = "Text tree copied to clipboard"

	htmlTitleFormat = "Directory Tree - %s"

	writeArtifactFormat = "write %s: %w"
)

// produceArtifacts writes the requested artifact files and performs the
// clipboard copy. The renderers consume the tree read-only, so the file
// writes run concurrently; the engine itself stays single-threaded.
func produceArtifacts(
	logger *zap.Logger,
	rootNode *types.Node,
	scanConfiguration types.ScanConfig,
	textArtifact string,
	artifactValues artifactFlagValues,
) error {
	var group errgroup.Group

	if artifactValues.savePath != "" {
		group.Go(func() error {
			if writeError := os.WriteFile(artifactValues.savePath, []byte(textArtifact), artifactFileMode); writeError != nil {
				return fmt.Errorf(writeArtifactFormat, artifactValues.savePath, writeError)
			}
			color.Blue(savedTextFormat, artifactValues.savePath)
			return nil
		})
	}

	if artifactValues.htmlPath != "" {
		group.Go(func() error {
			documentTitle := fmt.Sprintf(htmlTitleFormat, filepath.Base(rootNode.Path))
			htmlArtifact, renderHTMLError := output.RenderHTML(rootNode, documentTitle, scanConfiguration)
			if renderHTMLError != nil {
				return renderHTMLError
			}
			if writeError := os.WriteFile(artifactValues.htmlPath, []byte(htmlArtifact), artifactFileMode); writeError != nil {
				return fmt.Errorf(writeArtifactFormat, artifactValues.htmlPath, writeError)
			}
			color.Blue(savedHTMLFormat, artifactValues.htmlPath)
			return nil
		})
	}

	if artifactValues.jsonPath != "" {
		group.Go(func() error {
			jsonArtifact, renderJSONError := output.RenderJSON(rootNode, scanConfiguration)
			if renderJSONError != nil {
				return renderJSONError
			}
			if writeError := os.WriteFile(artifactValues.jsonPath, []byte(jsonArtifact), artifactFileMode); writeError != nil {
				return fmt.Errorf(writeArtifactFormat, artifactValues.jsonPath, writeError)
			}
			color.Blue(savedJSONFormat, artifactValues.jsonPath)
			return nil
		})
	}

	if groupError := group.Wait(); groupError != nil {
		return groupError
	}

	if artifactValues.copyToClipboard {
		if clipboardError := clipboard.WriteAll(textArtifact); clipboardError != nil {
			logger.Warn(fmt.Sprintf("clipboard copy failed: %v", clipboardError))
		} else {
			color.Blue(copiedMessage)
		}
	}
	return nil
}
