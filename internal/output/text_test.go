package output_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mdemp/treescan/internal/output"
	"github.com/mdemp/treescan/internal/types"
)

// sampleTree constructs a small finished tree with the aggregates the builder
// would have produced: docs/guide.md (2048 bytes) and readme.txt (512 bytes).
func sampleTree() *types.Node {
	guideNode := &types.Node{
		Name: "guide.md", Path: "/work/root/docs/guide.md",
		Kind: types.KindFile, Size: 2048, Depth: 2, Extension: ".md",
	}
	docsNode := &types.Node{
		Name: "docs", Path: "/work/root/docs",
		Kind: types.KindDirectory, Depth: 1,
		Children:  []*types.Node{guideNode},
		FileCount: 1, Size: 2048,
	}
	readmeNode := &types.Node{
		Name: "readme.txt", Path: "/work/root/readme.txt",
		Kind: types.KindFile, Size: 512, Depth: 1, Extension: ".txt",
	}
	return &types.Node{
		Name: "root", Path: "/work/root",
		Kind: types.KindDirectory, Depth: 0,
		Children:  []*types.Node{docsNode, readmeNode},
		FileCount: 2, FolderCount: 1, Size: 2560,
	}
}

const unicodeTreeExpected = "📁 root (1 folders, 2 files, 2.5 KB)\n" +
	"\n" +
	"└── 📁 root (3 items, 2.5 KB)\n" +
	"    ├── 📁 docs (1 items, 2.0 KB)\n" +
	"    │   └── 📖 guide.md (2.0 KB)\n" +
	"    └── 📄 readme.txt (512 B)"

func TestRenderTextUnicode(t *testing.T) {
	actual, renderError := output.RenderText(sampleTree(), output.DefaultTextOptions())
	if renderError != nil {
		t.Fatalf("render failed: %v", renderError)
	}
	if actual != unicodeTreeExpected {
		t.Fatalf("unexpected output:\n%s", actual)
	}
}

func TestRenderTextASCII(t *testing.T) {
	options := output.DefaultTextOptions()
	options.Style = types.StyleASCII
	actual, renderError := output.RenderText(sampleTree(), options)
	if renderError != nil {
		t.Fatalf("render failed: %v", renderError)
	}
	if !strings.Contains(actual, "|-- ") || !strings.Contains(actual, "`-- ") {
		t.Fatalf("ascii connectors missing:\n%s", actual)
	}
	if strings.Contains(actual, "├") || strings.Contains(actual, "└") {
		t.Fatalf("unicode connectors leaked into ascii output:\n%s", actual)
	}
}

func TestRenderTextSimpleStyle(t *testing.T) {
	options := output.DefaultTextOptions()
	options.Style = types.StyleSimple
	actual, renderError := output.RenderText(sampleTree(), options)
	if renderError != nil {
		t.Fatalf("render failed: %v", renderError)
	}
	if strings.ContainsAny(actual, "├└│|`") {
		t.Fatalf("simple style must be indent-only:\n%s", actual)
	}
}

func TestRenderTextAnnotationToggles(t *testing.T) {
	options := output.DefaultTextOptions()
	options.ShowSize = false
	options.ShowCount = false
	actual, renderError := output.RenderText(sampleTree(), options)
	if renderError != nil {
		t.Fatalf("render failed: %v", renderError)
	}
	if strings.Contains(actual, "(") {
		t.Fatalf("annotations must disappear when toggled off:\n%s", actual)
	}

	options.ShowSize = true
	withSizes, _ := output.RenderText(sampleTree(), options)
	if !strings.Contains(withSizes, "(512 B)") {
		t.Fatalf("file size annotation missing:\n%s", withSizes)
	}
	if strings.Contains(withSizes, "items") {
		t.Fatalf("count annotation must stay hidden:\n%s", withSizes)
	}
}

func TestRenderTextTruncation(t *testing.T) {
	options := output.DefaultTextOptions()
	options.MaxWidth = 24
	actual, renderError := output.RenderText(sampleTree(), options)
	if renderError != nil {
		t.Fatalf("render failed: %v", renderError)
	}
	truncatedSeen := false
	for _, line := range strings.Split(actual, "\n") {
		if lineWidth := len([]rune(line)); lineWidth > options.MaxWidth {
			t.Fatalf("line exceeds width %d: %q", options.MaxWidth, line)
		}
		if strings.HasSuffix(line, "...") {
			truncatedSeen = true
		}
	}
	if !truncatedSeen {
		t.Fatalf("expected at least one truncated line:\n%s", actual)
	}
}

func TestRenderTextValidation(t *testing.T) {
	testCases := []struct {
		name    string
		root    *types.Node
		options output.TextOptions
	}{
		{name: "nil tree", root: nil, options: output.DefaultTextOptions()},
		{name: "zero width", root: sampleTree(), options: output.TextOptions{Style: types.StyleUnicode, MaxWidth: 0}},
		{name: "negative width", root: sampleTree(), options: output.TextOptions{Style: types.StyleUnicode, MaxWidth: -5}},
		{name: "unknown style", root: sampleTree(), options: output.TextOptions{Style: "fancy", MaxWidth: 80}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			artifact, renderError := output.RenderText(testCase.root, testCase.options)
			if !errors.Is(renderError, output.ErrInvalidOptions) {
				t.Fatalf("expected ErrInvalidOptions, got %v", renderError)
			}
			if artifact != "" {
				t.Fatalf("no output may be produced on validation failure, got %q", artifact)
			}
		})
	}
}
