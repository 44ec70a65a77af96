package scan_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mdemp/treescan/internal/scan"
	"github.com/mdemp/treescan/internal/types"
)

func mustWriteFile(t *testing.T, path string, sizeBytes int) {
	t.Helper()
	if writeError := os.WriteFile(path, bytes.Repeat([]byte("x"), sizeBytes), 0o644); writeError != nil {
		t.Fatalf("write fixture file %s: %v", path, writeError)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if mkdirError := os.Mkdir(path, 0o755); mkdirError != nil {
		t.Fatalf("create fixture directory %s: %v", path, mkdirError)
	}
}

// fixtureRoot builds the reference layout: a.txt (500 bytes), b.py (1500
// bytes), and sub/ containing c.txt (100 bytes).
func fixtureRoot(t *testing.T) string {
	t.Helper()
	rootDir := t.TempDir()
	mustWriteFile(t, filepath.Join(rootDir, "a.txt"), 500)
	mustWriteFile(t, filepath.Join(rootDir, "b.py"), 1500)
	mustMkdir(t, filepath.Join(rootDir, "sub"))
	mustWriteFile(t, filepath.Join(rootDir, "sub", "c.txt"), 100)
	return rootDir
}

func childNames(node *types.Node) []string {
	names := make([]string, 0, len(node.Children))
	for _, childNode := range node.Children {
		names = append(names, childNode.Name)
	}
	return names
}

func findChild(t *testing.T, node *types.Node, name string) *types.Node {
	t.Helper()
	for _, childNode := range node.Children {
		if childNode.Name == name {
			return childNode
		}
	}
	t.Fatalf("child %s not found under %s", name, node.Name)
	return nil
}

func TestBuildAggregatesFixture(t *testing.T) {
	rootDir := fixtureRoot(t)
	rootNode, warnings, buildError := scan.Build(rootDir, types.DefaultScanConfig())
	if buildError != nil {
		t.Fatalf("build failed: %v", buildError)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if rootNode.FileCount != 3 || rootNode.FolderCount != 1 || rootNode.Size != 2100 {
		t.Fatalf("root aggregates incorrect: files=%d folders=%d size=%d", rootNode.FileCount, rootNode.FolderCount, rootNode.Size)
	}
	expectedOrder := []string{"sub", "a.txt", "b.py"}
	if !reflect.DeepEqual(childNames(rootNode), expectedOrder) {
		t.Fatalf("expected child order %v, got %v", expectedOrder, childNames(rootNode))
	}
	subNode := findChild(t, rootNode, "sub")
	if subNode.FileCount != 1 || subNode.FolderCount != 0 || subNode.Size != 100 {
		t.Fatalf("sub aggregates incorrect: files=%d folders=%d size=%d", subNode.FileCount, subNode.FolderCount, subNode.Size)
	}
	if subNode.Depth != 1 || findChild(t, subNode, "c.txt").Depth != 2 {
		t.Fatal("depth annotation incorrect")
	}
}

func TestBuildExtensionFilterRetainsEmptyDirectories(t *testing.T) {
	rootDir := fixtureRoot(t)
	configuration := types.DefaultScanConfig()
	configuration.Extensions = []string{".py"}
	rootNode, _, buildError := scan.Build(rootDir, configuration)
	if buildError != nil {
		t.Fatalf("build failed: %v", buildError)
	}
	expectedOrder := []string{"sub", "b.py"}
	if !reflect.DeepEqual(childNames(rootNode), expectedOrder) {
		t.Fatalf("expected children %v, got %v", expectedOrder, childNames(rootNode))
	}
	if rootNode.FileCount != 1 || rootNode.Size != 1500 {
		t.Fatalf("root aggregates incorrect: files=%d size=%d", rootNode.FileCount, rootNode.Size)
	}
	if rootNode.FolderCount != 1 {
		t.Fatalf("retained empty directory must be counted, folderCount=%d", rootNode.FolderCount)
	}
	subNode := findChild(t, rootNode, "sub")
	if len(subNode.Children) != 0 || subNode.FileCount != 0 || subNode.Size != 0 {
		t.Fatalf("sub should be empty after filtering, got %+v", subNode)
	}
}

func TestBuildMinSizeAboveAllFiles(t *testing.T) {
	rootDir := fixtureRoot(t)
	configuration := types.DefaultScanConfig()
	configuration.MinSize = 1 << 20
	rootNode, _, buildError := scan.Build(rootDir, configuration)
	if buildError != nil {
		t.Fatalf("build failed: %v", buildError)
	}
	if rootNode.FileCount != 0 || rootNode.Size != 0 {
		t.Fatalf("expected zero files and size, got files=%d size=%d", rootNode.FileCount, rootNode.Size)
	}
	if rootNode.FolderCount != 1 {
		t.Fatalf("directories must survive size filters, folderCount=%d", rootNode.FolderCount)
	}
	subNode := findChild(t, rootNode, "sub")
	if subNode.Size != 0 || subNode.FileCount != 0 {
		t.Fatalf("sub should carry zero aggregates, got %+v", subNode)
	}
}

func TestBuildDirectoriesOnly(t *testing.T) {
	rootDir := fixtureRoot(t)
	configuration := types.DefaultScanConfig()
	configuration.IncludeFiles = false
	rootNode, _, buildError := scan.Build(rootDir, configuration)
	if buildError != nil {
		t.Fatalf("build failed: %v", buildError)
	}
	if rootNode.FileCount != 0 || rootNode.FolderCount != 1 || rootNode.Size != 0 {
		t.Fatalf("unexpected aggregates: %+v", rootNode)
	}
	if !reflect.DeepEqual(childNames(rootNode), []string{"sub"}) {
		t.Fatalf("expected only sub, got %v", childNames(rootNode))
	}
}

func TestBuildDepthBound(t *testing.T) {
	rootDir := t.TempDir()
	mustMkdir(t, filepath.Join(rootDir, "level1"))
	mustMkdir(t, filepath.Join(rootDir, "level1", "level2"))
	mustWriteFile(t, filepath.Join(rootDir, "level1", "shallow.txt"), 10)
	mustWriteFile(t, filepath.Join(rootDir, "level1", "level2", "deep.txt"), 10)

	configuration := types.DefaultScanConfig()
	configuration.MaxDepth = 1
	rootNode, _, buildError := scan.Build(rootDir, configuration)
	if buildError != nil {
		t.Fatalf("build failed: %v", buildError)
	}

	var assertDepth func(node *types.Node)
	assertDepth = func(node *types.Node) {
		if node.Depth > 1 {
			t.Fatalf("node %s exceeds depth bound: %d", node.Name, node.Depth)
		}
		for _, childNode := range node.Children {
			assertDepth(childNode)
		}
	}
	assertDepth(rootNode)

	level1 := findChild(t, rootNode, "level1")
	if len(level1.Children) != 0 {
		t.Fatalf("directory at the bound must not list contents, got %v", childNames(level1))
	}
}

func TestBuildDeterminism(t *testing.T) {
	rootDir := fixtureRoot(t)
	mustWriteFile(t, filepath.Join(rootDir, "CAPS.txt"), 50)
	mustMkdir(t, filepath.Join(rootDir, "another"))

	configuration := types.DefaultScanConfig()
	firstTree, _, firstError := scan.Build(rootDir, configuration)
	secondTree, _, secondError := scan.Build(rootDir, configuration)
	if firstError != nil || secondError != nil {
		t.Fatalf("build failed: %v %v", firstError, secondError)
	}
	if !reflect.DeepEqual(firstTree, secondTree) {
		t.Fatal("two builds of an unchanged directory differ")
	}
}

func TestBuildHiddenEntries(t *testing.T) {
	rootDir := t.TempDir()
	mustWriteFile(t, filepath.Join(rootDir, ".secret"), 10)
	mustMkdir(t, filepath.Join(rootDir, ".config"))
	mustWriteFile(t, filepath.Join(rootDir, "visible.txt"), 10)

	defaultTree, _, defaultError := scan.Build(rootDir, types.DefaultScanConfig())
	if defaultError != nil {
		t.Fatalf("build failed: %v", defaultError)
	}
	if !reflect.DeepEqual(childNames(defaultTree), []string{"visible.txt"}) {
		t.Fatalf("hidden entries must be pruned, got %v", childNames(defaultTree))
	}

	withHidden := types.DefaultScanConfig()
	withHidden.IncludeHidden = true
	hiddenTree, _, hiddenError := scan.Build(rootDir, withHidden)
	if hiddenError != nil {
		t.Fatalf("build failed: %v", hiddenError)
	}
	expectedOrder := []string{".config", ".secret", "visible.txt"}
	if !reflect.DeepEqual(childNames(hiddenTree), expectedOrder) {
		t.Fatalf("expected %v, got %v", expectedOrder, childNames(hiddenTree))
	}
}

func TestBuildRootFailures(t *testing.T) {
	missingPath := filepath.Join(t.TempDir(), "does-not-exist")
	_, _, notFoundError := scan.Build(missingPath, types.DefaultScanConfig())
	if !errors.Is(notFoundError, scan.ErrRootNotFound) {
		t.Fatalf("expected ErrRootNotFound, got %v", notFoundError)
	}

	filePath := filepath.Join(t.TempDir(), "plain.txt")
	mustWriteFile(t, filePath, 1)
	_, _, notDirectoryError := scan.Build(filePath, types.DefaultScanConfig())
	if !errors.Is(notDirectoryError, scan.ErrRootNotDirectory) {
		t.Fatalf("expected ErrRootNotDirectory, got %v", notDirectoryError)
	}
}

func TestBuildSymlinkCycleTerminates(t *testing.T) {
	rootDir := t.TempDir()
	mustMkdir(t, filepath.Join(rootDir, "sub"))
	mustWriteFile(t, filepath.Join(rootDir, "sub", "leaf.txt"), 10)
	if symlinkError := os.Symlink(rootDir, filepath.Join(rootDir, "sub", "loop")); symlinkError != nil {
		t.Skipf("symlinks unavailable: %v", symlinkError)
	}

	rootNode, warnings, buildError := scan.Build(rootDir, types.DefaultScanConfig())
	if buildError != nil {
		t.Fatalf("build failed: %v", buildError)
	}
	if rootNode == nil {
		t.Fatal("expected a tree despite the cycle")
	}
	cycleWarningSeen := false
	for _, warning := range warnings {
		if strings.Contains(warning.Reason, "cycle") {
			cycleWarningSeen = true
		}
	}
	if !cycleWarningSeen {
		t.Fatalf("expected a cycle warning, got %v", warnings)
	}
}

func TestBuildProgressHook(t *testing.T) {
	rootDir := fixtureRoot(t)
	var visitedDirectories []string
	var finalTotals types.TreeSummary
	progressHook := func(directoryPath string, totals types.TreeSummary) {
		visitedDirectories = append(visitedDirectories, directoryPath)
		finalTotals = totals
	}
	_, _, buildError := scan.BuildWithProgress(rootDir, types.DefaultScanConfig(), progressHook)
	if buildError != nil {
		t.Fatalf("build failed: %v", buildError)
	}
	if len(visitedDirectories) != 2 {
		t.Fatalf("expected 2 progress calls, got %d", len(visitedDirectories))
	}
	lastVisited := visitedDirectories[len(visitedDirectories)-1]
	if filepath.Clean(lastVisited) != filepath.Clean(rootDir) {
		t.Fatalf("root must be reported last, got %s", lastVisited)
	}
	if finalTotals.TotalFiles != 3 || finalTotals.TotalFolders != 1 || finalTotals.TotalSize != 2100 {
		t.Fatalf("final totals incorrect: %+v", finalTotals)
	}
}

func TestBuildUnreadableSubdirectoryWarns(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permission checks are bypassed when running as root")
	}
	rootDir := t.TempDir()
	lockedDir := filepath.Join(rootDir, "locked")
	mustMkdir(t, lockedDir)
	mustWriteFile(t, filepath.Join(rootDir, "open.txt"), 10)
	if chmodError := os.Chmod(lockedDir, 0o000); chmodError != nil {
		t.Fatalf("chmod failed: %v", chmodError)
	}
	t.Cleanup(func() { _ = os.Chmod(lockedDir, 0o755) })

	rootNode, warnings, buildError := scan.Build(rootDir, types.DefaultScanConfig())
	if buildError != nil {
		t.Fatalf("scan must survive unreadable subtrees: %v", buildError)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a warning for the unreadable directory")
	}
	if rootNode.FileCount != 1 {
		t.Fatalf("siblings must still be scanned, fileCount=%d", rootNode.FileCount)
	}
}
