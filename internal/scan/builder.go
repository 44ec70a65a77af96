package scan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mdemp/treescan/internal/types"
)

// Typed root-resolution failures. Callers distinguish them with errors.Is;
// both abort the scan with no partial tree.
var (
	ErrRootNotFound     = errors.New("root path does not exist")
	ErrRootNotDirectory = errors.New("root path is not a directory")
)

const (
	reasonCycleDetected = "symbolic link cycle detected, subtree skipped"
	reasonListFailed    = "listing directory failed"
	reasonMetadataRead  = "reading entry metadata failed"
	reasonResolveFailed = "resolving real path failed"

	errorAbsolutePathFormat = "absolute path for %s: %w"
	errorStatRootFormat     = "stat root %s: %w"
)

// traversal owns all mutable state of one Build invocation. Nothing here is
// shared between invocations, and the finished tree is handed to the caller
// with exclusive ownership.
type traversal struct {
	configuration types.ScanConfig
	warnings      []types.Warning
	onPath        map[string]struct{}
	progress      types.ProgressHook
	totals        types.TreeSummary
}

// Build walks the filesystem from rootPath, applying the filter predicate at
// each entry, and returns the finished tree together with the warnings
// accumulated for skipped subtrees. Root resolution failures are fatal and
// reported as ErrRootNotFound or ErrRootNotDirectory; every other failure is
// recorded as a warning so that partial results survive.
func Build(rootPath string, configuration types.ScanConfig) (*types.Node, []types.Warning, error) {
	return BuildWithProgress(rootPath, configuration, nil)
}

// BuildWithProgress behaves like Build and additionally invokes progressHook
// after each directory has been fully processed. The hook runs synchronously
// on the traversal path; passing nil disables it.
func BuildWithProgress(rootPath string, configuration types.ScanConfig, progressHook types.ProgressHook) (*types.Node, []types.Warning, error) {
	absoluteRootPath, absolutePathError := filepath.Abs(rootPath)
	if absolutePathError != nil {
		return nil, nil, fmt.Errorf(errorAbsolutePathFormat, rootPath, absolutePathError)
	}
	rootInfo, rootStatError := os.Stat(absoluteRootPath)
	if rootStatError != nil {
		if os.IsNotExist(rootStatError) {
			return nil, nil, fmt.Errorf("%w: %s", ErrRootNotFound, rootPath)
		}
		return nil, nil, fmt.Errorf(errorStatRootFormat, rootPath, rootStatError)
	}
	if !rootInfo.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrRootNotDirectory, rootPath)
	}

	state := &traversal{
		configuration: configuration,
		onPath:        make(map[string]struct{}),
		progress:      progressHook,
	}

	rootNode := &types.Node{
		Name:  filepath.Base(absoluteRootPath),
		Path:  absoluteRootPath,
		Kind:  types.KindDirectory,
		Depth: 0,
	}

	realRootPath, resolveError := filepath.EvalSymlinks(absoluteRootPath)
	if resolveError != nil {
		realRootPath = absoluteRootPath
	}
	state.onPath[realRootPath] = struct{}{}
	state.scanDirectory(rootNode, absoluteRootPath)
	delete(state.onPath, realRootPath)

	return rootNode, state.warnings, nil
}

// scanDirectory lists one directory, recurses into passing child directories,
// then finalizes the node: children are sorted and aggregates computed in a
// single bottom-up pass.
func (state *traversal) scanDirectory(directoryNode *types.Node, directoryPath string) {
	if state.configuration.DepthLimited() && directoryNode.Depth >= state.configuration.MaxDepth {
		// Contents would sit beyond the depth bound; do not read them at all.
		state.finishDirectory(directoryNode, directoryPath)
		return
	}

	directoryEntries, readDirError := os.ReadDir(directoryPath)
	if readDirError != nil {
		state.recordWarning(directoryPath, reasonListFailed, readDirError)
		state.finishDirectory(directoryNode, directoryPath)
		return
	}

	childDepth := directoryNode.Depth + 1
	for _, directoryEntry := range directoryEntries {
		entryName := directoryEntry.Name()
		childPath := filepath.Join(directoryPath, entryName)

		entryInfo, entryInfoError := directoryEntry.Info()
		if entryInfoError != nil {
			state.recordWarning(childPath, reasonMetadataRead, entryInfoError)
			continue
		}
		isDirectory := entryInfo.IsDir()
		sizeBytes := entryInfo.Size()
		if entryInfo.Mode()&os.ModeSymlink != 0 {
			targetInfo, targetStatError := os.Stat(childPath)
			if targetStatError != nil {
				state.recordWarning(childPath, reasonMetadataRead, targetStatError)
				continue
			}
			isDirectory = targetInfo.IsDir()
			sizeBytes = targetInfo.Size()
		}

		if !ShouldInclude(entryName, isDirectory, sizeBytes, childDepth, state.configuration) {
			continue
		}

		if isDirectory {
			childNode := state.scanChildDirectory(entryName, childPath, childDepth)
			if childNode == nil {
				continue
			}
			directoryNode.Children = append(directoryNode.Children, childNode)
			state.totals.TotalFolders++
		} else {
			fileNode := &types.Node{
				Name:      entryName,
				Path:      childPath,
				Kind:      types.KindFile,
				Size:      sizeBytes,
				Depth:     childDepth,
				Extension: strings.ToLower(fileExtension(entryName)),
			}
			directoryNode.Children = append(directoryNode.Children, fileNode)
			state.totals.TotalFiles++
			state.totals.TotalSize += sizeBytes
		}
		if childDepth > state.totals.MaxDepth {
			state.totals.MaxDepth = childDepth
		}
	}

	state.finishDirectory(directoryNode, directoryPath)
}

// scanChildDirectory recurses into one passing directory entry, guarding the
// current traversal path against symbolic-link cycles. A revisit of a
// directory already on the path is recorded as a warning and skipped, never
// recursed into.
func (state *traversal) scanChildDirectory(entryName, childPath string, childDepth int) *types.Node {
	realPath, resolveError := filepath.EvalSymlinks(childPath)
	if resolveError != nil {
		state.recordWarning(childPath, reasonResolveFailed, resolveError)
		return nil
	}
	if _, alreadyOnPath := state.onPath[realPath]; alreadyOnPath {
		state.warnings = append(state.warnings, types.Warning{Path: childPath, Reason: reasonCycleDetected})
		return nil
	}

	childNode := &types.Node{
		Name:  entryName,
		Path:  childPath,
		Kind:  types.KindDirectory,
		Depth: childDepth,
	}
	state.onPath[realPath] = struct{}{}
	state.scanDirectory(childNode, childPath)
	delete(state.onPath, realPath)
	return childNode
}

// finishDirectory sorts the children into the deterministic output order and
// rolls their counts and sizes into the directory node. This is the only
// place aggregates are written; the node is read-only afterwards.
func (state *traversal) finishDirectory(directoryNode *types.Node, directoryPath string) {
	sortChildren(directoryNode)
	for _, childNode := range directoryNode.Children {
		if childNode.IsDirectory() {
			directoryNode.FolderCount += 1 + childNode.FolderCount
			directoryNode.FileCount += childNode.FileCount
		} else {
			directoryNode.FileCount++
		}
		directoryNode.Size += childNode.Size
	}
	if state.progress != nil {
		state.progress(directoryPath, state.totals)
	}
}

// recordWarning appends one recoverable failure to the warning list.
func (state *traversal) recordWarning(path, reason string, cause error) {
	state.warnings = append(state.warnings, types.Warning{
		Path:   path,
		Reason: fmt.Sprintf("%s: %v", reason, cause),
	})
}

// sortChildren orders a directory's children directories-first, then by
// case-insensitive name. The order is stable across repeated scans of an
// unchanged directory.
func sortChildren(directoryNode *types.Node) {
	sort.SliceStable(directoryNode.Children, func(firstIndex, secondIndex int) bool {
		first := directoryNode.Children[firstIndex]
		second := directoryNode.Children[secondIndex]
		if first.IsDirectory() != second.IsDirectory() {
			return first.IsDirectory()
		}
		firstName := strings.ToLower(first.Name)
		secondName := strings.ToLower(second.Name)
		if firstName != secondName {
			return firstName < secondName
		}
		return first.Name < second.Name
	})
}
