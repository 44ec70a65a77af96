// Package cli provides the command line interface. It is a thin shell around
// the scan engine: it assembles a configuration, runs one build, and hands
// the resulting tree to the selected renderers.
package cli

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mdemp/treescan/internal/config"
	"github.com/mdemp/treescan/internal/output"
	"github.com/mdemp/treescan/internal/scan"
	"github.com/mdemp/treescan/internal/types"
	"github.com/mdemp/treescan/internal/utils"
)

const (
	rootUse              = "treescan <directory>"
	rootShortDescription = "render a directory hierarchy as text, HTML, or JSON"
	rootLongDescription  = `treescan walks a directory once, applies depth, size, extension, and
hidden-file filters during the walk, and renders the resulting tree with
aggregate statistics. The same scan feeds the text, HTML, and JSON renderers.`
	rootUsageExample = `  # Render the current directory three levels deep
  treescan . --max-depth 3

  # Directories only, ASCII branches
  treescan /var/log --no-files --style ascii

  # Keep Python and text files, save all artifacts
  treescan . --extensions .py,.txt --save tree.txt --html tree.html --json tree.json`

	maxDepthFlagName        = "max-depth"
	hiddenFlagName          = "hidden"
	noFilesFlagName         = "no-files"
	extensionsFlagName      = "extensions"
	minSizeFlagName         = "min-size"
	maxSizeFlagName         = "max-size"
	styleFlagName           = "style"
	noSizeFlagName          = "no-size"
	noCountFlagName         = "no-count"
	widthFlagName           = "width"
	saveFlagName            = "save"
	htmlFlagName            = "html"
	jsonFlagName            = "json"
	copyFlagName            = "copy"
	verboseFlagName         = "verbose"
	configFlagName          = "config"
	versionFlagName         = "version"
	versionTemplate         = "treescan version: %s\n"
	defaultScanPath         = "."
	defaultLineWidth        = 100
	bytesPerMegabyte        = 1024 * 1024
	maxDepthDescription     = "maximum depth to scan (unlimited when unset)"
	hiddenDescription       = "include hidden files and folders"
	noFilesDescription      = "only show directories, not files"
	extensionsDescription   = "only include files with these extensions (e.g. .py,.txt)"
	minSizeDescription      = "minimum file size in megabytes"
	maxSizeDescription      = "maximum file size in megabytes"
	styleDescription        = "tree drawing style (unicode, ascii, simple)"
	noSizeDescription       = "hide file and folder sizes"
	noCountDescription      = "hide file and folder counts"
	widthDescription        = "maximum line width"
	saveDescription         = "save the text tree to a file"
	htmlDescription         = "save an interactive HTML document to a file"
	jsonDescription         = "save the JSON artifact to a file"
	copyDescription         = "copy the text tree to the clipboard"
	verboseDescription      = "report each scanned directory"
	configDescription       = "path to an explicit configuration file"
	versionDescription      = "display application version"
	scanningMessageFormat   = "Scanning directory: %s"
	scannedDirectoryFormat  = "scanned %s (%d files, %d folders so far)"
	warningSkipFormat       = "skipping %s: %s"
	summaryLineFormat       = "Summary: %s files, %s folders, %s total"
	configurationLoadFormat = "load configuration: %w"
)

// Execute runs the treescan application.
func Execute(logger *zap.Logger) error {
	rootCommand := createRootCommand(logger)
	return rootCommand.Execute()
}

// scanFlagValues stores traversal-related flag state.
type scanFlagValues struct {
	maxDepth        int
	includeHidden   bool
	directoriesOnly bool
	extensions      []string
	minSizeMB       float64
	maxSizeMB       float64
}

// displayFlagValues stores text-renderer flag state.
type displayFlagValues struct {
	style     string
	hideSize  bool
	hideCount bool
	width     int
}

// artifactFlagValues stores output destination flag state.
type artifactFlagValues struct {
	savePath        string
	htmlPath        string
	jsonPath        string
	copyToClipboard bool
}

// createRootCommand builds the root Cobra command.
func createRootCommand(logger *zap.Logger) *cobra.Command {
	var scanValues scanFlagValues
	var displayValues displayFlagValues
	var artifactValues artifactFlagValues
	var verboseEnabled bool
	var configFilePath string
	var showVersion bool

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		Example:      rootUsageExample,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				return nil
			}
			scanPath := defaultScanPath
			if len(arguments) > 0 {
				scanPath = arguments[0]
			}
			return runScan(command, logger, scanPath, scanValues, displayValues, artifactValues, verboseEnabled, configFilePath)
		},
	}

	flags := rootCommand.Flags()
	flags.IntVarP(&scanValues.maxDepth, maxDepthFlagName, "d", types.UnlimitedDepth, maxDepthDescription)
	flags.BoolVar(&scanValues.includeHidden, hiddenFlagName, false, hiddenDescription)
	flags.BoolVar(&scanValues.directoriesOnly, noFilesFlagName, false, noFilesDescription)
	flags.StringSliceVar(&scanValues.extensions, extensionsFlagName, nil, extensionsDescription)
	flags.Float64Var(&scanValues.minSizeMB, minSizeFlagName, 0, minSizeDescription)
	flags.Float64Var(&scanValues.maxSizeMB, maxSizeFlagName, 0, maxSizeDescription)
	flags.StringVar(&displayValues.style, styleFlagName, types.StyleUnicode, styleDescription)
	flags.BoolVar(&displayValues.hideSize, noSizeFlagName, false, noSizeDescription)
	flags.BoolVar(&displayValues.hideCount, noCountFlagName, false, noCountDescription)
	flags.IntVar(&displayValues.width, widthFlagName, defaultLineWidth, widthDescription)
	flags.StringVar(&artifactValues.savePath, saveFlagName, "", saveDescription)
	flags.StringVar(&artifactValues.htmlPath, htmlFlagName, "", htmlDescription)
	flags.StringVar(&artifactValues.jsonPath, jsonFlagName, "", jsonDescription)
	flags.BoolVar(&artifactValues.copyToClipboard, copyFlagName, false, copyDescription)
	flags.BoolVarP(&verboseEnabled, verboseFlagName, "v", false, verboseDescription)
	flags.StringVar(&configFilePath, configFlagName, "", configDescription)
	flags.BoolVar(&showVersion, versionFlagName, false, versionDescription)

	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

// runScan performs one complete scan-and-render cycle.
func runScan(
	command *cobra.Command,
	logger *zap.Logger,
	scanPath string,
	scanValues scanFlagValues,
	displayValues displayFlagValues,
	artifactValues artifactFlagValues,
	verboseEnabled bool,
	configFilePath string,
) error {
	applicationConfiguration, configurationLoadError := config.LoadApplicationConfiguration(config.LoadOptions{
		ExplicitFilePath: configFilePath,
	})
	if configurationLoadError != nil {
		return fmt.Errorf(configurationLoadFormat, configurationLoadError)
	}

	scanConfiguration, textOptions := resolveConfiguration(command, applicationConfiguration, scanValues, displayValues)

	color.Cyan(scanningMessageFormat, scanPath)

	var progressHook types.ProgressHook
	if verboseEnabled {
		progressHook = func(directoryPath string, totals types.TreeSummary) {
			logger.Info(fmt.Sprintf(scannedDirectoryFormat, directoryPath, totals.TotalFiles, totals.TotalFolders))
		}
	}

	rootNode, warnings, buildError := scan.BuildWithProgress(scanPath, scanConfiguration, progressHook)
	if buildError != nil {
		return buildError
	}
	for _, warning := range warnings {
		logger.Warn(fmt.Sprintf(warningSkipFormat, warning.Path, warning.Reason))
	}

	textArtifact, renderTextError := output.RenderText(rootNode, textOptions)
	if renderTextError != nil {
		return renderTextError
	}
	fmt.Println(textArtifact)

	if artifactsError := produceArtifacts(logger, rootNode, scanConfiguration, textArtifact, artifactValues); artifactsError != nil {
		return artifactsError
	}

	summary := output.Summarize(rootNode)
	summaryLine := fmt.Sprintf(summaryLineFormat,
		humanize.Comma(int64(summary.TotalFiles)),
		humanize.Comma(int64(summary.TotalFolders)),
		output.FormatFileSize(summary.TotalSize))
	color.Green("%s", summaryLine)
	return nil
}

// resolveConfiguration layers configuration-file defaults under command-line
// flags: a flag contributes only when the user changed it, so file values
// survive untouched flags and flags win over file values.
func resolveConfiguration(
	command *cobra.Command,
	applicationConfiguration config.ApplicationConfiguration,
	scanValues scanFlagValues,
	displayValues displayFlagValues,
) (types.ScanConfig, output.TextOptions) {
	scanConfiguration := types.DefaultScanConfig()
	textOptions := output.DefaultTextOptions()

	fileScan := applicationConfiguration.Scan
	if fileScan.MaxDepth != nil {
		scanConfiguration.MaxDepth = *fileScan.MaxDepth
	}
	if fileScan.IncludeHidden != nil {
		scanConfiguration.IncludeHidden = *fileScan.IncludeHidden
	}
	if fileScan.DirectoriesOnly != nil {
		scanConfiguration.IncludeFiles = !*fileScan.DirectoriesOnly
	}
	if len(fileScan.Extensions) > 0 {
		scanConfiguration.Extensions = fileScan.Extensions
	}
	if fileScan.MinSizeMB != nil {
		scanConfiguration.MinSize = megabytesToBytes(*fileScan.MinSizeMB)
	}
	if fileScan.MaxSizeMB != nil {
		scanConfiguration.MaxSize = megabytesToBytes(*fileScan.MaxSizeMB)
	}

	fileDisplay := applicationConfiguration.Display
	if fileDisplay.Style != "" {
		textOptions.Style = fileDisplay.Style
	}
	if fileDisplay.ShowSize != nil {
		textOptions.ShowSize = *fileDisplay.ShowSize
	}
	if fileDisplay.ShowCount != nil {
		textOptions.ShowCount = *fileDisplay.ShowCount
	}
	if fileDisplay.Width != nil {
		textOptions.MaxWidth = *fileDisplay.Width
	}

	flags := command.Flags()
	if flags.Changed(maxDepthFlagName) {
		scanConfiguration.MaxDepth = scanValues.maxDepth
	}
	if flags.Changed(hiddenFlagName) {
		scanConfiguration.IncludeHidden = scanValues.includeHidden
	}
	if flags.Changed(noFilesFlagName) {
		scanConfiguration.IncludeFiles = !scanValues.directoriesOnly
	}
	if flags.Changed(extensionsFlagName) {
		scanConfiguration.Extensions = utils.NormalizeExtensions(scanValues.extensions)
	}
	if flags.Changed(minSizeFlagName) {
		scanConfiguration.MinSize = megabytesToBytes(scanValues.minSizeMB)
	}
	if flags.Changed(maxSizeFlagName) {
		scanConfiguration.MaxSize = megabytesToBytes(scanValues.maxSizeMB)
	}
	if flags.Changed(styleFlagName) {
		textOptions.Style = strings.ToLower(displayValues.style)
	}
	if flags.Changed(noSizeFlagName) {
		textOptions.ShowSize = !displayValues.hideSize
	}
	if flags.Changed(noCountFlagName) {
		textOptions.ShowCount = !displayValues.hideCount
	}
	if flags.Changed(widthFlagName) {
		textOptions.MaxWidth = displayValues.width
	}

	scanConfiguration.Style = textOptions.Style
	return scanConfiguration, textOptions
}

func megabytesToBytes(megabytes float64) int64 {
	if megabytes <= 0 {
		return 0
	}
	return int64(megabytes * bytesPerMegabyte)
}
