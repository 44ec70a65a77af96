// Package config loads treescan configuration files. A global file in the
// user's home directory is overlaid by a local file in the working directory;
// command-line flags take precedence over both.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mdemp/treescan/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the file-provided defaults for a scan.
// Pointer fields distinguish "unset" from an explicit zero value so that the
// overlay merge keeps lower-precedence settings intact.
type ApplicationConfiguration struct {
	Scan    ScanSettings    `mapstructure:"scan"`
	Display DisplaySettings `mapstructure:"display"`
}

// ScanSettings mirrors the traversal options of a scan configuration.
type ScanSettings struct {
	MaxDepth        *int     `mapstructure:"max_depth"`
	IncludeHidden   *bool    `mapstructure:"hidden"`
	DirectoriesOnly *bool    `mapstructure:"directories_only"`
	Extensions      []string `mapstructure:"extensions"`
	MinSizeMB       *float64 `mapstructure:"min_size_mb"`
	MaxSizeMB       *float64 `mapstructure:"max_size_mb"`
}

// DisplaySettings mirrors the text renderer options.
type DisplaySettings struct {
	Style     string `mapstructure:"style"`
	ShowSize  *bool  `mapstructure:"show_size"`
	ShowCount *bool  `mapstructure:"show_count"`
	Width     *int   `mapstructure:"width"`
}

// LoadApplicationConfiguration loads configuration from the global and local
// files, merging local values over global ones. Missing files are not errors.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, homeError := os.UserHomeDir(); homeError == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfiguration, globalLoadError := loadConfigurationFromPath(globalPath)
		if globalLoadError != nil {
			return ApplicationConfiguration{}, globalLoadError
		}
		merged = merged.Merge(globalConfiguration)
	}

	localPath, resolveError := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveError != nil {
		return ApplicationConfiguration{}, resolveError
	}
	if localPath != "" {
		localConfiguration, localLoadError := loadConfigurationFromPath(localPath)
		if localLoadError != nil {
			return ApplicationConfiguration{}, localLoadError
		}
		merged = merged.Merge(localConfiguration)
	}

	merged.Scan.Extensions = utils.NormalizeExtensions(merged.Scan.Extensions)
	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	return filepath.Join(workingDirectory, utils.ConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	info, statError := os.Stat(path)
	if statError != nil {
		if os.IsNotExist(statError) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statError)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readError := reader.ReadInConfig(); readError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readError)
	}
	var configuration ApplicationConfiguration
	if decodeError := reader.Unmarshal(&configuration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeError)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Scan = result.Scan.merge(override.Scan)
	result.Display = result.Display.merge(override.Display)
	return result
}

func (settings ScanSettings) merge(override ScanSettings) ScanSettings {
	result := settings
	if override.MaxDepth != nil {
		result.MaxDepth = cloneInt(override.MaxDepth)
	}
	if override.IncludeHidden != nil {
		result.IncludeHidden = cloneBool(override.IncludeHidden)
	}
	if override.DirectoriesOnly != nil {
		result.DirectoriesOnly = cloneBool(override.DirectoriesOnly)
	}
	if len(override.Extensions) > 0 {
		result.Extensions = append([]string{}, override.Extensions...)
	}
	if override.MinSizeMB != nil {
		result.MinSizeMB = cloneFloat(override.MinSizeMB)
	}
	if override.MaxSizeMB != nil {
		result.MaxSizeMB = cloneFloat(override.MaxSizeMB)
	}
	return result
}

func (settings DisplaySettings) merge(override DisplaySettings) DisplaySettings {
	result := settings
	if override.Style != "" {
		result.Style = override.Style
	}
	if override.ShowSize != nil {
		result.ShowSize = cloneBool(override.ShowSize)
	}
	if override.ShowCount != nil {
		result.ShowCount = cloneBool(override.ShowCount)
	}
	if override.Width != nil {
		result.Width = cloneInt(override.Width)
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneFloat(value *float64) *float64 {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
