package utils_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gbs/internal/utils"
)

const (
	loaderEnvironmentPrefixConstant         = "GBS"
	loaderConfigurationNameConstant         = "config"
	loaderConfigurationTypeConstant         = "yaml"
	loaderConfigurationFileNameConstant     = "config.yaml"
	loaderRepositoryKeyConstant             = "tools.branch-switch.repository"
	loaderLogLevelEnvironmentNameConstant   = "GBS_COMMON_LOG_LEVEL"
	loaderSubtestNameTemplateConstant       = "%d_%s"
	loaderFullEmbeddedConfigurationConstant = "common:\n  log_level: info\ntools:\n  branch-switch:\n    refresh: true\n    repository: .\n"
	loaderCommonOnlyConfigurationConstant   = "common:\n  log_level: info\n"
	loaderFileConfigurationTemplateConstant = "common:\n  log_level: %s\ntools:\n  branch-switch:\n    repository: %s\n"
	loaderLevelOnlyConfigurationTemplate    = "common:\n  log_level: %s\n"
	loaderFallbackRepositoryConstant        = "~/fallback"
	loaderConfiguredRepositoryConstant      = "/tmp/configured"
	loaderExplicitConfigurationNameConstant = "explicit.yaml"
	loaderAbsentConfigurationNameConstant   = "absent.yaml"
)

type loaderFixtureConfiguration struct {
	Common loaderCommonFixture `mapstructure:"common"`
	Tools  loaderToolsFixture  `mapstructure:"tools"`
}

type loaderCommonFixture struct {
	LogLevel string `mapstructure:"log_level"`
}

type loaderToolsFixture struct {
	BranchSwitch loaderBranchSwitchFixture `mapstructure:"branch-switch"`
}

type loaderBranchSwitchFixture struct {
	Refresh    bool   `mapstructure:"refresh"`
	Repository string `mapstructure:"repository"`
}

func TestConfigurationLoaderLayersSources(testInstance *testing.T) {
	testCases := []struct {
		name                  string
		embeddedConfiguration string
		fileLogLevel          string
		environmentLogLevel   string
		expectedLogLevel      string
		expectedRepository    string
		expectedRefresh       bool
	}{
		{
			name:                  "embedded_configuration_beats_default_values",
			embeddedConfiguration: loaderFullEmbeddedConfigurationConstant,
			fileLogLevel:          "",
			environmentLogLevel:   "",
			expectedLogLevel:      "info",
			expectedRepository:    ".",
			expectedRefresh:       true,
		},
		{
			name:                  "default_values_fill_keys_missing_everywhere",
			embeddedConfiguration: loaderCommonOnlyConfigurationConstant,
			fileLogLevel:          "",
			environmentLogLevel:   "",
			expectedLogLevel:      "info",
			expectedRepository:    loaderFallbackRepositoryConstant,
			expectedRefresh:       false,
		},
		{
			name:                  "configuration_file_merges_over_embedded_keys",
			embeddedConfiguration: loaderFullEmbeddedConfigurationConstant,
			fileLogLevel:          "debug",
			environmentLogLevel:   "",
			expectedLogLevel:      "debug",
			expectedRepository:    loaderConfiguredRepositoryConstant,
			expectedRefresh:       true,
		},
		{
			name:                  "environment_variable_beats_configuration_file",
			embeddedConfiguration: loaderFullEmbeddedConfigurationConstant,
			fileLogLevel:          "warn",
			environmentLogLevel:   "error",
			expectedLogLevel:      "error",
			expectedRepository:    loaderConfiguredRepositoryConstant,
			expectedRefresh:       true,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(loaderSubtestNameTemplateConstant, testCaseIndex, testCase.name), func(subtestInstance *testing.T) {
			searchDirectory := subtestInstance.TempDir()
			if len(testCase.fileLogLevel) > 0 {
				configurationContent := fmt.Sprintf(loaderFileConfigurationTemplateConstant, testCase.fileLogLevel, loaderConfiguredRepositoryConstant)
				configurationFilePath := filepath.Join(searchDirectory, loaderConfigurationFileNameConstant)
				require.NoError(subtestInstance, os.WriteFile(configurationFilePath, []byte(configurationContent), 0o600))
			}

			if len(testCase.environmentLogLevel) > 0 {
				subtestInstance.Setenv(loaderLogLevelEnvironmentNameConstant, testCase.environmentLogLevel)
			}

			configurationLoader := utils.NewConfigurationLoader(
				loaderConfigurationNameConstant,
				loaderConfigurationTypeConstant,
				loaderEnvironmentPrefixConstant,
				[]string{searchDirectory},
			)
			configurationLoader.SetEmbeddedConfiguration([]byte(testCase.embeddedConfiguration), loaderConfigurationTypeConstant)

			defaultValues := map[string]any{
				loaderRepositoryKeyConstant: loaderFallbackRepositoryConstant,
			}

			loadedFixture := loaderFixtureConfiguration{}
			_, loadError := configurationLoader.LoadConfiguration("", defaultValues, &loadedFixture)
			require.NoError(subtestInstance, loadError)

			require.Equal(subtestInstance, testCase.expectedLogLevel, loadedFixture.Common.LogLevel)
			require.Equal(subtestInstance, testCase.expectedRepository, loadedFixture.Tools.BranchSwitch.Repository)
			require.Equal(subtestInstance, testCase.expectedRefresh, loadedFixture.Tools.BranchSwitch.Refresh)
		})
	}
}

func TestConfigurationLoaderExplicitFileBypassesSearchPaths(testInstance *testing.T) {
	searchDirectory := testInstance.TempDir()
	searchedContent := fmt.Sprintf(loaderLevelOnlyConfigurationTemplate, "warn")
	require.NoError(testInstance, os.WriteFile(filepath.Join(searchDirectory, loaderConfigurationFileNameConstant), []byte(searchedContent), 0o600))

	explicitDirectory := testInstance.TempDir()
	explicitFilePath := filepath.Join(explicitDirectory, loaderExplicitConfigurationNameConstant)
	explicitContent := fmt.Sprintf(loaderLevelOnlyConfigurationTemplate, "debug")
	require.NoError(testInstance, os.WriteFile(explicitFilePath, []byte(explicitContent), 0o600))

	configurationLoader := utils.NewConfigurationLoader(
		loaderConfigurationNameConstant,
		loaderConfigurationTypeConstant,
		loaderEnvironmentPrefixConstant,
		[]string{searchDirectory},
	)

	loadedFixture := loaderFixtureConfiguration{}
	metadata, loadError := configurationLoader.LoadConfiguration(explicitFilePath, map[string]any{}, &loadedFixture)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "debug", loadedFixture.Common.LogLevel)
	require.Equal(testInstance, explicitFilePath, metadata.ConfigFileUsed)
}

func TestConfigurationLoaderReportsMissingExplicitFile(testInstance *testing.T) {
	missingFilePath := filepath.Join(testInstance.TempDir(), loaderAbsentConfigurationNameConstant)

	configurationLoader := utils.NewConfigurationLoader(
		loaderConfigurationNameConstant,
		loaderConfigurationTypeConstant,
		loaderEnvironmentPrefixConstant,
		nil,
	)

	loadedFixture := loaderFixtureConfiguration{}
	_, loadError := configurationLoader.LoadConfiguration(missingFilePath, map[string]any{}, &loadedFixture)
	require.Error(testInstance, loadError)
}

func TestConfigurationLoaderSearchesDirectoriesInOrder(testInstance *testing.T) {
	firstDirectory := testInstance.TempDir()
	secondDirectory := testInstance.TempDir()

	firstContent := fmt.Sprintf(loaderLevelOnlyConfigurationTemplate, "debug")
	firstFilePath := filepath.Join(firstDirectory, loaderConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(firstFilePath, []byte(firstContent), 0o600))

	secondContent := fmt.Sprintf(loaderLevelOnlyConfigurationTemplate, "warn")
	require.NoError(testInstance, os.WriteFile(filepath.Join(secondDirectory, loaderConfigurationFileNameConstant), []byte(secondContent), 0o600))

	configurationLoader := utils.NewConfigurationLoader(
		loaderConfigurationNameConstant,
		loaderConfigurationTypeConstant,
		loaderEnvironmentPrefixConstant,
		[]string{firstDirectory, secondDirectory},
	)

	loadedFixture := loaderFixtureConfiguration{}
	metadata, loadError := configurationLoader.LoadConfiguration("", map[string]any{}, &loadedFixture)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "debug", loadedFixture.Common.LogLevel)
	require.Equal(testInstance, firstFilePath, metadata.ConfigFileUsed)
}
