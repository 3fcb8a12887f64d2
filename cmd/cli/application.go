package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/gbs/internal/branches"
	branchcurrent "github.com/temirov/gbs/internal/branches/current"
	branchremove "github.com/temirov/gbs/internal/branches/remove"
	"github.com/temirov/gbs/internal/report"
	"github.com/temirov/gbs/internal/textutils"
	"github.com/temirov/gbs/internal/utils"
	flagutils "github.com/temirov/gbs/internal/utils/flags"
)

const (
	applicationNameConstant                 = "gbs"
	applicationShortDescriptionConstant     = "Command-line interface for gbs branch utilities"
	applicationLongDescriptionConstant      = "gbs bundles interactive Git branch helpers with the text utilities they are built on."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagDescriptionConstant         = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagDescriptionConstant        = "Override the configured log format."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	environmentPrefixConstant               = "GBS"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	rootCommandInfoMessageConstant          = "gbs CLI executed"
	rootCommandDebugMessageConstant         = "gbs CLI diagnostics"
	logFieldCommandNameConstant             = "command_name"
	logFieldArgumentCountConstant           = "argument_count"
	logFieldArgumentsConstant               = "arguments"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	configurationSearchPathVariableConstant = "GBS_CONFIG_SEARCH_PATH"
	defaultConfigurationSearchPathConstant  = "."
	toolsConfigurationKeyConstant           = "tools"
	branchSwitchConfigurationKeyConstant    = toolsConfigurationKeyConstant + ".branch-switch"
	branchRemoveConfigurationKeyConstant    = toolsConfigurationKeyConstant + ".branch-remove"
)

var supportedLogLevelNames = []string{
	string(utils.LogLevelDebug),
	string(utils.LogLevelInfo),
	string(utils.LogLevelWarn),
	string(utils.LogLevelError),
}

var supportedLogFormatNames = []string{
	string(utils.LogFormatStructured),
	string(utils.LogFormatConsole),
}

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for CLI subcommands grouped by tool.
type ApplicationToolsConfiguration struct {
	BranchSwitch branches.CommandConfiguration     `mapstructure:"branch-switch"`
	BranchRemove branchremove.CommandConfiguration `mapstructure:"branch-remove"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactory(),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetFlagErrorFunc(func(command *cobra.Command, flagError error) error {
		return report.NewError(report.KindUsage, flagError)
	})
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(
		&application.logLevelFlagValue,
		logLevelFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(string(utils.LogLevelInfo), supportedLogLevelNames, logLevelFlagDescriptionConstant),
	)
	cobraCommand.PersistentFlags().StringVar(
		&application.logFormatFlagValue,
		logFormatFlagNameConstant,
		"",
		flagutils.FormatChoiceUsage(string(utils.LogFormatConsole), supportedLogFormatNames, logFormatFlagDescriptionConstant),
	)

	branchSwitchBuilder := branches.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() branches.CommandConfiguration {
			return application.configuration.Tools.BranchSwitch
		},
	}
	branchSwitchCommand, branchSwitchBuildError := branchSwitchBuilder.Build()
	if branchSwitchBuildError == nil {
		cobraCommand.AddCommand(branchSwitchCommand)
	}

	branchRemoveBuilder := branchremove.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
		ConfigurationProvider: func() branchremove.CommandConfiguration {
			return application.configuration.Tools.BranchRemove
		},
	}
	branchRemoveCommand, branchRemoveBuildError := branchRemoveBuilder.Build()
	if branchRemoveBuildError == nil {
		cobraCommand.AddCommand(branchRemoveCommand)
	}

	branchCurrentBuilder := branchcurrent.CommandBuilder{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	branchCurrentCommand, branchCurrentBuildError := branchCurrentBuilder.Build()
	if branchCurrentBuildError == nil {
		cobraCommand.AddCommand(branchCurrentCommand)
	}

	isIntegerBuilder := textutils.IsIntegerCommandBuilder{}
	isIntegerCommand, isIntegerBuildError := isIntegerBuilder.Build()
	if isIntegerBuildError == nil {
		cobraCommand.AddCommand(isIntegerCommand)
	}

	upperBuilder := textutils.UpperCommandBuilder{}
	upperCommand, upperBuildError := upperBuilder.Build()
	if upperBuildError == nil {
		cobraCommand.AddCommand(upperCommand)
	}

	padBuilder := textutils.PadCommandBuilder{}
	padCommand, padBuildError := padBuilder.Build()
	if padBuildError == nil {
		cobraCommand.AddCommand(padCommand)
	}

	randomBuilder := textutils.RandomCommandBuilder{}
	randomCommand, randomBuildError := randomBuilder.Build()
	if randomBuildError == nil {
		cobraCommand.AddCommand(randomCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// configurationSearchPaths lists the directories probed for config.yaml when no
// explicit --config path is given. A directory named by GBS_CONFIG_SEARCH_PATH
// is consulted before the working directory.
func configurationSearchPaths() []string {
	searchPaths := []string{}
	if configuredSearchPath := strings.TrimSpace(os.Getenv(configurationSearchPathVariableConstant)); len(configuredSearchPath) > 0 {
		searchPaths = append(searchPaths, configuredSearchPath)
	}
	return append(searchPaths, defaultConfigurationSearchPathConstant)
}

// Execute runs the command hierarchy against the process arguments.
func (application *Application) Execute() error {
	return application.ExecuteWithArguments(flagutils.NormalizeToggleArguments(os.Args[1:]))
}

// ExecuteWithArguments runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) ExecuteWithArguments(arguments []string) error {
	application.rootCommand.SetArgs(arguments)
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant:  string(utils.LogLevelInfo),
		commonLogFormatConfigKeyConstant: string(utils.LogFormatConsole),
	}
	for configurationKey, configurationValue := range branches.DefaultConfigurationValues(branchSwitchConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}
	for configurationKey, configurationValue := range branchremove.DefaultConfigurationValues(branchRemoveConfigurationKeyConstant) {
		defaultValues[configurationKey] = configurationValue
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	createdLogger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.ParseLogLevel(application.configuration.Common.LogLevel),
		utils.ParseLogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = createdLogger

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Info(
		rootCommandInfoMessageConstant,
		zap.String(logFieldCommandNameConstant, command.Name()),
		zap.Int(logFieldArgumentCountConstant, len(arguments)),
	)

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	if len(arguments) == 0 {
		return command.Help()
	}

	return nil
}

func (application *Application) flushLogger() error {
	if syncError := application.syncLoggerInstance(application.logger); syncError != nil {
		return syncError
	}
	return nil
}

func (application *Application) syncLoggerInstance(logger *zap.Logger) error {
	if logger == nil {
		return nil
	}

	syncError := logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	rootCommand := command.Root()
	if rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet == nil {
			continue
		}

		if flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
