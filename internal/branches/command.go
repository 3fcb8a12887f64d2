package branches

import (
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gbs/internal/report"
	"github.com/temirov/gbs/internal/utils"
	flagutils "github.com/temirov/gbs/internal/utils/flags"
	pathutils "github.com/temirov/gbs/internal/utils/path"
)

const (
	commandUseConstant                = "branch-switch"
	commandShortDescriptionConstant   = "Interactively switch to another branch"
	commandLongDescriptionConstant    = "branch-switch lists local and remote branches in a numbered menu and checks out the selected one. Choosing the Quit entry or typing q leaves the current branch untouched."
	commandExampleConstant            = "gbs branch-switch ~/Development/project --refresh no"
	commandUsageSpecificationConstant = "gbs branch-switch [repository] [--refresh <YES|no>]"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for interactive branch switching.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	RepositoryService            RepositoryService
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	Input                        io.Reader
}

// Build constructs the branch-switch command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		RunE:    builder.run,
	}

	flagutils.BindRepositoryFlag(command, flagutils.RepositoryFlagValue{}, flagutils.RepositoryFlagDefinition{Enabled: true})

	var refreshSelection bool
	flagutils.AddToggleFlag(command.Flags(), &refreshSelection, flagutils.RefreshFlagName, "", true, flagutils.RefreshFlagUsage)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 1 {
		return report.NewError(report.KindUsage, commandUsageSpecificationConstant)
	}

	configuration := builder.resolveConfiguration()
	repositoryPath := ResolveRepositoryPath(command, arguments, configuration.Repository)
	refreshRemotes := flagutils.ResolveToggleSetting(command, flagutils.RefreshFlagName, configuration.Refresh)

	logger := builder.resolveLogger()
	repositoryService, resolveError := ResolveRepositoryService(builder.RepositoryService, logger, builder.humanReadableLoggingEnabled())
	if resolveError != nil {
		return resolveError
	}

	selectorService, selectorError := NewSelectorService(SelectorDependencies{
		Logger:            logger,
		RepositoryService: repositoryService,
		Input:             builder.resolveInput(command),
		Output:            utils.NewFlushingWriter(command.OutOrStdout()),
		Errors:            command.ErrOrStderr(),
	})
	if selectorError != nil {
		return selectorError
	}

	_, runError := selectorService.Run(command.Context(), SelectionOptions{
		RepositoryPath: repositoryPath,
		RefreshRemotes: refreshRemotes,
	})
	return runError
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) humanReadableLoggingEnabled() bool {
	if builder.HumanReadableLoggingProvider == nil {
		return false
	}
	return builder.HumanReadableLoggingProvider()
}

func (builder *CommandBuilder) resolveInput(command *cobra.Command) io.Reader {
	if builder.Input != nil {
		return builder.Input
	}
	return command.InOrStdin()
}

// ResolveRepositoryPath picks the repository for a branch command: a positional
// argument wins, then an explicitly set repository flag, then the configured
// path. The result is trimmed, tilde expanded, and cleaned.
func ResolveRepositoryPath(command *cobra.Command, arguments []string, configuredPath string) string {
	candidatePath := configuredPath
	repositoryFlag := command.Flags().Lookup(flagutils.RepositoryFlagName)
	if repositoryFlag != nil && repositoryFlag.Changed {
		candidatePath = repositoryFlag.Value.String()
	}
	if len(arguments) > 0 {
		candidatePath = arguments[0]
	}
	return pathutils.NewRepositoryPathResolver().Resolve(candidatePath)
}
