package remove

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/temirov/gbs/internal/branches"
	"github.com/temirov/gbs/internal/report"
	"github.com/temirov/gbs/internal/ui"
	"github.com/temirov/gbs/internal/utils"
	flagutils "github.com/temirov/gbs/internal/utils/flags"
)

const (
	commandUseConstant                = "branch-remove"
	commandShortDescriptionConstant   = "Interactively delete local branches"
	commandLongDescriptionConstant    = "branch-remove lists local branches in a numbered menu and deletes the selected one after a yes/no confirmation. Remote tracking branches and the checked-out branch are never offered for deletion."
	commandExampleConstant            = "gbs branch-remove ~/Development/project --dry-run"
	commandUsageSpecificationConstant = "gbs branch-remove [repository] [--force <yes|NO>] [--yes <yes|NO>] [--dry-run <yes|NO>]"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for interactive branch removal.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	RepositoryService            branches.RepositoryService
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	Input                        io.Reader
	ConfirmationReader           ui.CharacterReader
}

// Build constructs the branch-remove command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		RunE:    builder.run,
	}

	flagutils.BindRepositoryFlag(command, flagutils.RepositoryFlagValue{}, flagutils.RepositoryFlagDefinition{Enabled: true})
	flagutils.BindExecutionFlags(command, flagutils.ExecutionDefaults{}, flagutils.ExecutionFlagDefinitions{
		DryRun:    flagutils.ExecutionFlagDefinition{Name: flagutils.DryRunFlagName, Usage: flagutils.DryRunFlagUsage, Enabled: true},
		AssumeYes: flagutils.ExecutionFlagDefinition{Name: flagutils.AssumeYesFlagName, Shorthand: flagutils.AssumeYesFlagShorthand, Usage: flagutils.AssumeYesFlagUsage, Enabled: true},
		Force:     flagutils.ExecutionFlagDefinition{Name: flagutils.ForceFlagName, Usage: flagutils.ForceFlagUsage, Enabled: true},
	})

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 1 {
		return report.NewError(report.KindUsage, commandUsageSpecificationConstant)
	}

	configuration := builder.resolveConfiguration()
	repositoryPath := branches.ResolveRepositoryPath(command, arguments, configuration.Repository)

	logger := builder.resolveLogger()
	repositoryService, resolveError := branches.ResolveRepositoryService(builder.RepositoryService, logger, builder.humanReadableLoggingEnabled())
	if resolveError != nil {
		return resolveError
	}

	removalService, serviceError := NewRemovalService(RemovalDependencies{
		Logger:             logger,
		RepositoryService:  repositoryService,
		Input:              builder.resolveInput(command),
		ConfirmationReader: builder.resolveConfirmationReader(command),
		Output:             utils.NewFlushingWriter(command.OutOrStdout()),
		Errors:             command.ErrOrStderr(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, runError := removalService.Run(command.Context(), RemovalOptions{
		RepositoryPath: repositoryPath,
		Force:          flagutils.ResolveToggleSetting(command, flagutils.ForceFlagName, configuration.Force),
		AssumeYes:      flagutils.ResolveToggleSetting(command, flagutils.AssumeYesFlagName, configuration.AssumeYes),
		DryRun:         flagutils.ResolveToggleSetting(command, flagutils.DryRunFlagName, configuration.DryRun),
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

// resolveConfirmationReader uses raw single-keystroke reads only when the
// command is attached to an interactive terminal. Otherwise it returns nil so
// the removal service answers confirmations from the selection stream instead
// of competing with it for piped input.
func (builder *CommandBuilder) resolveConfirmationReader(command *cobra.Command) ui.CharacterReader {
	if builder.ConfirmationReader != nil {
		return builder.ConfirmationReader
	}
	if builder.Input == nil && command.InOrStdin() == io.Reader(os.Stdin) && term.IsTerminal(int(os.Stdin.Fd())) {
		return ui.NewTerminalCharacterReader(nil)
	}
	return nil
}
