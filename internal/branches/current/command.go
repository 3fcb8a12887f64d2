package current

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gbs/internal/branches"
	"github.com/temirov/gbs/internal/report"
	flagutils "github.com/temirov/gbs/internal/utils/flags"
)

const (
	commandUseConstant                = "branch-current"
	commandShortDescriptionConstant   = "Print the checked-out branch"
	commandLongDescriptionConstant    = "branch-current prints the name of the checked-out branch, or the abbreviated commit hash when the repository is in a detached HEAD state."
	commandExampleConstant            = "gbs branch-current ~/Development/project"
	commandUsageSpecificationConstant = "gbs branch-current [repository]"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the Cobra command for reporting the current branch.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	RepositoryService            branches.RepositoryService
	HumanReadableLoggingProvider func() bool
}

// Build constructs the branch-current command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:     commandUseConstant,
		Short:   commandShortDescriptionConstant,
		Long:    commandLongDescriptionConstant,
		Example: commandExampleConstant,
		RunE:    builder.run,
	}

	flagutils.BindRepositoryFlag(command, flagutils.RepositoryFlagValue{}, flagutils.RepositoryFlagDefinition{Enabled: true})

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 1 {
		return report.NewError(report.KindUsage, commandUsageSpecificationConstant)
	}

	repositoryPath := branches.ResolveRepositoryPath(command, arguments, "")

	logger := builder.resolveLogger()
	repositoryService, resolveError := branches.ResolveRepositoryService(builder.RepositoryService, logger, builder.humanReadableLoggingEnabled())
	if resolveError != nil {
		return resolveError
	}

	statusService, serviceError := NewStatusService(StatusDependencies{
		Logger:            logger,
		RepositoryService: repositoryService,
		Output:            command.OutOrStdout(),
	})
	if serviceError != nil {
		return serviceError
	}

	_, runError := statusService.Run(command.Context(), StatusOptions{RepositoryPath: repositoryPath})
	return runError
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
