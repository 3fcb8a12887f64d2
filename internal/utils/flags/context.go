package flags

import "github.com/spf13/cobra"

const (
	// RepositoryFlagName exposes the shared repository path flag name.
	RepositoryFlagName = "repository"
	// RepositoryFlagUsage describes the shared repository path flag purpose.
	RepositoryFlagUsage = "Path to the Git repository to operate on"
	// RefreshFlagName exposes the shared remote refresh flag name.
	RefreshFlagName = "refresh"
	// RefreshFlagUsage describes the shared remote refresh flag purpose.
	RefreshFlagUsage = "Refresh remote tracking branches before listing"
	// ForceFlagName exposes the shared force flag name.
	ForceFlagName = "force"
	// ForceFlagUsage describes the shared force flag purpose.
	ForceFlagUsage = "Force operations that would otherwise be refused"
	// DryRunFlagName exposes the shared dry-run flag name.
	DryRunFlagName = "dry-run"
	// DryRunFlagUsage describes the shared dry-run flag purpose.
	DryRunFlagUsage = "Preview operations without making changes"
	// AssumeYesFlagName exposes the shared assume-yes flag name.
	AssumeYesFlagName = "yes"
	// AssumeYesFlagShorthand provides the shorthand for the assume-yes flag.
	AssumeYesFlagShorthand = "y"
	// AssumeYesFlagUsage describes the shared assume-yes flag purpose.
	AssumeYesFlagUsage = "Automatically confirm prompts"
)

// RepositoryFlagDefinition captures configuration for the repository path flag.
type RepositoryFlagDefinition struct {
	Name      string
	Shorthand string
	Usage     string
	Enabled   bool
}

// RepositoryFlagValue stores the repository path flag value.
type RepositoryFlagValue struct {
	Path string
}

// BindRepositoryFlag attaches the repository path flag to the provided command.
func BindRepositoryFlag(command *cobra.Command, defaults RepositoryFlagValue, definition RepositoryFlagDefinition) *RepositoryFlagValue {
	values := defaults
	if command == nil {
		return &values
	}
	if !definition.Enabled {
		return &values
	}

	flagName := definition.Name
	if len(flagName) == 0 {
		flagName = RepositoryFlagName
	}
	flagUsage := definition.Usage
	if len(flagUsage) == 0 {
		flagUsage = RepositoryFlagUsage
	}

	flagSet := command.Flags()
	if flagSet.Lookup(flagName) != nil {
		return &values
	}

	if len(definition.Shorthand) > 0 {
		flagSet.StringVarP(&values.Path, flagName, definition.Shorthand, values.Path, flagUsage)
		return &values
	}

	flagSet.StringVar(&values.Path, flagName, values.Path, flagUsage)
	return &values
}
