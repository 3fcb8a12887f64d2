// Package flags provides helpers for binding standardized execution flags to Cobra commands.
package flags

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ExecutionDefaults describes default flag values shared across commands.
type ExecutionDefaults struct {
	DryRun    bool
	AssumeYes bool
	Force     bool
}

// ExecutionFlagDefinition captures a single flag's configuration.
type ExecutionFlagDefinition struct {
	Name      string
	Usage     string
	Shorthand string
	Enabled   bool
}

// ExecutionFlagDefinitions groups execution flag definitions.
type ExecutionFlagDefinitions struct {
	DryRun    ExecutionFlagDefinition
	AssumeYes ExecutionFlagDefinition
	Force     ExecutionFlagDefinition
}

// ExecutionFlagValues stores parsed execution flag values.
type ExecutionFlagValues struct {
	DryRun    bool
	AssumeYes bool
	Force     bool
}

// BindExecutionFlags attaches standardized execution toggles to the provided command.
func BindExecutionFlags(command *cobra.Command, defaults ExecutionDefaults, definitions ExecutionFlagDefinitions) *ExecutionFlagValues {
	values := ExecutionFlagValues{DryRun: defaults.DryRun, AssumeYes: defaults.AssumeYes, Force: defaults.Force}
	if command == nil {
		return &values
	}

	flagSet := command.Flags()
	bindExecutionToggle(flagSet, &values.DryRun, definitions.DryRun, defaults.DryRun)
	bindExecutionToggle(flagSet, &values.AssumeYes, definitions.AssumeYes, defaults.AssumeYes)
	bindExecutionToggle(flagSet, &values.Force, definitions.Force, defaults.Force)

	return &values
}

func bindExecutionToggle(flagSet *pflag.FlagSet, target *bool, definition ExecutionFlagDefinition, defaultValue bool) {
	if flagSet == nil {
		return
	}
	if !definition.Enabled {
		return
	}
	if len(definition.Name) == 0 {
		return
	}

	AddToggleFlag(flagSet, target, definition.Name, definition.Shorthand, defaultValue, definition.Usage)
}
