package remove

import "strings"

const (
	configurationRepositoryKeyConstant = "repository"
	configurationForceKeyConstant      = "force"
	configurationAssumeYesKeyConstant  = "assume_yes"
	configurationDryRunKeyConstant     = "dry_run"
)

// CommandConfiguration captures configuration values for the branch-remove command.
type CommandConfiguration struct {
	Repository string `mapstructure:"repository"`
	Force      bool   `mapstructure:"force"`
	AssumeYes  bool   `mapstructure:"assume_yes"`
	DryRun     bool   `mapstructure:"dry_run"`
}

// DefaultCommandConfiguration provides baseline configuration values for branch removal.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Repository: "",
		Force:      false,
		AssumeYes:  false,
		DryRun:     false,
	}
}

// Sanitize trims configuration values without applying implicit defaults.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.Repository = strings.TrimSpace(configuration.Repository)
	return sanitized
}

// DefaultConfigurationValues exposes baseline settings keyed beneath the provided root.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationRepositoryKeyConstant: defaults.Repository,
		rootKey + "." + configurationForceKeyConstant:      defaults.Force,
		rootKey + "." + configurationAssumeYesKeyConstant:  defaults.AssumeYes,
		rootKey + "." + configurationDryRunKeyConstant:     defaults.DryRun,
	}
}
