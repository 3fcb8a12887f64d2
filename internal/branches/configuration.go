package branches

import "strings"

const (
	configurationRepositoryKeyConstant = "repository"
	configurationRefreshKeyConstant    = "refresh"
)

// CommandConfiguration captures configuration values for the branch-switch command.
type CommandConfiguration struct {
	Repository string `mapstructure:"repository"`
	Refresh    bool   `mapstructure:"refresh"`
}

// DefaultCommandConfiguration provides baseline configuration values for branch switching.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Repository: "",
		Refresh:    true,
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
		rootKey + "." + configurationRefreshKeyConstant:    defaults.Refresh,
	}
}
