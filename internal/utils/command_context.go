package utils

import "context"

// commandContextKey is a pointer key type so values stored by this package
// cannot collide with context values owned by other packages.
type commandContextKey struct{ keyName string }

var configurationFilePathContextKey = &commandContextKey{keyName: "configuration-file-path"}

// CommandContextAccessor moves command scoped values through execution
// contexts. The root command records the configuration file it loaded during
// the persistent pre-run and subcommands read the same value back instead of
// resolving the configuration a second time.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath returns a context carrying the configuration file
// path. A nil parent starts from context.Background.
func (contextAccessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, configurationFilePathContextKey, configurationFilePath)
}

// ConfigurationFilePath reports the configuration file path carried by the
// context along with whether one was stored.
func (contextAccessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	configurationFilePath, configurationFilePathCarried := executionContext.Value(configurationFilePathContextKey).(string)
	return configurationFilePath, configurationFilePathCarried
}
