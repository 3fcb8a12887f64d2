// Package utils exposes reusable helpers consumed by multiple commands.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging for the CLI,
// alongside context accessors and the FlushingWriter used to surface
// interactive prompts immediately.
package utils
