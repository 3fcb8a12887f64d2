package flags

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	longFlagPrefixConstant                 = "--"
	shortFlagPrefixConstant                = "-"
	flagValueSeparatorConstant             = "="
	argumentTerminatorConstant             = "--"
)

// toggleLiteralValues maps every accepted toggle spelling, lowercased, to the
// boolean it selects.
var toggleLiteralValues = map[string]bool{
	toggleTrueCanonicalValue:  true,
	"t":                       true,
	"yes":                     true,
	"y":                       true,
	"on":                      true,
	"1":                       true,
	toggleFalseCanonicalValue: false,
	"f":                       false,
	"no":                      false,
	"n":                       false,
	"off":                     false,
	"0":                       false,
}

// AddToggleFlag registers a boolean flag that accepts yes/no style spellings
// in addition to true/false and shows the default inside the usage
// placeholder.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, shorthand string, defaultValue bool, usage string) {
	if flagSet == nil || len(name) == 0 {
		return
	}

	toggleValue := newToggleFlagValue(defaultValue, target)
	if len(shorthand) > 0 {
		flagSet.VarP(toggleValue, name, shorthand, usage)
	} else {
		flagSet.Var(toggleValue, name, usage)
	}

	registeredFlag := flagSet.Lookup(name)
	if registeredFlag == nil {
		return
	}
	registeredFlag.NoOptDefVal = toggleTrueCanonicalValue
	registeredFlag.Usage = formatToggleUsage(usage, defaultValue)

	registeredToggleFlags.remember(name, shorthand)
}

// ResolveToggleSetting prefers an explicitly set toggle flag over the configured value.
func ResolveToggleSetting(command *cobra.Command, flagName string, configuredValue bool) bool {
	if command == nil {
		return configuredValue
	}
	toggleFlag := command.Flags().Lookup(flagName)
	if toggleFlag == nil || !toggleFlag.Changed {
		return configuredValue
	}
	parsedValue, parseError := command.Flags().GetBool(flagName)
	if parseError != nil {
		return configuredValue
	}
	return parsedValue
}

// NormalizeToggleArguments rewrites space separated toggle values into equals
// form ahead of parsing. pflag treats a bare boolean flag as complete, so
// without the rewrite a trailing yes or no would become a positional argument.
func NormalizeToggleArguments(arguments []string) []string {
	if len(arguments) == 0 {
		return nil
	}

	normalizedArguments := make([]string, 0, len(arguments))
	argumentIndex := 0
	for argumentIndex < len(arguments) {
		currentArgument := arguments[argumentIndex]
		if currentArgument == argumentTerminatorConstant {
			normalizedArguments = append(normalizedArguments, arguments[argumentIndex:]...)
			break
		}

		if normalizedArgument, consumedCount := normalizeToggleArgument(currentArgument, arguments, argumentIndex); consumedCount > 0 {
			normalizedArguments = append(normalizedArguments, normalizedArgument)
			argumentIndex += consumedCount
			continue
		}

		normalizedArguments = append(normalizedArguments, currentArgument)
		argumentIndex++
	}

	return normalizedArguments
}

// toggleFlagValue implements pflag.Value for yes/no style booleans. Type
// reports "bool" so pflag's GetBool accessor recognizes the flag.
type toggleFlagValue struct {
	currentValue bool
	target       *bool
}

func newToggleFlagValue(defaultValue bool, target *bool) *toggleFlagValue {
	if target != nil {
		*target = defaultValue
	}
	return &toggleFlagValue{currentValue: defaultValue, target: target}
}

func (value *toggleFlagValue) Set(rawValue string) error {
	parsedValue, parseError := parseToggleValue(rawValue)
	if parseError != nil {
		return parseError
	}
	value.currentValue = parsedValue
	if value.target != nil {
		*value.target = parsedValue
	}
	return nil
}

func (value *toggleFlagValue) String() string {
	if value != nil && value.currentValue {
		return toggleTrueCanonicalValue
	}
	return toggleFalseCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return "bool"
}

func parseToggleValue(rawValue string) (bool, error) {
	trimmedValue := strings.TrimSpace(rawValue)
	if len(trimmedValue) == 0 {
		return true, nil
	}
	parsedValue, recognized := toggleLiteralValues[strings.ToLower(trimmedValue)]
	if !recognized {
		return false, fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
	return parsedValue, nil
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf("`%s`", placeholder)
	}
	return fmt.Sprintf("`%s` %s", placeholder, trimmedDescription)
}

// toggleFlagRegistry remembers which flag names take toggle values so the
// argument normalization pass rewrites only those flags.
type toggleFlagRegistry struct {
	guard      sync.RWMutex
	longNames  map[string]struct{}
	shorthands map[string]struct{}
}

var registeredToggleFlags = toggleFlagRegistry{
	longNames:  map[string]struct{}{},
	shorthands: map[string]struct{}{},
}

func (registry *toggleFlagRegistry) remember(longName string, shorthand string) {
	registry.guard.Lock()
	defer registry.guard.Unlock()
	registry.longNames[longName] = struct{}{}
	if len(shorthand) > 0 {
		registry.shorthands[shorthand] = struct{}{}
	}
}

func (registry *toggleFlagRegistry) knowsLongName(longName string) bool {
	registry.guard.RLock()
	defer registry.guard.RUnlock()
	_, known := registry.longNames[longName]
	return known
}

func (registry *toggleFlagRegistry) knowsShorthand(shorthand string) bool {
	registry.guard.RLock()
	defer registry.guard.RUnlock()
	_, known := registry.shorthands[shorthand]
	return known
}

func normalizeToggleArgument(currentArgument string, arguments []string, argumentIndex int) (string, int) {
	hasExplicitValue, referencesToggle := classifyFlagToken(currentArgument)
	if !referencesToggle {
		return "", 0
	}
	if hasExplicitValue {
		return currentArgument, 1
	}
	if argumentIndex+1 >= len(arguments) {
		return currentArgument, 1
	}

	candidateValue := arguments[argumentIndex+1]
	if strings.HasPrefix(candidateValue, shortFlagPrefixConstant) {
		return currentArgument, 1
	}

	return currentArgument + flagValueSeparatorConstant + candidateValue, 2
}

func classifyFlagToken(token string) (bool, bool) {
	if strings.HasPrefix(token, longFlagPrefixConstant) {
		flagName, hasExplicitValue := splitFlagToken(strings.TrimPrefix(token, longFlagPrefixConstant))
		if len(flagName) == 0 {
			return false, false
		}
		return hasExplicitValue, registeredToggleFlags.knowsLongName(flagName)
	}

	if strings.HasPrefix(token, shortFlagPrefixConstant) {
		flagShorthand, hasExplicitValue := splitFlagToken(strings.TrimPrefix(token, shortFlagPrefixConstant))
		if len(flagShorthand) != 1 {
			return false, false
		}
		return hasExplicitValue, registeredToggleFlags.knowsShorthand(flagShorthand)
	}

	return false, false
}

func splitFlagToken(token string) (string, bool) {
	separatorIndex := strings.Index(token, flagValueSeparatorConstant)
	if separatorIndex < 0 {
		return token, false
	}
	return token[:separatorIndex], true
}
