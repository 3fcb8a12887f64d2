package cli

import _ "embed"

// default_config.yaml is the baseline every gbs invocation starts from; the
// configuration loader merges it beneath any config file and environment
// overrides so the branch tools always see a complete settings tree.
//
//go:embed default_config.yaml
var embeddedDefaultConfigurationContent []byte

// EmbeddedDefaultConfiguration returns a copy of the embedded gbs defaults
// together with their configuration type identifier. Callers receive a copy so
// the shipped defaults cannot be mutated between invocations.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	defaultsCopy := make([]byte, len(embeddedDefaultConfigurationContent))
	copy(defaultsCopy, embeddedDefaultConfigurationContent)
	return defaultsCopy, configurationTypeConstant
}
