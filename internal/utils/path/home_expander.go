package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const homeShortcutConstant = "~"

// HomeDirectoryProvider resolves the current user's home directory path.
type HomeDirectoryProvider func() (string, error)

// HomeExpander rewrites a leading ~ segment to the user's home directory so
// repository paths from flags and configuration files behave like shell input.
// The home lookup runs once and its result is reused for every expansion.
type HomeExpander struct {
	resolveHomeDirectory func() (string, error)
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(os.UserHomeDir)
}

// NewHomeExpanderWithProvider constructs a HomeExpander using the provided
// lookup. A nil provider falls back to os.UserHomeDir.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{resolveHomeDirectory: sync.OnceValues(provider)}
}

// Expand resolves a leading home shortcut. Inputs without the shortcut, inputs
// naming another user's home, and inputs whose home lookup fails are returned
// unchanged.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}

	homeDirectory, lookupError := expander.resolveHomeDirectory()
	if lookupError != nil || len(homeDirectory) == 0 {
		return candidatePath
	}

	if candidatePath == homeShortcutConstant {
		return homeDirectory
	}

	shortcutPrefixes := []string{
		homeShortcutConstant + "/",
		homeShortcutConstant + string(os.PathSeparator),
	}
	for _, shortcutPrefix := range shortcutPrefixes {
		if remainder, hasShortcut := strings.CutPrefix(candidatePath, shortcutPrefix); hasShortcut {
			return filepath.Join(homeDirectory, remainder)
		}
	}

	return candidatePath
}
