package pathutils

import (
	"path/filepath"
	"strings"
)

const currentDirectoryPathConstant = "."

// RepositoryPathResolver normalizes repository path inputs supplied to branch commands.
type RepositoryPathResolver struct {
	homeExpander *HomeExpander
}

// NewRepositoryPathResolver constructs a RepositoryPathResolver with the operating system home lookup.
func NewRepositoryPathResolver() *RepositoryPathResolver {
	return NewRepositoryPathResolverWithExpander(nil)
}

// NewRepositoryPathResolverWithExpander constructs a RepositoryPathResolver using the provided expander.
func NewRepositoryPathResolverWithExpander(homeExpander *HomeExpander) *RepositoryPathResolver {
	resolvedExpander := homeExpander
	if resolvedExpander == nil {
		resolvedExpander = NewHomeExpander()
	}
	return &RepositoryPathResolver{homeExpander: resolvedExpander}
}

// Resolve trims whitespace, expands the user's home directory, and cleans the path.
// Blank input resolves to the current directory.
func (resolver *RepositoryPathResolver) Resolve(candidatePath string) string {
	trimmedPath := strings.TrimSpace(candidatePath)
	if len(trimmedPath) == 0 {
		return currentDirectoryPathConstant
	}

	return filepath.Clean(resolver.expanderOrDefault().Expand(trimmedPath))
}

func (resolver *RepositoryPathResolver) expanderOrDefault() *HomeExpander {
	if resolver == nil || resolver.homeExpander == nil {
		return NewHomeExpander()
	}
	return resolver.homeExpander
}
