// Package gitrepo contains helpers for interrogating and manipulating Git repositories.
//
// It exposes RepositoryManager for inspecting the checked-out branch, listing
// references, refreshing remote tracking state, and switching or deleting
// branches through structured git invocations.
package gitrepo
