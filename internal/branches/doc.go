// Package branches provides the interactive branch selector for gbs.
//
// It offers CommandBuilder for the branch-switch Cobra command and
// SelectorService for driving the menu, choice classification, and checkout
// loop through a RepositoryService, which subcommand packages share for
// removal and current-branch reporting.
package branches
