package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/gbs/internal/execshell"
)

const (
	executorMissingMessageConstant           = "git executor not configured"
	branchNameRequiredMessageConstant        = "branch name must be provided"
	gitRevParseSubcommandConstant            = "rev-parse"
	gitWorkTreeProbeFlagConstant             = "--is-inside-work-tree"
	gitAbbrevRefFlagConstant                 = "--abbrev-ref"
	gitShortFlagConstant                     = "--short"
	gitHeadReferenceConstant                 = "HEAD"
	gitBranchSubcommandConstant              = "branch"
	gitBranchListFlagConstant                = "--list"
	gitBranchAllFlagConstant                 = "--all"
	gitBranchDeleteFlagConstant              = "--delete"
	gitBranchForceFlagConstant               = "--force"
	gitCheckoutSubcommandConstant            = "checkout"
	gitRemoteSubcommandConstant              = "remote"
	gitRemoteUpdateSubcommandConstant        = "update"
	gitRemotePruneFlagConstant               = "--prune"
	gitTerminalPromptEnvironmentNameConstant = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptEnvironmentDisableValue = "0"
	workTreeProbeAffirmativeOutputConstant   = "true"
	currentBranchMarkerConstant              = "*"
	branchAliasSeparatorConstant             = " -> "
	branchAnnotationPrefixConstant           = "("
	outputLineSeparatorConstant              = "\n"
)

// ErrExecutorNotConfigured indicates the git executor dependency was missing.
var ErrExecutorNotConfigured = errors.New(executorMissingMessageConstant)

// ErrBranchNameRequired indicates a branch operation received an empty name.
var ErrBranchNameRequired = errors.New(branchNameRequiredMessageConstant)

// GitExecutor exposes the subset of shell execution used by the repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// BranchStatus describes the checked-out state of a repository. Either
// BranchName carries the active branch or DetachedHead is set together with
// the abbreviated CommitHash.
type BranchStatus struct {
	BranchName   string
	DetachedHead bool
	CommitHash   string
}

// BranchListing describes one branch reference reported by the repository.
type BranchListing struct {
	Name      string
	IsCurrent bool
}

// RepositoryManager performs repository-level git operations through a GitExecutor.
type RepositoryManager struct {
	executor GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager backed by the provided executor.
func NewRepositoryManager(executor GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CheckIsRepository reports whether the path sits inside a git work tree. A
// probe that exits non-zero reports false without surfacing an error.
func (manager *RepositoryManager) CheckIsRepository(executionContext context.Context, repositoryPath string) (bool, error) {
	probeResult, probeError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitWorkTreeProbeFlagConstant},
		WorkingDirectory: strings.TrimSpace(repositoryPath),
	})
	if probeError != nil {
		var failedError execshell.CommandFailedError
		if errors.As(probeError, &failedError) {
			return false, nil
		}
		return false, probeError
	}
	return strings.TrimSpace(probeResult.StandardOutput) == workTreeProbeAffirmativeOutputConstant, nil
}

// GetCurrentBranch resolves the checked-out branch name, falling back to the
// abbreviated commit hash when the repository is in a detached HEAD state.
func (manager *RepositoryManager) GetCurrentBranch(executionContext context.Context, repositoryPath string) (BranchStatus, error) {
	trimmedRepositoryPath := strings.TrimSpace(repositoryPath)

	referenceResult, referenceError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitAbbrevRefFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: trimmedRepositoryPath,
	})
	if referenceError != nil {
		return BranchStatus{}, referenceError
	}

	branchReference := strings.TrimSpace(referenceResult.StandardOutput)
	if len(branchReference) > 0 && !strings.EqualFold(branchReference, gitHeadReferenceConstant) {
		return BranchStatus{BranchName: branchReference}, nil
	}

	commitResult, commitError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShortFlagConstant, gitHeadReferenceConstant},
		WorkingDirectory: trimmedRepositoryPath,
	})
	if commitError != nil {
		return BranchStatus{}, commitError
	}

	return BranchStatus{DetachedHead: true, CommitHash: strings.TrimSpace(commitResult.StandardOutput)}, nil
}

// ListBranches reports local and remote branch references. Alias lines that
// point at another reference and annotation lines such as the detached HEAD
// entry are omitted because they do not name checkoutable branches.
func (manager *RepositoryManager) ListBranches(executionContext context.Context, repositoryPath string) ([]BranchListing, error) {
	listResult, listError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitBranchSubcommandConstant, gitBranchListFlagConstant, gitBranchAllFlagConstant},
		WorkingDirectory: strings.TrimSpace(repositoryPath),
	})
	if listError != nil {
		return nil, listError
	}

	outputLines := strings.Split(listResult.StandardOutput, outputLineSeparatorConstant)
	branchListings := make([]BranchListing, 0, len(outputLines))
	for _, outputLine := range outputLines {
		branchListing, isBranchLine := parseBranchLine(outputLine)
		if !isBranchLine {
			continue
		}
		branchListings = append(branchListings, branchListing)
	}

	return branchListings, nil
}

// UpdateRemoteTracking refreshes remote tracking references and prunes stale
// ones. Credential prompts are disabled so unreachable remotes fail instead of
// blocking on terminal input.
func (manager *RepositoryManager) UpdateRemoteTracking(executionContext context.Context, repositoryPath string) error {
	_, updateError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitRemoteSubcommandConstant, gitRemoteUpdateSubcommandConstant, gitRemotePruneFlagConstant},
		WorkingDirectory:     strings.TrimSpace(repositoryPath),
		EnvironmentVariables: terminalPromptDisabledEnvironment(),
	})
	return updateError
}

// DeleteBranch removes a local branch. The force flag switches the deletion to
// git's forced variant for branches that are not fully merged.
func (manager *RepositoryManager) DeleteBranch(executionContext context.Context, repositoryPath string, branchName string, forceDelete bool) error {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return ErrBranchNameRequired
	}

	deletionArguments := []string{gitBranchSubcommandConstant, gitBranchDeleteFlagConstant}
	if forceDelete {
		deletionArguments = append(deletionArguments, gitBranchForceFlagConstant)
	}
	deletionArguments = append(deletionArguments, trimmedBranchName)

	_, deletionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        deletionArguments,
		WorkingDirectory: strings.TrimSpace(repositoryPath),
	})
	return deletionError
}

// CheckoutBranch switches the working tree to the named branch.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	trimmedBranchName := strings.TrimSpace(branchName)
	if len(trimmedBranchName) == 0 {
		return ErrBranchNameRequired
	}

	_, checkoutError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitCheckoutSubcommandConstant, trimmedBranchName},
		WorkingDirectory:     strings.TrimSpace(repositoryPath),
		EnvironmentVariables: terminalPromptDisabledEnvironment(),
	})
	return checkoutError
}

// parseBranchLine extracts a branch listing from one line of git branch
// output. The second return value reports whether the line named a branch.
func parseBranchLine(outputLine string) (BranchListing, bool) {
	trimmedLine := strings.TrimSpace(outputLine)
	if len(trimmedLine) == 0 {
		return BranchListing{}, false
	}

	isCurrentBranch := strings.HasPrefix(trimmedLine, currentBranchMarkerConstant)
	if isCurrentBranch {
		trimmedLine = strings.TrimSpace(strings.TrimPrefix(trimmedLine, currentBranchMarkerConstant))
	}

	if len(trimmedLine) == 0 {
		return BranchListing{}, false
	}
	if strings.Contains(trimmedLine, branchAliasSeparatorConstant) {
		return BranchListing{}, false
	}
	if strings.HasPrefix(trimmedLine, branchAnnotationPrefixConstant) {
		return BranchListing{}, false
	}

	return BranchListing{Name: trimmedLine, IsCurrent: isCurrentBranch}, true
}

func terminalPromptDisabledEnvironment() map[string]string {
	return map[string]string{gitTerminalPromptEnvironmentNameConstant: gitTerminalPromptEnvironmentDisableValue}
}
