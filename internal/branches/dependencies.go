package branches

import (
	"context"

	"go.uber.org/zap"

	"github.com/temirov/gbs/internal/execshell"
	"github.com/temirov/gbs/internal/gitrepo"
)

// RepositoryService describes the version-control operations branch commands rely on.
type RepositoryService interface {
	CheckIsRepository(executionContext context.Context, repositoryPath string) (bool, error)
	GetCurrentBranch(executionContext context.Context, repositoryPath string) (gitrepo.BranchStatus, error)
	ListBranches(executionContext context.Context, repositoryPath string) ([]gitrepo.BranchListing, error)
	UpdateRemoteTracking(executionContext context.Context, repositoryPath string) error
	DeleteBranch(executionContext context.Context, repositoryPath string, branchName string, force bool) error
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
}

// ResolveRepositoryService returns the provided service or constructs the git-backed default.
func ResolveRepositoryService(existingService RepositoryService, logger *zap.Logger, humanReadableLogging bool) (RepositoryService, error) {
	if existingService != nil {
		return existingService, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	shellExecutor, executorError := execshell.NewShellExecutor(logger, commandRunner, humanReadableLogging)
	if executorError != nil {
		return nil, executorError
	}

	return gitrepo.NewRepositoryManager(shellExecutor)
}
