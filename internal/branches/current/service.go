package current

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gbs/internal/branches"
	"github.com/temirov/gbs/internal/report"
)

const (
	repositoryPathRequiredMessageConstant   = "repository path must be provided"
	repositoryServiceMissingMessageConstant = "repository service not configured"
	branchNameLineTemplateConstant          = "%s\n"
	detachedHeadLineTemplateConstant        = "detached at %s\n"
	repositoryPathLogFieldNameConstant      = "repository_path"
	branchNameLogFieldNameConstant          = "branch_name"
	commitHashLogFieldNameConstant          = "commit_hash"
	statusResolvedLogMessageConstant        = "current branch resolved"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryServiceNotConfigured indicates the repository service dependency was missing.
var ErrRepositoryServiceNotConfigured = errors.New(repositoryServiceMissingMessageConstant)

// StatusDependencies enumerates collaborators required by the status service.
type StatusDependencies struct {
	Logger            *zap.Logger
	RepositoryService branches.RepositoryService
	Output            io.Writer
}

// StatusOptions configure a current-branch query.
type StatusOptions struct {
	RepositoryPath string
}

// StatusResult captures the reported branch state.
type StatusResult struct {
	RepositoryPath string
	BranchName     string
	DetachedHead   bool
	CommitHash     string
}

// StatusService reports the checked-out branch of a repository.
type StatusService struct {
	logger            *zap.Logger
	repositoryService branches.RepositoryService
	outputWriter      io.Writer
}

// NewStatusService constructs a StatusService from the provided dependencies.
func NewStatusService(dependencies StatusDependencies) (*StatusService, error) {
	if dependencies.RepositoryService == nil {
		return nil, ErrRepositoryServiceNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	outputWriter := dependencies.Output
	if outputWriter == nil {
		outputWriter = os.Stdout
	}

	return &StatusService{
		logger:            logger,
		repositoryService: dependencies.RepositoryService,
		outputWriter:      outputWriter,
	}, nil
}

// Run prints the current branch name, or the abbreviated commit hash when the
// repository is in a detached HEAD state.
func (service *StatusService) Run(executionContext context.Context, options StatusOptions) (StatusResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return StatusResult{}, ErrRepositoryPathRequired
	}

	insideRepository, repositoryCheckError := service.repositoryService.CheckIsRepository(executionContext, trimmedRepositoryPath)
	if repositoryCheckError != nil {
		return StatusResult{}, repositoryCheckError
	}
	if !insideRepository {
		return StatusResult{}, report.NewError(report.KindNotRepository, trimmedRepositoryPath)
	}

	branchStatus, statusError := service.repositoryService.GetCurrentBranch(executionContext, trimmedRepositoryPath)
	if statusError != nil {
		return StatusResult{}, statusError
	}

	service.logger.Debug(statusResolvedLogMessageConstant,
		zap.String(repositoryPathLogFieldNameConstant, trimmedRepositoryPath),
		zap.String(branchNameLogFieldNameConstant, branchStatus.BranchName),
		zap.String(commitHashLogFieldNameConstant, branchStatus.CommitHash))

	if branchStatus.DetachedHead {
		fmt.Fprintf(service.outputWriter, detachedHeadLineTemplateConstant, branchStatus.CommitHash)
	} else {
		fmt.Fprintf(service.outputWriter, branchNameLineTemplateConstant, branchStatus.BranchName)
	}

	return StatusResult{
		RepositoryPath: trimmedRepositoryPath,
		BranchName:     branchStatus.BranchName,
		DetachedHead:   branchStatus.DetachedHead,
		CommitHash:     branchStatus.CommitHash,
	}, nil
}
