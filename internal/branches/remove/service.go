package remove

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gbs/internal/branches"
	"github.com/temirov/gbs/internal/report"
	"github.com/temirov/gbs/internal/ui"
)

const (
	repositoryPathRequiredMessageConstant       = "repository path must be provided"
	repositoryServiceMissingMessageConstant     = "repository service not configured"
	selectionInputMissingMessageConstant        = "selection input not configured"
	removalMenuPromptConstant                   = "Select a branch to remove:"
	quitMenuEntryLabelConstant                  = "Quit"
	deletionConfirmationPromptTemplateConstant  = "Delete branch %s?"
	deletedMessageTemplateConstant              = "DELETED: %s\n"
	plannedDeletionMessageTemplateConstant      = "WOULD DELETE: %s\n"
	keptMessageTemplateConstant                 = "KEPT: %s\n"
	unrecognizedResponseMessageTemplateConstant = "KEPT: %s (unrecognized response)\n"
	remoteListingPrefixConstant                 = "remotes/"
	selectionReadFailureTemplateConstant        = "failed to read selection: %w"
	confirmationReadFailureTemplateConstant     = "failed to read confirmation: %w"
	repositoryPathLogFieldNameConstant          = "repository_path"
	removedBranchLogFieldNameConstant           = "branch_name"
	deletedBranchesLogFieldNameConstant         = "deleted_branches"
	branchRemovedLogMessageConstant             = "branch removed"
	removalQuitLogMessageConstant               = "branch removal ended"
	removalNotRecognizedLogMessageConstant      = "branch selection not recognized"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryServiceNotConfigured indicates the repository service dependency was missing.
var ErrRepositoryServiceNotConfigured = errors.New(repositoryServiceMissingMessageConstant)

// ErrSelectionInputNotConfigured indicates the service was constructed without an input stream.
var ErrSelectionInputNotConfigured = errors.New(selectionInputMissingMessageConstant)

// RemovalDependencies enumerates collaborators required by the removal service.
// A nil ConfirmationReader answers confirmation prompts from the selection
// input, so one piped stream can drive an entire session.
type RemovalDependencies struct {
	Logger             *zap.Logger
	RepositoryService  branches.RepositoryService
	Input              io.Reader
	ConfirmationReader ui.CharacterReader
	Output             io.Writer
	Errors             io.Writer
}

// RemovalOptions configure a branch removal session.
type RemovalOptions struct {
	RepositoryPath string
	Force          bool
	AssumeYes      bool
	DryRun         bool
}

// RemovalResult captures the outcome of a removal session.
type RemovalResult struct {
	RepositoryPath  string
	DeletedBranches []string
}

// RemovalService walks the user through deleting local branches.
type RemovalService struct {
	logger               *zap.Logger
	repositoryService    branches.RepositoryService
	inputReader          *bufio.Reader
	menuRenderer         *ui.MenuRenderer
	confirmationPrompter *ui.ConfirmationPrompter
	outputWriter         io.Writer
	errorPrinter         *report.Printer
}

// NewRemovalService constructs a RemovalService from the provided dependencies.
func NewRemovalService(dependencies RemovalDependencies) (*RemovalService, error) {
	if dependencies.RepositoryService == nil {
		return nil, ErrRepositoryServiceNotConfigured
	}
	if dependencies.Input == nil {
		return nil, ErrSelectionInputNotConfigured
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	outputWriter := dependencies.Output
	if outputWriter == nil {
		outputWriter = os.Stdout
	}
	errorWriter := dependencies.Errors
	if errorWriter == nil {
		errorWriter = os.Stderr
	}

	inputReader := bufio.NewReader(dependencies.Input)

	confirmationReader := dependencies.ConfirmationReader
	if confirmationReader == nil {
		confirmationReader = ui.NewLineCharacterReader(inputReader)
	}

	confirmationPrompter, prompterError := ui.NewConfirmationPrompter(outputWriter, confirmationReader)
	if prompterError != nil {
		return nil, prompterError
	}

	return &RemovalService{
		logger:               logger,
		repositoryService:    dependencies.RepositoryService,
		inputReader:          inputReader,
		menuRenderer:         ui.NewMenuRenderer(outputWriter),
		confirmationPrompter: confirmationPrompter,
		outputWriter:         outputWriter,
		errorPrinter:         report.NewPrinter(errorWriter),
	}, nil
}

// Run drives the removal loop until the user quits or input fails. Each valid
// selection is confirmed before deletion unless the options assume yes, and
// the menu is rebuilt after every pass because deletions change the listing.
func (service *RemovalService) Run(executionContext context.Context, options RemovalOptions) (RemovalResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return RemovalResult{}, ErrRepositoryPathRequired
	}

	insideRepository, repositoryCheckError := service.repositoryService.CheckIsRepository(executionContext, trimmedRepositoryPath)
	if repositoryCheckError != nil {
		return RemovalResult{}, repositoryCheckError
	}
	if !insideRepository {
		return RemovalResult{}, report.NewError(report.KindNotRepository, trimmedRepositoryPath)
	}

	sessionResult := RemovalResult{RepositoryPath: trimmedRepositoryPath}
	for {
		branchNames, listError := service.listRemovableBranches(executionContext, trimmedRepositoryPath)
		if listError != nil {
			return RemovalResult{}, listError
		}

		renderError := service.menuRenderer.Render(buildRemovalMenu(removalMenuPromptConstant, branchNames))
		if renderError != nil {
			return RemovalResult{}, renderError
		}

		selectionLine, readError := service.readSelectionLine()
		if readError != nil {
			return RemovalResult{}, fmt.Errorf(selectionReadFailureTemplateConstant, readError)
		}

		selection := ui.ClassifySelection(selectionLine, len(branchNames))
		switch selection.Kind {
		case ui.SelectionKindQuit:
			service.logger.Debug(removalQuitLogMessageConstant,
				zap.String(repositoryPathLogFieldNameConstant, trimmedRepositoryPath),
				zap.Strings(deletedBranchesLogFieldNameConstant, sessionResult.DeletedBranches))
			return sessionResult, nil
		case ui.SelectionKindItem:
			selectedBranch := branchNames[selection.ItemIndex-1]
			branchDeleted, removalError := service.removeBranch(executionContext, trimmedRepositoryPath, selectedBranch, options)
			if removalError != nil {
				return RemovalResult{}, removalError
			}
			if branchDeleted {
				sessionResult.DeletedBranches = append(sessionResult.DeletedBranches, selectedBranch)
			}
		default:
			service.logger.Debug(removalNotRecognizedLogMessageConstant,
				zap.String(repositoryPathLogFieldNameConstant, trimmedRepositoryPath))
			service.errorPrinter.PrintKind(report.KindOptionNotRecognized, selectionLine)
		}
	}
}

// removeBranch confirms and performs one deletion. The returned boolean is
// true only when the branch was actually deleted, so dry runs and declined
// confirmations leave the session result untouched.
func (service *RemovalService) removeBranch(executionContext context.Context, repositoryPath string, branchName string, options RemovalOptions) (bool, error) {
	if !options.AssumeYes {
		confirmationAnswer, confirmationError := service.confirmationPrompter.Confirm(fmt.Sprintf(deletionConfirmationPromptTemplateConstant, branchName))
		if confirmationError != nil {
			return false, fmt.Errorf(confirmationReadFailureTemplateConstant, confirmationError)
		}
		switch confirmationAnswer {
		case ui.ConfirmationAnswerNegative:
			fmt.Fprintf(service.outputWriter, keptMessageTemplateConstant, branchName)
			return false, nil
		case ui.ConfirmationAnswerUnrecognized:
			fmt.Fprintf(service.outputWriter, unrecognizedResponseMessageTemplateConstant, branchName)
			return false, nil
		}
	}

	if options.DryRun {
		fmt.Fprintf(service.outputWriter, plannedDeletionMessageTemplateConstant, branchName)
		return false, nil
	}

	deletionError := service.repositoryService.DeleteBranch(executionContext, repositoryPath, branchName, options.Force)
	if deletionError != nil {
		return false, deletionError
	}

	service.logger.Debug(branchRemovedLogMessageConstant,
		zap.String(repositoryPathLogFieldNameConstant, repositoryPath),
		zap.String(removedBranchLogFieldNameConstant, branchName))
	fmt.Fprintf(service.outputWriter, deletedMessageTemplateConstant, branchName)
	return true, nil
}

// listRemovableBranches filters the repository listing down to deletable
// targets: remote tracking entries and the checked-out branch are excluded.
func (service *RemovalService) listRemovableBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	branchListings, listError := service.repositoryService.ListBranches(executionContext, repositoryPath)
	if listError != nil {
		return nil, listError
	}

	branchNames := make([]string, 0, len(branchListings))
	for _, branchListing := range branchListings {
		if branchListing.IsCurrent {
			continue
		}
		if strings.HasPrefix(branchListing.Name, remoteListingPrefixConstant) {
			continue
		}
		branchNames = append(branchNames, branchListing.Name)
	}
	return branchNames, nil
}

// readSelectionLine returns one trimmed input line. A final line without a
// trailing newline is still accepted; a bare end of input aborts the session.
func (service *RemovalService) readSelectionLine() (string, error) {
	lineText, readError := service.inputReader.ReadString('\n')
	trimmedLine := strings.TrimSpace(lineText)
	if readError != nil {
		if errors.Is(readError, io.EOF) && len(trimmedLine) > 0 {
			return trimmedLine, nil
		}
		return "", readError
	}
	return trimmedLine, nil
}

func buildRemovalMenu(menuPrompt string, branchNames []string) ui.Menu {
	menuItems := make([]string, 0, len(branchNames)+1)
	menuItems = append(menuItems, branchNames...)
	menuItems = append(menuItems, quitMenuEntryLabelConstant)
	return ui.Menu{Prompt: menuPrompt, Items: menuItems}
}
