package branches

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/gbs/internal/report"
	"github.com/temirov/gbs/internal/ui"
)

const (
	repositoryPathRequiredMessageConstant    = "repository path must be provided"
	repositoryServiceMissingMessageConstant  = "repository service not configured"
	selectionInputMissingMessageConstant     = "selection input not configured"
	selectorMenuPromptConstant               = "Select a branch to switch to:"
	quitMenuEntryLabelConstant               = "Quit"
	checkoutConfirmationTemplateConstant     = "SWITCHED: %s -> %s\n"
	selectionReadFailureTemplateConstant     = "failed to read selection: %w"
	remoteRefreshWarningMessageConstant      = "remote tracking refresh failed"
	repositoryPathLogFieldNameConstant       = "repository_path"
	selectedBranchLogFieldNameConstant       = "branch_name"
	selectionQuitLogMessageConstant          = "branch selection ended without checkout"
	selectionCheckoutLogMessageConstant      = "branch selected for checkout"
	selectionNotRecognizedLogMessageConstant = "branch selection not recognized"
)

// ErrRepositoryPathRequired indicates the repository path option was empty.
var ErrRepositoryPathRequired = errors.New(repositoryPathRequiredMessageConstant)

// ErrRepositoryServiceNotConfigured indicates the repository service dependency was missing.
var ErrRepositoryServiceNotConfigured = errors.New(repositoryServiceMissingMessageConstant)

// ErrSelectionInputNotConfigured indicates the selector was constructed without an input stream.
var ErrSelectionInputNotConfigured = errors.New(selectionInputMissingMessageConstant)

// SelectorDependencies enumerates collaborators required by the selector.
type SelectorDependencies struct {
	Logger            *zap.Logger
	RepositoryService RepositoryService
	Input             io.Reader
	Output            io.Writer
	Errors            io.Writer
}

// SelectionOptions configure an interactive branch selection.
type SelectionOptions struct {
	RepositoryPath string
	RefreshRemotes bool
}

// SelectionResult captures the outcome of an interactive selection.
type SelectionResult struct {
	RepositoryPath string
	BranchName     string
	QuitSelected   bool
}

// SelectorService walks the user through choosing and checking out a branch.
type SelectorService struct {
	logger            *zap.Logger
	repositoryService RepositoryService
	inputReader       *bufio.Reader
	menuRenderer      *ui.MenuRenderer
	outputWriter      io.Writer
	errorPrinter      *report.Printer
}

// NewSelectorService constructs a SelectorService from the provided dependencies.
func NewSelectorService(dependencies SelectorDependencies) (*SelectorService, error) {
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

	return &SelectorService{
		logger:            logger,
		repositoryService: dependencies.RepositoryService,
		inputReader:       bufio.NewReader(dependencies.Input),
		menuRenderer:      ui.NewMenuRenderer(outputWriter),
		outputWriter:      outputWriter,
		errorPrinter:      report.NewPrinter(errorWriter),
	}, nil
}

// Run drives the selection loop until the user checks out a branch, quits, or input fails.
// Invalid selections are reported and retried indefinitely; the remote refresh runs at most once.
func (service *SelectorService) Run(executionContext context.Context, options SelectionOptions) (SelectionResult, error) {
	trimmedRepositoryPath := strings.TrimSpace(options.RepositoryPath)
	if len(trimmedRepositoryPath) == 0 {
		return SelectionResult{}, ErrRepositoryPathRequired
	}

	insideRepository, repositoryCheckError := service.repositoryService.CheckIsRepository(executionContext, trimmedRepositoryPath)
	if repositoryCheckError != nil {
		return SelectionResult{}, repositoryCheckError
	}
	if !insideRepository {
		return SelectionResult{}, report.NewError(report.KindNotRepository, trimmedRepositoryPath)
	}

	refreshRemotes := options.RefreshRemotes
	for {
		if refreshRemotes {
			refreshError := service.repositoryService.UpdateRemoteTracking(executionContext, trimmedRepositoryPath)
			if refreshError != nil {
				service.logger.Warn(remoteRefreshWarningMessageConstant,
					zap.String(repositoryPathLogFieldNameConstant, trimmedRepositoryPath),
					zap.Error(refreshError))
			}
			refreshRemotes = false
		}

		branchNames, listError := service.listSelectableBranches(executionContext, trimmedRepositoryPath)
		if listError != nil {
			return SelectionResult{}, listError
		}

		renderError := service.menuRenderer.Render(buildSelectionMenu(selectorMenuPromptConstant, branchNames))
		if renderError != nil {
			return SelectionResult{}, renderError
		}

		selectionLine, readError := service.readSelectionLine()
		if readError != nil {
			return SelectionResult{}, fmt.Errorf(selectionReadFailureTemplateConstant, readError)
		}

		selection := ui.ClassifySelection(selectionLine, len(branchNames))
		switch selection.Kind {
		case ui.SelectionKindQuit:
			service.logger.Debug(selectionQuitLogMessageConstant,
				zap.String(repositoryPathLogFieldNameConstant, trimmedRepositoryPath))
			return SelectionResult{RepositoryPath: trimmedRepositoryPath, QuitSelected: true}, nil
		case ui.SelectionKindItem:
			selectedBranch := branchNames[selection.ItemIndex-1]
			service.logger.Debug(selectionCheckoutLogMessageConstant,
				zap.String(repositoryPathLogFieldNameConstant, trimmedRepositoryPath),
				zap.String(selectedBranchLogFieldNameConstant, selectedBranch))

			checkoutError := service.repositoryService.CheckoutBranch(executionContext, trimmedRepositoryPath, selectedBranch)
			if checkoutError != nil {
				return SelectionResult{}, checkoutError
			}

			fmt.Fprintf(service.outputWriter, checkoutConfirmationTemplateConstant, trimmedRepositoryPath, selectedBranch)
			return SelectionResult{RepositoryPath: trimmedRepositoryPath, BranchName: selectedBranch}, nil
		default:
			service.logger.Debug(selectionNotRecognizedLogMessageConstant,
				zap.String(repositoryPathLogFieldNameConstant, trimmedRepositoryPath))
			service.errorPrinter.PrintKind(report.KindOptionNotRecognized, selectionLine)
		}
	}
}

func (service *SelectorService) listSelectableBranches(executionContext context.Context, repositoryPath string) ([]string, error) {
	branchListings, listError := service.repositoryService.ListBranches(executionContext, repositoryPath)
	if listError != nil {
		return nil, listError
	}

	branchNames := make([]string, 0, len(branchListings))
	for _, branchListing := range branchListings {
		if branchListing.IsCurrent {
			continue
		}
		branchNames = append(branchNames, branchListing.Name)
	}
	return branchNames, nil
}

// readSelectionLine returns one trimmed input line. A final line without a trailing
// newline is still accepted; a bare end of input aborts the selection.
func (service *SelectorService) readSelectionLine() (string, error) {
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

func buildSelectionMenu(menuPrompt string, branchNames []string) ui.Menu {
	menuItems := make([]string, 0, len(branchNames)+1)
	menuItems = append(menuItems, branchNames...)
	menuItems = append(menuItems, quitMenuEntryLabelConstant)
	return ui.Menu{Prompt: menuPrompt, Items: menuItems}
}
