package remove_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gbs/internal/branches"
	"github.com/temirov/gbs/internal/branches/remove"
	"github.com/temirov/gbs/internal/gitrepo"
	"github.com/temirov/gbs/internal/report"
)

const (
	removalRepositoryPathConstant   = "/tmp/workspace/project"
	fullRemovalMenuConstant         = "Select a branch to remove:\n1) feature/login\n2) bugfix/crash\n3) Quit\n"
	reducedRemovalMenuConstant      = "Select a branch to remove:\n1) bugfix/crash\n2) Quit\n"
	removalConfirmationLineConstant = "Delete branch feature/login? [Y/N] \n"
)

type deletionInvocation struct {
	repositoryPath string
	branchName     string
	forceDelete    bool
}

type fakeRepositoryService struct {
	insideRepository bool
	branchListings   []gitrepo.BranchListing
	listError        error
	deletionError    error

	repositoryCheckPaths []string
	listCallCount        int
	deletionCalls        []deletionInvocation
}

func (service *fakeRepositoryService) CheckIsRepository(_ context.Context, repositoryPath string) (bool, error) {
	service.repositoryCheckPaths = append(service.repositoryCheckPaths, repositoryPath)
	return service.insideRepository, nil
}

func (service *fakeRepositoryService) GetCurrentBranch(context.Context, string) (gitrepo.BranchStatus, error) {
	return gitrepo.BranchStatus{}, nil
}

func (service *fakeRepositoryService) ListBranches(context.Context, string) ([]gitrepo.BranchListing, error) {
	service.listCallCount++
	if service.listError != nil {
		return nil, service.listError
	}
	return service.branchListings, nil
}

func (service *fakeRepositoryService) UpdateRemoteTracking(context.Context, string) error {
	return nil
}

func (service *fakeRepositoryService) DeleteBranch(_ context.Context, repositoryPath string, branchName string, forceDelete bool) error {
	service.deletionCalls = append(service.deletionCalls, deletionInvocation{repositoryPath: repositoryPath, branchName: branchName, forceDelete: forceDelete})
	if service.deletionError != nil {
		return service.deletionError
	}

	remainingListings := make([]gitrepo.BranchListing, 0, len(service.branchListings))
	for _, branchListing := range service.branchListings {
		if branchListing.Name == branchName {
			continue
		}
		remainingListings = append(remainingListings, branchListing)
	}
	service.branchListings = remainingListings
	return nil
}

func (service *fakeRepositoryService) CheckoutBranch(context.Context, string, string) error {
	return nil
}

type scriptedCharacterReader struct {
	characters []rune
	readError  error
}

func (reader *scriptedCharacterReader) ReadCharacter() (rune, error) {
	if len(reader.characters) == 0 {
		if reader.readError != nil {
			return 0, reader.readError
		}
		return 0, io.EOF
	}
	nextCharacter := reader.characters[0]
	reader.characters = reader.characters[1:]
	return nextCharacter, nil
}

func removalBranchListings() []gitrepo.BranchListing {
	return []gitrepo.BranchListing{
		{Name: "main", IsCurrent: true},
		{Name: "feature/login"},
		{Name: "bugfix/crash"},
		{Name: "remotes/origin/main"},
		{Name: "remotes/origin/feature/login"},
	}
}

func buildRemovalService(testInstance *testing.T, repositoryService branches.RepositoryService, selectionInput string, confirmationCharacters []rune) (*remove.RemovalService, *bytes.Buffer, *bytes.Buffer) {
	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}

	removalService, creationError := remove.NewRemovalService(remove.RemovalDependencies{
		RepositoryService:  repositoryService,
		Input:              strings.NewReader(selectionInput),
		ConfirmationReader: &scriptedCharacterReader{characters: confirmationCharacters},
		Output:             outputBuffer,
		Errors:             errorBuffer,
	})
	require.NoError(testInstance, creationError)

	return removalService, outputBuffer, errorBuffer
}

func TestNewRemovalServiceValidatesDependencies(testInstance *testing.T) {
	testCases := []struct {
		name          string
		dependencies  remove.RemovalDependencies
		expectedError error
	}{
		{
			name: "missing_repository_service",
			dependencies: remove.RemovalDependencies{
				Input:              strings.NewReader(""),
				ConfirmationReader: &scriptedCharacterReader{},
			},
			expectedError: remove.ErrRepositoryServiceNotConfigured,
		},
		{
			name: "missing_input",
			dependencies: remove.RemovalDependencies{
				RepositoryService:  &fakeRepositoryService{},
				ConfirmationReader: &scriptedCharacterReader{},
			},
			expectedError: remove.ErrSelectionInputNotConfigured,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			removalService, creationError := remove.NewRemovalService(testCase.dependencies)
			require.Nil(subtestInstance, removalService)
			require.ErrorIs(subtestInstance, creationError, testCase.expectedError)
		})
	}
}

func TestRemovalRunDeletesConfirmedBranch(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: true, branchListings: removalBranchListings()}
	removalService, outputBuffer, errorBuffer := buildRemovalService(testInstance, repositoryService, "1\nq\n", []rune{'y'})

	removalResult, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: removalRepositoryPathConstant})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, []string{"feature/login"}, removalResult.DeletedBranches)
	require.Equal(testInstance, []deletionInvocation{{repositoryPath: removalRepositoryPathConstant, branchName: "feature/login", forceDelete: false}}, repositoryService.deletionCalls)

	expectedOutput := fullRemovalMenuConstant +
		removalConfirmationLineConstant +
		"DELETED: feature/login\n" +
		reducedRemovalMenuConstant
	require.Equal(testInstance, expectedOutput, outputBuffer.String())
	require.Empty(testInstance, errorBuffer.String())
}

func TestRemovalRunReadsConfirmationsFromSelectionStream(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: true, branchListings: removalBranchListings()}
	outputBuffer := &bytes.Buffer{}

	removalService, creationError := remove.NewRemovalService(remove.RemovalDependencies{
		RepositoryService: repositoryService,
		Input:             strings.NewReader("1\ny\nq\n"),
		Output:            outputBuffer,
	})
	require.NoError(testInstance, creationError)

	removalResult, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: removalRepositoryPathConstant})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, []string{"feature/login"}, removalResult.DeletedBranches)

	expectedOutput := fullRemovalMenuConstant +
		removalConfirmationLineConstant +
		"DELETED: feature/login\n" +
		reducedRemovalMenuConstant
	require.Equal(testInstance, expectedOutput, outputBuffer.String())
}

func TestRemovalRunKeepsDeclinedBranch(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: true, branchListings: removalBranchListings()}
	removalService, outputBuffer, _ := buildRemovalService(testInstance, repositoryService, "1\nq\n", []rune{'n'})

	removalResult, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: removalRepositoryPathConstant})

	require.NoError(testInstance, runError)
	require.Empty(testInstance, removalResult.DeletedBranches)
	require.Empty(testInstance, repositoryService.deletionCalls)
	require.Contains(testInstance, outputBuffer.String(), "KEPT: feature/login\n")
	require.NotContains(testInstance, outputBuffer.String(), "DELETED:")
}

func TestRemovalRunKeepsBranchOnUnrecognizedResponse(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: true, branchListings: removalBranchListings()}
	removalService, outputBuffer, _ := buildRemovalService(testInstance, repositoryService, "1\nq\n", []rune{'x'})

	removalResult, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: removalRepositoryPathConstant})

	require.NoError(testInstance, runError)
	require.Empty(testInstance, removalResult.DeletedBranches)
	require.Empty(testInstance, repositoryService.deletionCalls)
	require.Contains(testInstance, outputBuffer.String(), "KEPT: feature/login (unrecognized response)\n")
}

func TestRemovalRunAssumeYesSkipsConfirmation(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: true, branchListings: removalBranchListings()}
	removalService, outputBuffer, _ := buildRemovalService(testInstance, repositoryService, "1\nq\n", nil)

	removalResult, runError := removalService.Run(context.Background(), remove.RemovalOptions{
		RepositoryPath: removalRepositoryPathConstant,
		AssumeYes:      true,
	})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, []string{"feature/login"}, removalResult.DeletedBranches)
	require.NotContains(testInstance, outputBuffer.String(), "[Y/N]")
	require.Contains(testInstance, outputBuffer.String(), "DELETED: feature/login\n")
}

func TestRemovalRunDryRunPrintsPlannedDeletion(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: true, branchListings: removalBranchListings()}
	removalService, outputBuffer, _ := buildRemovalService(testInstance, repositoryService, "1\nq\n", []rune{'y'})

	removalResult, runError := removalService.Run(context.Background(), remove.RemovalOptions{
		RepositoryPath: removalRepositoryPathConstant,
		DryRun:         true,
	})

	require.NoError(testInstance, runError)
	require.Empty(testInstance, removalResult.DeletedBranches)
	require.Empty(testInstance, repositoryService.deletionCalls)
	require.Contains(testInstance, outputBuffer.String(), "WOULD DELETE: feature/login\n")
	require.NotContains(testInstance, outputBuffer.String(), "DELETED: feature/login\n")
}

func TestRemovalRunForcesDeletionWhenRequested(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: true, branchListings: removalBranchListings()}
	removalService, _, _ := buildRemovalService(testInstance, repositoryService, "2\nq\n", nil)

	removalResult, runError := removalService.Run(context.Background(), remove.RemovalOptions{
		RepositoryPath: removalRepositoryPathConstant,
		Force:          true,
		AssumeYes:      true,
	})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, []string{"bugfix/crash"}, removalResult.DeletedBranches)
	require.Equal(testInstance, []deletionInvocation{{repositoryPath: removalRepositoryPathConstant, branchName: "bugfix/crash", forceDelete: true}}, repositoryService.deletionCalls)
}

func TestRemovalRunOffersOnlyQuitWithoutDeletableBranches(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{
		insideRepository: true,
		branchListings: []gitrepo.BranchListing{
			{Name: "main", IsCurrent: true},
			{Name: "remotes/origin/main"},
		},
	}
	removalService, outputBuffer, _ := buildRemovalService(testInstance, repositoryService, "1\n", nil)

	removalResult, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: removalRepositoryPathConstant})

	require.NoError(testInstance, runError)
	require.Empty(testInstance, removalResult.DeletedBranches)
	require.Equal(testInstance, "Select a branch to remove:\n1) Quit\n", outputBuffer.String())
}

func TestRemovalRunRetriesInvalidSelections(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: true, branchListings: removalBranchListings()}
	removalService, outputBuffer, errorBuffer := buildRemovalService(testInstance, repositoryService, "9\nq\n", nil)

	_, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: removalRepositoryPathConstant})

	require.NoError(testInstance, runError)
	require.Equal(testInstance, 2, repositoryService.listCallCount)
	require.Equal(testInstance, 2, strings.Count(outputBuffer.String(), "Select a branch to remove:"))
	require.Equal(testInstance, "option not recognized: 9\n", errorBuffer.String())
}

func TestRemovalRunReportsMissingRepository(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: false}
	removalService, _, _ := buildRemovalService(testInstance, repositoryService, "1\n", nil)

	_, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: removalRepositoryPathConstant})

	require.Error(testInstance, runError)
	reportedError := &report.Error{}
	require.ErrorAs(testInstance, runError, &reportedError)
	require.Equal(testInstance, report.KindNotRepository, reportedError.Kind())
	require.Zero(testInstance, repositoryService.listCallCount)
}

func TestRemovalRunRequiresRepositoryPath(testInstance *testing.T) {
	removalService, _, _ := buildRemovalService(testInstance, &fakeRepositoryService{insideRepository: true}, "1\n", nil)

	_, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: " "})

	require.ErrorIs(testInstance, runError, remove.ErrRepositoryPathRequired)
}

func TestRemovalRunAbortsWhenConfirmationReadFails(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: true, branchListings: removalBranchListings()}
	outputBuffer := &bytes.Buffer{}

	removalService, creationError := remove.NewRemovalService(remove.RemovalDependencies{
		RepositoryService:  repositoryService,
		Input:              strings.NewReader("1\n"),
		ConfirmationReader: &scriptedCharacterReader{readError: errors.New("terminal closed")},
		Output:             outputBuffer,
	})
	require.NoError(testInstance, creationError)

	_, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: removalRepositoryPathConstant})

	require.ErrorContains(testInstance, runError, "failed to read confirmation")
	require.Empty(testInstance, repositoryService.deletionCalls)
}

func TestRemovalRunSurfacesDeletionFailure(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{
		insideRepository: true,
		branchListings:   removalBranchListings(),
		deletionError:    errors.New("branch is not fully merged"),
	}
	removalService, _, _ := buildRemovalService(testInstance, repositoryService, "1\n", []rune{'y'})

	_, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: removalRepositoryPathConstant})

	require.ErrorContains(testInstance, runError, "not fully merged")
}

func TestRemovalRunAbortsWhenInputEnds(testInstance *testing.T) {
	repositoryService := &fakeRepositoryService{insideRepository: true, branchListings: removalBranchListings()}
	removalService, _, _ := buildRemovalService(testInstance, repositoryService, "", nil)

	_, runError := removalService.Run(context.Background(), remove.RemovalOptions{RepositoryPath: removalRepositoryPathConstant})

	require.ErrorIs(testInstance, runError, io.EOF)
	require.ErrorContains(testInstance, runError, "failed to read selection")
}
