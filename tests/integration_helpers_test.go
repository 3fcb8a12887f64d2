package tests

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationGitExecutableNameConstant    = "git"
	integrationCommandTimeoutConstant       = 10 * time.Second
	integrationUserNameConstant             = "Integration Tester"
	integrationUserEmailConstant            = "tester@example.com"
	integrationMainBranchNameConstant       = "main"
	integrationInitialFileNameConstant      = "initial.txt"
	integrationInitialFileContentsConstant  = "initial commit contents\n"
	integrationInitialCommitMessageConstant = "Initial commit"
	integrationGitMissingSkipMessageConst   = "git executable not available"
	integrationHeadReferenceConstant        = "HEAD"
)

type binaryRunResult struct {
	standardOutput string
	standardError  string
	exitCode       int
}

func moduleRootDirectory() string {
	currentWorkingDirectory, workingDirectoryError := os.Getwd()
	if workingDirectoryError != nil {
		return ".."
	}
	return filepath.Dir(currentWorkingDirectory)
}

func requireGit(testInstance *testing.T) {
	testInstance.Helper()
	if gitExecutableMissing {
		testInstance.Skip(integrationGitMissingSkipMessageConst)
	}
}

func runGitCommand(testInstance *testing.T, workingDirectory string, arguments []string) string {
	testInstance.Helper()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), integrationCommandTimeoutConstant)
	defer cancelFunction()

	command := exec.CommandContext(executionContext, integrationGitExecutableNameConstant, arguments...)
	if len(workingDirectory) > 0 {
		command.Dir = workingDirectory
	}

	outputBytes, commandError := command.CombinedOutput()
	require.NoError(testInstance, commandError, string(outputBytes))
	return string(outputBytes)
}

func runIntegrationBinary(testInstance *testing.T, workingDirectory string, standardInput string, environmentOverrides []string, arguments []string) binaryRunResult {
	testInstance.Helper()

	executionContext, cancelFunction := context.WithTimeout(context.Background(), integrationCommandTimeoutConstant)
	defer cancelFunction()

	command := exec.CommandContext(executionContext, integrationBinaryPath, arguments...)
	if len(workingDirectory) > 0 {
		command.Dir = workingDirectory
	}
	command.Stdin = strings.NewReader(standardInput)
	command.Env = append(append([]string{}, os.Environ()...), environmentOverrides...)

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	command.Stdout = outputBuffer
	command.Stderr = errorBuffer

	runError := command.Run()
	exitCode := 0
	if runError != nil {
		exitError := &exec.ExitError{}
		require.True(testInstance, errors.As(runError, &exitError), runError.Error())
		exitCode = exitError.ExitCode()
	}

	return binaryRunResult{
		standardOutput: outputBuffer.String(),
		standardError:  errorBuffer.String(),
		exitCode:       exitCode,
	}
}

// createIntegrationRepository initializes a repository with one commit on main
// and returns its path.
func createIntegrationRepository(testInstance *testing.T) string {
	testInstance.Helper()

	repositoryPath := testInstance.TempDir()
	runGitCommand(testInstance, repositoryPath, []string{"init"})
	runGitCommand(testInstance, repositoryPath, []string{"config", "user.name", integrationUserNameConstant})
	runGitCommand(testInstance, repositoryPath, []string{"config", "user.email", integrationUserEmailConstant})

	initialFilePath := filepath.Join(repositoryPath, integrationInitialFileNameConstant)
	require.NoError(testInstance, os.WriteFile(initialFilePath, []byte(integrationInitialFileContentsConstant), 0o644))

	runGitCommand(testInstance, repositoryPath, []string{"add", integrationInitialFileNameConstant})
	runGitCommand(testInstance, repositoryPath, []string{"commit", "-m", integrationInitialCommitMessageConstant})
	runGitCommand(testInstance, repositoryPath, []string{"branch", "-M", integrationMainBranchNameConstant})

	return repositoryPath
}

func createLocalBranch(testInstance *testing.T, repositoryPath string, branchName string) {
	testInstance.Helper()
	runGitCommand(testInstance, repositoryPath, []string{"branch", branchName})
}

func currentBranchName(testInstance *testing.T, repositoryPath string) string {
	testInstance.Helper()
	branchOutput := runGitCommand(testInstance, repositoryPath, []string{"rev-parse", "--abbrev-ref", integrationHeadReferenceConstant})
	return strings.TrimSpace(branchOutput)
}

func localBranchExists(testInstance *testing.T, repositoryPath string, branchName string) bool {
	testInstance.Helper()
	listingOutput := runGitCommand(testInstance, repositoryPath, []string{"branch", "--list", branchName})
	return len(strings.TrimSpace(listingOutput)) > 0
}
