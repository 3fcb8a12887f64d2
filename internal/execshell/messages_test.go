package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	messagesTestRepositoryPathConstant = "/workspace/project"
	messagesTestBranchNameConstant     = "feature/login"
)

func gitMessageCommand(workingDirectory string, arguments ...string) ShellCommand {
	return ShellCommand{
		Name: CommandGit,
		Details: CommandDetails{
			Arguments:        arguments,
			WorkingDirectory: workingDirectory,
		},
	}
}

func TestBuildStartedMessageDescribesGitSubcommands(testInstance *testing.T) {
	testCases := []struct {
		name            string
		command         ShellCommand
		expectedMessage string
	}{
		{
			name:            "work_tree_probe",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "rev-parse", "--is-inside-work-tree"),
			expectedMessage: "Analyzing repository at /workspace/project",
		},
		{
			name:            "current_branch_lookup",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "rev-parse", "--abbrev-ref", "HEAD"),
			expectedMessage: "Identifying current branch in /workspace/project",
		},
		{
			name:            "revision_resolution",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "rev-parse", "--short", "HEAD"),
			expectedMessage: "Resolving HEAD in /workspace/project",
		},
		{
			name:            "branch_listing",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "branch", "--list", "--all"),
			expectedMessage: "Listing branches in /workspace/project",
		},
		{
			name:            "branch_deletion",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "branch", "--delete", messagesTestBranchNameConstant),
			expectedMessage: "Removing local branch feature/login in /workspace/project",
		},
		{
			name:            "forced_branch_deletion",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "branch", "--delete", "--force", messagesTestBranchNameConstant),
			expectedMessage: "Force removing local branch feature/login in /workspace/project",
		},
		{
			name:            "branch_checkout",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "checkout", messagesTestBranchNameConstant),
			expectedMessage: "Switching /workspace/project to feature/login",
		},
		{
			name:            "remote_tracking_refresh",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "remote", "update", "--prune"),
			expectedMessage: "Refreshing remote tracking state in /workspace/project",
		},
		{
			name:            "generic_command_quotes_arguments",
			command:         gitMessageCommand("", "log", "--format=%H %s"),
			expectedMessage: "Running git log '--format=%H %s'",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			formatter := CommandMessageFormatter{}

			builtMessage := formatter.BuildStartedMessage(testCase.command)

			require.Equal(subtestInstance, testCase.expectedMessage, builtMessage)
		})
	}
}

func TestBuildMessageSuccessStageIncludesCommandOutput(testInstance *testing.T) {
	testCases := []struct {
		name            string
		command         ShellCommand
		result          ExecutionResult
		expectedMessage string
	}{
		{
			name:            "work_tree_confirmed",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "rev-parse", "--is-inside-work-tree"),
			result:          ExecutionResult{StandardOutput: "true\n"},
			expectedMessage: "/workspace/project is a Git repository",
		},
		{
			name:            "current_branch_reported",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "rev-parse", "--abbrev-ref", "HEAD"),
			result:          ExecutionResult{StandardOutput: "main\n"},
			expectedMessage: "Current branch in /workspace/project is main",
		},
		{
			name:            "detached_head_reported",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "rev-parse", "--abbrev-ref", "HEAD"),
			result:          ExecutionResult{StandardOutput: "HEAD\n"},
			expectedMessage: "/workspace/project is in a detached HEAD state",
		},
		{
			name:            "revision_resolved",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "rev-parse", "--short", "HEAD"),
			result:          ExecutionResult{StandardOutput: "f00dcafe\n"},
			expectedMessage: "HEAD in /workspace/project resolved to f00dcafe",
		},
		{
			name:            "revision_without_output",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "rev-parse", "--short", "HEAD"),
			result:          ExecutionResult{},
			expectedMessage: "HEAD in /workspace/project did not resolve to a revision",
		},
		{
			name:            "branches_listed",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "branch", "--list", "--all"),
			result:          ExecutionResult{StandardOutput: "* main\n  feature/login\n"},
			expectedMessage: "Listed branches in /workspace/project",
		},
		{
			name:            "checkout_completed",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "checkout", messagesTestBranchNameConstant),
			result:          ExecutionResult{},
			expectedMessage: "/workspace/project now on feature/login",
		},
		{
			name:            "remote_tracking_refreshed",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "remote", "update", "--prune"),
			result:          ExecutionResult{},
			expectedMessage: "Refreshed remote tracking state in /workspace/project",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			formatter := CommandMessageFormatter{}

			builtMessage := formatter.buildMessage(testCase.command, testCase.result, nil, messageStageSuccess)

			require.Equal(subtestInstance, testCase.expectedMessage, builtMessage)
		})
	}
}

func TestBuildSuccessMessageWithoutResultUsesDetachedFallback(testInstance *testing.T) {
	formatter := CommandMessageFormatter{}
	command := gitMessageCommand(messagesTestRepositoryPathConstant, "rev-parse", "--abbrev-ref", "HEAD")

	builtMessage := formatter.BuildSuccessMessage(command)

	require.Equal(testInstance, "/workspace/project is in a detached HEAD state", builtMessage)
}

func TestBuildFailureMessageIncludesExitCodeAndStandardError(testInstance *testing.T) {
	testCases := []struct {
		name            string
		command         ShellCommand
		result          ExecutionResult
		expectedMessage string
	}{
		{
			name:            "work_tree_probe_failed",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "rev-parse", "--is-inside-work-tree"),
			result:          ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository\n"},
			expectedMessage: "Could not confirm /workspace/project is a Git repository (exit code 128: fatal: not a git repository)",
		},
		{
			name:            "checkout_failed",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "checkout", messagesTestBranchNameConstant),
			result:          ExecutionResult{ExitCode: 1, StandardError: "error: pathspec did not match\n"},
			expectedMessage: "Failed to switch /workspace/project to feature/login (exit code 1: error: pathspec did not match)",
		},
		{
			name:            "branch_deletion_failed_without_standard_error",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "branch", "--delete", messagesTestBranchNameConstant),
			result:          ExecutionResult{ExitCode: 1},
			expectedMessage: "Failed to remove local branch feature/login in /workspace/project (exit code 1)",
		},
		{
			name:            "branch_listing_failed",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "branch", "--list", "--all"),
			result:          ExecutionResult{ExitCode: 129, StandardError: "usage: git branch\n"},
			expectedMessage: "Failed to list branches in /workspace/project (exit code 129: usage: git branch)",
		},
		{
			name:            "generic_failure_in_current_directory",
			command:         gitMessageCommand("", "stash", "pop"),
			result:          ExecutionResult{ExitCode: 1, StandardError: "conflict\n"},
			expectedMessage: "git stash pop failed with exit code 1: conflict",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			formatter := CommandMessageFormatter{}

			builtMessage := formatter.BuildFailureMessage(testCase.command, testCase.result)

			require.Equal(subtestInstance, testCase.expectedMessage, builtMessage)
		})
	}
}

func TestBuildExecutionFailureMessageDescribesCause(testInstance *testing.T) {
	testCases := []struct {
		name            string
		command         ShellCommand
		failure         error
		expectedMessage string
	}{
		{
			name:            "remote_refresh_execution_failure",
			command:         gitMessageCommand(messagesTestRepositoryPathConstant, "remote", "update", "--prune"),
			failure:         errors.New("binary not found"),
			expectedMessage: "Unable to refresh remote tracking state in /workspace/project: binary not found",
		},
		{
			name:            "current_branch_execution_failure_in_current_directory",
			command:         gitMessageCommand("", "rev-parse", "--abbrev-ref", "HEAD"),
			failure:         errors.New("context canceled"),
			expectedMessage: "Unable to identify current branch in current directory: context canceled",
		},
		{
			name:            "nil_failure_uses_placeholder",
			command:         gitMessageCommand("", "fetch"),
			failure:         nil,
			expectedMessage: "git fetch failed: unknown error",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			formatter := CommandMessageFormatter{}

			builtMessage := formatter.BuildExecutionFailureMessage(testCase.command, testCase.failure)

			require.Equal(subtestInstance, testCase.expectedMessage, builtMessage)
		})
	}
}
