package execshell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
)

const environmentAssignmentTemplateConstant = "%s=%s"

// OSCommandRunner executes commands using the operating system facilities.
type OSCommandRunner struct{}

// NewOSCommandRunner constructs a runner backed by os/exec.
func NewOSCommandRunner() *OSCommandRunner {
	return &OSCommandRunner{}
}

// Run executes the supplied command and captures its outputs. A non-zero exit
// code is reported through the ExecutionResult rather than as an error so the
// caller can distinguish command failures from execution failures.
func (runner *OSCommandRunner) Run(executionContext context.Context, command ShellCommand) (ExecutionResult, error) {
	processArguments := append([]string{}, command.Details.Arguments...)
	process := exec.CommandContext(executionContext, string(command.Name), processArguments...)
	process.Dir = command.Details.WorkingDirectory
	process.Env = runner.buildProcessEnvironment(command.Details.EnvironmentVariables)

	var standardOutputBuffer bytes.Buffer
	var standardErrorBuffer bytes.Buffer
	process.Stdout = &standardOutputBuffer
	process.Stderr = &standardErrorBuffer
	if len(command.Details.StandardInput) > 0 {
		process.Stdin = bytes.NewReader(command.Details.StandardInput)
	}

	runError := process.Run()
	executionResult := ExecutionResult{
		StandardOutput: standardOutputBuffer.String(),
		StandardError:  standardErrorBuffer.String(),
	}
	if runError == nil {
		return executionResult, nil
	}

	var exitError *exec.ExitError
	if errors.As(runError, &exitError) {
		executionResult.ExitCode = exitError.ExitCode()
		return executionResult, nil
	}
	return ExecutionResult{}, runError
}

// buildProcessEnvironment merges the caller-supplied variables over the parent
// process environment. A nil return keeps the inherited environment untouched.
func (runner *OSCommandRunner) buildProcessEnvironment(environmentVariables map[string]string) []string {
	if len(environmentVariables) == 0 {
		return nil
	}
	processEnvironment := append([]string{}, os.Environ()...)
	for variableName, variableValue := range environmentVariables {
		processEnvironment = append(processEnvironment, fmt.Sprintf(environmentAssignmentTemplateConstant, variableName, variableValue))
	}
	return processEnvironment
}
