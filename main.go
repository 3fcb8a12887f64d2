package main

import (
	"fmt"
	"os"

	"github.com/temirov/gbs/cmd/cli"
	"github.com/temirov/gbs/internal/report"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main executes the gbs command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(report.ExitCodeFor(executionError))
	}
}
