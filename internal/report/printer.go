package report

import (
	"fmt"
	"io"
	"os"
)

const printedLineTemplateConstant = "%s\n"

// Printer writes user-facing diagnostics to an error stream.
type Printer struct {
	writer io.Writer
}

// NewPrinter constructs a Printer targeting the provided writer, defaulting to standard error.
func NewPrinter(writer io.Writer) *Printer {
	if writer == nil {
		writer = os.Stderr
	}
	return &Printer{writer: writer}
}

// Print writes the message followed by a trailing newline.
func (printer *Printer) Print(message string) {
	if printer == nil || printer.writer == nil {
		return
	}
	fmt.Fprintf(printer.writer, printedLineTemplateConstant, message)
}

// Printf writes the message exactly as the caller-supplied format dictates.
func (printer *Printer) Printf(format string, formatArguments ...any) {
	if printer == nil || printer.writer == nil {
		return
	}
	fmt.Fprintf(printer.writer, format, formatArguments...)
}

// PrintKind renders the kind's message template and writes it with a trailing newline.
func (printer *Printer) PrintKind(kind Kind, templateArguments ...any) {
	printer.Print(Message(kind, templateArguments...))
}
