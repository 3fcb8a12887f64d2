package report

import (
	"errors"
	"fmt"
)

const (
	usageMessageTemplateConstant               = "usage: %s"
	invalidArgumentMessageTemplateConstant     = "invalid %s argument: %q"
	notRepositoryMessageTemplateConstant       = "not a git repository: %s"
	optionNotRecognizedMessageTemplateConstant = "option not recognized: %s"
)

// Kind identifies a category of user-facing failure.
type Kind string

// Enumerated failure kinds.
const (
	// KindUsage marks a command invoked with wrong or missing arguments.
	KindUsage Kind = "usage"
	// KindInvalidArgument marks a helper argument that failed validation.
	KindInvalidArgument Kind = "invalid_argument"
	// KindNotRepository marks an operation attempted outside a Git work tree.
	KindNotRepository Kind = "not_repository"
	// KindOptionNotRecognized marks a menu selection that matched no option.
	KindOptionNotRecognized Kind = "option_not_recognized"
)

// Process exit codes for each failure category.
const (
	ExitCodeSuccess         = 0
	ExitCodeFailure         = 1
	ExitCodeUsage           = 2
	ExitCodeInvalidArgument = 3
)

var messageTemplatesByKind = map[Kind]string{
	KindUsage:               usageMessageTemplateConstant,
	KindInvalidArgument:     invalidArgumentMessageTemplateConstant,
	KindNotRepository:       notRepositoryMessageTemplateConstant,
	KindOptionNotRecognized: optionNotRecognizedMessageTemplateConstant,
}

// Error couples a failure kind with its rendered message.
type Error struct {
	kind    Kind
	message string
}

// NewError renders the template registered for the kind with the supplied arguments.
func NewError(kind Kind, templateArguments ...any) *Error {
	return &Error{kind: kind, message: Message(kind, templateArguments...)}
}

// Message renders the template registered for the kind with the supplied arguments.
func Message(kind Kind, templateArguments ...any) string {
	messageTemplate, templateRegistered := messageTemplatesByKind[kind]
	if !templateRegistered {
		return fmt.Sprint(templateArguments...)
	}
	return fmt.Sprintf(messageTemplate, templateArguments...)
}

// Error returns the rendered message.
func (kindError *Error) Error() string {
	return kindError.message
}

// Kind returns the failure category.
func (kindError *Error) Kind() Kind {
	return kindError.kind
}

// ExitCodeFor maps an error returned by command execution to a process exit code.
func ExitCodeFor(executionError error) int {
	if executionError == nil {
		return ExitCodeSuccess
	}
	kindError := &Error{}
	if errors.As(executionError, &kindError) {
		switch kindError.kind {
		case KindUsage:
			return ExitCodeUsage
		case KindInvalidArgument:
			return ExitCodeInvalidArgument
		}
	}
	return ExitCodeFailure
}
