package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/temirov/gbs/internal/textutils"
)

const (
	characterReaderMissingMessageConstant = "character reader not configured"
	confirmationPromptTemplateConstant    = "%s [Y/N] "
	affirmativeCharacterConstant          = "Y"
	negativeCharacterConstant             = "N"
)

// ErrCharacterReaderNotConfigured indicates the prompter was constructed without input.
var ErrCharacterReaderNotConfigured = errors.New(characterReaderMissingMessageConstant)

// ConfirmationAnswer classifies the response to a yes/no prompt.
type ConfirmationAnswer int

// Confirmation answers. Unrecognized input is distinct from a negative answer
// so callers can decide how to treat an ambiguous response.
const (
	ConfirmationAnswerAffirmative ConfirmationAnswer = iota
	ConfirmationAnswerNegative
	ConfirmationAnswerUnrecognized
)

// CharacterReader supplies single characters of user input.
type CharacterReader interface {
	ReadCharacter() (rune, error)
}

// ConfirmationPrompter asks yes/no questions answered with a single keystroke.
type ConfirmationPrompter struct {
	writer          io.Writer
	characterReader CharacterReader
}

// NewConfirmationPrompter constructs a prompter writing to the provided
// writer. A nil writer falls back to standard output.
func NewConfirmationPrompter(writer io.Writer, characterReader CharacterReader) (*ConfirmationPrompter, error) {
	if characterReader == nil {
		return nil, ErrCharacterReaderNotConfigured
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &ConfirmationPrompter{writer: writer, characterReader: characterReader}, nil
}

// Confirm prints the prompt with a [Y/N] hint and classifies one character of
// input. The trailing newline keeps subsequent output off the prompt line.
func (prompter *ConfirmationPrompter) Confirm(prompt string) (ConfirmationAnswer, error) {
	if _, writeError := fmt.Fprintf(prompter.writer, confirmationPromptTemplateConstant, prompt); writeError != nil {
		return ConfirmationAnswerUnrecognized, writeError
	}

	inputCharacter, readError := prompter.characterReader.ReadCharacter()
	if readError != nil {
		return ConfirmationAnswerUnrecognized, readError
	}

	if _, writeError := fmt.Fprintln(prompter.writer); writeError != nil {
		return ConfirmationAnswerUnrecognized, writeError
	}

	switch textutils.Uppercase(string(inputCharacter)) {
	case affirmativeCharacterConstant:
		return ConfirmationAnswerAffirmative, nil
	case negativeCharacterConstant:
		return ConfirmationAnswerNegative, nil
	default:
		return ConfirmationAnswerUnrecognized, nil
	}
}

// LineCharacterReader answers single character prompts by consuming one line
// from a shared buffered reader and reporting its first character. Sharing the
// buffer with line-oriented reads keeps a single piped stream usable for both.
type LineCharacterReader struct {
	bufferedReader *bufio.Reader
}

// NewLineCharacterReader constructs a reader over the provided buffer.
func NewLineCharacterReader(bufferedReader *bufio.Reader) *LineCharacterReader {
	return &LineCharacterReader{bufferedReader: bufferedReader}
}

// ReadCharacter returns the first character of the next input line.
func (reader *LineCharacterReader) ReadCharacter() (rune, error) {
	return readCharacterFromLine(reader.bufferedReader)
}

// TerminalCharacterReader reads single characters from a file. Terminal input
// is read in raw mode so one keystroke answers the prompt without a newline.
// Non-terminal input consumes a buffered line and reports its first character
// so piped responses keep working.
type TerminalCharacterReader struct {
	inputFile      *os.File
	bufferedReader *bufio.Reader
}

// NewTerminalCharacterReader constructs a reader for the provided file. A nil
// file falls back to standard input.
func NewTerminalCharacterReader(inputFile *os.File) *TerminalCharacterReader {
	if inputFile == nil {
		inputFile = os.Stdin
	}
	return &TerminalCharacterReader{inputFile: inputFile, bufferedReader: bufio.NewReader(inputFile)}
}

// ReadCharacter returns the next character of user input.
func (reader *TerminalCharacterReader) ReadCharacter() (rune, error) {
	fileDescriptor := int(reader.inputFile.Fd())
	if term.IsTerminal(fileDescriptor) {
		return reader.readRawCharacter(fileDescriptor)
	}
	return reader.readBufferedCharacter()
}

func (reader *TerminalCharacterReader) readRawCharacter(fileDescriptor int) (rune, error) {
	previousState, stateError := term.MakeRaw(fileDescriptor)
	if stateError != nil {
		return reader.readBufferedCharacter()
	}
	defer func() {
		_ = term.Restore(fileDescriptor, previousState)
	}()

	characterBuffer := make([]byte, 1)
	if _, readError := reader.inputFile.Read(characterBuffer); readError != nil {
		return 0, readError
	}
	return rune(characterBuffer[0]), nil
}

func (reader *TerminalCharacterReader) readBufferedCharacter() (rune, error) {
	return readCharacterFromLine(reader.bufferedReader)
}

func readCharacterFromLine(bufferedReader *bufio.Reader) (rune, error) {
	lineText, readError := bufferedReader.ReadString('\n')
	if len(lineText) == 0 && readError != nil {
		return 0, readError
	}
	trimmedLine := strings.TrimSpace(lineText)
	if len(trimmedLine) == 0 {
		return 0, nil
	}
	return rune(trimmedLine[0]), nil
}
