package textutils

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	decimalDigitMinimumRuneConstant = '0'
	decimalDigitMaximumRuneConstant = '9'
	paddingCharacterConstant        = " "
	alphanumericAlphabetConstant    = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	randomReadErrorTemplateConstant = "unable to read random bytes: %w"
)

// IsUnsignedInteger reports whether candidate is non-empty and composed
// entirely of decimal digits.
func IsUnsignedInteger(candidate string) bool {
	if len(candidate) == 0 {
		return false
	}
	for _, candidateRune := range candidate {
		if candidateRune < decimalDigitMinimumRuneConstant || candidateRune > decimalDigitMaximumRuneConstant {
			return false
		}
	}
	return true
}

// Uppercase converts text to its uppercase form.
func Uppercase(text string) string {
	return strings.ToUpper(text)
}

// PadWithSpaces right-aligns text within the requested width. Text already at
// or beyond the width is returned unchanged.
func PadWithSpaces(text string, width int) string {
	missingCharacterCount := width - len(text)
	if missingCharacterCount <= 0 {
		return text
	}
	return strings.Repeat(paddingCharacterConstant, missingCharacterCount) + text
}

// RandomAlphanumericString draws length characters from the alphanumeric
// alphabet using the cryptographic random source.
func RandomAlphanumericString(length int) (string, error) {
	if length <= 0 {
		return "", nil
	}

	randomBytes := make([]byte, length)
	if _, readError := rand.Read(randomBytes); readError != nil {
		return "", fmt.Errorf(randomReadErrorTemplateConstant, readError)
	}

	resultCharacters := make([]byte, length)
	for byteIndex, randomByte := range randomBytes {
		resultCharacters[byteIndex] = alphanumericAlphabetConstant[int(randomByte)%len(alphanumericAlphabetConstant)]
	}
	return string(resultCharacters), nil
}
