package ui

import (
	"strconv"
	"strings"

	"github.com/temirov/gbs/internal/textutils"
)

const (
	quitKeywordPrefixConstant    = "q"
	quitSentinelOffsetConstant   = 1
	firstSelectableIndexConstant = 1
)

// SelectionKind classifies one line of menu input.
type SelectionKind int

// Selection kinds.
const (
	SelectionKindItem SelectionKind = iota
	SelectionKindQuit
	SelectionKindInvalid
)

// Selection captures the interpretation of a menu choice. ItemIndex holds the
// one-based menu position when Kind is SelectionKindItem.
type Selection struct {
	Kind      SelectionKind
	ItemIndex int
}

// ClassifySelection interprets one line of input against a menu of itemCount
// real entries followed by a synthetic quit entry. Numeric input selects the
// matching entry, the sentinel index quits, and input starting with the quit
// keyword quits regardless of case. Everything else is invalid.
func ClassifySelection(rawInput string, itemCount int) Selection {
	trimmedInput := strings.TrimSpace(rawInput)

	if textutils.IsUnsignedInteger(trimmedInput) {
		selectedNumber, parseError := strconv.Atoi(trimmedInput)
		if parseError != nil {
			return Selection{Kind: SelectionKindInvalid}
		}
		if selectedNumber == itemCount+quitSentinelOffsetConstant {
			return Selection{Kind: SelectionKindQuit}
		}
		if selectedNumber >= firstSelectableIndexConstant && selectedNumber <= itemCount {
			return Selection{Kind: SelectionKindItem, ItemIndex: selectedNumber}
		}
		return Selection{Kind: SelectionKindInvalid}
	}

	if strings.HasPrefix(strings.ToLower(trimmedInput), quitKeywordPrefixConstant) {
		return Selection{Kind: SelectionKindQuit}
	}

	return Selection{Kind: SelectionKindInvalid}
}
