// Package ui provides the interactive terminal surface for branch selection.
//
// It renders numbered menus, classifies menu choices including the synthetic
// quit entry, and asks single-keystroke yes/no questions with a raw-mode
// terminal reader that degrades to buffered line input when standard input is
// not a terminal.
package ui
