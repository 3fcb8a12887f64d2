package ui

import (
	"fmt"
	"io"
	"os"
)

const (
	menuPromptLineTemplateConstant = "%s\n"
	menuItemLineTemplateConstant   = "%d) %s\n"
	menuFirstItemNumberConstant    = 1
)

// Menu describes an ordered prompt-plus-options list presented to the user.
type Menu struct {
	Prompt string
	Items  []string
}

// MenuRenderer writes menus to an output stream.
type MenuRenderer struct {
	writer io.Writer
}

// NewMenuRenderer constructs a renderer targeting the provided writer. A nil
// writer falls back to standard output.
func NewMenuRenderer(writer io.Writer) *MenuRenderer {
	if writer == nil {
		writer = os.Stdout
	}
	return &MenuRenderer{writer: writer}
}

// Render writes the prompt verbatim followed by each item prefixed with its
// one-based index. A menu without items prints only the prompt line.
func (renderer *MenuRenderer) Render(menu Menu) error {
	if _, writeError := fmt.Fprintf(renderer.writer, menuPromptLineTemplateConstant, menu.Prompt); writeError != nil {
		return writeError
	}
	for itemOffset, menuItem := range menu.Items {
		itemNumber := menuFirstItemNumberConstant + itemOffset
		if _, writeError := fmt.Fprintf(renderer.writer, menuItemLineTemplateConstant, itemNumber, menuItem); writeError != nil {
			return writeError
		}
	}
	return nil
}
