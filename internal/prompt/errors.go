package prompt

import (
	"errors"
	"fmt"
)

const (
	invalidSelectionMessageTemplateConstant = "invalid selection %q: expected a number between 1 and %d"
	emptySelectionMessageTemplateConstant   = "invalid selection %q: nothing to choose from"
)

// ErrInputClosed indicates that the input stream ended before an answer was read.
var ErrInputClosed = errors.New("input closed")

// InvalidSelectionError reports numeric input outside of the displayed range.
type InvalidSelectionError struct {
	Input string
	Count int
}

// Error describes the rejected input.
func (selectionError InvalidSelectionError) Error() string {
	if selectionError.Count <= 0 {
		return fmt.Sprintf(emptySelectionMessageTemplateConstant, selectionError.Input)
	}
	return fmt.Sprintf(invalidSelectionMessageTemplateConstant, selectionError.Input, selectionError.Count)
}
