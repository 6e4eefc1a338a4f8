package prompt

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
)

const (
	lineFeedConstant         = "\n"
	carriageReturnConstant   = "\r"
	affirmativeShortConstant = "y"
	affirmativeLongConstant  = "yes"
)

type lineResult struct {
	text      string
	readError error
}

// IOPrompter writes questions to a writer and reads answers line by line.
type IOPrompter struct {
	reader           *bufio.Reader
	writer           io.Writer
	executionContext context.Context
	pendingLine      chan lineResult
}

// NewIOPrompter constructs a prompter from the provided reader and writer.
func NewIOPrompter(input io.Reader, output io.Writer) *IOPrompter {
	return &IOPrompter{reader: bufio.NewReader(input), writer: output, executionContext: context.Background()}
}

// WithContext makes reads return the context error once executionContext is done,
// even while a read is blocked on input.
func (prompter *IOPrompter) WithContext(executionContext context.Context) *IOPrompter {
	if executionContext == nil {
		executionContext = context.Background()
	}
	prompter.executionContext = executionContext
	return prompter
}

// Ask writes the question and returns the answer with surrounding whitespace removed.
func (prompter *IOPrompter) Ask(question string) (string, error) {
	answer, readError := prompter.AskRaw(question)
	if readError != nil {
		return "", readError
	}
	return strings.TrimSpace(answer), nil
}

// AskRaw writes the question and returns the answer with only the line terminator removed.
func (prompter *IOPrompter) AskRaw(question string) (string, error) {
	if prompter.writer != nil && len(question) > 0 {
		if _, writeError := io.WriteString(prompter.writer, question); writeError != nil {
			return "", writeError
		}
	}

	response, readError := prompter.readLine()
	if readError != nil {
		if !errors.Is(readError, io.EOF) {
			return "", readError
		}
		if len(response) == 0 {
			return "", ErrInputClosed
		}
	}

	response = strings.TrimSuffix(response, lineFeedConstant)
	response = strings.TrimSuffix(response, carriageReturnConstant)
	return response, nil
}

func (prompter *IOPrompter) readLine() (string, error) {
	if contextError := prompter.executionContext.Err(); contextError != nil {
		return "", contextError
	}
	if prompter.pendingLine == nil {
		lineChannel := make(chan lineResult, 1)
		reader := prompter.reader
		go func() {
			text, readError := reader.ReadString('\n')
			lineChannel <- lineResult{text: text, readError: readError}
		}()
		prompter.pendingLine = lineChannel
	}

	select {
	case result := <-prompter.pendingLine:
		prompter.pendingLine = nil
		return result.text, result.readError
	case <-prompter.executionContext.Done():
		return "", prompter.executionContext.Err()
	}
}

// Confirm interprets affirmative responses (y/yes) case-insensitively.
func (prompter *IOPrompter) Confirm(question string) (bool, error) {
	answer, readError := prompter.Ask(question)
	if readError != nil {
		return false, readError
	}

	switch strings.ToLower(answer) {
	case affirmativeShortConstant, affirmativeLongConstant:
		return true, nil
	default:
		return false, nil
	}
}

// Choose asks for a 1-based selection among count options and returns its zero-based index.
func (prompter *IOPrompter) Choose(question string, count int) (int, error) {
	answer, readError := prompter.Ask(question)
	if readError != nil {
		return 0, readError
	}
	return ParseSelection(answer, count)
}

// ParseSelection converts 1-based numeric input into a zero-based index.
func ParseSelection(input string, count int) (int, error) {
	trimmedInput := strings.TrimSpace(input)
	if !isDecimalDigits(trimmedInput) {
		return 0, InvalidSelectionError{Input: trimmedInput, Count: count}
	}
	selection, parseError := strconv.Atoi(trimmedInput)
	if parseError != nil || selection < 1 || selection > count {
		return 0, InvalidSelectionError{Input: trimmedInput, Count: count}
	}
	return selection - 1, nil
}

func isDecimalDigits(input string) bool {
	if len(input) == 0 {
		return false
	}
	for _, character := range input {
		if character < '0' || character > '9' {
			return false
		}
	}
	return true
}
