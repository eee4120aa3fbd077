package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// PromptConfirmer asks yes/no questions on a terminal. Anything other than y or yes is a no.
type PromptConfirmer struct {
	reader *bufio.Reader
	writer io.Writer
}

func NewPromptConfirmer(reader *bufio.Reader, writer io.Writer) *PromptConfirmer {
	return &PromptConfirmer{
		reader: reader,
		writer: writer,
	}
}

func (c *PromptConfirmer) ConfirmEmptyDefinition(word string) (bool, error) {
	return c.ask(fmt.Sprintf("The definition of %q is empty. Save it anyway?", word))
}

func (c *PromptConfirmer) ConfirmDelete(word string) (bool, error) {
	return c.ask(fmt.Sprintf("Are you sure you want to delete %q?", word))
}

func (c *PromptConfirmer) ask(question string) (bool, error) {
	if _, err := color.New(color.FgYellow).Fprintf(c.writer, "%s [y/N]: ", question); err != nil {
		return false, fmt.Errorf("Fprintf() > %w", err)
	}
	line, err := readLine(c.reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// AlwaysConfirm answers yes to every question.
type AlwaysConfirm struct{}

func (AlwaysConfirm) ConfirmEmptyDefinition(string) (bool, error) {
	return true, nil
}

func (AlwaysConfirm) ConfirmDelete(string) (bool, error) {
	return true, nil
}

// readLine returns the next line without its line ending.
// A final line without a newline is returned before io.EOF.
func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("reader.ReadString() > %w", err)
	}
	return strings.TrimSpace(line), nil
}
