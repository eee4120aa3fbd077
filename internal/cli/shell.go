package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/at-ishikawa/wordbook/internal/wordbook"
)

var errEnd = errors.New("end")

const shellHelp = `Commands:
  list [filter]          list words, optionally only those containing filter
  search <query>         same as list
  show <word|number>     show a definition and select the word
  add [word]             add or overwrite a word
  edit [word]            change the definition of a word or the selection
  delete [word]          delete a word or the selection
  clear                  clear the selection and the filter
  lookup [word]          look up suggested definitions online
  use <number>           store a suggestion from the last lookup
  import <path>          merge a JSON dictionary file
  export <path> [format] write the dictionary as json or yaml
  save                   write the dictionary file
  help                   show this help
  quit                   exit
`

type lookupResult struct {
	word        string
	definitions []string
}

// Shell is an interactive prompt over a Session.
type Shell struct {
	session    *Session
	lookup     DefinitionLookup
	reader     *bufio.Reader
	writer     io.Writer
	lastListed []string
	lastLookup *lookupResult
	bold       *color.Color
	italic     *color.Color
	success    *color.Color
	failure    *color.Color
}

// NewShell creates a shell. lookup may be nil when no dictionary API is configured.
func NewShell(session *Session, lookup DefinitionLookup, reader *bufio.Reader, writer io.Writer) *Shell {
	return &Shell{
		session: session,
		lookup:  lookup,
		reader:  reader,
		writer:  writer,
		bold:    color.New(color.Bold),
		italic:  color.New(color.Italic),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed),
	}
}

// Run reads commands until quit, the end of input, or an interrupt.
func (sh *Shell) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(
		ctx,
		os.Interrupt,
	)
	defer cancel()

	if err := sh.session.LoadWarning(); err != nil {
		sh.failure.Fprintf(sh.writer, "Warning: %v\nStarting with an empty dictionary.\n", err)
	}
	fmt.Fprintf(sh.writer, "%d words in %s. Type help for commands.\n", sh.session.Store().Len(), sh.session.Path())

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)

		for {
			select {
			case <-ctx.Done():
				return
			default:
			}

			if err := sh.step(ctx); err != nil {
				if errors.Is(err, errEnd) {
					return
				}
				errCh <- err
				return
			}
		}
	}()
	select {
	case <-ctx.Done():
		fmt.Fprintln(sh.writer, "Received interrupt signal, exiting...")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("sh.step() > %w", err)
		}
	}
	return nil
}

// step runs one command. Command failures are printed; only input errors stop the shell.
func (sh *Shell) step(ctx context.Context) error {
	sh.bold.Fprint(sh.writer, "wordbook> ")
	line, err := readLine(sh.reader)
	if err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(sh.writer)
			return errEnd
		}
		return err
	}

	if err := sh.execute(ctx, line); err != nil {
		if errors.Is(err, errEnd) || errors.Is(err, io.EOF) {
			return errEnd
		}
		sh.failure.Fprintf(sh.writer, "Error: %v\n", err)
	}
	return nil
}

func (sh *Shell) execute(ctx context.Context, line string) error {
	command, args, _ := strings.Cut(strings.TrimSpace(line), " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(command) {
	case "":
		return nil
	case "help", "?":
		fmt.Fprint(sh.writer, shellHelp)
		return nil
	case "quit", "exit", "q":
		return errEnd
	case "list", "ls", "search":
		sh.printWords(sh.session.Search(args))
		return nil
	case "show":
		return sh.show(args)
	case "add":
		return sh.add(args)
	case "edit":
		return sh.edit(args)
	case "delete", "rm":
		return sh.delete(args)
	case "clear":
		sh.session.Clear()
		fmt.Fprintln(sh.writer, "Cleared the selection and the filter.")
		return nil
	case "lookup":
		return sh.lookupWord(ctx, args)
	case "use":
		return sh.useSuggestion(args)
	case "import":
		return sh.importFile(args)
	case "export":
		return sh.exportFile(args)
	case "save":
		if err := sh.session.Save(); err != nil {
			return err
		}
		sh.success.Fprintf(sh.writer, "Saved to %s\n", sh.session.Path())
		return nil
	default:
		return fmt.Errorf("unknown command %q, type help for commands", command)
	}
}

func (sh *Shell) printWords(words []string) {
	sh.lastListed = words
	if len(words) == 0 {
		sh.italic.Fprintln(sh.writer, "No words.")
		return
	}
	for i, word := range words {
		fmt.Fprintf(sh.writer, "%4d  %s\n", i+1, word)
	}
}

// resolveWord accepts a word or the number of a word in the last listing.
// An empty argument resolves to the selection.
func (sh *Shell) resolveWord(arg string) (string, error) {
	if arg == "" {
		if sh.session.Selected() == "" {
			return "", ErrNoSelection
		}
		return sh.session.Selected(), nil
	}
	if _, ok := sh.session.Store().Get(arg); ok {
		return arg, nil
	}
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(sh.lastListed) {
		return sh.lastListed[n-1], nil
	}
	return "", fmt.Errorf("%q is not in the dictionary", arg)
}

func (sh *Shell) show(args string) error {
	word, err := sh.resolveWord(args)
	if err != nil {
		return err
	}
	definition, _ := sh.session.Select(word)
	sh.bold.Fprintln(sh.writer, word)
	if definition == "" {
		sh.italic.Fprintln(sh.writer, "  (no definition)")
		return nil
	}
	fmt.Fprintf(sh.writer, "  %s\n", definition)
	return nil
}

func (sh *Shell) prompt(label string) (string, error) {
	fmt.Fprintf(sh.writer, "%s: ", label)
	return readLine(sh.reader)
}

func (sh *Shell) add(args string) error {
	word := args
	if word == "" {
		var err error
		if word, err = sh.prompt("Word"); err != nil {
			return err
		}
	}
	if current, ok := sh.session.Store().Get(strings.TrimSpace(word)); ok {
		fmt.Fprintf(sh.writer, "Overwriting: %s\n", current)
	}
	definition, err := sh.prompt("Definition")
	if err != nil {
		return err
	}
	return sh.saveEntry(word, definition)
}

func (sh *Shell) edit(args string) error {
	word, err := sh.resolveWord(args)
	if err != nil {
		return err
	}
	current, _ := sh.session.Select(word)
	fmt.Fprintf(sh.writer, "Current: %s\n", current)
	definition, err := sh.prompt("New definition (empty keeps the current one)")
	if err != nil {
		return err
	}
	if definition == "" {
		fmt.Fprintln(sh.writer, "Unchanged.")
		return nil
	}
	return sh.saveEntry(word, definition)
}

func (sh *Shell) saveEntry(word, definition string) error {
	saved, err := sh.session.SaveEntry(word, definition)
	if err != nil {
		return err
	}
	if !saved {
		fmt.Fprintln(sh.writer, "Not saved.")
		return nil
	}
	sh.success.Fprintf(sh.writer, "Saved %q\n", sh.session.Selected())
	return nil
}

func (sh *Shell) delete(args string) error {
	word := ""
	if args != "" {
		var err error
		if word, err = sh.resolveWord(args); err != nil {
			return err
		}
	}
	deleted, err := sh.session.Delete(word)
	if err != nil {
		return err
	}
	if !deleted {
		fmt.Fprintln(sh.writer, "Not deleted.")
		return nil
	}
	sh.success.Fprintln(sh.writer, "Deleted.")
	return nil
}

func (sh *Shell) lookupWord(ctx context.Context, args string) error {
	if sh.lookup == nil {
		return errors.New("dictionary lookup is not configured")
	}
	word := args
	if word == "" {
		word = sh.session.Selected()
	}
	if word == "" {
		return ErrNoSelection
	}

	response, err := sh.lookup.Lookup(ctx, word)
	if err != nil {
		return fmt.Errorf("lookup.Lookup() > %w", err)
	}
	definitions := response.Definitions()
	sh.lastLookup = &lookupResult{word: word, definitions: definitions}
	if len(definitions) == 0 {
		sh.italic.Fprintf(sh.writer, "No definitions found for %q\n", word)
		return nil
	}
	sh.bold.Fprintln(sh.writer, word)
	for i, definition := range definitions {
		fmt.Fprintf(sh.writer, "%4d  %s\n", i+1, definition)
	}
	return nil
}

func (sh *Shell) useSuggestion(args string) error {
	if sh.lastLookup == nil {
		return errors.New("look up a word first")
	}
	n, err := strconv.Atoi(args)
	if err != nil || n < 1 || n > len(sh.lastLookup.definitions) {
		return fmt.Errorf("choose a number between 1 and %d", len(sh.lastLookup.definitions))
	}
	return sh.saveEntry(sh.lastLookup.word, sh.lastLookup.definitions[n-1])
}

func (sh *Shell) importFile(path string) error {
	if path == "" {
		return errors.New("usage: import <path>")
	}
	count, err := sh.session.Import(path)
	if err != nil {
		return err
	}
	sh.success.Fprintf(sh.writer, "Imported %d entries from %s\n", count, path)
	return nil
}

func (sh *Shell) exportFile(args string) error {
	fields := strings.Fields(args)
	if len(fields) == 0 || len(fields) > 2 {
		return errors.New("usage: export <path> [json|yaml]")
	}
	path := fields[0]
	format := FormatFromPath(path)
	if len(fields) == 2 {
		if err := format.Set(fields[1]); err != nil {
			return err
		}
	}
	if err := sh.session.Export(path, format); err != nil {
		return err
	}
	sh.success.Fprintf(sh.writer, "Exported %d entries to %s\n", sh.session.Store().Len(), path)
	return nil
}

// FormatFromPath picks YAML for .yaml and .yml files and JSON otherwise.
func FormatFromPath(path string) wordbook.Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return wordbook.FormatYAML
	default:
		return wordbook.FormatJSON
	}
}
