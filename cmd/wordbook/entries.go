package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/cli"
	"github.com/at-ishikawa/wordbook/internal/wordbook"
)

const maxDefinitionWidth = 60

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list [filter]",
		Short: "List words, optionally only those containing filter",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}
			printEntries(cmd.OutOrStdout(), session.Store(), session.Search(filter))
			return nil
		},
	}
}

func printEntries(w io.Writer, store *wordbook.Store, words []string) {
	if len(words) == 0 {
		fmt.Fprintln(w, "No words.")
		return
	}
	headerFmt := color.New(color.FgGreen, color.Underline).SprintfFunc()
	tbl := table.New("Word", "Definition").
		WithWriter(w).
		WithHeaderFormatter(headerFmt)
	for _, word := range words {
		definition, _ := store.Get(word)
		tbl.AddRow(word, summarize(definition))
	}
	tbl.Print()
}

// summarize returns the first line of definition cut to maxDefinitionWidth runes.
func summarize(definition string) string {
	line, _, multiline := strings.Cut(definition, "\n")
	runes := []rune(line)
	if len(runes) > maxDefinitionWidth {
		return string(runes[:maxDefinitionWidth-3]) + "..."
	}
	if multiline {
		return line + " ..."
	}
	return line
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <word>",
		Short: "Show the definition of a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			definition, ok := session.Select(args[0])
			if !ok {
				return fmt.Errorf("%q is not in the dictionary", args[0])
			}
			w := cmd.OutOrStdout()
			color.New(color.Bold).Fprintln(w, args[0])
			fmt.Fprintln(w, definition)
			return nil
		},
	}
}

func newSetCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "set <word> [definition...]",
		Short: "Add a word or overwrite its definition",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, yes)
			if err != nil {
				return err
			}
			saved, err := session.SaveEntry(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return fmt.Errorf("session.SaveEntry() > %w", err)
			}
			if !saved {
				fmt.Fprintln(cmd.OutOrStdout(), "Not saved.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q to %s\n", session.Selected(), session.Path())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "store an empty definition without asking")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <word>",
		Short: "Delete a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, yes)
			if err != nil {
				return err
			}
			if _, ok := session.Store().Get(args[0]); !ok {
				return fmt.Errorf("%q is not in the dictionary", args[0])
			}
			deleted, err := session.Delete(args[0])
			if err != nil {
				return fmt.Errorf("session.Delete() > %w", err)
			}
			if !deleted {
				fmt.Fprintln(cmd.OutOrStdout(), "Not deleted.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %q from %s\n", args[0], session.Path())
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without asking")
	return cmd
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Merge another dictionary file; its definitions win on conflicts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := openSession(cmd, false)
			if err != nil {
				return err
			}
			count, err := session.Import(args[0])
			if err != nil {
				return fmt.Errorf("session.Import() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d entries from %s\n", count, args[0])
			return nil
		},
	}
}

func newExportCommand() *cobra.Command {
	var format wordbook.Format
	cmd := &cobra.Command{
		Use:   "export <path>",
		Short: "Write the dictionary to another file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, path, err := loadStore(cfg)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("format") {
				format = exportFormat(args[0], cfg.Store.ExportFormat)
			}

			session := cli.NewSession(appFs, path, store, cli.AlwaysConfirm{})
			if err := session.Export(args[0], format); err != nil {
				return fmt.Errorf("session.Export() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s as %s\n", store.Len(), args[0], format)
			return nil
		},
	}
	cmd.Flags().Var(&format, "format", fmt.Sprintf("export format. Possible values are %v. Defaults to the file extension, then store.export_format", wordbook.AllFormats()))
	return cmd
}

// exportFormat picks the format from a .yaml or .yml extension, then from the configured default.
func exportFormat(path, configured string) wordbook.Format {
	if format := cli.FormatFromPath(path); format == wordbook.FormatYAML {
		return format
	}
	return wordbook.Format(configured)
}
