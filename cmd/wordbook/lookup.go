package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/cli"
	"github.com/at-ishikawa/wordbook/internal/config"
	"github.com/at-ishikawa/wordbook/internal/dictionary"
)

func newDictionaryReader(cfg *config.Config) *dictionary.Reader {
	return dictionary.NewReader(appFs, cfg.Dictionaries.RapidAPI.CacheDirectory, dictionary.Config{
		RapidAPIHost:  cfg.Dictionaries.RapidAPI.Host,
		RapidAPIKey:   cfg.Dictionaries.RapidAPI.Key,
		RetryAttempts: cfg.Dictionaries.RapidAPI.RetryAttempts,
	})
}

func newLookupCommand() *cobra.Command {
	var set int
	cmd := &cobra.Command{
		Use:   "lookup <word>",
		Short: "Look up suggested definitions on WordsAPI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			reader := newDictionaryReader(cfg)
			response, err := reader.Lookup(cmd.Context(), word)
			if err != nil {
				return fmt.Errorf("dictionary.NewReader.Lookup > %w", err)
			}
			reader.Show(cmd.OutOrStdout(), response)
			if set == 0 {
				return nil
			}

			definitions := response.Definitions()
			if set < 0 || set > len(definitions) {
				return fmt.Errorf("--set must be between 1 and %d", len(definitions))
			}
			store, path, err := loadStore(cfg)
			if err != nil {
				return err
			}
			session := cli.NewSession(appFs, path, store, cli.AlwaysConfirm{})
			if _, err := session.SaveEntry(word, definitions[set-1]); err != nil {
				return fmt.Errorf("session.SaveEntry() > %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q to %s\n", word, path)
			return nil
		},
	}
	cmd.Flags().IntVar(&set, "set", 0, "store the Nth suggested definition for the word")
	return cmd
}
