package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/cli"
	"github.com/at-ishikawa/wordbook/internal/config"
)

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse and edit the dictionary interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			reader := bufio.NewReader(cmd.InOrStdin())
			confirmer := cli.NewPromptConfirmer(reader, cmd.OutOrStdout())
			session, err := cli.OpenSession(appFs, dictionaryPath(cfg), confirmer)
			if err != nil {
				return err
			}
			return cli.NewShell(session, shellLookup(cfg), reader, cmd.OutOrStdout()).Run(cmd.Context())
		},
	}
}

// shellLookup returns nil when neither RapidAPI credentials nor a cache directory are configured.
func shellLookup(cfg *config.Config) cli.DefinitionLookup {
	rapidAPI := cfg.Dictionaries.RapidAPI
	if (rapidAPI.Host == "" || rapidAPI.Key == "") && rapidAPI.CacheDirectory == "" {
		return nil
	}
	return newDictionaryReader(cfg)
}
