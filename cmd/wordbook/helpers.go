package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordbook/internal/cli"
	"github.com/at-ishikawa/wordbook/internal/config"
	"github.com/at-ishikawa/wordbook/internal/wordbook"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

func dictionaryPath(cfg *config.Config) string {
	if dictionaryFile != "" {
		return dictionaryFile
	}
	return cfg.Store.Path
}

// loadStore reads the dictionary file. Unlike the shell, one-shot commands refuse to
// continue with a file they cannot parse so that it is never overwritten.
func loadStore(cfg *config.Config) (*wordbook.Store, string, error) {
	path := dictionaryPath(cfg)
	store, err := wordbook.Load(appFs, path)
	if err != nil {
		return nil, "", fmt.Errorf("wordbook.Load() > %w", err)
	}
	return store, path, nil
}

func newConfirmer(cmd *cobra.Command, yes bool) cli.Confirmer {
	if yes {
		return cli.AlwaysConfirm{}
	}
	return cli.NewPromptConfirmer(bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout())
}

func openSession(cmd *cobra.Command, yes bool) (*cli.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, path, err := loadStore(cfg)
	if err != nil {
		return nil, err
	}
	return cli.NewSession(appFs, path, store, newConfirmer(cmd, yes)), nil
}
