package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/hazadus/cdinventory/internal/shell"
)

// createRootCommand создает корневую команду с настроенными подкомандами.
// Без подкоманды запускается интерактивное меню.
func (app *Application) createRootCommand(ctx context.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "cdinventory",
		Short:        "Manage a CD inventory",
		Long:         `Interactive CD inventory: list, add, delete, save and load records kept in a binary data file.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.runShell(cmd)
		},
	}

	rootCmd.AddCommand(app.createListCommand())
	rootCmd.AddCommand(app.createAddCommand())
	rootCmd.AddCommand(app.createDeleteCommand())
	rootCmd.AddCommand(app.createTUICommand())
	rootCmd.AddCommand(app.createBackupCommand(ctx))
	rootCmd.AddCommand(app.createRestoreCommand(ctx))
	rootCmd.AddCommand(app.createImportCommand())
	rootCmd.AddCommand(app.createExportCommand())

	return rootCmd
}

// runShell обслуживает меню поверх ввода и вывода команды до выхода или прерывания
func (app *Application) runShell(cmd *cobra.Command) error {
	session := &shell.Session{
		Inventory: app.Data,
		DataFile:  app.Config.DataFile,
	}
	prompter := shell.NewLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	return shell.New(session, prompter, cmd.OutOrStdout()).Run(cmd.Context())
}
