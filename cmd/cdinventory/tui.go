package main

import (
	"github.com/spf13/cobra"

	"github.com/hazadus/cdinventory/internal/tui"
)

// createTUICommand создает команду tui с привязкой к экземпляру приложения
func (app *Application) createTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Launch TUI (Terminal User Interface)",
		Long:  `Launch interactive terminal user interface for browsing and editing the inventory.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := app.LoadData(); err != nil {
				return err
			}
			return tui.NewApp(app.Data, app.SaveData).Run()
		},
	}
}
