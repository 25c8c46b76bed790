package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hazadus/cdinventory/internal/export"
)

// createExportCommand создает команду export с привязкой к экземпляру приложения
func (app *Application) createExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [path]",
		Short: "Export the inventory to YAML or SQLite",
		Long:  `Export the inventory to a .yaml/.yml file or a .db/.sqlite database, chosen by extension.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := app.LoadData(); err != nil {
				return err
			}
			if err := export.ToFile(args[0], app.Data.Records); err != nil {
				return err
			}
			fmt.Printf("✅ Выгружено дисков: %d в %s\n", app.Data.Len(), args[0])
			return nil
		},
	}
}
