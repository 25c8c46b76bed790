package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hazadus/cdinventory/internal/shell"
)

// createListCommand создает команду list с привязкой к экземпляру приложения
func (app *Application) createListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all CDs in the inventory",
		Long:  `Display the records stored in the inventory data file.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := app.LoadData(); err != nil {
				return err
			}
			app.listRecords()
			return nil
		},
	}
}

func (app *Application) listRecords() {
	if app.Data.Len() == 0 {
		fmt.Println("📀 Инвентарь пуст. Добавьте диски с помощью команды 'add'.")
		return
	}

	fmt.Printf("📀 Найдено дисков: %d\n\n", app.Data.Len())
	shell.RenderInventory(os.Stdout, app.Data.Records)
}
