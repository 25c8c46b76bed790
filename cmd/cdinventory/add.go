package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hazadus/cdinventory/internal/cd"
	"github.com/hazadus/cdinventory/internal/data"
)

// createAddCommand создает команду add с привязкой к экземпляру приложения
func (app *Application) createAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add [id] [title] [artist]",
		Short: "Add a CD to the inventory",
		Long:  `Append a CD to the end of the inventory and save the data file.`,
		Args:  cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID '%s': ID должен быть целым числом", args[0])
			}
			return app.addRecord(data.Record{ID: id, Title: args[1], Artist: args[2]})
		},
	}
}

func (app *Application) addRecord(record data.Record) error {
	if err := app.LoadData(); err != nil {
		return err
	}

	cd.NewManager(app.Data).AddRecord(record)

	if err := app.SaveData(); err != nil {
		return err
	}

	fmt.Printf("✅ Диск добавлен: #%d %s (by: %s)\n", record.ID, record.Title, record.Artist)
	return nil
}
