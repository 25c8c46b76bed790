package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hazadus/cdinventory/internal/cd"
	"github.com/hazadus/cdinventory/internal/data"
)

// createDeleteCommand создает команду delete с привязкой к экземпляру приложения
func (app *Application) createDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a CD by ID",
		Long:  `Delete the first CD with the given ID and save the data file.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("неверный ID '%s': ID должен быть целым числом", args[0])
			}
			return app.deleteRecord(id)
		},
	}
}

func (app *Application) deleteRecord(id int) error {
	if err := app.LoadData(); err != nil {
		return err
	}

	record, err := app.Data.RecordByID(id)
	if err != nil {
		if errors.Is(err, data.ErrNotFound) {
			fmt.Printf("ℹ️  Диск с ID %d не найден, инвентарь не изменен\n", id)
			return nil
		}
		return err
	}
	fmt.Printf("🗑️  Удаляем диск: %s (by: %s)\n", record.Title, record.Artist)

	if err := cd.NewManager(app.Data).DeleteRecord(id); err != nil {
		return err
	}

	if err := app.SaveData(); err != nil {
		return err
	}

	fmt.Println("✅ Диск успешно удален из инвентаря")
	return nil
}
