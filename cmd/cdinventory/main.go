package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/hazadus/cdinventory/internal/config"
	"github.com/hazadus/cdinventory/internal/data"
	"github.com/hazadus/cdinventory/internal/storage"
)

const (
	defaultConfigPath = "~/.cdinventory"
)

// Application содержит общее состояние для всех команд
type Application struct {
	Config *config.Config
	Data   *data.Inventory
}

// LoadData загружает инвентарь из файла данных.
// Отсутствующий файл означает пустой инвентарь.
func (app *Application) LoadData() error {
	err := storage.Load(app.Config.DataFile, app.Data)
	if err != nil && !errors.Is(err, storage.ErrNotExist) {
		return fmt.Errorf("ошибка загрузки инвентаря: %w", err)
	}
	return nil
}

// SaveData сохраняет инвентарь в файл данных
func (app *Application) SaveData() error {
	if err := storage.Save(app.Config.DataFile, app.Data); err != nil {
		return fmt.Errorf("ошибка сохранения инвентаря: %w", err)
	}
	return nil
}

// loadConfig загружает конфигурацию. Нечитаемый файл не мешает работе
// с инвентарем: выводится предупреждение и используются настройки по умолчанию.
func loadConfig(path string, w io.Writer) *config.Config {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		fmt.Fprintf(w, "⚠️  Ошибка загрузки конфигурации %s: %v\n", path, err)
		fmt.Fprintln(w, "   Используются настройки по умолчанию")
		return config.Default()
	}
	return cfg
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &Application{
		Config: loadConfig(defaultConfigPath, os.Stderr),
		Data:   data.NewInventory(),
	}

	if err := app.createRootCommand(ctx).ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
