package tui

import (
	"testing"

	"github.com/hazadus/cdinventory/internal/data"
	"github.com/hazadus/cdinventory/internal/tui/app"
)

func TestNewApp(t *testing.T) {
	inventory := data.NewInventory()
	tuiApp := NewApp(inventory, nil)

	if tuiApp.inventory != inventory {
		t.Error("Инвентарь должен быть сохранен")
	}

	model, ok := tuiApp.Model().(*app.MainModel)
	if !ok {
		t.Fatalf("Ожидалась модель *app.MainModel, получено %T", tuiApp.Model())
	}
	if model.View() == "" {
		t.Error("Ожидался непустой начальный экран")
	}
}
