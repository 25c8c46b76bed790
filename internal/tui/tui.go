// Package tui содержит компоненты для текстового пользовательского интерфейса
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/cdinventory/internal/data"
	"github.com/hazadus/cdinventory/internal/tui/app"
)

// App представляет основное TUI приложение
type App struct {
	inventory *data.Inventory
	saveFunc  func() error
}

// NewApp создает новый экземпляр TUI приложения.
// saveFunc вызывается после каждого изменения инвентаря.
func NewApp(inventory *data.Inventory, saveFunc func() error) *App {
	return &App{
		inventory: inventory,
		saveFunc:  saveFunc,
	}
}

// Model возвращает корневую модель Bubble Tea
func (tuiApp *App) Model() tea.Model {
	return app.NewMainModel(tuiApp.inventory, tuiApp.saveFunc)
}

// Run запускает TUI приложение
func (tuiApp *App) Run() error {
	p := tea.NewProgram(tuiApp.Model(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
