// Package app содержит основную логику TUI приложения
package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hazadus/cdinventory/internal/data"
	"github.com/hazadus/cdinventory/internal/tui/editor"
	"github.com/hazadus/cdinventory/internal/tui/recordlist"
)

// ScreenType определяет тип текущего экрана
type ScreenType int

const (
	// RecordListScreen - экран списка дисков
	RecordListScreen ScreenType = iota
	// EditorScreen - экран редактирования
	EditorScreen
)

// MainModel представляет главную модель TUI
type MainModel struct {
	inventory     *data.Inventory
	currentScreen ScreenType
	listModel     *recordlist.Model
	editorModel   *editor.Model
	saveFunc      func() error
}

// NewMainModel создает новую главную модель
func NewMainModel(inventory *data.Inventory, saveFunc func() error) *MainModel {
	return &MainModel{
		inventory:     inventory,
		currentScreen: RecordListScreen,
		listModel:     recordlist.NewModel(inventory, saveFunc),
		saveFunc:      saveFunc,
	}
}

// Init инициализирует модель
func (m *MainModel) Init() tea.Cmd {
	return m.listModel.Init()
}

// Update обрабатывает сообщения
func (m *MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case recordlist.RecordEditMsg:
		m.currentScreen = EditorScreen
		m.editorModel = editor.NewModel(m.inventory, msg.Index, msg.Record, m.saveFunc)
		return m, m.editorModel.Init()

	case recordlist.RecordAddMsg:
		m.currentScreen = EditorScreen
		m.editorModel = editor.NewModel(m.inventory, editor.NewRecordIndex, msg.Record, m.saveFunc)
		return m, m.editorModel.Init()

	case editor.GoBackMsg:
		m.currentScreen = RecordListScreen
		m.editorModel = nil
		m.listModel.RefreshData()
		return m, nil

	case editor.RecordSavedMsg:
		m.listModel.RefreshData()
		m.listModel.SetStatus(fmt.Sprintf("Диск #%d сохранен", msg.Record.ID))
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentScreen {
	case RecordListScreen:
		m.listModel, cmd = m.listModel.Update(msg)
	case EditorScreen:
		if m.editorModel != nil {
			m.editorModel, cmd = m.editorModel.Update(msg)
		}
	}
	return m, cmd
}

// View отображает интерфейс
func (m *MainModel) View() string {
	switch m.currentScreen {
	case RecordListScreen:
		return m.listModel.View()

	case EditorScreen:
		if m.editorModel != nil {
			return m.editorModel.View()
		}
		return "Ошибка: модель редактора не инициализирована"

	default:
		return "Неизвестный экран"
	}
}
