// Package editor содержит модель экрана редактирования диска для TUI
package editor

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/cdinventory/internal/cd"
	"github.com/hazadus/cdinventory/internal/data"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true).Margin(1, 0)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Width(15)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Margin(1, 0)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Margin(1, 0)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Margin(1, 0)
)

// NewRecordIndex обозначает новый диск, которого еще нет в инвентаре
const NewRecordIndex = -1

// RecordSavedMsg отправляется, когда диск сохранен
type RecordSavedMsg struct {
	Record data.Record
}

// GoBackMsg отправляется при выходе из редактора
type GoBackMsg struct{}

type fieldType int

const (
	idField fieldType = iota
	titleField
	artistField
	numFields
)

var labels = [numFields]string{"ID:", "Название:", "Исполнитель:"}

// Model представляет модель экрана редактирования диска
type Model struct {
	cdManager  *cd.Manager
	index      int
	original   data.Record
	inputs     []textinput.Model
	focusIndex int
	err        string
	success    string
	saveFunc   func() error
}

// NewModel создает редактор диска в позиции index.
// Для нового диска index равен NewRecordIndex.
func NewModel(inventory *data.Inventory, index int, record data.Record, saveFunc func() error) *Model {
	inputs := make([]textinput.Model, numFields)

	inputs[idField] = textinput.New()
	inputs[idField].Placeholder = "Целое число"
	inputs[idField].SetValue(strconv.Itoa(record.ID))
	inputs[idField].Focus()
	inputs[idField].PromptStyle = focusedStyle
	inputs[idField].TextStyle = focusedStyle

	inputs[titleField] = textinput.New()
	inputs[titleField].Placeholder = "Введите название диска"
	inputs[titleField].SetValue(record.Title)

	inputs[artistField] = textinput.New()
	inputs[artistField].Placeholder = "Введите исполнителя"
	inputs[artistField].SetValue(record.Artist)

	return &Model{
		cdManager: cd.NewManager(inventory),
		index:     index,
		original:  record,
		inputs:    inputs,
		saveFunc:  saveFunc,
	}
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, func() tea.Msg {
				return GoBackMsg{}
			}

		case "ctrl+s":
			return m, m.saveRecord()

		case "tab", "shift+tab", "enter", "up", "down":
			s := msg.String()

			if s == "enter" && m.focusIndex == len(m.inputs) {
				return m, m.saveRecord()
			}

			if s == "up" || s == "shift+tab" {
				m.focusIndex--
			} else {
				m.focusIndex++
			}

			if m.focusIndex > len(m.inputs) {
				m.focusIndex = 0
			} else if m.focusIndex < 0 {
				m.focusIndex = len(m.inputs)
			}

			return m, m.updateFocus()
		}

	case tea.WindowSizeMsg:
		for i := range m.inputs {
			m.inputs[i].Width = msg.Width - 20
		}
		return m, nil
	}

	if m.focusIndex < len(m.inputs) {
		var cmd tea.Cmd
		m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *Model) updateFocus() tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		if i == m.focusIndex {
			cmds[i] = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
		} else {
			m.inputs[i].Blur()
			m.inputs[i].PromptStyle = blurredStyle
			m.inputs[i].TextStyle = blurredStyle
		}
	}
	return tea.Batch(cmds...)
}

// saveRecord проверяет поля, обновляет инвентарь и сохраняет его в файл.
// При ошибке возвращает nil и показывает сообщение в редакторе.
func (m *Model) saveRecord() tea.Cmd {
	idStr := strings.TrimSpace(m.inputs[idField].Value())
	id, err := strconv.Atoi(idStr)
	if err != nil {
		m.fail("ID должен быть целым числом")
		return nil
	}

	record := data.Record{
		ID:     id,
		Title:  strings.TrimSpace(m.inputs[titleField].Value()),
		Artist: strings.TrimSpace(m.inputs[artistField].Value()),
	}

	if m.index == NewRecordIndex {
		m.cdManager.AddRecord(record)
		m.index = len(m.cdManager.ListRecords()) - 1
	} else if err := m.cdManager.UpdateRecord(m.index, record); err != nil {
		m.fail(fmt.Sprintf("Ошибка обновления диска: %v", err))
		return nil
	}
	m.original = record

	if m.saveFunc != nil {
		if err := m.saveFunc(); err != nil {
			m.fail(fmt.Sprintf("Ошибка сохранения в файл: %v", err))
			return nil
		}
	}

	m.err = ""
	m.success = "Диск успешно сохранен!"

	return tea.Batch(
		func() tea.Msg { return RecordSavedMsg{Record: record} },
		tea.Tick(time.Second, func(time.Time) tea.Msg { return GoBackMsg{} }),
	)
}

func (m *Model) fail(msg string) {
	m.err = msg
	m.success = ""
}

// View отображает модель
func (m *Model) View() string {
	var b strings.Builder

	title := fmt.Sprintf("Редактирование диска #%d", m.original.ID)
	if m.index == NewRecordIndex {
		title = "Новый диск"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	for i, input := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString(" ")
		b.WriteString(input.View())
		b.WriteString("\n\n")
	}

	saveButton := "[ Сохранить ]"
	if m.focusIndex == len(m.inputs) {
		saveButton = focusedStyle.Render(saveButton)
	} else {
		saveButton = blurredStyle.Render(saveButton)
	}
	b.WriteString(saveButton)
	b.WriteString("\n\n")

	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	}
	if m.success != "" {
		b.WriteString(successStyle.Render(m.success))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("Tab/Enter: следующее поле • Shift+Tab: предыдущее поле"))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("Ctrl+S: сохранить • Esc: отмена"))

	return b.String()
}
