// Package recordlist содержит модель экрана списка дисков для TUI
package recordlist

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hazadus/cdinventory/internal/cd"
	"github.com/hazadus/cdinventory/internal/data"
	"github.com/hazadus/cdinventory/internal/utils"
)

var (
	titleStyle        = lipgloss.NewStyle().MarginLeft(2)
	itemStyle         = lipgloss.NewStyle().PaddingLeft(4)
	selectedItemStyle = lipgloss.NewStyle().PaddingLeft(2).Foreground(lipgloss.Color("170"))
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
	helpStyle         = list.DefaultStyles().HelpStyle.PaddingLeft(4).PaddingBottom(1)
	statusStyle       = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("46"))
	errorStyle        = lipgloss.NewStyle().PaddingLeft(4).Foreground(lipgloss.Color("196"))
	quitTextStyle     = lipgloss.NewStyle().Margin(1, 0, 2, 4)
)

// RecordEditMsg отправляется при выборе диска для редактирования.
// Index указывает позицию диска в инвентаре.
type RecordEditMsg struct {
	Index  int
	Record data.Record
}

// RecordAddMsg отправляется при добавлении нового диска
type RecordAddMsg struct {
	Record data.Record
}

// recordItem реализует интерфейс list.Item для диска
type recordItem struct {
	index  int
	record data.Record
}

func (i recordItem) FilterValue() string {
	return fmt.Sprintf("%s %s", i.record.Artist, i.record.Title)
}

// recordItemDelegate реализует отображение элементов списка
type recordItemDelegate struct{}

func (d recordItemDelegate) Height() int                             { return 1 }
func (d recordItemDelegate) Spacing() int                            { return 0 }
func (d recordItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d recordItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(recordItem)
	if !ok {
		return
	}

	// ID | Название | Исполнитель
	str := fmt.Sprintf("%-6d %-40s %s",
		i.record.ID,
		utils.TruncateString(i.record.Title, 40),
		utils.TruncateString(i.record.Artist, 30))

	fn := itemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return selectedItemStyle.Render("> " + strings.Join(s, " "))
		}
	}

	fmt.Fprint(w, fn(str))
}

// Model представляет модель экрана списка дисков
type Model struct {
	list      list.Model
	cdManager *cd.Manager
	saveFunc  func() error
	status    string
	err       string
	quitting  bool
}

// NewModel создает новую модель списка дисков
func NewModel(inventory *data.Inventory, saveFunc func() error) *Model {
	l := list.New(buildItems(inventory.Records), recordItemDelegate{}, 0, 0)
	l.Title = "Компакт-диски"
	l.SetShowStatusBar(false)
	l.SetShowTitle(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle
	l.Styles.PaginationStyle = paginationStyle
	l.Styles.HelpStyle = helpStyle

	return &Model{
		list:      l,
		cdManager: cd.NewManager(inventory),
		saveFunc:  saveFunc,
	}
}

func buildItems(records []data.Record) []list.Item {
	items := make([]list.Item, len(records))
	for i, r := range records {
		items[i] = recordItem{index: i, record: r}
	}
	return items
}

// Init инициализирует модель
func (m *Model) Init() tea.Cmd {
	return nil
}

// RefreshData обновляет элементы списка из инвентаря
func (m *Model) RefreshData() {
	m.list.SetItems(buildItems(m.cdManager.ListRecords()))
}

// SetStatus показывает сообщение под списком
func (m *Model) SetStatus(status string) {
	m.status = status
	m.err = ""
}

// Update обрабатывает сообщения и обновляет модель
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height - 4)
		return m, nil

	case tea.KeyMsg:
		// Во время ввода фильтра клавиши принадлежат списку
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit

		case "enter", "e":
			if item, ok := m.list.SelectedItem().(recordItem); ok {
				return m, func() tea.Msg {
					return RecordEditMsg{Index: item.index, Record: item.record}
				}
			}
			return m, nil

		case "a":
			next := data.Record{ID: m.cdManager.NextID()}
			return m, func() tea.Msg {
				return RecordAddMsg{Record: next}
			}

		case "d":
			if item, ok := m.list.SelectedItem().(recordItem); ok {
				m.deleteRecord(item)
			}
			return m, nil

		case "s":
			m.save("Инвентарь сохранен")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// deleteRecord удаляет выбранный диск и сохраняет инвентарь
func (m *Model) deleteRecord(item recordItem) {
	if err := m.cdManager.RemoveRecordAt(item.index); err != nil {
		m.err = fmt.Sprintf("Ошибка удаления диска: %v", err)
		m.status = ""
		return
	}
	m.RefreshData()
	m.save(fmt.Sprintf("Диск #%d удален", item.record.ID))
}

func (m *Model) save(status string) {
	if m.saveFunc != nil {
		if err := m.saveFunc(); err != nil {
			m.err = fmt.Sprintf("Ошибка сохранения в файл: %v", err)
			m.status = ""
			return
		}
	}
	m.SetStatus(status)
}

// View отображает модель
func (m *Model) View() string {
	if m.quitting {
		return quitTextStyle.Render("До свидания!")
	}

	var b strings.Builder
	b.WriteString(m.list.View())
	b.WriteString("\n")
	if m.err != "" {
		b.WriteString(errorStyle.Render(m.err))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("Enter/e: редактировать • a: добавить • d: удалить • s: сохранить • q: выход"))
	return b.String()
}
