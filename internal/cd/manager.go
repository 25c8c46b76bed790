// Package cd содержит логику управления дисками для интерфейсов пользователя
package cd

import (
	"fmt"

	"github.com/hazadus/cdinventory/internal/data"
)

// Manager управляет дисками в инвентаре
type Manager struct {
	inventory *data.Inventory
}

// NewManager создает новый экземпляр Manager
func NewManager(inventory *data.Inventory) *Manager {
	return &Manager{
		inventory: inventory,
	}
}

// ListRecords возвращает список всех дисков в порядке инвентаря
func (m *Manager) ListRecords() []data.Record {
	return m.inventory.Records
}

// AddRecord добавляет диск в конец инвентаря
func (m *Manager) AddRecord(record data.Record) {
	m.inventory.Add(record)
}

// DeleteRecord удаляет первый диск с указанным ID
func (m *Manager) DeleteRecord(id int) error {
	if !m.inventory.Delete(id) {
		return fmt.Errorf("диска с ID %d: %w", id, data.ErrNotFound)
	}
	return nil
}

// UpdateRecord заменяет диск в позиции index.
// Позиция используется вместо ID, так как ID могут повторяться.
func (m *Manager) UpdateRecord(index int, record data.Record) error {
	if index < 0 || index >= len(m.inventory.Records) {
		return fmt.Errorf("позиция %d вне диапазона (всего дисков: %d)", index, len(m.inventory.Records))
	}
	m.inventory.Records[index] = record
	return nil
}

// NextID возвращает свободный ID для нового диска
func (m *Manager) NextID() int {
	return m.inventory.NextID()
}

// RemoveRecordAt удаляет диск в позиции index
func (m *Manager) RemoveRecordAt(index int) error {
	if index < 0 || index >= len(m.inventory.Records) {
		return fmt.Errorf("позиция %d вне диапазона (всего дисков: %d)", index, len(m.inventory.Records))
	}
	m.inventory.Records = append(m.inventory.Records[:index], m.inventory.Records[index+1:]...)
	return nil
}
