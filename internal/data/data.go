// Package data содержит модель инвентаря компакт-дисков
package data

import (
	"errors"
	"fmt"
)

// ErrNotFound возвращается, если диска с указанным ID нет в инвентаре
var ErrNotFound = errors.New("диск не найден")

// Record описывает один диск в инвентаре
type Record struct {
	ID     int    `yaml:"id"`
	Title  string `yaml:"title"`
	Artist string `yaml:"artist"`
}

// Inventory хранит упорядоченную последовательность дисков текущей сессии.
// ID не обязаны быть уникальными.
type Inventory struct {
	Records []Record `yaml:"records"`
}

// NewInventory создает пустой инвентарь
func NewInventory() *Inventory {
	return &Inventory{
		Records: make([]Record, 0),
	}
}

// Add добавляет диск в конец инвентаря без проверки на дубликаты
func (inv *Inventory) Add(record Record) {
	inv.Records = append(inv.Records, record)
}

// Delete удаляет первый диск с указанным ID.
// Возвращает false, если такого диска нет; инвентарь при этом не меняется.
func (inv *Inventory) Delete(id int) bool {
	for i := range inv.Records {
		if inv.Records[i].ID == id {
			inv.Records = append(inv.Records[:i], inv.Records[i+1:]...)
			return true
		}
	}
	return false
}

// Clear удаляет все диски
func (inv *Inventory) Clear() {
	inv.Records = make([]Record, 0)
}

// Replace заменяет содержимое инвентаря копией records
func (inv *Inventory) Replace(records []Record) {
	inv.Records = make([]Record, len(records))
	copy(inv.Records, records)
}

// Len возвращает количество дисков
func (inv *Inventory) Len() int {
	return len(inv.Records)
}

// RecordByID возвращает первый диск с указанным ID
func (inv *Inventory) RecordByID(id int) (*Record, error) {
	for i := range inv.Records {
		if inv.Records[i].ID == id {
			return &inv.Records[i], nil
		}
	}
	return nil, fmt.Errorf("диска с ID %d: %w", id, ErrNotFound)
}

// NextID возвращает ID, больший всех существующих
func (inv *Inventory) NextID() int {
	if len(inv.Records) == 0 {
		return 1
	}
	maxID := inv.Records[0].ID
	for _, r := range inv.Records {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	return maxID + 1
}
