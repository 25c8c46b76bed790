// Package export выгружает инвентарь в сторонние форматы
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hazadus/cdinventory/internal/data"
)

// Format формат выгрузки
type Format string

const (
	// FormatYAML список дисков в YAML
	FormatYAML Format = "yaml"
	// FormatSQLite таблица cds в базе SQLite
	FormatSQLite Format = "sqlite"
)

// Exporter записывает диски в файл
type Exporter interface {
	Export(path string, records []data.Record) error
}

// FormatFromPath определяет формат выгрузки по расширению файла
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	default:
		return "", fmt.Errorf("неизвестный формат выгрузки для файла %s (ожидается .yaml, .yml, .db или .sqlite)", path)
	}
}

// New возвращает Exporter для указанного формата
func New(format Format) (Exporter, error) {
	switch format {
	case FormatYAML:
		return YAMLExporter{}, nil
	case FormatSQLite:
		return &SQLiteExporter{}, nil
	default:
		return nil, fmt.Errorf("неизвестный формат выгрузки: %s", format)
	}
}

// ToFile выгружает диски в файл, выбирая формат по расширению
func ToFile(path string, records []data.Record) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	exporter, err := New(format)
	if err != nil {
		return err
	}
	return exporter.Export(path, records)
}

// YAMLExporter выгружает диски в YAML
type YAMLExporter struct{}

// Export записывает диски в YAML файл
func (YAMLExporter) Export(path string, records []data.Record) error {
	doc := data.Inventory{Records: records}
	if doc.Records == nil {
		doc.Records = make([]data.Record, 0)
	}

	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("ошибка сериализации данных: %w", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла выгрузки: %w", err)
	}
	return nil
}
