//go:build cgo

package export

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/hazadus/cdinventory/internal/data"
)

// SQLiteExporter выгружает диски в таблицу cds базы SQLite.
// Существующая таблица очищается перед записью.
type SQLiteExporter struct{}

// Export записывает диски в базу SQLite, сохраняя порядок в колонке position
func (e *SQLiteExporter) Export(path string, records []data.Record) error {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("ошибка открытия базы SQLite: %w", err)
	}
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS cds(
		position INTEGER PRIMARY KEY,
		id INTEGER NOT NULL,
		title TEXT NOT NULL,
		artist TEXT NOT NULL
	);`)
	if err != nil {
		return fmt.Errorf("ошибка создания таблицы: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("ошибка начала транзакции: %w", err)
	}

	if _, err := tx.Exec("DELETE FROM cds"); err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка очистки таблицы: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO cds (position, id, title, artist) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("ошибка подготовки запроса: %w", err)
	}
	defer stmt.Close()

	for i, r := range records {
		if _, err := stmt.Exec(i, r.ID, r.Title, r.Artist); err != nil {
			tx.Rollback()
			return fmt.Errorf("ошибка записи диска %d: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ошибка фиксации транзакции: %w", err)
	}
	return nil
}
