//go:build !cgo

package export

import (
	"errors"

	"github.com/hazadus/cdinventory/internal/data"
)

// SQLiteExporter недоступен в сборках без CGO
type SQLiteExporter struct{}

// Export всегда возвращает ошибку в сборках без CGO
func (e *SQLiteExporter) Export(string, []data.Record) error {
	return errors.New("выгрузка в SQLite недоступна в сборке без CGO, пересоберите с CGO_ENABLED=1")
}
