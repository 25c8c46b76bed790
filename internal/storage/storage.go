// Package storage сохраняет и загружает инвентарь целиком в один файл
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hazadus/cdinventory/internal/codec"
	"github.com/hazadus/cdinventory/internal/data"
)

// ErrNotExist возвращается при загрузке, если файла инвентаря нет
var ErrNotExist = errors.New("файл инвентаря не существует")

// Load очищает инвентарь и заполняет его записями из файла.
// При любой ошибке инвентарь остается пустым.
func Load(path string, inv *data.Inventory) error {
	inv.Clear()

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return fmt.Errorf("ошибка чтения файла инвентаря: %w", err)
	}

	// Save заменяет файл переименованием, поэтому чтение без блокировки
	// видит либо старое, либо новое содержимое целиком
	if unlock, err := lockFile(path); err == nil {
		defer unlock()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotExist, path)
		}
		return fmt.Errorf("ошибка чтения файла инвентаря: %w", err)
	}

	records, err := codec.Decode(raw)
	if err != nil {
		return err
	}

	for _, r := range records {
		inv.Add(r)
	}
	return nil
}

// Save записывает инвентарь целиком, заменяя содержимое файла.
// Данные пишутся во временный файл рядом с целевым и переименовываются поверх него.
func Save(path string, inv *data.Inventory) error {
	raw, err := codec.Encode(inv.Records)
	if err != nil {
		return err
	}

	unlock, err := lockFile(path)
	if err != nil {
		return err
	}
	defer unlock()

	return WriteFileAtomic(path, raw)
}

// Replace проверяет, что raw является корректным файлом инвентаря, и записывает
// его вместо файла path. Возвращает количество записей.
func Replace(path string, raw []byte) (int, error) {
	records, err := codec.Decode(raw)
	if err != nil {
		return 0, err
	}

	unlock, err := lockFile(path)
	if err != nil {
		return 0, err
	}
	defer unlock()

	if err := WriteFileAtomic(path, raw); err != nil {
		return 0, err
	}
	return len(records), nil
}

// WriteFileAtomic записывает content во временный файл и переименовывает его в path
func WriteFileAtomic(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("ошибка создания временного файла: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("ошибка записи файла инвентаря: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("ошибка синхронизации файла инвентаря: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("ошибка закрытия файла инвентаря: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("ошибка установки прав файла инвентаря: %w", err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("ошибка замены файла инвентаря: %w", err)
	}
	return nil
}
