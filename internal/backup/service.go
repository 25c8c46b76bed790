// Package backup предоставляет резервное копирование файла инвентаря во внешнее хранилище
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go/aws"

	"github.com/hazadus/cdinventory/internal/storage"
)

// ErrNotConfigured возвращается, если хранилище резервных копий не настроено
var ErrNotConfigured = errors.New("хранилище резервных копий не настроено")

// ObjectStore хранилище объектов, в которое помещаются резервные копии
type ObjectStore interface {
	UploadFile(ctx context.Context, reader io.Reader, key string) (string, error)
	DownloadFile(ctx context.Context, w io.WriterAt, key string) (int64, error)
	DeleteFile(ctx context.Context, key string) error
}

// Service управляет резервными копиями файла инвентаря
type Service struct {
	store    ObjectStore
	dataFile string
	key      string
}

// NewService создает новый сервис резервного копирования
func NewService(store ObjectStore, dataFile, key string) *Service {
	return &Service{
		store:    store,
		dataFile: dataFile,
		key:      key,
	}
}

// Result содержит результат резервного копирования
type Result struct {
	URL  string
	Size int64
}

// Backup загружает файл инвентаря в хранилище
func (s *Service) Backup(ctx context.Context, progressCallback func(int64)) (*Result, error) {
	if s.store == nil {
		return nil, ErrNotConfigured
	}

	file, err := os.Open(s.dataFile)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия файла инвентаря: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	// Создаем reader с отслеживанием прогресса
	var reader io.Reader = file
	if progressCallback != nil {
		reader = &ProgressReader{
			Reader:     file,
			Size:       info.Size(),
			OnProgress: progressCallback,
		}
	}

	url, err := s.store.UploadFile(ctx, reader, s.key)
	if err != nil {
		return nil, fmt.Errorf("ошибка загрузки в S3: %w", err)
	}

	return &Result{URL: url, Size: info.Size()}, nil
}

// Restore скачивает резервную копию и заменяет ею файл инвентаря.
// Поврежденная копия не записывается. Возвращает количество дисков.
func (s *Service) Restore(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, ErrNotConfigured
	}

	buf := aws.NewWriteAtBuffer(nil)
	if _, err := s.store.DownloadFile(ctx, buf, s.key); err != nil {
		return 0, fmt.Errorf("ошибка скачивания резервной копии: %w", err)
	}

	count, err := storage.Replace(s.dataFile, buf.Bytes())
	if err != nil {
		return 0, fmt.Errorf("ошибка восстановления резервной копии: %w", err)
	}
	return count, nil
}

// Remove удаляет резервную копию из хранилища
func (s *Service) Remove(ctx context.Context) error {
	if s.store == nil {
		return ErrNotConfigured
	}
	return s.store.DeleteFile(ctx, s.key)
}

// ProgressReader структура для отслеживания прогресса чтения
type ProgressReader struct {
	io.Reader
	Size       int64
	OnProgress func(int64)
	bytesRead  int64
}

func (pr *ProgressReader) Read(p []byte) (n int, err error) {
	n, err = pr.Reader.Read(p)
	pr.bytesRead += int64(n)
	if pr.OnProgress != nil {
		pr.OnProgress(pr.bytesRead)
	}
	return n, err
}
