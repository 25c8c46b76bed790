package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/cdinventory/internal/backup"
	"github.com/hazadus/cdinventory/internal/s3"
	"github.com/hazadus/cdinventory/internal/utils"
)

const transferTimeout = 10 * time.Minute

// newBackupService создает сервис резервного копирования по настройкам приложения
func (app *Application) newBackupService() (*backup.Service, error) {
	if !app.Config.HasBackup() {
		return nil, fmt.Errorf("%w: укажите aws_bucket_name в %s", backup.ErrNotConfigured, defaultConfigPath)
	}

	client, err := s3.NewClient(&s3.Config{
		Region:     app.Config.AwsRegion,
		AccessKey:  app.Config.AwsAccessKey,
		SecretKey:  app.Config.AwsSecretKey,
		Endpoint:   app.Config.AwsEndpoint,
		BucketName: app.Config.AwsBucketName,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка создания S3 клиента: %w", err)
	}

	return backup.NewService(client, app.Config.DataFile, app.Config.BackupKey), nil
}

// createBackupCommand создает команду backup с привязкой к экземпляру приложения
func (app *Application) createBackupCommand(ctx context.Context) *cobra.Command {
	var remove bool

	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Upload the inventory data file to S3",
		Long:  `Upload the inventory data file to the configured S3 bucket with progress tracking.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			service, err := app.newBackupService()
			if err != nil {
				return err
			}

			backupCtx, cancel := context.WithTimeout(ctx, transferTimeout)
			defer cancel()

			if remove {
				return app.removeBackup(backupCtx, service)
			}
			return app.uploadBackup(backupCtx, service)
		},
	}

	cmd.Flags().BoolVar(&remove, "remove", false, "delete the remote backup instead of uploading")
	return cmd
}

// uploadBackup загружает файл инвентаря в S3 с отображением прогресса
func (app *Application) uploadBackup(ctx context.Context, service *backup.Service) error {
	info, err := os.Stat(app.Config.DataFile)
	if err != nil {
		return fmt.Errorf("ошибка получения информации о файле инвентаря: %w", err)
	}
	fileSize := info.Size()

	fmt.Printf("📤 Загружаем резервную копию в S3:\n")
	fmt.Printf("   Файл: %s\n", app.Config.DataFile)
	fmt.Printf("   Размер: %s\n", utils.FormatFileSize(fileSize))
	fmt.Printf("   Бакет: %s\n", app.Config.AwsBucketName)
	fmt.Printf("   Ключ: %s\n", app.Config.BackupKey)
	fmt.Println()

	progressChan := make(chan int64)
	done := make(chan struct{})

	go func() {
		defer close(done)
		startTime := time.Now()

		for {
			select {
			case progress, ok := <-progressChan:
				if !ok {
					return
				}
				if progress > 0 && fileSize > 0 {
					elapsed := time.Since(startTime)
					percentage := float64(progress) / float64(fileSize) * 100
					speed := float64(progress) / elapsed.Seconds()

					fmt.Printf("\r📊 Прогресс: %.1f%% | Скорость: %s/s | Прошло: %s",
						percentage,
						utils.FormatFileSize(int64(speed)),
						utils.FormatDuration(elapsed))
				}
			case <-ctx.Done():
				fmt.Printf("\n🚫 Загрузка отменена\n")
				// Дочитываем канал, чтобы не блокировать загрузку
				for range progressChan {
				}
				return
			}
		}
	}()

	result, err := service.Backup(ctx, func(bytesRead int64) {
		progressChan <- bytesRead
	})

	close(progressChan)
	<-done

	if err != nil {
		return fmt.Errorf("ошибка резервного копирования: %w", err)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("операция отменена: %w", ctx.Err())
	}

	fmt.Printf("\n✅ Резервная копия загружена в S3!\n")
	fmt.Printf("   URL: %s\n", result.URL)
	return nil
}

func (app *Application) removeBackup(ctx context.Context, service *backup.Service) error {
	if err := service.Remove(ctx); err != nil {
		return fmt.Errorf("ошибка удаления резервной копии: %w", err)
	}
	fmt.Printf("✅ Резервная копия %s удалена из бакета %s\n", app.Config.BackupKey, app.Config.AwsBucketName)
	return nil
}

// createRestoreCommand создает команду restore с привязкой к экземпляру приложения
func (app *Application) createRestoreCommand(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Replace the inventory data file with the S3 backup",
		Long:  `Download the backup from S3, verify it and replace the local inventory data file.`,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			service, err := app.newBackupService()
			if err != nil {
				return err
			}

			restoreCtx, cancel := context.WithTimeout(ctx, transferTimeout)
			defer cancel()

			return app.restoreBackup(restoreCtx, service)
		},
	}
}

func (app *Application) restoreBackup(ctx context.Context, service *backup.Service) error {
	fmt.Printf("📥 Скачиваем резервную копию %s из бакета %s\n", app.Config.BackupKey, app.Config.AwsBucketName)

	count, err := service.Restore(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("✅ Инвентарь восстановлен: %d дисков записано в %s\n", count, app.Config.DataFile)
	return nil
}
