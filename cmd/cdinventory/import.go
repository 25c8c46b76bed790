package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hazadus/cdinventory/internal/cd"
	"github.com/hazadus/cdinventory/internal/data"
	"github.com/hazadus/cdinventory/internal/metadata"
	"github.com/hazadus/cdinventory/internal/utils"
)

// createImportCommand создает команду import с привязкой к экземпляру приложения
func (app *Application) createImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import [audio files...]",
		Short: "Add CDs from audio file tags",
		Long:  `Read tags from audio files, group them into albums and add one CD per album.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return app.importAlbums(args)
		},
	}
}

func (app *Application) importAlbums(paths []string) error {
	var files []string
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			fmt.Printf("⚠️  Пропускаем %s: %v\n", path, err)
			continue
		}
		files = append(files, path)
	}
	if len(files) == 0 {
		return fmt.Errorf("нет файлов для импорта")
	}

	if err := app.LoadData(); err != nil {
		return err
	}

	manager := cd.NewManager(app.Data)
	albums := metadata.NewExtractor().GroupAlbums(files)

	for _, album := range albums {
		record := data.Record{
			ID:     manager.NextID(),
			Title:  album.Title,
			Artist: album.Artist,
		}
		manager.AddRecord(record)

		fmt.Printf("💿 #%d %s (by: %s)\n", record.ID, record.Title, record.Artist)
		fmt.Printf("   Треков: %d, время звучания: %s\n", album.Tracks, formatRunningTime(album.Duration))
	}

	if err := app.SaveData(); err != nil {
		return err
	}

	fmt.Printf("\n📦 Добавлено дисков: %d\n", len(albums))
	return nil
}

func formatRunningTime(d time.Duration) string {
	if d == 0 {
		return "N/A"
	}
	return utils.FormatDuration(d)
}
