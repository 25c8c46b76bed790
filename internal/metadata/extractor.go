// Package metadata предоставляет функционал для извлечения сведений об альбомах из аудио файлов
package metadata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
	"github.com/gopxl/beep/mp3"
)

// TrackMetadata хранит метаданные одного трека
type TrackMetadata struct {
	Artist      string
	AlbumArtist string
	Title       string
	Album       string
}

// Album описывает альбом, собранный из нескольких треков
type Album struct {
	Artist   string
	Title    string
	Tracks   int
	Duration time.Duration
}

// Extractor извлекает метаданные из аудио файлов
type Extractor struct{}

// NewExtractor создает новый экстрактор метаданных
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFromReader извлекает метаданные из io.ReadSeeker
func (e *Extractor) ExtractFromReader(reader io.ReadSeeker, source string) TrackMetadata {
	// Сбрасываем reader в начало
	if _, err := reader.Seek(0, io.SeekStart); err != nil {
		return e.getDefaultMetadata(source)
	}

	metadata, err := tag.ReadFrom(reader)
	if err != nil {
		return e.getDefaultMetadata(source)
	}

	return TrackMetadata{
		Artist:      metadata.Artist(),
		AlbumArtist: metadata.AlbumArtist(),
		Title:       metadata.Title(),
		Album:       metadata.Album(),
	}
}

// ExtractFromFile извлекает метаданные из файла
func (e *Extractor) ExtractFromFile(filePath string) TrackMetadata {
	file, err := os.Open(filePath)
	if err != nil {
		return e.getDefaultMetadata(filePath)
	}
	defer file.Close()

	return e.ExtractFromReader(file, filePath)
}

// GetDuration получает длительность MP3 файла
func (e *Extractor) GetDuration(filePath string) (time.Duration, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия файла: %w", err)
	}
	defer file.Close()

	streamer, format, err := mp3.Decode(file)
	if err != nil {
		return 0, fmt.Errorf("ошибка декодирования MP3: %w", err)
	}
	defer streamer.Close()

	return format.SampleRate.D(streamer.Len()), nil
}

// GroupAlbums собирает файлы в альбомы по исполнителю альбома и названию.
// Порядок альбомов соответствует порядку первого появления в files.
// Длительность учитывается только для файлов, которые удалось декодировать.
func (e *Extractor) GroupAlbums(files []string) []Album {
	var albums []Album
	index := make(map[string]int)

	for _, path := range files {
		meta := e.ExtractFromFile(path)

		artist := meta.AlbumArtist
		if artist == "" {
			artist = meta.Artist
		}
		if artist == "" {
			artist = "Unknown Artist"
		}
		title := meta.Album
		if title == "" {
			title = meta.Title
		}

		key := strings.ToLower(artist) + "\x00" + strings.ToLower(title)
		i, ok := index[key]
		if !ok {
			albums = append(albums, Album{Artist: artist, Title: title})
			i = len(albums) - 1
			index[key] = i
		}

		albums[i].Tracks++
		if d, err := e.GetDuration(path); err == nil {
			albums[i].Duration += d
		}
	}

	return albums
}

// getDefaultMetadata возвращает метаданные по умолчанию на основе имени файла
func (e *Extractor) getDefaultMetadata(source string) TrackMetadata {
	fileName := filepath.Base(source)
	nameWithoutExt := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	// Пытаемся разобрать имя файла в формате "Artist - Title"
	parts := strings.Split(nameWithoutExt, " - ")
	if len(parts) >= 2 {
		return TrackMetadata{
			Artist: strings.TrimSpace(parts[0]),
			Title:  strings.TrimSpace(strings.Join(parts[1:], " - ")),
		}
	}

	return TrackMetadata{
		Artist: "Unknown Artist",
		Title:  nameWithoutExt,
	}
}
