// Package config содержит функции для загрузки конфигурации приложения
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultDataFile имя файла инвентаря в рабочем каталоге
	DefaultDataFile = "CDInventory.dat"
	// DefaultBackupKey ключ резервной копии в бакете
	DefaultBackupKey = "CDInventory.dat"
)

// Config структура для хранения конфигурации приложения
type Config struct {
	DataFile      string `yaml:"data_file"`
	AwsBucketName string `yaml:"aws_bucket_name"`
	AwsAccessKey  string `yaml:"aws_access_key"`
	AwsSecretKey  string `yaml:"aws_secret_key"`
	AwsRegion     string `yaml:"aws_region"`
	AwsEndpoint   string `yaml:"aws_endpoint"`
	BackupKey     string `yaml:"backup_key"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.DataFile == "" {
		c.DataFile = DefaultDataFile
	}
	if c.BackupKey == "" {
		c.BackupKey = DefaultBackupKey
	}
}

// LoadConfig загружает конфигурацию приложения из указанного файла.
// Если файла нет, возвращается конфигурация по умолчанию.
func LoadConfig(filePath string) (*Config, error) {
	path, err := ExpandHome(filePath)
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("ошибка чтения конфигурации: %w", err)
	}

	config := &Config{}
	if err := yaml.Unmarshal(raw, config); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}

	// Устанавливаем значения по умолчанию, если они не заданы
	config.applyDefaults()

	config.DataFile, err = ExpandHome(config.DataFile)
	if err != nil {
		return nil, err
	}

	return config, nil
}

// ExpandHome раскрывает ведущую тильду в пути
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return strings.Replace(path, "~", home, 1), nil
}

// HasBackup сообщает, настроено ли хранилище резервных копий
func (c *Config) HasBackup() bool {
	return c.AwsBucketName != ""
}
