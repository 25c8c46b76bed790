// Package s3 предоставляет функционал для хранения резервных копий в Amazon S3
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// Config содержит настройки для S3
type Config struct {
	Region     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	BucketName string
}

type uploadAPI interface {
	UploadWithContext(ctx aws.Context, input *s3manager.UploadInput, opts ...func(*s3manager.Uploader)) (*s3manager.UploadOutput, error)
}

type downloadAPI interface {
	DownloadWithContext(ctx aws.Context, w io.WriterAt, input *s3.GetObjectInput, opts ...func(*s3manager.Downloader)) (int64, error)
}

type objectAPI interface {
	DeleteObjectWithContext(ctx aws.Context, input *s3.DeleteObjectInput, opts ...request.Option) (*s3.DeleteObjectOutput, error)
}

// Client обертка над S3 uploader, downloader и клиентом
type Client struct {
	uploader   uploadAPI
	downloader downloadAPI
	objects    objectAPI
	config     *Config
}

// NewClient создает новый S3 клиент
func NewClient(config *Config) (*Client, error) {
	awsConfig := &aws.Config{
		Region: aws.String(config.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AccessKey,
			config.SecretKey,
			"",
		),
	}

	// Если указан endpoint, добавляем его
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
		awsConfig.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AWS сессии: %w", err)
	}

	return &Client{
		uploader:   s3manager.NewUploader(sess),
		downloader: s3manager.NewDownloader(sess),
		objects:    s3.New(sess),
		config:     config,
	}, nil
}

// UploadFile загружает содержимое reader в S3 и возвращает URL объекта
func (c *Client) UploadFile(ctx context.Context, reader io.Reader, key string) (string, error) {
	_, err := c.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
		Body:   reader,
	})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки: %w", err)
	}

	return c.ObjectURL(key), nil
}

// DownloadFile скачивает объект key в w и возвращает количество байт
func (c *Client) DownloadFile(ctx context.Context, w io.WriterAt, key string) (int64, error) {
	n, err := c.downloader.DownloadWithContext(ctx, w, &s3.GetObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return 0, fmt.Errorf("ошибка скачивания файла из S3: %w", err)
	}
	return n, nil
}

// DeleteFile удаляет файл из S3
func (c *Client) DeleteFile(ctx context.Context, key string) error {
	_, err := c.objects.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("ошибка удаления файла из S3: %w", err)
	}

	return nil
}

// ObjectURL формирует URL объекта в бакете
func (c *Client) ObjectURL(key string) string {
	if c.config.Endpoint == "" {
		return fmt.Sprintf("s3://%s/%s", c.config.BucketName, key)
	}
	return fmt.Sprintf("%s/%s/%s", c.config.Endpoint, c.config.BucketName, key)
}
