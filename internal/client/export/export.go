// Package export uploads snapshots of the task list to an S3-compatible
// bucket.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/google/uuid"
)

var ErrNotConfigured = errors.New("export bucket is not configured")

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	now = time.Now
)

// Settings locate the bucket. Endpoint is optional and switches the client
// to path-style addressing, as MinIO expects.
type Settings struct {
	Bucket    string `json:"bucket" yaml:"bucket"`
	Region    string `json:"region" yaml:"region"`
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	AccessKey string `json:"access_key" yaml:"access_key"`
	SecretKey string `json:"secret_key" yaml:"secret_key"`
}

// Document is the uploaded JSON.
type Document struct {
	ExportedAt time.Time     `json:"exported_at"`
	ExportedBy string        `json:"exported_by,omitempty"`
	Count      int           `json:"count"`
	Tasks      []models.Task `json:"tasks"`
}

type Exporter struct {
	settings Settings
}

func New(s Settings) *Exporter {
	return &Exporter{settings: s}
}

// StorageKey returns a fresh object key under tasks/<yyyy>/<mm>/<dd>/.
func StorageKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("tasks/%04d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), uuid.New())
}

func (e *Exporter) client(ctx context.Context) (*s3.Client, error) {
	opts := []func(*config.LoadOptions) error{config.WithRegion(e.settings.Region)}
	if e.settings.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(e.settings.AccessKey, e.settings.SecretKey, ""),
		))
	}

	cfg, err := loadDefaultAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		if e.settings.Endpoint != "" {
			o.BaseEndpoint = aws.String(e.settings.Endpoint)
			o.UsePathStyle = true
		}
	}), nil
}

// ExportTasks uploads tasks and returns the object key.
func (e *Exporter) ExportTasks(ctx context.Context, user string, tasks []models.Task) (string, error) {
	if e.settings.Bucket == "" {
		return "", ErrNotConfigured
	}

	at := now()
	if tasks == nil {
		tasks = []models.Task{}
	}
	body, err := json.MarshalIndent(Document{
		ExportedAt: at.UTC(),
		ExportedBy: user,
		Count:      len(tasks),
		Tasks:      tasks,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}

	c, err := e.client(ctx)
	if err != nil {
		return "", err
	}

	key := StorageKey(at)
	_, err = putObject(c, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.settings.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return key, nil
}
