package export

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"regexp"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/taskadmin/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubSeams(t *testing.T) {
	t.Helper()
	origLoad, origNew, origPut, origNow := loadDefaultAWSConfig, newS3ClientFromConfig, putObject, now
	t.Cleanup(func() {
		loadDefaultAWSConfig, newS3ClientFromConfig, putObject, now = origLoad, origNew, origPut, origNow
	})
	now = func() time.Time { return time.Date(2025, 1, 9, 23, 0, 0, 0, time.UTC) }
}

func testSettings() Settings {
	return Settings{
		Bucket:    "taskadmin",
		Region:    "us-east-1",
		Endpoint:  "http://127.0.0.1:9000",
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
	}
}

func TestStorageKey(t *testing.T) {
	key := StorageKey(time.Date(2025, 3, 7, 1, 2, 3, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^tasks/2025/03/07/[0-9a-f-]{36}\.json$`), key)
	assert.NotEqual(t, key, StorageKey(time.Date(2025, 3, 7, 1, 2, 3, 0, time.UTC)))
}

func TestExportTasks_NotConfigured(t *testing.T) {
	_, err := New(Settings{}).ExportTasks(context.Background(), "admin", nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestExportTasks_Uploads(t *testing.T) {
	stubSeams(t)

	loadDefaultAWSConfig = func(ctx context.Context, optFns ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		var lo awsconfig.LoadOptions
		for _, fn := range optFns {
			require.NoError(t, fn(&lo))
		}
		assert.Equal(t, "us-east-1", lo.Region)
		require.NotNil(t, lo.Credentials)
		creds, err := lo.Credentials.Retrieve(ctx)
		require.NoError(t, err)
		assert.Equal(t, "minioadmin", creds.AccessKeyID)
		return aws.Config{}, nil
	}

	var opts s3.Options
	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		for _, fn := range optFns {
			fn(&opts)
		}
		return &s3.Client{}
	}

	var (
		gotBucket, gotKey string
		gotDoc            Document
	)
	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		gotBucket, gotKey = aws.ToString(in.Bucket), aws.ToString(in.Key)
		assert.Equal(t, "application/json", aws.ToString(in.ContentType))
		b, err := io.ReadAll(in.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(b, &gotDoc))
		return &s3.PutObjectOutput{}, nil
	}

	tasks := []models.Task{{ID: "1", Title: "Complete User Authentication"}, {ID: "2", Title: "Design Task Management UI"}}
	key, err := New(testSettings()).ExportTasks(context.Background(), "admin", tasks)
	require.NoError(t, err)

	assert.Equal(t, "taskadmin", gotBucket)
	assert.Equal(t, key, gotKey)
	assert.Contains(t, key, "tasks/2025/01/09/")
	require.NotNil(t, opts.BaseEndpoint)
	assert.Equal(t, "http://127.0.0.1:9000", *opts.BaseEndpoint)
	assert.True(t, opts.UsePathStyle)
	assert.Equal(t, 2, gotDoc.Count)
	assert.Equal(t, "admin", gotDoc.ExportedBy)
	assert.Equal(t, "Design Task Management UI", gotDoc.Tasks[1].Title)
}

func TestExportTasks_Errors(t *testing.T) {
	stubSeams(t)

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, errors.New("no region")
	}
	_, err := New(testSettings()).ExportTasks(context.Background(), "admin", nil)
	assert.ErrorContains(t, err, "load aws config")

	loadDefaultAWSConfig = func(context.Context, ...func(*awsconfig.LoadOptions) error) (aws.Config, error) {
		return aws.Config{}, nil
	}
	newS3ClientFromConfig = func(aws.Config, ...func(*s3.Options)) *s3.Client { return &s3.Client{} }
	putObject = func(*s3.Client, context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, errors.New("access denied")
	}
	_, err = New(testSettings()).ExportTasks(context.Background(), "admin", nil)
	assert.ErrorContains(t, err, "access denied")
}
