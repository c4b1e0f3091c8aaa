package storage

import (
	"bytes"
	"context"
	"log/slog"
	"os"

	"github.com/alekLukanen/errs"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const (
	ObjectStorageAuthTypeStatic = "static"
)

// IObjectStorage is the bucket store archives are uploaded to and
// fetched from.
type IObjectStorage interface {
	Upload(ctx context.Context, bucket, key string, data []byte) error
	UploadFile(ctx context.Context, bucket, key, filePath string) error
	Download(ctx context.Context, bucket, key string) ([]byte, error)
	DownloadFile(ctx context.Context, bucket, key, filePath string) error
	Delete(ctx context.Context, bucket, key string) error
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)
}

type ObjectStorageOptions struct {
	Endpoint     string
	Region       string
	AuthKey      string
	AuthSecret   string
	UsePathStyle bool
	AuthType     string
}

func NewObjectStorageOptionsFromStaticCredentials(
	endpoint string,
	region string,
	authKey string,
	authSecret string,
	usePathStyle bool,
) ObjectStorageOptions {
	return ObjectStorageOptions{
		Endpoint:     endpoint,
		Region:       region,
		AuthKey:      authKey,
		AuthSecret:   authSecret,
		UsePathStyle: usePathStyle,
		AuthType:     ObjectStorageAuthTypeStatic,
	}
}

// ObjectStorage is an S3 compatible IObjectStorage.
type ObjectStorage struct {
	logger *slog.Logger

	client *s3.Client
}

func NewObjectStorage(
	ctx context.Context,
	logger *slog.Logger,
	options ObjectStorageOptions,
) (*ObjectStorage, error) {

	configFuncs := make([]func(*config.LoadOptions) error, 0)
	configFuncs = append(configFuncs, config.WithRegion(options.Region))

	if options.AuthType == ObjectStorageAuthTypeStatic {
		creds := credentials.NewStaticCredentialsProvider(options.AuthKey, options.AuthSecret, "")
		configFuncs = append(configFuncs, config.WithCredentialsProvider(creds))
	}

	s3Config, err := config.LoadDefaultConfig(ctx, configFuncs...)
	if err != nil {
		return nil, errs.Wrap(err)
	}

	client := s3.NewFromConfig(s3Config, func(o *s3.Options) {
		if options.Endpoint != "" {
			o.BaseEndpoint = aws.String(options.Endpoint)
		}
		o.UsePathStyle = options.UsePathStyle
	})

	return &ObjectStorage{
		logger: logger,
		client: client,
	}, nil
}

func (obj *ObjectStorage) Upload(ctx context.Context, bucket, key string, data []byte) error {
	obj.logger.Info(
		"uploading object", slog.String("bucket", bucket), slog.String("key", key), slog.Int("numBytes", len(data)),
	)

	uploader := manager.NewUploader(obj.client)
	_, err := uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return errs.Wrap(err)
	}
	return nil
}

// UploadFile streams a local file to the bucket without loading it into
// memory.
func (obj *ObjectStorage) UploadFile(ctx context.Context, bucket, key, filePath string) error {
	obj.logger.Info(
		"uploading file", slog.String("bucket", bucket), slog.String("key", key), slog.String("filePath", filePath),
	)

	f, err := os.Open(filePath)
	if err != nil {
		return errs.Wrap(err)
	}
	defer f.Close()

	uploader := manager.NewUploader(obj.client)
	_, err = uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   f,
	})
	if err != nil {
		return errs.Wrap(err)
	}
	return nil
}

func (obj *ObjectStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	obj.logger.Info("downloading object", slog.String("bucket", bucket), slog.String("key", key))

	downloader := manager.NewDownloader(obj.client)
	buf := manager.NewWriteAtBuffer([]byte{})
	_, err := downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errs.Wrap(err)
	}
	return buf.Bytes(), nil
}

func (obj *ObjectStorage) DownloadFile(ctx context.Context, bucket, key, filePath string) error {
	obj.logger.Info(
		"downloading file", slog.String("bucket", bucket), slog.String("key", key), slog.String("filePath", filePath),
	)

	f, err := os.Create(filePath)
	if err != nil {
		return errs.Wrap(err)
	}
	defer f.Close()

	downloader := manager.NewDownloader(obj.client)
	_, err = downloader.Download(ctx, f, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errs.Wrap(err)
	}
	return nil
}

func (obj *ObjectStorage) Delete(ctx context.Context, bucket, key string) error {
	obj.logger.Info("deleting object", slog.String("bucket", bucket), slog.String("key", key))

	_, err := obj.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return errs.Wrap(err)
	}
	return nil
}

func (obj *ObjectStorage) ListObjects(ctx context.Context, bucket, prefix string) ([]string, error) {
	obj.logger.Info("listing objects", slog.String("bucket", bucket), slog.String("prefix", prefix))

	keys := make([]string, 0)
	paginator := s3.NewListObjectsV2Paginator(obj.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, errs.Wrap(err)
		}
		for _, item := range page.Contents {
			keys = append(keys, aws.ToString(item.Key))
		}
	}
	return keys, nil
}
