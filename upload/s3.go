package upload

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/bitrise-io/go-utils/retry"
	"github.com/bitrise-io/go-utils/v2/log"
)

const (
	numS3Retries = 3
	s3RetryWait  = 5 * time.Second
)

// S3UploadParams configures a direct upload into a customer-owned bucket.
// Self-hosted deployments store attachments this way instead of going
// through the pre-signed part protocol.
type S3UploadParams struct {
	FilePath        string
	FileChecksum    string
	FileSize        int64
	ObjectKey       string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
}

type s3AttachmentStore struct {
	client      *s3.Client
	bucket      string
	filePath    string
	checksum    string
	fileSize    int64
	contentType string
}

// UploadToS3 stores an attachment in the given bucket. Attachments are
// content-addressed by the caller's object key: if an object with the same
// key and SHA-256 checksum is already present, the content is already there
// and the put is skipped.
func UploadToS3(ctx context.Context, params S3UploadParams, logger log.Logger) error {
	if params.Bucket == "" {
		return fmt.Errorf("Bucket must not be empty")
	}
	if params.FilePath == "" {
		return fmt.Errorf("FilePath must not be empty")
	}
	if params.ObjectKey == "" {
		return fmt.Errorf("ObjectKey must not be empty")
	}

	cfg, err := awsConfig(ctx, params.Region, params.AccessKeyID, params.SecretAccessKey, logger)
	if err != nil {
		return fmt.Errorf("load aws config: %w", err)
	}

	contentType := FileSystem{}.MimeType(params.FilePath)
	if contentType == "" {
		contentType = defaultContentType
	}

	store := &s3AttachmentStore{
		client:      s3.NewFromConfig(*cfg),
		bucket:      params.Bucket,
		filePath:    params.FilePath,
		checksum:    params.FileChecksum,
		fileSize:    params.FileSize,
		contentType: contentType,
	}
	return store.put(ctx, params.ObjectKey, logger)
}

func (store *s3AttachmentStore) put(ctx context.Context, objectKey string, logger log.Logger) error {
	stored, err := store.storedChecksum(ctx, objectKey)
	if err != nil {
		return fmt.Errorf("look up object: %w", err)
	}

	if stored != "" && stored == store.checksum {
		logger.Debugf("Attachment already stored with the same checksum, skipping upload")
		return nil
	}

	logger.Debugf("Uploading attachment...")
	if err := store.putObject(ctx, objectKey); err != nil {
		return fmt.Errorf("upload attachment: %w", err)
	}
	return nil
}

// storedChecksum returns the SHA-256 checksum of the object under key, or ""
// when no such object exists or it has no recorded checksum.
func (store *s3AttachmentStore) storedChecksum(ctx context.Context, objectKey string) (string, error) {
	var checksum string
	err := retry.Times(numS3Retries).Wait(s3RetryWait).TryWithAbort(func(attempt uint) (error, bool) {
		if _, err := store.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(store.bucket),
			Key:    aws.String(objectKey),
		}); err != nil {
			var apiError smithy.APIError
			if !errors.As(err, &apiError) {
				// Transport fault, worth another attempt.
				return fmt.Errorf("head object: %w", err), false
			}
			if _, absent := apiError.(*types.NotFound); absent {
				return nil, true
			}
			return fmt.Errorf("head object: %w", err), false
		}

		attributes, err := store.client.GetObjectAttributes(ctx, &s3.GetObjectAttributesInput{
			Bucket: aws.String(store.bucket),
			Key:    aws.String(objectKey),
			ObjectAttributes: []types.ObjectAttributes{
				"Checksum",
			},
		})
		if err != nil {
			return fmt.Errorf("get object attributes: %w", err), false
		}
		if attributes.Checksum == nil || attributes.Checksum.ChecksumSHA256 == nil {
			return nil, true
		}

		decoded, err := base64.StdEncoding.DecodeString(*attributes.Checksum.ChecksumSHA256)
		if err != nil {
			return fmt.Errorf("decode object checksum: %w", err), true
		}
		checksum = hex.EncodeToString(decoded)
		return nil, true
	})
	return checksum, err
}

func (store *s3AttachmentStore) putObject(ctx context.Context, objectKey string) error {
	return retry.Times(numS3Retries).Wait(s3RetryWait).TryWithAbort(func(attempt uint) (error, bool) {
		file, err := os.Open(store.filePath)
		if err != nil {
			return fmt.Errorf("open attachment: %w", err), true
		}
		defer file.Close() //nolint:errcheck

		uploader := manager.NewUploader(store.client, func(u *manager.Uploader) {
			u.PartSize = 10 * 1024 * 1024
		})
		_, err = uploader.Upload(ctx, &s3.PutObjectInput{
			Body:              file,
			Bucket:            aws.String(store.bucket),
			Key:               aws.String(objectKey),
			ContentType:       aws.String(store.contentType),
			ContentLength:     aws.Int64(store.fileSize),
			ChecksumAlgorithm: types.ChecksumAlgorithmSha256,
		})
		if err != nil {
			return fmt.Errorf("put object: %w", err), false
		}
		return nil, true
	})
}

func awsConfig(ctx context.Context, region, accessKeyID, secretKey string, logger log.Logger) (*aws.Config, error) {
	if region == "" {
		return nil, fmt.Errorf("region must not be empty")
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKeyID != "" && secretKey != "" {
		opts = append(opts,
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKeyID, secretKey, "")))
	} else {
		logger.Debugf("static aws credentials not defined, loading credentials from environment...")
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load default config: %w", err)
	}
	return &cfg, nil
}
