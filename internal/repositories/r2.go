package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rohits-web03/ideaorbit/internal/config"
)

// ObjectStorage is the narrow contract handlers use to persist uploaded
// images. Implementations return the public URL and the storage key of
// the stored object.
type ObjectStorage interface {
	Upload(ctx context.Context, data []byte, folder, filename, contentType string) (url string, key string, err error)
	Delete(ctx context.Context, key string) error
}

// R2Storage stores objects in a Cloudflare R2 bucket through the S3 API.
type R2Storage struct {
	client        *s3.Client
	bucket        string
	publicBaseURL string
}

// NewR2Storage initializes the R2 client using static credentials and a
// custom endpoint.
func NewR2Storage(cfg config.R2Config) (*R2Storage, error) {
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.AccountID == "" || cfg.BucketName == "" {
		return nil, errors.New("incomplete R2 configuration")
	}

	endpoint := fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.AccountID)
	awsCfg := aws.Config{
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Region:      cfg.Region,
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(endpoint)
		o.UsePathStyle = true
	})

	log.Println("Successfully initialized R2 client")

	return &R2Storage{
		client:        client,
		bucket:        cfg.BucketName,
		publicBaseURL: strings.TrimSuffix(cfg.PublicBaseURL, "/"),
	}, nil
}

// Upload writes the object under a random key inside folder and returns
// its public URL along with the key.
func (s *R2Storage) Upload(ctx context.Context, data []byte, folder, filename, contentType string) (string, string, error) {
	key := path.Join(folder, uuid.NewString()+"_"+path.Base(filename))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", "", err
	}
	return s.publicBaseURL + "/" + key, key, nil
}

// Delete removes a stored object. Callers treat failures as best-effort.
func (s *R2Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
