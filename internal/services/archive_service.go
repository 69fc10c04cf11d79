package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ArchiveService mirrors rendered invoices to an R2 bucket. It is
// optional: a nil or unconfigured service turns archiving off and the
// renderer skips it entirely.
type ArchiveService struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	Prefix    string
}

// NewArchiveService wires the archive from resolved settings
func NewArchiveService(endpoint, accessKey, secretKey, bucket, region, prefix string) *ArchiveService {
	return &ArchiveService{
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		Bucket:    bucket,
		Region:    region,
		Prefix:    prefix,
	}
}

// Enabled reports whether enough settings are present to upload
func (s *ArchiveService) Enabled() bool {
	return s != nil && s.Endpoint != "" && s.AccessKey != "" && s.SecretKey != "" && s.Bucket != ""
}

// Store uploads one rendered invoice under the configured prefix
func (s *ArchiveService) Store(name string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.AccessKey,
			s.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.Region),
	)
	if err != nil {
		return fmt.Errorf("configure archive client: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.Endpoint)
	})

	key := s.Prefix + name
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/pdf"),
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, err)
	}

	log.Printf("[Archive] Uploaded %s (%d bytes)", key, len(data))
	return nil
}
