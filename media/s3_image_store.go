package media

import (
	"context"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/pkg/errors"
)

// S3ImageStore uploads images to a public-read S3 bucket. Urls point to
// urlPrefix, usually a CDN in front of the bucket.
type S3ImageStore struct {
	bucket    string
	urlPrefix string
	uploader  *s3manager.Uploader
}

func NewS3ImageStore(region, bucket, urlPrefix string) (*S3ImageStore, error) {
	// AWS client session
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to create aws session")
	}
	if urlPrefix == "" {
		urlPrefix = "https://" + bucket + ".s3." + region + ".amazonaws.com/"
	}

	return &S3ImageStore{
		bucket:    bucket,
		urlPrefix: urlPrefix,
		uploader:  s3manager.NewUploader(sess),
	}, nil
}

func (s *S3ImageStore) Store(ctx context.Context, key string, contentType string, body io.Reader) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		ACL:         aws.String("public-read"),
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
		Body:        body,
	})
	return errors.Wrap(err, "fail to upload to s3 bucket "+s.bucket)
}

func (s *S3ImageStore) GetUrlFromKey(key string) string {
	if key == "" {
		return ""
	}
	return s.urlPrefix + key
}
