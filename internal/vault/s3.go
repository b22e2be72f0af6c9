package vault

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"journal-go/internal/journal"
)

// Static credentials for S3-compatible stores that are not configured
// through the usual AWS profile chain.
const (
	S3AccessKeyEnv = "JOURNAL_S3_ACCESS_KEY_ID"
	S3SecretKeyEnv = "JOURNAL_S3_SECRET_ACCESS_KEY"
)

type s3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

type s3Uploader interface {
	Upload(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3Vault stores snapshots in a bucket:
//
//	<prefix>/snapshots/<userID>.db
//	<prefix>/snapshots/<userID>.version
type S3Vault struct {
	name     string
	bucket   string
	prefix   string
	client   s3API
	uploader s3Uploader
}

// S3Options configures NewS3Vault.
type S3Options struct {
	Bucket   string
	Prefix   string
	Region   string
	Endpoint string // for S3-compatible services; enables path-style addressing
}

// NewS3Vault loads AWS configuration from the environment and builds a client.
func NewS3Vault(ctx context.Context, name string, opts S3Options) (*S3Vault, error) {
	if opts.Bucket == "" {
		return nil, fmt.Errorf("s3 vault requires s3_bucket to be set")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if id, secret := os.Getenv(S3AccessKeyEnv), os.Getenv(S3SecretKeyEnv); id != "" && secret != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(id, secret, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3VaultWithClient(name, opts.Bucket, opts.Prefix, client, manager.NewUploader(client)), nil
}

func newS3VaultWithClient(name, bucket, prefix string, client s3API, uploader s3Uploader) *S3Vault {
	return &S3Vault{
		name:     name,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		client:   client,
		uploader: uploader,
	}
}

// PutSnapshot uploads the snapshot (multipart for large files), then its version.
func (v *S3Vault) PutSnapshot(userID string, r io.Reader, size int64, version int64) error {
	ctx := context.Background()

	cr := &countingReader{r: r}
	_, err := v.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key(userID + ".db")),
		Body:   cr,
	})
	if err != nil {
		return fmt.Errorf("uploading snapshot: %w", err)
	}
	if cr.n != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, cr.n)
	}

	_, err = v.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key(userID + ".version")),
		Body:   strings.NewReader(strconv.FormatInt(version, 10)),
	})
	if err != nil {
		return fmt.Errorf("uploading snapshot version: %w", err)
	}
	return nil
}

func (v *S3Vault) GetSnapshot(userID string, w io.Writer) error {
	out, err := v.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key(userID + ".db")),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return fmt.Errorf("snapshot not found for user: %s", userID)
		}
		return fmt.Errorf("downloading snapshot: %w", err)
	}
	defer out.Body.Close()

	if _, err := io.Copy(w, out.Body); err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}
	return nil
}

// GetSnapshotVersion returns 0 if no version object exists.
func (v *S3Vault) GetSnapshotVersion(userID string) (int64, error) {
	out, err := v.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(v.bucket),
		Key:    aws.String(v.key(userID + ".version")),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("downloading snapshot version: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return 0, fmt.Errorf("reading snapshot version: %w", err)
	}
	version, err := strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing version: %w", err)
	}
	return version, nil
}

// ValidateSetup checks that the bucket exists and is reachable with the current credentials.
func (v *S3Vault) ValidateSetup() error {
	_, err := v.client.HeadBucket(context.Background(), &s3.HeadBucketInput{Bucket: aws.String(v.bucket)})
	if err != nil {
		return fmt.Errorf("bucket %s not accessible: %w", v.bucket, err)
	}
	return nil
}

func (v *S3Vault) key(name string) string {
	return path.Join(v.prefix, "snapshots", name)
}

func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	return errors.As(err, &nsk)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

var _ journal.Vault = (*S3Vault)(nil)
