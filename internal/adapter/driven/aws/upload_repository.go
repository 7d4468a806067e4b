package aws

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/roreports-go/internal/domain/repository"
	"github.com/diillson/roreports-go/internal/shared/types"
)

// S3API is the subset of the S3 client used for uploads.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// STSAPI is the subset of the STS client used to check credentials.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// UploadRepositoryImpl espelha relatórios gerados em um bucket S3.
type UploadRepositoryImpl struct {
	settings types.Upload

	mu        sync.Mutex
	s3Client  S3API
	stsClient STSAPI
}

// NewUploadRepository cria o repositório de upload; os clientes são criados sob demanda.
func NewUploadRepository(settings types.Upload) repository.UploadRepository {
	return &UploadRepositoryImpl{settings: settings}
}

// NewUploadRepositoryWithClients is used when the clients are built elsewhere.
func NewUploadRepositoryWithClients(settings types.Upload, s3Client S3API, stsClient STSAPI) *UploadRepositoryImpl {
	return &UploadRepositoryImpl{settings: settings, s3Client: s3Client, stsClient: stsClient}
}

func (r *UploadRepositoryImpl) clients(ctx context.Context) (S3API, STSAPI, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.s3Client != nil && r.stsClient != nil {
		return r.s3Client, r.stsClient, nil
	}

	var opts []func(*config.LoadOptions) error
	if r.settings.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(r.settings.Profile))
	}
	if r.settings.Region != "" {
		opts = append(opts, config.WithRegion(r.settings.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load AWS config for profile %s: %w", r.settings.Profile, err)
	}

	if r.s3Client == nil {
		r.s3Client = s3.NewFromConfig(cfg)
	}
	if r.stsClient == nil {
		r.stsClient = sts.NewFromConfig(cfg)
	}
	return r.s3Client, r.stsClient, nil
}

// VerifyIdentity confere as credenciais antes de qualquer arquivo ser tocado.
func (r *UploadRepositoryImpl) VerifyIdentity(ctx context.Context) (string, error) {
	_, stsClient, err := r.clients(ctx)
	if err != nil {
		return "", err
	}

	result, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("error getting caller identity for profile %s: %w", r.settings.Profile, err)
	}
	return aws.ToString(result.Account), nil
}

// Upload envia o arquivo local para s3://bucket/prefix/<nome> e devolve a URI.
func (r *UploadRepositoryImpl) Upload(ctx context.Context, localPath string) (string, error) {
	s3Client, _, err := r.clients(ctx)
	if err != nil {
		return "", err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("error opening %s for upload: %w", localPath, err)
	}
	defer file.Close()

	key := objectKey(r.settings.Prefix, filepath.Base(localPath))
	_, err = s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.settings.Bucket),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String(contentType(localPath)),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading %s to bucket %s: %w", filepath.Base(localPath), r.settings.Bucket, err)
	}
	return fmt.Sprintf("s3://%s/%s", r.settings.Bucket, key), nil
}

func objectKey(prefix, name string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}

func contentType(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return "text/csv; charset=utf-8"
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}
