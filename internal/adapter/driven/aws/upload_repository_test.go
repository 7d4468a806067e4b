package aws

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/diillson/roreports-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockS3 struct {
	inputs []*s3.PutObjectInput
	bodies []string
	err    error
}

func (m *mockS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	m.inputs = append(m.inputs, in)
	m.bodies = append(m.bodies, string(body))
	return &s3.PutObjectOutput{}, nil
}

type mockSTS struct {
	account string
	err     error
}

func (m *mockSTS) GetCallerIdentity(context.Context, *sts.GetCallerIdentityInput, ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String(m.account)}, nil
}

func TestVerifyIdentity(t *testing.T) {
	repo := NewUploadRepositoryWithClients(types.Upload{Bucket: "b"}, &mockS3{}, &mockSTS{account: "123456789012"})

	account, err := repo.VerifyIdentity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "123456789012", account)
}

func TestVerifyIdentity_Error(t *testing.T) {
	repo := NewUploadRepositoryWithClients(types.Upload{Bucket: "b", Profile: "ops"}, &mockS3{}, &mockSTS{err: errors.New("expired")})

	_, err := repo.VerifyIdentity(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "profile ops")
}

func TestUpload(t *testing.T) {
	local := filepath.Join(t.TempDir(), "Выгрузка РО СПВиРС 2024-05-01.csv")
	require.NoError(t, os.WriteFile(local, []byte("a;b\n"), 0644))

	s3Mock := &mockS3{}
	repo := NewUploadRepositoryWithClients(types.Upload{Bucket: "reports", Prefix: "/ro/monthly/"}, s3Mock, &mockSTS{})

	uri, err := repo.Upload(context.Background(), local)
	require.NoError(t, err)

	assert.Equal(t, "s3://reports/ro/monthly/Выгрузка РО СПВиРС 2024-05-01.csv", uri)
	require.Len(t, s3Mock.inputs, 1)
	assert.Equal(t, "reports", aws.ToString(s3Mock.inputs[0].Bucket))
	assert.Equal(t, "text/csv; charset=utf-8", aws.ToString(s3Mock.inputs[0].ContentType))
	assert.Equal(t, "a;b\n", s3Mock.bodies[0])
}

func TestUpload_Errors(t *testing.T) {
	local := filepath.Join(t.TempDir(), "r.csv")
	require.NoError(t, os.WriteFile(local, nil, 0644))

	failing := NewUploadRepositoryWithClients(types.Upload{Bucket: "b"}, &mockS3{err: errors.New("denied")}, &mockSTS{})
	_, err := failing.Upload(context.Background(), local)
	assert.ErrorContains(t, err, "denied")

	ok := NewUploadRepositoryWithClients(types.Upload{Bucket: "b"}, &mockS3{}, &mockSTS{})
	_, err = ok.Upload(context.Background(), filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestObjectKey(t *testing.T) {
	tests := []struct {
		prefix string
		want   string
	}{
		{"", "r.csv"},
		{"/", "r.csv"},
		{"reports", "reports/r.csv"},
		{"reports/2024/", "reports/2024/r.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			assert.Equal(t, tt.want, objectKey(tt.prefix, "r.csv"))
		})
	}
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", contentType("a.JSON"))
	assert.Equal(t, "application/pdf", contentType("a.pdf"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType("a.xlsx"))
	assert.Equal(t, "application/octet-stream", contentType("a"))
}
