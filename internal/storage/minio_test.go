package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patientdocs/internal/config"
)

func TestNewMinIO_ConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.MinIOConfig
	}{
		{name: "missing endpoint", cfg: config.MinIOConfig{AccessKey: "a", SecretKey: "s", Bucket: "b"}},
		{name: "missing credentials", cfg: config.MinIOConfig{Endpoint: "localhost:9000", Bucket: "b"}},
		{name: "missing bucket", cfg: config.MinIOConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := NewMinIO(tt.cfg)
			assert.Error(t, err)
			assert.Nil(t, st)
		})
	}
}

func TestMinioStorage_PutErrorCarriesKey(t *testing.T) {
	// No server involved: a canceled context fails the request before any
	// network I/O, which is enough to observe the error wrapping.
	cli, err := minio.New("127.0.0.1:9000", &minio.Options{
		Creds: credentials.NewStaticV4("access", "secret", ""),
	})
	require.NoError(t, err)

	ms := &minioStorage{client: cli, bucket: "documents"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ms.Put(ctx, "documents/x.pdf", strings.NewReader("data"), PutObjectOptions{Size: 4})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), `put object "documents/x.pdf"`)
}
