package storage

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/require"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/config"
)

func TestIsNotFound(t *testing.T) {
	require.True(t, isNotFound(minio.ErrorResponse{Code: "NoSuchKey"}))
	require.True(t, isNotFound(minio.ErrorResponse{Code: "NotFound"}))
	require.False(t, isNotFound(minio.ErrorResponse{Code: "AccessDenied"}))
}

func TestNewMinIOStorage_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MediaConfig{Bucket: "media"})
	require.Error(t, err)
}
