package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nutritrack/internal/config"
)

func TestLocalStore_PutDelete(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(dir)
	ctx := context.Background()

	p, err := store.Put(ctx, "profiles/a.png", strings.NewReader("data"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "uploads/profiles/a.png", p)

	got, err := os.ReadFile(filepath.Join(dir, "profiles", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	require.NoError(t, store.Delete(ctx, p))
	_, err = os.Stat(filepath.Join(dir, "profiles", "a.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, store.Delete(ctx, p), "deleting twice is not an error")
}

func TestLocalStore_StaysInRoot(t *testing.T) {
	dir := t.TempDir()
	store := NewLocalStore(filepath.Join(dir, "root"))

	_, err := store.Put(context.Background(), "../../escape.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "root", "escape.png"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.True(t, os.IsNotExist(err))
}

type mockS3 struct {
	mock.Mock
}

func (m *mockS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, in)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, in)
	if out := args.Get(0); out != nil {
		return out.(*s3.DeleteObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestS3Store_PutDelete(t *testing.T) {
	client := new(mockS3)
	store := NewS3StoreWithClient(client, "images", "https://cdn.example.com/")
	ctx := context.Background()

	client.On("PutObject", ctx, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		body, _ := io.ReadAll(in.Body)
		return aws.ToString(in.Bucket) == "images" &&
			aws.ToString(in.Key) == "profiles/a.png" &&
			aws.ToString(in.ContentType) == "image/png" &&
			string(body) == "data"
	})).Return(&s3.PutObjectOutput{}, nil)
	client.On("DeleteObject", ctx, mock.MatchedBy(func(in *s3.DeleteObjectInput) bool {
		return aws.ToString(in.Key) == "profiles/a.png"
	})).Return(&s3.DeleteObjectOutput{}, nil)

	p, err := store.Put(ctx, "profiles/a.png", strings.NewReader("data"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/profiles/a.png", p)

	require.NoError(t, store.Delete(ctx, p))
	client.AssertExpectations(t)
}

func TestNew_Backends(t *testing.T) {
	store, err := New(context.Background(), &config.Config{UploadBackend: "local", UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStore{}, store)

	_, err = New(context.Background(), &config.Config{UploadBackend: "s3"})
	assert.ErrorContains(t, err, "bucket")

	_, err = New(context.Background(), &config.Config{UploadBackend: "ftp"})
	assert.Error(t, err)
}
