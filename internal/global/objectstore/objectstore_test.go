package objectstore

import (
	"context"
	"strings"
	"testing"
	"time"

	"hackathon-vote-system/config"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, pathStyle bool) *Store {
	store, err := New(context.Background(), config.S3{
		Endpoint:        "http://127.0.0.1:9000",
		Bucket:          "hackathon",
		AccessKey:       "minio",
		SecretAccessKey: "minio-secret",
		Prefix:          "/attachments/",
		UsePathStyle:    pathStyle,
	})
	require.NoError(t, err)
	store.now = func() time.Time { return time.Unix(1700000000, 0) }
	return store
}

func TestNewWithoutBucket(t *testing.T) {
	_, err := New(context.Background(), config.S3{})
	require.ErrorIs(t, err, ErrDisabled)
}

func TestPresignUpload(t *testing.T) {
	store := newTestStore(t, true)
	ticket, err := store.PresignUpload(context.Background(), UploadRequest{
		Dir:         "project/7",
		Filename:    "Demo.MP4",
		ContentType: "video/mp4",
	})
	require.NoError(t, err)
	require.Equal(t, "attachments/project/7/1700000000000000000.mp4", ticket.FileKey)
	require.Equal(t, "http://127.0.0.1:9000/hackathon/"+ticket.FileKey, ticket.FileURL)
	require.Equal(t, "PUT", ticket.Method)
	require.Equal(t, "video/mp4", ticket.Headers["Content-Type"])
	require.True(t, strings.HasPrefix(ticket.UploadURL, "http://127.0.0.1:9000/hackathon/attachments/project/7/"))
	require.Contains(t, ticket.UploadURL, "X-Amz-Signature=")
	require.Equal(t, time.Unix(1700000000, 0).Add(defaultUploadExpire), ticket.ExpiresAt)
}

func TestPresignUploadNeedsFilename(t *testing.T) {
	_, err := newTestStore(t, false).PresignUpload(context.Background(), UploadRequest{Dir: "project/1"})
	require.Error(t, err)
}

func TestPublicURL(t *testing.T) {
	store := newTestStore(t, false)
	require.Equal(t, "http://127.0.0.1:9000/a/b.png", store.PublicURL("a/b.png"))
	store.cfg.BaseURL = "https://cdn.example.com/"
	require.Equal(t, "https://cdn.example.com/a/b.png", store.PublicURL("a/b.png"))
}
