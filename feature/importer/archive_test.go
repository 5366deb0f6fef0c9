package importer_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"dtl-import/core/storage/mocks"
	"dtl-import/feature/importer"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestArchive_Store(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "dtl-import").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "dtl-import", minio.MakeBucketOptions{Region: "us-east-1"}).Return(nil)

	var body []byte
	client.On("PutObject", mock.Anything, "dtl-import", "reports/2026/03/09/run-1.json", mock.Anything, mock.Anything,
		mock.MatchedBy(func(opts minio.PutObjectOptions) bool { return opts.ContentType == "application/json" })).
		Run(func(args mock.Arguments) {
			body, _ = io.ReadAll(args.Get(3).(io.Reader))
		}).
		Return(minio.UploadInfo{}, nil)

	archive := importer.NewArchive(client, "dtl-import", "/reports/", "us-east-1")
	name, err := archive.Store(context.Background(), &importer.Summary{
		ID:        "run-1",
		StartedAt: time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC),
		DryRun:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "reports/2026/03/09/run-1.json", name)
	assert.Contains(t, string(body), `"dry_run": true`)
	client.AssertExpectations(t)
}

func TestArchive_StoreUploadFails(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "dtl-import").Return(true, nil)
	client.On("PutObject", mock.Anything, "dtl-import", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("access denied"))

	_, err := importer.NewArchive(client, "dtl-import", "", "").Store(context.Background(), &importer.Summary{ID: "x"})
	assert.ErrorContains(t, err, "access denied")
	client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
}

func listing(objects ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(objects))
	for _, obj := range objects {
		ch <- obj
	}
	close(ch)
	return ch
}

func TestArchive_List(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "dtl-import", minio.ListObjectsOptions{Prefix: "reports/", Recursive: true}).
		Return(listing(
			minio.ObjectInfo{Key: "reports/2026/01/02/b.json"},
			minio.ObjectInfo{Key: "reports/2026/03/01/c.json"},
			minio.ObjectInfo{Key: "reports/2025/12/31/a.json"},
			minio.ObjectInfo{Key: "reports/notes.txt"},
		))

	names, err := importer.NewArchive(client, "dtl-import", "reports", "").List(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/2026/03/01/c.json", "reports/2026/01/02/b.json"}, names)
}

func TestArchive_ListError(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "dtl-import", mock.Anything).
		Return(listing(minio.ObjectInfo{Err: errors.New("bucket missing")}))

	_, err := importer.NewArchive(client, "dtl-import", "reports", "").List(context.Background(), 0)
	assert.ErrorContains(t, err, "bucket missing")
}
