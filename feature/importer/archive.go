package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sort"
	"strings"

	"dtl-import/core/storage"

	"github.com/minio/minio-go/v7"
)

// Archive stores run summaries as JSON objects in a bucket.
type Archive struct {
	client storage.Client
	bucket string
	prefix string
	region string
}

// NewArchive creates an Archive writing under prefix in bucket.
func NewArchive(client storage.Client, bucket, prefix, region string) *Archive {
	return &Archive{
		client: client,
		bucket: bucket,
		prefix: prefix,
		region: region,
	}
}

// Store uploads summary and returns the object name.
// Objects are laid out as <prefix>/YYYY/MM/DD/<run id>.json.
func (a *Archive) Store(ctx context.Context, summary *Summary) (string, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode summary: %w", err)
	}

	if err := storage.EnsureBucket(ctx, a.client, a.bucket, a.region); err != nil {
		return "", err
	}

	name := storage.ObjectName(a.prefix, path.Join(summary.StartedAt.Format("2006/01/02"), summary.ID+".json"))
	_, err = a.client.PutObject(ctx, a.bucket, name, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", name, err)
	}
	return name, nil
}

// List returns the newest archived object names, at most limit when limit > 0.
func (a *Archive) List(ctx context.Context, limit int) ([]string, error) {
	prefix := strings.Trim(a.prefix, "/")
	if prefix != "" {
		prefix += "/"
	}

	var names []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list archive: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			names = append(names, obj.Key)
		}
	}

	// Date folders sort chronologically.
	sort.Sort(sort.Reverse(sort.StringSlice(names)))
	if limit > 0 && len(names) > limit {
		names = names[:limit]
	}
	return names, nil
}
