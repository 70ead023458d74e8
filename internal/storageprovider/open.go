package storageprovider

import (
	"context"
	"strings"

	"cloud.google.com/go/storage"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"

	"github.com/scanbench/scanbench/internal/storageutil"
)

// Bucket is an opened ObjectHandler along with the client backing it.
type Bucket struct {
	storageutil.ObjectHandler
	close func() error
}

func (b *Bucket) Close() error {
	return b.close()
}

// Open connects to the bucket at url. gs:// URLs use the Cloud Storage
// client directly; anything else goes through gocloud (file://, mem://, s3://).
func Open(ctx context.Context, url string) (*Bucket, error) {
	if name, ok := strings.CutPrefix(url, "gs://"); ok {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		return &Bucket{
			ObjectHandler: &Gcs{BucketHandle: client.Bucket(strings.TrimSuffix(name, "/"))},
			close:         client.Close,
		}, nil
	}
	b, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, err
	}
	return &Bucket{ObjectHandler: &Blob{Bucket: b}, close: b.Close}, nil
}
