package storageprovider

import (
	"context"
	"errors"
	"io"

	"cloud.google.com/go/storage"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	"github.com/scanbench/scanbench/internal/storageutil"
)

// ContentType is set on every stored report.
const ContentType = "application/x-lz4"

// Gcs stores objects in a Cloud Storage bucket.
type Gcs struct {
	BucketHandle *storage.BucketHandle
}

func (g *Gcs) Put(ctx context.Context, name string) (io.WriteCloser, error) {
	w := g.BucketHandle.Object(name).NewWriter(ctx)
	w.ContentType = ContentType
	return w, nil
}

func (g *Gcs) Get(ctx context.Context, name string) (storageutil.ReadSizeCloser, error) {
	r, err := g.BucketHandle.Object(name).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, storageutil.ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Blob stores objects in any bucket gocloud can open.
type Blob struct {
	Bucket *blob.Bucket
}

func (b *Blob) Put(ctx context.Context, name string) (io.WriteCloser, error) {
	return b.Bucket.NewWriter(ctx, name, &blob.WriterOptions{ContentType: ContentType})
}

func (b *Blob) Get(ctx context.Context, name string) (storageutil.ReadSizeCloser, error) {
	r, err := b.Bucket.NewReader(ctx, name, nil)
	if gcerrors.Code(err) == gcerrors.NotFound {
		return nil, storageutil.ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
