// Package storageutil stores JSON documents as lz4 frames in object storage.
package storageutil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/pierrec/lz4/v4"
	"github.com/rs/zerolog/log"
)

var ErrObjectNotFound = errors.New("object not found")

// Every read or write gets this long before its context is cancelled.
const timeout = 5 * time.Second

type ReadSizeCloser interface {
	io.ReadCloser
	// Size is the stored, compressed, size of the object.
	Size() int64
}

// ObjectHandler is implemented by each storage backend.
type ObjectHandler interface {
	// Put returns a writer for the object; it is stored once the writer is
	// closed.
	Put(ctx context.Context, name string) (io.WriteCloser, error)
	// Get opens the object or returns ErrObjectNotFound.
	Get(ctx context.Context, name string) (ReadSizeCloser, error)
}

// CompressedWrite encodes d as JSON into an lz4 frame stored as objectName.
// On failure the write context is cancelled before the writer is closed, so
// no partial object is committed.
func CompressedWrite(ctx context.Context, b ObjectHandler, objectName string, d interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ow, err := b.Put(ctx, objectName)
	if err != nil {
		return fmt.Errorf("opening %s: %w", objectName, err)
	}
	zw := lz4.NewWriter(ow)
	_ = zw.Apply(lz4.CompressionLevelOption(lz4.Level9))
	if err := json.NewEncoder(zw).Encode(d); err != nil {
		cancel()
		_ = ow.Close()
		return fmt.Errorf("encoding %s: %w", objectName, err)
	}
	if err := zw.Close(); err != nil {
		cancel()
		_ = ow.Close()
		return fmt.Errorf("compressing %s: %w", objectName, err)
	}
	return ow.Close()
}

// UnmarshalCompressed decodes an object written by CompressedWrite into d.
func UnmarshalCompressed(ctx context.Context, b ObjectHandler, objectName string, d interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	or, err := b.Get(ctx, objectName)
	if err != nil {
		return err
	}
	defer or.Close()
	log.Debug().Str("object", objectName).Int64("compressed_bytes", or.Size()).Msg("reading object")

	if err := json.NewDecoder(lz4.NewReader(or)).Decode(d); err != nil {
		return fmt.Errorf("decoding %s: %w", objectName, err)
	}
	return nil
}
