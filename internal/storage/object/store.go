package object

import (
	"context"
	"io"
)

// ObjectStore defines the storage-service boundary: upload bytes, get back
// an opaque location, open it again later.
type ObjectStore interface {
	Upload(ctx context.Context, fileName string, r io.Reader) (location string, err error)
	Open(ctx context.Context, location string) (io.ReadCloser, error)
}
