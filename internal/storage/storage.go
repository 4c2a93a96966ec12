package storage

import "context"

// Uploader stores note attachments and returns a public URL for each.
// The Cloudinary client implements it in production; tests substitute
// an in-memory fake.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (url string, publicID string, err error)
	Delete(ctx context.Context, publicID string) error
}
