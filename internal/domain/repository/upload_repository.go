package repository

import "context"

// UploadRepository mirrors generated reports to remote storage.
type UploadRepository interface {
	VerifyIdentity(ctx context.Context) (string, error)
	Upload(ctx context.Context, localPath string) (string, error)
}
