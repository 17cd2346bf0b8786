package storage

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
)

// ReportArchive keeps copies of generated expense reports.
type ReportArchive interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
}

// ObjectKey builds a unique archive key for a report file, namespaced by owner.
func ObjectKey(owner, filename string) string {
	return path.Join("reports", owner, fmt.Sprintf("%s_%s", uuid.New().String(), filename))
}
