package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ObjectStore defines the write contract the report assembler and the
// upload flow depend on. Put stores the bytes under key and returns a
// stable URL for the object.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}

// UploadKey builds a per-user object key for an uploaded source file,
// e.g. "user-3f2.../workbook-1714059732-9d4c1b2e.xlsx".
func UploadKey(userID uuid.UUID, kind, filename string, now time.Time) string {
	ext := ""
	if i := strings.LastIndex(filename, "."); i >= 0 {
		ext = filename[i:]
	}
	name := fmt.Sprintf("%s-%d-%s%s", kind, now.Unix(), uuid.New().String()[:8], ext)
	return path.Join("user-"+userID.String(), name)
}

// ReportNamespace builds the per-generation prefix all thirteen report
// documents are written under. Project ID plus generation instant plus a
// random component keeps concurrent generations from colliding.
func ReportNamespace(projectID int32, now time.Time) string {
	return path.Join(
		"portfolios",
		fmt.Sprintf("%d", projectID),
		fmt.Sprintf("%d-%s", now.Unix(), uuid.New().String()[:8]),
	)
}
