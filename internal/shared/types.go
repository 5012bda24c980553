package shared

import (
	"context"
	"strings"
)

// FileUpload is a binary asset handed to a service by the transport
// layer. Filename is only used to derive the extension.
type FileUpload struct {
	Filename    string
	Data        []byte
	ContentType string
}

// Ext returns the lowercase filename extension without the dot,
// or "bin" when there is none.
func (f FileUpload) Ext() string {
	idx := strings.LastIndex(f.Filename, ".")
	if idx < 0 || idx == len(f.Filename)-1 {
		return "bin"
	}
	return strings.ToLower(f.Filename[idx+1:])
}

// IsEmpty reports whether there is nothing to upload.
func (f FileUpload) IsEmpty() bool {
	return len(f.Data) == 0
}

// Uploader is the slice of object storage the write paths need:
// put bytes under a key, get back the durable public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Asynq task types and queues
const (
	TypeSweepOrphanAssets = "storage:sweep_orphans"

	QueueMaintenance = "maintenance"
)

// Object storage key prefixes. The upload pipeline writes under these;
// the sweeper enumerates them.
const (
	PrefixBooks   = "books/"
	PrefixCovers  = "covers/"
	PrefixAvatars = "avatars/"
)
