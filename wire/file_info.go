package wire

import (
	"os"
	"path"
	"time"
)

// FileInfo is the status of a path as reported by the metadata service.
type FileInfo struct {
	Path                   string `json:"path"`
	Name                   string `json:"name"`
	Length                 int64  `json:"length"`
	Folder                 bool   `json:"folder"`
	Pinned                 bool   `json:"pinned"`
	TTL                    int64  `json:"ttl"`
	Mode                   int    `json:"mode"`
	CreationTimeMs         int64  `json:"creationTimeMs"`
	LastModificationTimeMs int64  `json:"lastModificationTimeMs"`
}

// NewFileInfo converts the stat of an under file system entry located at ph.
func NewFileInfo(ph string, fi os.FileInfo) FileInfo {
	mod := fi.ModTime().UnixNano() / int64(time.Millisecond)
	return FileInfo{
		Path:                   ph,
		Name:                   path.Base(ph),
		Length:                 fi.Size(),
		Folder:                 fi.IsDir(),
		TTL:                    NoTTL,
		Mode:                   int(fi.Mode().Perm()),
		CreationTimeMs:         mod,
		LastModificationTimeMs: mod,
	}
}

// HasTTL is true when the path is scheduled for deletion.
func (f FileInfo) HasTTL() bool {
	return f.TTL != NoTTL
}
