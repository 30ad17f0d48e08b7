package client

import (
	"path"
	"strings"
	"time"

	"tierfs/client/options"
	"tierfs/wire"
)

// URIStatus is the status of a path in the namespace.
type URIStatus struct {
	wire.FileInfo
}

// FileSystem is the client view of the namespace.
type FileSystem interface {
	// GetStatus returns the status of a single path
	GetStatus(path string) (URIStatus, error)

	// ListStatus lists the content of a directory. nil options mean options.ListStatusDefaults()
	ListStatus(path string, o *options.ListStatusOptions) ([]URIStatus, error)

	// SetAttribute changes the attributes of a path
	SetAttribute(path string, o *options.SetAttributeOptions) error

	// Exists is true when path is in the namespace
	Exists(path string) (bool, error)

	// Close releases resources
	Close() error
}

// MetadataService is the remote side answering the wire requests.
type MetadataService interface {
	GetStatus(path string, o wire.GetStatusOptions) (wire.FileInfo, error)
	ListStatus(path string, o wire.ListStatusOptions) ([]wire.FileInfo, error)
	SetAttribute(path string, o wire.SetAttributeOptions) error
}

type Config struct {
	// ListingCacheTTL is how long a listing is served from the client cache. A negative value
	// disables the cache, zero uses DefaultListingCacheTTL.
	ListingCacheTTL time.Duration `json:"listingCacheTtl" yaml:"listingCacheTtl"`
}

const DefaultListingCacheTTL = 5 * time.Second

// ValidatePath checks that ph is an absolute slash separated path and returns its clean form.
func ValidatePath(ph string) (string, error) {
	if !strings.HasPrefix(ph, "/") {
		return "", NewError(InvalidPath, "path %s is invalid: must be absolute", ph)
	}
	if strings.ContainsRune(ph, '\\') {
		return "", NewError(InvalidPath, "path %s is invalid: backslash is not a separator", ph)
	}
	return path.Clean(ph), nil
}

// ParentPath returns the parent of a clean absolute path. The root is its own parent.
func ParentPath(ph string) string {
	return path.Dir(ph)
}
