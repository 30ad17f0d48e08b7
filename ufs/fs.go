package ufs

import (
	"errors"
	"io"
	"io/fs"
	"time"
)

var ErrNotSupported = errors.New("operation is not supported")

type ListOption uint32

const (
	// IncludeHiddenFiles includes hidden files in a list operation
	IncludeHiddenFiles ListOption = 1
)

// FS is an under file system: the storage the namespace mirrors.
type FS interface {
	// ReadDir gets the list of files in the provided path. Use IncludeHiddenFiles to include hidden files in the result
	ReadDir(path string, opts ListOption) ([]fs.FileInfo, error)

	// Stat gets information about a file
	Stat(name string) (fs.FileInfo, error)

	// Remove deletes a file
	Remove(name string) error

	// MkdirAll creates a folder and all required intermediate folders
	MkdirAll(name string) error

	// Pull reads the file name and writes the content in w
	Pull(name string, w io.Writer) error

	// Push writes the file name by using data coming from r
	Push(name string, r io.Reader) error

	// Close realises resources
	Close() error
}

const (
	defaultFileMode fs.FileMode = 0644
	defaultDirMode  fs.FileMode = 0755
)

type simpleFileInfo struct {
	name    string
	size    int64
	isDir   bool
	mode    fs.FileMode
	modTime time.Time
}

func (f simpleFileInfo) Name() string {
	return f.name
}

func (f simpleFileInfo) Size() int64 {
	return f.size
}

func (f simpleFileInfo) Mode() fs.FileMode {
	if f.isDir {
		return f.mode | fs.ModeDir
	}
	return f.mode
}

func (f simpleFileInfo) ModTime() time.Time {
	return f.modTime
}

func (f simpleFileInfo) IsDir() bool {
	return f.isDir
}

func (f simpleFileInfo) Sys() interface{} {
	return nil
}

func Exists(f FS, name string) bool {
	_, err := f.Stat(name)
	return err == nil
}
