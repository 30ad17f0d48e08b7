package ufs

import (
	"bytes"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"sync"
	"time"
)

type fileInMemory struct {
	modTime time.Time
	mode    fs.FileMode
	dir     bool
	data    []byte
}

// Memory keeps the files in a map. It is mostly used by tests.
type Memory struct {
	files     map[string]fileInMemory
	filesLock sync.Mutex
}

func NewMemory() *Memory {
	m := &Memory{
		files: make(map[string]fileInMemory),
	}
	m.files[""] = fileInMemory{modTime: time.Now(), mode: defaultDirMode, dir: true}
	return m
}

func cleanMemoryPath(name string) string {
	name = path.Clean("/" + name)
	return strings.TrimPrefix(name, "/")
}

func (m *Memory) mkdirAll(name string) error {
	var missing []string
	for p := name; ; p = parentOf(p) {
		if f, ok := m.files[p]; ok {
			if !f.dir {
				return &fs.PathError{Op: "mkdir", Path: p, Err: errNotDir}
			}
			break
		}
		missing = append(missing, p)
		if p == "" {
			break
		}
	}

	now := time.Now()
	for _, p := range missing {
		m.files[p] = fileInMemory{modTime: now, mode: defaultDirMode, dir: true}
	}
	return nil
}

func parentOf(name string) string {
	dir := path.Dir(name)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

func (m *Memory) MkdirAll(name string) error {
	m.filesLock.Lock()
	defer m.filesLock.Unlock()

	return m.mkdirAll(cleanMemoryPath(name))
}

func (m *Memory) Pull(name string, w io.Writer) error {
	m.filesLock.Lock()
	f, ok := m.files[cleanMemoryPath(name)]
	m.filesLock.Unlock()
	if !ok || f.dir {
		return &fs.PathError{Op: "pull", Path: name, Err: os.ErrNotExist}
	}

	_, err := io.Copy(w, bytes.NewReader(f.data))
	return err
}

func (m *Memory) Push(name string, r io.Reader) error {
	var s ByteStream
	_, err := io.Copy(&s, r)
	if err != nil {
		return err
	}

	name = cleanMemoryPath(name)
	m.filesLock.Lock()
	defer m.filesLock.Unlock()

	if err := m.mkdirAll(parentOf(name)); err != nil {
		return err
	}
	mode := defaultFileMode
	if f, ok := m.files[name]; ok {
		if f.dir {
			return &fs.PathError{Op: "push", Path: name, Err: errIsDir}
		}
		mode = f.mode
	}
	m.files[name] = fileInMemory{
		modTime: time.Now(),
		mode:    mode,
		data:    s.Data,
	}
	return nil
}

func (m *Memory) Remove(name string) error {
	name = cleanMemoryPath(name)
	m.filesLock.Lock()
	defer m.filesLock.Unlock()

	if _, ok := m.files[name]; !ok {
		return &fs.PathError{Op: "remove", Path: name, Err: os.ErrNotExist}
	}
	prefix := name + "/"
	for n := range m.files {
		if name != "" && strings.HasPrefix(n, prefix) {
			return &fs.PathError{Op: "remove", Path: name, Err: errNotEmpty}
		}
	}
	delete(m.files, name)
	return nil
}

func (m *Memory) ReadDir(name string, opts ListOption) ([]fs.FileInfo, error) {
	name = cleanMemoryPath(name)
	m.filesLock.Lock()
	defer m.filesLock.Unlock()

	d, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: os.ErrNotExist}
	}
	if !d.dir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errNotDir}
	}

	var fis []fs.FileInfo
	for n, f := range m.files {
		if n == name || parentOf(n) != name {
			continue
		}
		base := path.Base(n)
		if opts&IncludeHiddenFiles == 0 && strings.HasPrefix(base, ".") {
			continue
		}
		fis = append(fis, f.info(base))
	}
	return fis, nil
}

func (m *Memory) Stat(name string) (fs.FileInfo, error) {
	name = cleanMemoryPath(name)
	m.filesLock.Lock()
	defer m.filesLock.Unlock()

	f, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
	}
	return f.info(path.Base("/" + name)), nil
}

// Chmod changes the permission bits of name.
func (m *Memory) Chmod(name string, mode fs.FileMode) error {
	name = cleanMemoryPath(name)
	m.filesLock.Lock()
	defer m.filesLock.Unlock()

	f, ok := m.files[name]
	if !ok {
		return &fs.PathError{Op: "chmod", Path: name, Err: os.ErrNotExist}
	}
	f.mode = mode.Perm()
	m.files[name] = f
	return nil
}

func (m *Memory) Close() error {
	return nil
}

func (m *Memory) String() string {
	return "memory"
}

func (f fileInMemory) info(name string) fs.FileInfo {
	return simpleFileInfo{
		name:    name,
		size:    int64(len(f.data)),
		isDir:   f.dir,
		mode:    f.mode,
		modTime: f.modTime,
	}
}
