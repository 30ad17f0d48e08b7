package ufs

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"
)

type FTPConfig struct {
	Addr     string        `json:"addr" yaml:"addr"`
	Username string        `json:"username" yaml:"username"`
	Password string        `json:"password" yaml:"password"`
	Base     string        `json:"base" yaml:"base"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`
}

type FTP struct {
	c    *ftp.ServerConn
	addr string
	base string
}

func NewFTP(config FTPConfig) (FS, error) {
	var addr = config.Addr
	if !strings.ContainsRune(addr, ':') {
		addr = fmt.Sprintf("%s:21", addr)
	}
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	c, err := ftp.Dial(addr, ftp.DialWithTimeout(timeout))
	if err != nil {
		return nil, err
	}

	if err = c.Login(config.Username, config.Password); err != nil {
		_ = c.Quit()
		return nil, err
	}

	return &FTP{c, addr, config.Base}, nil
}

func (f *FTP) realPath(name string) string {
	return path.Join("/", f.base, name)
}

func (f *FTP) MkdirAll(name string) error {
	name = f.realPath(name)
	if _, err := f.c.List(name); err == nil {
		return nil
	}

	p := "/"
	for _, s := range strings.Split(name, "/") {
		p = path.Join(p, s)
		_ = f.c.MakeDir(p)
	}

	_, err := f.c.List(name)
	return err
}

func (f *FTP) Pull(name string, w io.Writer) error {
	r, err := f.c.Retr(f.realPath(name))
	if err != nil {
		return err
	}
	defer r.Close()

	_, err = io.Copy(w, r)
	return err
}

func (f *FTP) Push(name string, r io.Reader) error {
	if err := f.MkdirAll(path.Dir(name)); err != nil {
		return err
	}
	return f.c.Stor(f.realPath(name), r)
}

func entryInfo(e *ftp.Entry) simpleFileInfo {
	isDir := e.Type == ftp.EntryTypeFolder
	mode := defaultFileMode
	if isDir {
		mode = defaultDirMode
	}
	return simpleFileInfo{
		name:    e.Name,
		size:    int64(e.Size),
		isDir:   isDir,
		mode:    mode,
		modTime: e.Time,
	}
}

func (f *FTP) ReadDir(name string, opts ListOption) ([]fs.FileInfo, error) {
	entries, err := f.c.List(f.realPath(name))
	if err != nil {
		return nil, err
	}

	var fis []fs.FileInfo
	for _, e := range entries {
		if e.Name == "." || e.Name == ".." {
			continue
		}
		if (opts&IncludeHiddenFiles) == 0 && strings.HasPrefix(e.Name, ".") {
			continue
		}
		fis = append(fis, entryInfo(e))
	}
	return fis, nil
}

// Stat looks the entry up in the listing of its parent, FTP has no portable stat command.
func (f *FTP) Stat(name string) (fs.FileInfo, error) {
	full := f.realPath(name)
	if full == "/" || full == path.Clean("/"+f.base) {
		return simpleFileInfo{name: path.Base(full), isDir: true, mode: defaultDirMode}, nil
	}

	entries, err := f.c.List(path.Dir(full))
	if err != nil {
		return nil, err
	}
	base := path.Base(full)
	for _, e := range entries {
		if e.Name == base {
			return entryInfo(e), nil
		}
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
}

func (f *FTP) Remove(name string) error {
	st, err := f.Stat(name)
	if err != nil {
		return err
	}
	if st.IsDir() {
		return f.c.RemoveDir(f.realPath(name))
	}
	return f.c.Delete(f.realPath(name))
}

func (f *FTP) Close() error {
	return f.c.Quit()
}

func (f *FTP) String() string {
	return fmt.Sprintf("ftp://%s%s", f.addr, f.realPath(""))
}
