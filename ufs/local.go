package ufs

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

type Local struct {
	Mount string
	Perm  fs.FileMode
}

type LocalConfig struct {
	Mount string      `json:"mount" yaml:"mount"`
	Perm  fs.FileMode `json:"perm" yaml:"perm"`
}

func NewLocal(config LocalConfig) (FS, error) {
	mount, err := filepath.Abs(config.Mount)
	if err != nil {
		return nil, err
	}
	perm := config.Perm
	if perm == 0 {
		perm = 0644
	}
	return &Local{mount, perm}, nil
}

// NewLocalMount exposes the directory mount with default permissions.
func NewLocalMount(mount string) FS {
	f, err := NewLocal(LocalConfig{Mount: mount})
	if err != nil {
		return &Local{mount, 0644}
	}
	return f
}

func (l *Local) realPath(name string) string {
	return filepath.Join(l.Mount, filepath.FromSlash(name))
}

func isUnixHidden(name string) bool {
	base := filepath.Base(name)
	return strings.HasPrefix(base, ".")
}

func dirPerm(perm fs.FileMode) fs.FileMode {
	if perm&0600 != 0 {
		perm |= 0100
	}
	if perm&0060 != 0 {
		perm |= 0010
	}
	if perm&0006 != 0 {
		perm |= 0001
	}
	return perm
}

func (l *Local) Pull(name string, w io.Writer) error {
	name = l.realPath(name)
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(w, f)
	return err
}

func (l *Local) Push(name string, r io.Reader) error {
	name = l.realPath(name)
	err := os.MkdirAll(filepath.Dir(name), dirPerm(l.Perm))
	if err != nil {
		logrus.Errorf("Cannot create parent folder for %s: %v", name, err)
		return err
	}
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, l.Perm)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(f, r)
	if isUnixHidden(name) {
		_ = hideFile(name)
	}
	return err
}

func (l *Local) Remove(name string) error {
	name = l.realPath(name)
	return os.Remove(name)
}

func (l *Local) MkdirAll(name string) error {
	name = l.realPath(name)
	err := os.MkdirAll(name, dirPerm(l.Perm))
	if isUnixHidden(name) {
		_ = hideFile(name)
	}
	return err
}

func (l *Local) ReadDir(name string, opts ListOption) ([]fs.FileInfo, error) {
	name = l.realPath(name)

	es, err := os.ReadDir(name)
	if err != nil {
		return nil, err
	}

	var fis []fs.FileInfo
	for _, e := range es {
		if (opts&IncludeHiddenFiles) == 0 && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		i, err := e.Info()
		if err != nil {
			logrus.Debugf("skip %s in %s: %v", e.Name(), name, err)
			continue
		}
		fis = append(fis, i)
	}
	return fis, nil
}

func (l *Local) Stat(name string) (fs.FileInfo, error) {
	name = l.realPath(name)
	return os.Stat(name)
}

func (l *Local) Close() error {
	return nil
}

func (l *Local) String() string {
	return l.Mount
}
