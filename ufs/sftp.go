package ufs

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

type SFTPConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
	Base     string `json:"base" yaml:"base"`
}

type SFTP struct {
	c    *sftp.Client
	addr string
	base string
}

func NewSFTP(config SFTPConfig) (FS, error) {
	addr := config.Addr
	if !strings.ContainsRune(addr, ':') {
		addr = fmt.Sprintf("%s:22", addr)
	}

	cc := &ssh.ClientConfig{
		User: config.Username,
		Auth: []ssh.AuthMethod{
			ssh.Password(config.Password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	client, err := ssh.Dial("tcp", addr, cc)
	if err != nil {
		return nil, err
	}
	c, err := sftp.NewClient(client)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	return &SFTP{c, addr, config.Base}, nil
}

func (s *SFTP) realPath(name string) string {
	p := path.Join(s.base, name)
	if p == "" {
		return "."
	}
	return p
}

func (s *SFTP) MkdirAll(name string) error {
	return s.c.MkdirAll(s.realPath(name))
}

func (s *SFTP) mkParent(name string) error {
	dir := path.Dir(s.realPath(name))
	_, err := s.c.Stat(dir)
	if err == nil {
		return nil
	}

	return s.c.MkdirAll(dir)
}

func (s *SFTP) Pull(name string, w io.Writer) error {
	r, err := s.c.Open(s.realPath(name))
	if err != nil {
		return err
	}
	defer r.Close()

	_, err = io.Copy(w, r)
	return err
}

func (s *SFTP) Push(name string, r io.Reader) error {
	if err := s.mkParent(name); err != nil {
		return err
	}

	w, err := s.c.Create(s.realPath(name))
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = io.Copy(w, r)
	return err
}

func (s *SFTP) ReadDir(name string, opts ListOption) ([]fs.FileInfo, error) {
	entries, err := s.c.ReadDir(s.realPath(name))
	if err != nil {
		return nil, err
	}

	var fis []fs.FileInfo
	for _, e := range entries {
		if (opts&IncludeHiddenFiles) == 0 && strings.HasPrefix(e.Name(), ".") {
			continue
		}
		fis = append(fis, e)
	}
	return fis, nil
}

func (s *SFTP) Stat(name string) (fs.FileInfo, error) {
	return s.c.Stat(s.realPath(name))
}

func (s *SFTP) Remove(name string) error {
	return s.c.Remove(s.realPath(name))
}

func (s *SFTP) Close() error {
	return s.c.Close()
}

func (s *SFTP) String() string {
	return fmt.Sprintf("sftp://%s%s", s.addr, s.base)
}
