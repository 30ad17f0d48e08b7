package ufs

import (
	"os"
)

// Config selects the under file system. Exactly one backend is expected to be set.
type Config struct {
	Name   string       `json:"name" yaml:"name"`
	Local  *LocalConfig `json:"local,omitempty" yaml:"local,omitempty"`
	S3     *S3Config    `json:"s3,omitempty" yaml:"s3,omitempty"`
	SFTP   *SFTPConfig  `json:"sftp,omitempty" yaml:"sftp,omitempty"`
	FTP    *FTPConfig   `json:"ftp,omitempty" yaml:"ftp,omitempty"`
	Memory bool         `json:"memory,omitempty" yaml:"memory,omitempty"`
}

// NewFS creates a new under file system with the given configuration c
func NewFS(c Config) (FS, error) {
	switch {
	case c.Local != nil:
		return NewLocal(*c.Local)
	case c.S3 != nil:
		return NewS3(*c.S3)
	case c.SFTP != nil:
		return NewSFTP(*c.SFTP)
	case c.FTP != nil:
		return NewFTP(*c.FTP)
	case c.Memory:
		return NewMemory(), nil
	}

	return nil, os.ErrInvalid
}
