package ufs

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string `json:"endpoint" yaml:"endpoint"`
	Bucket    string `json:"bucket" yaml:"bucket"`
	Location  string `json:"location" yaml:"location"`
	AccessKey string `json:"accessKey" yaml:"accessKey"`
	Secret    string `json:"secret" yaml:"secret"`
	UseSSL    bool   `json:"useSsl" yaml:"useSsl"`
}

type S3FS struct {
	c      *minio.Client
	bucket string
}

func checkBucket(ctx context.Context, c *minio.Client, bucket string, location string) error {
	exists, err := c.BucketExists(ctx, bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: location})
}

func NewS3(config S3Config) (FS, error) {
	ctx := context.Background()

	c, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.Secret, ""),
		Secure: config.UseSSL,
		Region: config.Location,
	})
	if err != nil {
		return nil, err
	}

	err = checkBucket(ctx, c, config.Bucket, config.Location)
	if err != nil {
		return nil, err
	}

	return &S3FS{c, config.Bucket}, nil
}

func s3Key(name string) string {
	return strings.Trim(path.Clean("/"+name), "/")
}

func s3Prefix(name string) string {
	k := s3Key(name)
	if k == "" {
		return ""
	}
	return k + "/"
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}

// MkdirAll creates an empty marker object so that empty folders survive.
func (s3 *S3FS) MkdirAll(name string) error {
	p := s3Prefix(name)
	if p == "" {
		return nil
	}
	_, err := s3.c.PutObject(context.Background(), s3.bucket, p, strings.NewReader(""), 0,
		minio.PutObjectOptions{})
	return err
}

func (s3 *S3FS) Pull(name string, w io.Writer) error {
	ctx := context.Background()

	r, err := s3.c.GetObject(ctx, s3.bucket, s3Key(name), minio.GetObjectOptions{})
	if err != nil {
		return err
	}
	defer r.Close()

	_, err = io.Copy(w, r)
	if isNoSuchKey(err) {
		return &fs.PathError{Op: "pull", Path: name, Err: os.ErrNotExist}
	}
	return err
}

func (s3 *S3FS) Push(name string, r io.Reader) error {
	_, err := s3.c.PutObject(context.Background(), s3.bucket, s3Key(name), r, -1, minio.PutObjectOptions{})
	return err
}

func (s3 *S3FS) ReadDir(name string, opts ListOption) ([]fs.FileInfo, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	prefix := s3Prefix(name)
	ls := s3.c.ListObjects(ctx, s3.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: false,
	})

	var sfo []fs.FileInfo
	for e := range ls {
		if e.Err != nil {
			return nil, e.Err
		}
		n := strings.TrimSuffix(e.Key[len(prefix):], "/")
		if n == "" {
			continue
		}
		if opts&IncludeHiddenFiles == 0 && strings.HasPrefix(n, ".") {
			continue
		}
		isDir := strings.HasSuffix(e.Key, "/")
		mode := defaultFileMode
		if isDir {
			mode = defaultDirMode
		}
		sfo = append(sfo, simpleFileInfo{
			name:    n,
			size:    e.Size,
			isDir:   isDir,
			mode:    mode,
			modTime: e.LastModified,
		})
	}
	if sfo == nil && prefix != "" && !s3.hasPrefix(ctx, prefix) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: os.ErrNotExist}
	}
	return sfo, nil
}

func (s3 *S3FS) hasPrefix(ctx context.Context, prefix string) bool {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for e := range s3.c.ListObjects(ctx, s3.bucket, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}) {
		return e.Err == nil
	}
	return false
}

func (s3 *S3FS) Stat(name string) (fs.FileInfo, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	key := s3Key(name)
	if key == "" {
		return simpleFileInfo{name: "", isDir: true, mode: defaultDirMode}, nil
	}

	r, err := s3.c.StatObject(ctx, s3.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return simpleFileInfo{
			name:    path.Base(r.Key),
			size:    r.Size,
			mode:    defaultFileMode,
			modTime: r.LastModified,
		}, nil
	}
	if !isNoSuchKey(err) {
		return nil, err
	}
	if s3.hasPrefix(ctx, key+"/") {
		return simpleFileInfo{name: path.Base(key), isDir: true, mode: defaultDirMode}, nil
	}
	return nil, &fs.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
}

func (s3 *S3FS) Remove(name string) error {
	return s3.c.RemoveObject(context.Background(), s3.bucket, s3Key(name), minio.RemoveObjectOptions{})
}

func (s3 *S3FS) Close() error {
	return nil
}

func (s3 *S3FS) String() string {
	return "s3://" + s3.bucket
}
