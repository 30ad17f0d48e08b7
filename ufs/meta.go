package ufs

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"path"
	"reflect"
	"strings"

	"github.com/hashicorp/go-multierror"
)

// MetaBlob holds the gob encoding of each meta value, keyed by its type name.
type MetaBlob map[string][]byte

const metaSuffix = "!.meta"

// MetaName is the name of the sidecar file holding the metadata of name.
func MetaName(name string) string {
	dir, name := path.Split(name)
	return path.Join(dir, fmt.Sprintf(".%s%s", name, metaSuffix))
}

// IsMeta is true for the sidecar file that stores the metadata of another file.
func IsMeta(name string) bool {
	return strings.HasSuffix(name, metaSuffix)
}

func metaKey(meta interface{}) string {
	return strings.Trim(reflect.TypeOf(meta).String(), "*")
}

func readMetaBlob(f FS, name string) (MetaBlob, error) {
	m := make(MetaBlob)
	bs := new(bytes.Buffer)
	if err := f.Pull(MetaName(name), bs); err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(bs).Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// SetMeta stores metas next to name. Values of other types already stored are kept.
func SetMeta(f FS, name string, metas ...interface{}) error {
	m, err := readMetaBlob(f, name)
	if err != nil {
		m = make(MetaBlob)
	}

	for _, meta := range metas {
		buf := new(bytes.Buffer)
		err = gob.NewEncoder(buf).Encode(meta)
		if err != nil {
			return err
		}
		m[metaKey(meta)] = buf.Bytes()
	}
	buf := new(bytes.Buffer)
	err = gob.NewEncoder(buf).Encode(m)
	if err != nil {
		return err
	}

	return f.Push(MetaName(name), buf)
}

// GetMeta decodes into metas the values stored next to name. Metas with no stored value are
// left untouched.
func GetMeta(f FS, name string, metas ...interface{}) error {
	m, err := readMetaBlob(f, name)
	if err != nil {
		return err
	}

	var errs *multierror.Error
	for _, meta := range metas {
		if v, ok := m[metaKey(meta)]; ok {
			d := gob.NewDecoder(bytes.NewBuffer(v))
			if err := d.Decode(meta); err != nil {
				errs = multierror.Append(errs, err)
			}
		}
	}

	return errs.ErrorOrNil()
}

func RemoveMeta(f FS, name string) error {
	return f.Remove(MetaName(name))
}
