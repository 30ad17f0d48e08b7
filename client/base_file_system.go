package client

import (
	"errors"
	"fmt"
	"strings"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"

	"tierfs/client/options"
	"tierfs/wire"
)

type baseFileSystem struct {
	svc      MetadataService
	listings *cache.Cache
}

// NewFileSystem returns a FileSystem that forwards requests to svc and caches listings.
func NewFileSystem(svc MetadataService, c Config) FileSystem {
	fs := &baseFileSystem{svc: svc}
	ttl := c.ListingCacheTTL
	if ttl == 0 {
		ttl = DefaultListingCacheTTL
	}
	if ttl > 0 {
		fs.listings = cache.New(ttl, 2*ttl)
	}
	return fs
}

func (b *baseFileSystem) GetStatus(ph string) (URIStatus, error) {
	ph, err := ValidatePath(ph)
	if err != nil {
		return URIStatus{}, err
	}
	return b.status(ph, wire.GetStatusOptions{LoadMetadataType: wire.Once})
}

func (b *baseFileSystem) status(ph string, o wire.GetStatusOptions) (URIStatus, error) {
	fi, err := b.svc.GetStatus(ph, o)
	if err != nil {
		return URIStatus{}, err
	}
	return URIStatus{fi}, nil
}

func (b *baseFileSystem) Exists(ph string) (bool, error) {
	_, err := b.GetStatus(ph)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (b *baseFileSystem) ListStatus(ph string, o *options.ListStatusOptions) ([]URIStatus, error) {
	ph, err := ValidatePath(ph)
	if err != nil {
		return nil, err
	}
	if o == nil {
		o = options.ListStatusDefaults()
	}
	logrus.Debugf("list %s with %s", ph, o)

	w := o.ToWire()
	if o.DirAsFile() {
		st, err := b.status(ph, wire.GetStatusOptions{LoadMetadataType: w.LoadMetadataType})
		if err != nil {
			return nil, err
		}
		if o.Pinned() && !st.Pinned {
			return nil, nil
		}
		return []URIStatus{st}, nil
	}

	var res []URIStatus
	err = b.listDir(ph, o, w, &res)
	return res, err
}

func (b *baseFileSystem) listDir(ph string, o *options.ListStatusOptions, w wire.ListStatusOptions, res *[]URIStatus) error {
	fis, err := b.fetch(ph, w, o.ForceMetadataReload())
	if err != nil {
		return err
	}

	for _, fi := range fis {
		if !o.Pinned() || fi.Pinned {
			*res = append(*res, URIStatus{fi})
		}
		if o.Recursive() && fi.Folder {
			if err := b.listDir(fi.Path, o, w, res); err != nil {
				return err
			}
		}
	}
	return nil
}

func listingKey(ph string, w wire.ListStatusOptions) string {
	return fmt.Sprintf("%s|%t|%s", ph, w.LoadDirectChildren, w.LoadMetadataType)
}

func (b *baseFileSystem) fetch(ph string, w wire.ListStatusOptions, force bool) ([]wire.FileInfo, error) {
	cacheable := b.listings != nil && w.LoadMetadataType != wire.Always
	key := listingKey(ph, w)
	if cacheable && !force {
		if v, found := b.listings.Get(key); found {
			logrus.Debugf("listing of %s served from cache", ph)
			return v.([]wire.FileInfo), nil
		}
	}

	fis, err := b.svc.ListStatus(ph, w)
	if err != nil {
		return nil, err
	}
	if cacheable {
		b.listings.Set(key, fis, cache.DefaultExpiration)
	}
	return fis, nil
}

func (b *baseFileSystem) SetAttribute(ph string, o *options.SetAttributeOptions) error {
	ph, err := ValidatePath(ph)
	if err != nil {
		return err
	}
	if o == nil {
		o = options.SetAttributeDefaults()
	}
	logrus.Debugf("set attribute of %s with %s", ph, o)

	err = b.svc.SetAttribute(ph, o.ToWire())
	b.invalidate(ph)
	b.invalidate(ParentPath(ph))
	return err
}

func (b *baseFileSystem) invalidate(ph string) {
	if b.listings == nil {
		return
	}
	prefix := ph + "|"
	for k := range b.listings.Items() {
		if strings.HasPrefix(k, prefix) {
			b.listings.Delete(k)
		}
	}
}

func (b *baseFileSystem) Close() error {
	if b.listings != nil {
		b.listings.Flush()
	}
	return nil
}
