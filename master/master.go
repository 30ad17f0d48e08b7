// Package master serves the namespace metadata of an under file system.
package master

import (
	"os"
	"path"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tierfs/client"
	"tierfs/ufs"
	"tierfs/wire"
)

// Attr is persisted in the sidecar metadata of each path. gob skips zero values, so the
// presence of a TTL is explicit.
type Attr struct {
	Pinned     bool
	HasTTL     bool
	TTL        int64
	TTLSetAtMs int64
}

type inode struct {
	info           wire.FileInfo
	attr           Attr
	childrenLoaded bool
	children       map[string]*inode
}

// Master mirrors the under file system in memory and loads metadata on demand.
type Master struct {
	ufs    ufs.FS
	inodes map[string]*inode
	lock   sync.Mutex
	now    func() time.Time
}

func New(f ufs.FS) (*Master, error) {
	m := &Master{
		ufs:    f,
		inodes: make(map[string]*inode),
		now:    time.Now,
	}

	root, err := m.load("/")
	if err != nil {
		return nil, err
	}
	m.add("/", root)
	return m, nil
}

func ufsPath(ph string) string {
	return strings.TrimPrefix(ph, "/")
}

func toMs(t time.Time) int64 {
	return t.UnixNano() / int64(time.Millisecond)
}

func mapUfsError(ph string, err error) error {
	if os.IsNotExist(err) {
		return client.NewError(client.NotFound, "path %s does not exist", ph)
	}
	return client.NewError(client.Unavailable, "cannot load %s from the under file system: %v", ph, err)
}

func newInode(ph string, fi os.FileInfo, attr Attr) *inode {
	n := &inode{info: wire.NewFileInfo(ph, fi), attr: attr, children: make(map[string]*inode)}
	n.applyAttr()
	return n
}

// add mirrors n at ph and links it to its parent.
func (m *Master) add(ph string, n *inode) {
	m.inodes[ph] = n
	if ph == "/" {
		return
	}
	if p, ok := m.inodes[client.ParentPath(ph)]; ok {
		p.children[ph] = n
	}
}

// forget drops ph and its descendants from the namespace.
func (m *Master) forget(ph string) {
	n, ok := m.inodes[ph]
	if !ok {
		return
	}
	m.forgetChildren(n)
	delete(m.inodes, ph)
	if p, ok := m.inodes[client.ParentPath(ph)]; ok && ph != "/" {
		delete(p.children, ph)
	}
}

func (m *Master) forgetChildren(n *inode) {
	for cp := range n.children {
		m.forget(cp)
	}
	n.childrenLoaded = false
}

func (n *inode) applyAttr() {
	n.info.Pinned = n.attr.Pinned
	n.info.TTL = wire.NoTTL
	if n.attr.HasTTL {
		n.info.TTL = n.attr.TTL
	}
}

func (m *Master) readAttr(ph string) Attr {
	var attr Attr
	if err := ufs.GetMeta(m.ufs, ufsPath(ph), &attr); err != nil && !os.IsNotExist(err) {
		logrus.Warnf("cannot read attributes of %s: %v", ph, err)
	}
	return attr
}

// load stats ph in the under file system.
func (m *Master) load(ph string) (*inode, error) {
	if ufs.IsMeta(path.Base(ph)) {
		return nil, client.NewError(client.NotFound, "path %s does not exist", ph)
	}
	fi, err := m.ufs.Stat(ufsPath(ph))
	if err != nil {
		return nil, mapUfsError(ph, err)
	}
	logrus.Debugf("loaded metadata of %s", ph)
	return newInode(ph, fi, m.readAttr(ph)), nil
}

// resolve returns the inode of ph, loading it and its missing ancestors unless lmt is Never.
func (m *Master) resolve(ph string, lmt wire.LoadMetadataType) (*inode, error) {
	if n, ok := m.inodes[ph]; ok {
		return n, nil
	}
	if lmt == wire.Never {
		return nil, client.NewError(client.NotFound, "path %s does not exist", ph)
	}

	parent, err := m.resolve(client.ParentPath(ph), lmt)
	if err != nil {
		return nil, err
	}
	if !parent.info.Folder {
		return nil, client.NewError(client.NotFound, "path %s does not exist", ph)
	}

	n, err := m.load(ph)
	if err != nil {
		return nil, err
	}
	m.add(ph, n)
	return n, nil
}

// GetStatus returns the status of ph. With Never only mirrored paths are found.
func (m *Master) GetStatus(ph string, o wire.GetStatusOptions) (wire.FileInfo, error) {
	ph, err := client.ValidatePath(ph)
	if err != nil {
		return wire.FileInfo{}, err
	}
	if !o.LoadMetadataType.IsValid() {
		return wire.FileInfo{}, client.NewError(client.InvalidArgument, "invalid load metadata type %s", o.LoadMetadataType)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	n, err := m.resolve(ph, o.LoadMetadataType)
	if err != nil {
		return wire.FileInfo{}, err
	}
	return n.info, nil
}

// ListStatus lists a directory. The children are read from the under file system when
// LoadDirectChildren is set and they were never loaded, or on every call with Always.
// A file lists as itself.
func (m *Master) ListStatus(ph string, o wire.ListStatusOptions) ([]wire.FileInfo, error) {
	ph, err := client.ValidatePath(ph)
	if err != nil {
		return nil, err
	}
	if !o.LoadMetadataType.IsValid() {
		return nil, client.NewError(client.InvalidArgument, "invalid load metadata type %s", o.LoadMetadataType)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	n, err := m.resolve(ph, o.LoadMetadataType)
	if err != nil {
		return nil, err
	}
	if !n.info.Folder {
		return []wire.FileInfo{n.info}, nil
	}

	if o.LoadDirectChildren && (o.LoadMetadataType == wire.Always || !n.childrenLoaded) {
		if err := m.loadChildren(ph, n); err != nil {
			return nil, err
		}
	}

	return n.list(), nil
}

func (n *inode) list() []wire.FileInfo {
	fis := make([]wire.FileInfo, 0, len(n.children))
	for _, c := range n.children {
		fis = append(fis, c.info)
	}
	sort.Slice(fis, func(i, j int) bool { return fis[i].Path < fis[j].Path })
	return fis
}

func (m *Master) loadChildren(ph string, n *inode) error {
	ls, err := m.ufs.ReadDir(ufsPath(ph), ufs.IncludeHiddenFiles)
	if err != nil {
		return mapUfsError(ph, err)
	}

	metas := make(map[string]bool)
	for _, l := range ls {
		if ufs.IsMeta(l.Name()) {
			metas[l.Name()] = true
		}
	}

	live := make(map[string]bool)
	for _, l := range ls {
		if ufs.IsMeta(l.Name()) {
			continue
		}
		cp := path.Join(ph, l.Name())
		live[cp] = true

		var attr Attr
		if metas[ufs.MetaName(l.Name())] {
			attr = m.readAttr(cp)
		}
		old, ok := n.children[cp]
		if !ok {
			m.add(cp, newInode(cp, l, attr))
			continue
		}
		if !l.IsDir() {
			m.forgetChildren(old)
		}
		loaded, children := old.childrenLoaded, old.children
		*old = *newInode(cp, l, attr)
		old.childrenLoaded, old.children = loaded, children
	}

	for cp := range n.children {
		if !live[cp] {
			m.forget(cp)
		}
	}

	n.childrenLoaded = true
	logrus.Debugf("loaded %d children of %s", len(live), ph)
	return nil
}

// SetAttribute changes the pin state or the TTL of ph and persists them next to the path.
func (m *Master) SetAttribute(ph string, o wire.SetAttributeOptions) error {
	ph, err := client.ValidatePath(ph)
	if err != nil {
		return err
	}
	if o.TTL != nil && *o.TTL < wire.NoTTL {
		return client.NewError(client.InvalidArgument, "invalid ttl %d for %s", *o.TTL, ph)
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	n, err := m.resolve(ph, wire.Once)
	if err != nil {
		return err
	}

	attr := n.attr
	if o.Pinned != nil {
		attr.Pinned = *o.Pinned
	}
	if o.TTL != nil {
		attr.HasTTL = *o.TTL != wire.NoTTL
		attr.TTL, attr.TTLSetAtMs = 0, 0
		if attr.HasTTL {
			attr.TTL = *o.TTL
			attr.TTLSetAtMs = toMs(m.now())
		}
	}
	if attr == n.attr {
		return nil
	}

	if err := ufs.SetMeta(m.ufs, ufsPath(ph), attr); err != nil {
		return client.NewError(client.Unavailable, "cannot persist attributes of %s: %v", ph, err)
	}
	n.attr = attr
	n.applyAttr()
	logrus.Infof("attributes of %s: pinned=%t ttl=%d", ph, n.info.Pinned, n.info.TTL)
	return nil
}

// TTLDeadline returns when ph becomes eligible for deletion. ok is false without a TTL.
func (m *Master) TTLDeadline(ph string) (deadline time.Time, ok bool, err error) {
	ph, err = client.ValidatePath(ph)
	if err != nil {
		return time.Time{}, false, err
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	n, err := m.resolve(ph, wire.Once)
	if err != nil {
		return time.Time{}, false, err
	}
	if !n.attr.HasTTL {
		return time.Time{}, false, nil
	}
	ms := n.attr.TTLSetAtMs + n.attr.TTL
	return time.Unix(0, ms*int64(time.Millisecond)), true, nil
}
