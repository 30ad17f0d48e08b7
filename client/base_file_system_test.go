package client

import (
	"errors"
	"sort"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tierfs/client/options"
	"tierfs/wire"
)

func init() {
	log.SetLevel(log.DebugLevel)
}

type listCall struct {
	path string
	opts wire.ListStatusOptions
}

type fakeService struct {
	files    map[string]wire.FileInfo
	lists    []listCall
	stats    []wire.GetStatusOptions
	attrs    []wire.SetAttributeOptions
	failWith error
}

func newFakeService() *fakeService {
	s := &fakeService{files: map[string]wire.FileInfo{}}
	s.add("/", true, false)
	s.add("/a", true, false)
	s.add("/a/x", false, true)
	s.add("/a/y", false, false)
	s.add("/a/sub", true, false)
	s.add("/a/sub/z", false, true)
	return s
}

func (s *fakeService) add(ph string, folder, pinned bool) {
	s.files[ph] = wire.FileInfo{Path: ph, Folder: folder, Pinned: pinned, TTL: wire.NoTTL}
}

func (s *fakeService) GetStatus(ph string, o wire.GetStatusOptions) (wire.FileInfo, error) {
	s.stats = append(s.stats, o)
	if s.failWith != nil {
		return wire.FileInfo{}, s.failWith
	}
	fi, ok := s.files[ph]
	if !ok {
		return wire.FileInfo{}, NewError(NotFound, "path %s does not exist", ph)
	}
	return fi, nil
}

func (s *fakeService) ListStatus(ph string, o wire.ListStatusOptions) ([]wire.FileInfo, error) {
	s.lists = append(s.lists, listCall{ph, o})
	if s.failWith != nil {
		return nil, s.failWith
	}
	var fis []wire.FileInfo
	for p, fi := range s.files {
		if p != "/" && ParentPath(p) == ph {
			fis = append(fis, fi)
		}
	}
	sort.Slice(fis, func(i, j int) bool { return fis[i].Path < fis[j].Path })
	return fis, nil
}

func (s *fakeService) SetAttribute(ph string, o wire.SetAttributeOptions) error {
	if s.failWith != nil {
		return s.failWith
	}
	fi, ok := s.files[ph]
	if !ok {
		return NewError(NotFound, "path %s does not exist", ph)
	}
	s.attrs = append(s.attrs, o)
	if o.Pinned != nil {
		fi.Pinned = *o.Pinned
	}
	if o.TTL != nil {
		fi.TTL = *o.TTL
	}
	s.files[ph] = fi
	return nil
}

func paths(sts []URIStatus) []string {
	var ps []string
	for _, st := range sts {
		ps = append(ps, st.Path)
	}
	return ps
}

func TestListStatusSendsWireOptions(t *testing.T) {
	s := newFakeService()
	f := NewFileSystem(s, Config{ListingCacheTTL: -1})

	for _, lmt := range []wire.LoadMetadataType{wire.Never, wire.Once, wire.Always} {
		_, err := f.ListStatus("/a", options.ListStatusDefaults().SetLoadMetadataType(lmt))
		require.NoError(t, err)
	}
	require.Len(t, s.lists, 3)
	assert.Equal(t, wire.ListStatusOptions{LoadDirectChildren: false, LoadMetadataType: wire.Never}, s.lists[0].opts)
	assert.Equal(t, wire.ListStatusOptions{LoadDirectChildren: true, LoadMetadataType: wire.Once}, s.lists[1].opts)
	assert.Equal(t, wire.ListStatusOptions{LoadDirectChildren: true, LoadMetadataType: wire.Always}, s.lists[2].opts)
}

func TestListStatusDefaults(t *testing.T) {
	s := newFakeService()
	f := NewFileSystem(s, Config{})

	sts, err := f.ListStatus("/a/", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/sub", "/a/x", "/a/y"}, paths(sts))
	assert.Equal(t, "/a", s.lists[0].path)
}

func TestListStatusRecursive(t *testing.T) {
	f := NewFileSystem(newFakeService(), Config{})

	sts, err := f.ListStatus("/a", options.ListStatusDefaults().SetRecursive(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/sub", "/a/sub/z", "/a/x", "/a/y"}, paths(sts))

	sts, err = f.ListStatus("/a", options.ListStatusDefaults().SetRecursive(true).SetPinned(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/sub/z", "/a/x"}, paths(sts))
}

func TestListStatusDirAsFile(t *testing.T) {
	s := newFakeService()
	f := NewFileSystem(s, Config{})

	sts, err := f.ListStatus("/a", options.ListStatusDefaults().SetDirAsFile(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"/a"}, paths(sts))
	assert.Empty(t, s.lists)

	sts, err = f.ListStatus("/a", options.ListStatusDefaults().SetDirAsFile(true).SetPinned(true))
	require.NoError(t, err)
	assert.Empty(t, sts)
}

func TestListStatusDirAsFileSendsLoadMetadataType(t *testing.T) {
	s := newFakeService()
	f := NewFileSystem(s, Config{})

	for _, lmt := range []wire.LoadMetadataType{wire.Never, wire.Once, wire.Always} {
		_, err := f.ListStatus("/a/x", options.ListStatusDefaults().SetDirAsFile(true).SetLoadMetadataType(lmt))
		require.NoError(t, err)
	}
	_, err := f.GetStatus("/a/x")
	require.NoError(t, err)

	assert.Equal(t, []wire.GetStatusOptions{
		{LoadMetadataType: wire.Never},
		{LoadMetadataType: wire.Once},
		{LoadMetadataType: wire.Always},
		{LoadMetadataType: wire.Once},
	}, s.stats)
}

func TestListStatusCache(t *testing.T) {
	s := newFakeService()
	f := NewFileSystem(s, Config{})

	_, err := f.ListStatus("/a", nil)
	require.NoError(t, err)
	_, err = f.ListStatus("/a", nil)
	require.NoError(t, err)
	assert.Len(t, s.lists, 1)

	_, err = f.ListStatus("/a", options.ListStatusDefaults().SetForceMetadataReload(true))
	require.NoError(t, err)
	assert.Len(t, s.lists, 2)

	_, err = f.ListStatus("/a", options.ListStatusDefaults().SetLoadMetadataType(wire.Always))
	require.NoError(t, err)
	_, err = f.ListStatus("/a", options.ListStatusDefaults().SetLoadMetadataType(wire.Always))
	require.NoError(t, err)
	assert.Len(t, s.lists, 4)
}

func TestSetAttributeInvalidatesParentListing(t *testing.T) {
	s := newFakeService()
	f := NewFileSystem(s, Config{})

	sts, err := f.ListStatus("/a", options.ListStatusDefaults().SetPinned(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/x"}, paths(sts))

	require.NoError(t, f.SetAttribute("/a/y", options.SetAttributeDefaults().SetPinned(true)))
	require.Len(t, s.attrs, 1)
	assert.True(t, *s.attrs[0].Pinned)
	assert.Nil(t, s.attrs[0].TTL)

	sts, err = f.ListStatus("/a", options.ListStatusDefaults().SetPinned(true))
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/x", "/a/y"}, paths(sts))
}

func TestInvalidPath(t *testing.T) {
	f := NewFileSystem(newFakeService(), Config{})

	_, err := f.ListStatus("a", nil)
	assert.True(t, errors.Is(err, ErrInvalidPath))
	_, err = f.GetStatus(`\a`)
	assert.True(t, errors.Is(err, ErrInvalidPath))
	err = f.SetAttribute("", options.SetAttributeDefaults().SetTTL(1))
	assert.True(t, errors.Is(err, ErrInvalidPath))
}

func TestExists(t *testing.T) {
	s := newFakeService()
	f := NewFileSystem(s, Config{})

	ok, err := f.Exists("/a/x")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Exists("/nope")
	assert.NoError(t, err)
	assert.False(t, ok)

	s.failWith = NewError(Unavailable, "down")
	_, err = f.Exists("/a/x")
	assert.True(t, errors.Is(err, ErrUnavailable))
	assert.NoError(t, f.Close())
}

func TestErrorIs(t *testing.T) {
	err := NewError(NotFound, "path /x does not exist")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrUnavailable))
	assert.True(t, errors.Is(err, NewError(NotFound, "path /x does not exist")))
	assert.Equal(t, "path /x does not exist", err.Error())
	assert.Equal(t, "NotFound", ErrNotFound.Error())

	var fe *Error
	assert.True(t, errors.As(error(err), &fe))
	assert.Equal(t, NotFound, fe.Code)
}
