package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tierfs/client/options"
	"tierfs/ufs"
	"tierfs/wire"
)

func init() {
	log.SetLevel(log.DebugLevel)
}

// setupStore defines the store "test" on a local folder holding a few files.
func setupStore(t *testing.T) (data ufs.FS) {
	home = t.TempDir()
	t.Cleanup(func() {
		CloseAllFss()
		home = ""
	})

	dataDir := t.TempDir()
	data = ufs.NewLocalMount(dataDir)
	require.NoError(t, data.Push("docs/a.txt", bytes.NewBufferString("a")))
	require.NoError(t, data.Push("docs/b.txt", bytes.NewBufferString("bb")))

	c, err := NewStoreConfig("local")
	require.NoError(t, err)
	c.Name = "test"
	c.Local.Mount = dataDir
	require.NoError(t, ufs.WriteYaml(ufs.NewLocalMount(home), "test.yaml", c))
	return data
}

func run(t *testing.T, args ...string) (string, error) {
	root := NewRootCmd()
	out := new(bytes.Buffer)
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(args)
	err := Execute(root)
	return out.String(), err
}

func TestGetFS(t *testing.T) {
	setupStore(t)

	f, name, ph, err := GetFS("test/docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "test", name)
	assert.Equal(t, "/docs/a.txt", ph)

	f2, _, ph, err := GetFS("test")
	require.NoError(t, err)
	assert.Equal(t, "/", ph)
	assert.Equal(t, f, f2)

	_, _, _, err = GetFS("unknown/x")
	assert.Error(t, err)
}

func TestGetFSLocalPath(t *testing.T) {
	t.Cleanup(CloseAllFss)
	dir := t.TempDir()
	require.NoError(t, ufs.NewLocalMount(dir).Push("f.txt", bytes.NewBufferString("f")))

	f, name, ph, err := GetFS(filepath.Join(dir, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, ".", name)
	assert.Equal(t, "/f.txt", ph)

	st, err := f.GetStatus(ph)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.Length)
}

func TestListCmd(t *testing.T) {
	setupStore(t)

	out, err := run(t, "ls", "test/docs")
	require.NoError(t, err)
	assert.Contains(t, out, "/docs/a.txt")
	assert.Contains(t, out, "/docs/b.txt")
	assert.Contains(t, out, "-rw-r--r--")

	out, err = run(t, "ls", "-d", "test/docs")
	require.NoError(t, err)
	assert.Contains(t, out, "/docs")
	assert.NotContains(t, out, "a.txt")

	_, err = run(t, "ls", "--load-metadata", "sometimes", "test/docs")
	assert.Error(t, err)
}

func TestPinAndTTLCmds(t *testing.T) {
	setupStore(t)

	_, err := run(t, "pin", "test/docs/a.txt", "test/docs/b.txt")
	require.NoError(t, err)
	_, err = run(t, "setTtl", "test/docs/b.txt", "5000")
	require.NoError(t, err)

	f, _, _, err := GetFS("test")
	require.NoError(t, err)
	sts, err := f.ListStatus("/docs", options.ListStatusDefaults().SetPinned(true))
	require.NoError(t, err)
	require.Len(t, sts, 2)
	assert.Equal(t, wire.NoTTL, sts[0].TTL)
	assert.Equal(t, int64(5000), sts[1].TTL)

	out, err := run(t, "ls", "-p", "test/docs")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, "PINNED"))
	assert.Contains(t, out, "5000")

	_, err = run(t, "unpin", "test/docs/a.txt")
	require.NoError(t, err)
	_, err = run(t, "unsetTtl", "test/docs/b.txt")
	require.NoError(t, err)

	f, _, _, err = GetFS("test")
	require.NoError(t, err)
	st, err := f.GetStatus("/docs/b.txt")
	require.NoError(t, err)
	assert.True(t, st.Pinned)
	assert.False(t, st.HasTTL())
	st, err = f.GetStatus("/docs/a.txt")
	require.NoError(t, err)
	assert.False(t, st.Pinned)

	_, err = run(t, "setTtl", "test/docs/b.txt", "-3")
	assert.Error(t, err)
}

func TestPinMissingPath(t *testing.T) {
	setupStore(t)

	err := Pin([]string{"test/docs/missing.txt", "test/docs/a.txt"}, true)
	require.Error(t, err)
	var ioe *IOError
	assert.True(t, errors.As(err, &ioe))
	assert.Equal(t, "path /docs/missing.txt does not exist", ioe.Message)

	f, _, _, err := GetFS("test")
	require.NoError(t, err)
	st, err := f.GetStatus("/docs/a.txt")
	require.NoError(t, err)
	assert.True(t, st.Pinned)
}

func TestStatCmd(t *testing.T) {
	setupStore(t)

	out, err := run(t, "stat", "test/docs/b.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Path:        /docs/b.txt")
	assert.Contains(t, out, "Size:        2")
	assert.Contains(t, out, "TTL:         none")

	_, err = run(t, "stat", "test/docs/none")
	var ioe *IOError
	assert.True(t, errors.As(err, &ioe))
	assert.Empty(t, fsCache)
}

func TestFailingLocalCommandClosesFss(t *testing.T) {
	CloseAllFss()
	t.Cleanup(CloseAllFss)
	dir := t.TempDir()
	require.NoError(t, ufs.NewLocalMount(dir).Push("f.txt", bytes.NewBufferString("f")))

	f, _, _, err := GetFS(filepath.Join(dir, "f.txt"))
	require.NoError(t, err)
	f2, _, _, err := GetFS(filepath.Join(dir, "g.txt"))
	require.NoError(t, err)
	assert.Equal(t, f, f2)
	assert.Len(t, fsCache, 1)

	_, err = run(t, "stat", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
	assert.Empty(t, fsCache)
}

func TestNewStoreConfig(t *testing.T) {
	for _, st := range storeTypes {
		_, err := NewStoreConfig(st)
		assert.NoError(t, err, st)
	}
	_, err := NewStoreConfig("kafka")
	assert.Error(t, err)
}
