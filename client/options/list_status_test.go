package options

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tierfs/wire"
)

func TestListStatusDefaults(t *testing.T) {
	o := ListStatusDefaults()
	assert.Equal(t, wire.Once, o.LoadMetadataType())
	assert.False(t, o.Recursive())
	assert.False(t, o.ForceMetadataReload())
	assert.False(t, o.DirAsFile())
	assert.False(t, o.Pinned())
	assert.True(t, o.Equal(ListStatusDefaults()))
}

func TestListStatusToWire(t *testing.T) {
	for _, lmt := range []wire.LoadMetadataType{wire.Never, wire.Once, wire.Always} {
		w := ListStatusDefaults().SetLoadMetadataType(lmt).ToWire()
		assert.Equal(t, lmt, w.LoadMetadataType)
		assert.Equal(t, lmt != wire.Never, w.LoadDirectChildren, "policy %s", lmt)
	}
}

func TestListStatusToWireIgnoresClientFields(t *testing.T) {
	o := ListStatusDefaults().
		SetRecursive(true).
		SetForceMetadataReload(true).
		SetDirAsFile(true).
		SetPinned(true)
	assert.Equal(t, ListStatusDefaults().ToWire(), o.ToWire())
}

func TestListStatusEqual(t *testing.T) {
	a := ListStatusDefaults().SetRecursive(true).SetLoadMetadataType(wire.Always).SetPinned(true)
	b := ListStatusDefaults().SetPinned(true).SetLoadMetadataType(wire.Always).SetRecursive(true)

	assert.True(t, a.Equal(a))
	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))
	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, *a, *b)

	variants := []*ListStatusOptions{
		ListStatusDefaults().SetLoadMetadataType(wire.Never),
		ListStatusDefaults().SetLoadMetadataType(wire.Always),
		ListStatusDefaults().SetRecursive(true),
		ListStatusDefaults().SetForceMetadataReload(true),
		ListStatusDefaults().SetDirAsFile(true),
		ListStatusDefaults().SetPinned(true),
	}
	def := ListStatusDefaults()
	for _, v := range variants {
		assert.False(t, def.Equal(v), "%s", v)
		assert.False(t, v.Equal(def), "%s", v)
		assert.NotEqual(t, def.Hash(), v.Hash(), "%s", v)
	}
	for i := range variants {
		for j := range variants {
			if i != j {
				assert.False(t, variants[i].Equal(variants[j]))
			}
		}
	}
	assert.False(t, def.Equal(nil))
}

func TestListStatusHashKeepsWholeLoadMetadataType(t *testing.T) {
	never := ListStatusDefaults().SetLoadMetadataType(wire.Never)
	wrapped := ListStatusDefaults().SetLoadMetadataType(wire.LoadMetadataType(256))
	assert.False(t, never.Equal(wrapped))
	assert.NotEqual(t, never.Hash(), wrapped.Hash())

	always := ListStatusDefaults().SetLoadMetadataType(wire.Always)
	assert.NotEqual(t, always.Hash(), ListStatusDefaults().SetLoadMetadataType(wire.LoadMetadataType(258)).Hash())
}

func TestListStatusAsMapKey(t *testing.T) {
	seen := map[ListStatusOptions]int{}
	seen[*ListStatusDefaults().SetRecursive(true)]++
	seen[*ListStatusDefaults().SetRecursive(true)]++
	seen[*ListStatusDefaults()]++
	assert.Len(t, seen, 2)
}

func TestListStatusString(t *testing.T) {
	s := ListStatusDefaults().SetLoadMetadataType(wire.Always).String()
	assert.Contains(t, s, "loadMetadataType=Always")
}
