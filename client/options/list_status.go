package options

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"tierfs/wire"
)

// ListStatusOptions describes how a directory listing behaves. A value is owned by a single
// call and must not be mutated concurrently.
type ListStatusOptions struct {
	loadMetadataType    wire.LoadMetadataType
	recursive           bool
	forceMetadataReload bool
	dirAsFile           bool
	pinned              bool
}

// ListStatusDefaults returns the default listing options: metadata is loaded once, nothing else
// is enabled.
func ListStatusDefaults() *ListStatusOptions {
	return &ListStatusOptions{
		loadMetadataType: wire.Once,
	}
}

// LoadMetadataType specifies whether direct children are loaded from the under file system.
func (o *ListStatusOptions) LoadMetadataType() wire.LoadMetadataType {
	return o.loadMetadataType
}

func (o *ListStatusOptions) SetLoadMetadataType(t wire.LoadMetadataType) *ListStatusOptions {
	o.loadMetadataType = t
	return o
}

// Recursive lists subdirectories too.
func (o *ListStatusOptions) Recursive() bool {
	return o.recursive
}

func (o *ListStatusOptions) SetRecursive(recursive bool) *ListStatusOptions {
	o.recursive = recursive
	return o
}

// ForceMetadataReload bypasses any cached listing of the directory's children.
func (o *ListStatusOptions) ForceMetadataReload() bool {
	return o.forceMetadataReload
}

func (o *ListStatusOptions) SetForceMetadataReload(force bool) *ListStatusOptions {
	o.forceMetadataReload = force
	return o
}

// DirAsFile reports directories as plain entries instead of listing their content.
func (o *ListStatusOptions) DirAsFile() bool {
	return o.dirAsFile
}

func (o *ListStatusOptions) SetDirAsFile(dirAsFile bool) *ListStatusOptions {
	o.dirAsFile = dirAsFile
	return o
}

// Pinned restricts the result to pinned paths.
func (o *ListStatusOptions) Pinned() bool {
	return o.pinned
}

func (o *ListStatusOptions) SetPinned(pinned bool) *ListStatusOptions {
	o.pinned = pinned
	return o
}

// ToWire projects the options on the request understood by the metadata service. Once and
// Always both load direct children; they only differ on when the service reloads them.
func (o *ListStatusOptions) ToWire() wire.ListStatusOptions {
	return wire.ListStatusOptions{
		LoadDirectChildren: o.loadMetadataType == wire.Once || o.loadMetadataType == wire.Always,
		LoadMetadataType:   o.loadMetadataType,
	}
}

// Equal compares all fields.
func (o *ListStatusOptions) Equal(other *ListStatusOptions) bool {
	if o == nil || other == nil {
		return o == other
	}
	return *o == *other
}

func (o *ListStatusOptions) Hash() uint64 {
	buf := make([]byte, binary.MaxVarintLen64, binary.MaxVarintLen64+4)
	buf = buf[:binary.PutUvarint(buf, uint64(o.loadMetadataType))]
	buf = append(buf,
		boolByte(o.recursive),
		boolByte(o.forceMetadataReload),
		boolByte(o.dirAsFile),
		boolByte(o.pinned))
	return xxhash.Sum64(buf)
}

func (o *ListStatusOptions) String() string {
	return fmt.Sprintf("ListStatusOptions{loadMetadataType=%s, recursive=%t, forceMetadataReload=%t, dirAsFile=%t, pinned=%t}",
		o.loadMetadataType, o.recursive, o.forceMetadataReload, o.dirAsFile, o.pinned)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
