package cli

import (
	"errors"
	"fmt"
	"time"

	"tierfs/client"
	"tierfs/client/options"
	"tierfs/wire"
)

// NoTTL removes the TTL of a path when passed to SetTTL.
const NoTTL = wire.NoTTL

// IOError reports a failed file system operation. Message is the message of the failure
// raised by the file system.
type IOError struct {
	Message string
}

func (e *IOError) Error() string {
	return e.Message
}

// toIOError turns the failures raised by the file system into an IOError. Other errors are
// returned as they are.
func toIOError(err error) error {
	var fe *client.Error
	if errors.As(err, &fe) {
		return &IOError{Message: fe.Error()}
	}
	return err
}

// SetTTL sets the TTL of path in milliseconds: the path is deleted ttlMs after this call,
// whether it is pinned or not. NoTTL unsets it.
func SetTTL(fs client.FileSystem, path string, ttlMs int64) error {
	o := options.SetAttributeDefaults().SetTTL(ttlMs)
	return toIOError(fs.SetAttribute(path, o))
}

// SetPinned pins or unpins path. Pinned paths are never evicted from the storage tier.
func SetPinned(fs client.FileSystem, path string, pinned bool) error {
	o := options.SetAttributeDefaults().SetPinned(pinned)
	return toIOError(fs.SetAttribute(path, o))
}

func permissionBit(permission, mask int, c byte) byte {
	if permission&mask == mask {
		return c
	}
	return '-'
}

// FormatPermission renders the low 9 bits of permission like ls does, e.g. -rwxr-xr-x.
//
// It works in two phases. The groups are emitted from the least significant one, each as
// x, w, r, and the type character comes last. Reversing the result then puts the type first,
// the owner group next and each group in r, w, x order.
func FormatPermission(permission int, isDir bool) string {
	perm := make([]byte, 0, 10)
	for i := 0; i < 3; i++ {
		perm = append(perm,
			permissionBit(permission, 0x01, 'x'),
			permissionBit(permission, 0x02, 'w'),
			permissionBit(permission, 0x04, 'r'))
		permission >>= 3
	}
	if isDir {
		perm = append(perm, 'd')
	} else {
		perm = append(perm, '-')
	}

	for i, j := 0, len(perm)-1; i < j; i, j = i+1, j-1 {
		perm[i], perm[j] = perm[j], perm[i]
	}
	return string(perm)
}

// ConvertMsToDate formats epoch milliseconds as MM-dd-yyyy HH:mm:ss:SSS in local time.
func ConvertMsToDate(millis int64) string {
	t := time.Unix(0, millis*int64(time.Millisecond))
	return fmt.Sprintf("%s:%03d", t.Format("01-02-2006 15:04:05"), t.Nanosecond()/int(time.Millisecond))
}
