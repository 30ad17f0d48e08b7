//go:build windows
// +build windows

package ufs

import (
	"golang.org/x/sys/windows"
)

func hideFile(ph string) error {
	p, err := windows.UTF16PtrFromString(ph)
	if err != nil {
		return err
	}

	return windows.SetFileAttributes(p, windows.FILE_ATTRIBUTE_HIDDEN)
}
