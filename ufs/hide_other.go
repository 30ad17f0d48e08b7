//go:build !windows
// +build !windows

package ufs

// On unix the leading dot already hides the file.
func hideFile(string) error {
	return nil
}
