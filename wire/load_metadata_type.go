package wire

import (
	"fmt"
	"strings"
)

// LoadMetadataType decides if and when the children of a directory are loaded from the under
// file system during a listing.
type LoadMetadataType int

const (
	// Never loads metadata from the under file system.
	Never LoadMetadataType = iota
	// Once loads metadata the first time the directory is listed.
	Once
	// Always reloads metadata on every listing.
	Always
)

var loadMetadataTypeNames = map[LoadMetadataType]string{
	Never:  "Never",
	Once:   "Once",
	Always: "Always",
}

func (t LoadMetadataType) String() string {
	if n, ok := loadMetadataTypeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("LoadMetadataType(%d)", int(t))
}

// IsValid reports whether t is one of Never, Once or Always.
func (t LoadMetadataType) IsValid() bool {
	_, ok := loadMetadataTypeNames[t]
	return ok
}

// ParseLoadMetadataType parses a policy name, case insensitive.
func ParseLoadMetadataType(s string) (LoadMetadataType, error) {
	for t, n := range loadMetadataTypeNames {
		if strings.EqualFold(n, strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return Once, fmt.Errorf("invalid load metadata type '%s': expected never, once or always", s)
}

func (t LoadMetadataType) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid load metadata type %d", int(t))
	}
	return []byte(t.String()), nil
}

func (t *LoadMetadataType) UnmarshalText(text []byte) error {
	v, err := ParseLoadMetadataType(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}
