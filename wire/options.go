package wire

// NoTTL unsets the time to live of a path.
const NoTTL int64 = -1

// ListStatusOptions is the listing request sent to the metadata service. LoadDirectChildren
// predates LoadMetadataType and is kept for services that only understand the boolean form.
type ListStatusOptions struct {
	LoadDirectChildren bool             `json:"loadDirectChildren"`
	LoadMetadataType   LoadMetadataType `json:"loadMetadataType"`
}

// GetStatusOptions is the status request sent to the metadata service. A path that is not
// mirrored yet is loaded from the under file system unless LoadMetadataType is Never.
type GetStatusOptions struct {
	LoadMetadataType LoadMetadataType `json:"loadMetadataType"`
}

// SetAttributeOptions carries the attributes to change on a path. A nil field is left untouched.
type SetAttributeOptions struct {
	Pinned *bool  `json:"pinned,omitempty"`
	TTL    *int64 `json:"ttl,omitempty"`
}

func (o SetAttributeOptions) HasPinned() bool {
	return o.Pinned != nil
}

func (o SetAttributeOptions) HasTTL() bool {
	return o.TTL != nil
}

// IsEmpty is true when the request would not change anything.
func (o SetAttributeOptions) IsEmpty() bool {
	return o.Pinned == nil && o.TTL == nil
}
