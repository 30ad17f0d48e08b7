package options

import (
	"fmt"
	"strings"

	"tierfs/wire"
)

// SetAttributeOptions collects the attributes to change on a path. Only the fields that were
// set are sent.
type SetAttributeOptions struct {
	pinned *bool
	ttl    *int64
}

func SetAttributeDefaults() *SetAttributeOptions {
	return &SetAttributeOptions{}
}

// Pinned returns the pin state and whether it was set.
func (o *SetAttributeOptions) Pinned() (bool, bool) {
	if o.pinned == nil {
		return false, false
	}
	return *o.pinned, true
}

// SetPinned marks the path as exempt (true) or eligible (false) for eviction.
func (o *SetAttributeOptions) SetPinned(pinned bool) *SetAttributeOptions {
	o.pinned = &pinned
	return o
}

// TTL returns the time to live in milliseconds and whether it was set.
func (o *SetAttributeOptions) TTL() (int64, bool) {
	if o.ttl == nil {
		return wire.NoTTL, false
	}
	return *o.ttl, true
}

// SetTTL sets the time to live in milliseconds. The path is deleted ttlMs after the change,
// pinned or not. wire.NoTTL removes an existing TTL.
func (o *SetAttributeOptions) SetTTL(ttlMs int64) *SetAttributeOptions {
	o.ttl = &ttlMs
	return o
}

func (o *SetAttributeOptions) ToWire() wire.SetAttributeOptions {
	var w wire.SetAttributeOptions
	if o.pinned != nil {
		p := *o.pinned
		w.Pinned = &p
	}
	if o.ttl != nil {
		t := *o.ttl
		w.TTL = &t
	}
	return w
}

func (o *SetAttributeOptions) String() string {
	var fields []string
	if p, ok := o.Pinned(); ok {
		fields = append(fields, fmt.Sprintf("pinned=%t", p))
	}
	if t, ok := o.TTL(); ok {
		fields = append(fields, fmt.Sprintf("ttl=%d", t))
	}
	return fmt.Sprintf("SetAttributeOptions{%s}", strings.Join(fields, ", "))
}
