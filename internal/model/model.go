// Package model contains the request-scoped media types shared by the HTTP, service and storage layers.
// Nothing here is persisted; the media provider owns every record.
package model

// ResourceType is the provider's classification of a stored object.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
	ResourceRaw   ResourceType = "raw"
	// ResourceAuto asks the provider to classify the upload itself.
	ResourceAuto ResourceType = "auto"
)

// TypeFilterAll selects every concrete resource type when listing.
const TypeFilterAll = "all"

// ResourceTypes lists the concrete types in the order they are queried and deleted.
var ResourceTypes = []ResourceType{ResourceImage, ResourceVideo, ResourceRaw}

// Valid reports whether t is one of the concrete types.
func (t ResourceType) Valid() bool {
	switch t {
	case ResourceImage, ResourceVideo, ResourceRaw:
		return true
	}
	return false
}

// ResolveResourceType maps a caller-supplied value to a concrete type, falling back to image.
func ResolveResourceType(s string) ResourceType {
	if t := ResourceType(s); t.Valid() {
		return t
	}
	return ResourceImage
}

// ParseTypeFilter maps the listing filter. Unknown or empty values select all types.
func ParseTypeFilter(s string) (ResourceType, bool) {
	if t := ResourceType(s); t.Valid() {
		return t, false
	}
	return "", true
}
