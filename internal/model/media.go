package model

import (
	"io"
	"time"
)

// MediaResource is a provider-owned object relayed to the caller.
type MediaResource struct {
	PublicID     string       `json:"public_id"`
	ResourceType ResourceType `json:"resource_type"`
	URL          string       `json:"url"`
	Bytes        int64        `json:"bytes"`
	Format       string       `json:"format"`
	Folder       string       `json:"folder"`
	CreatedAt    time.Time    `json:"created_at"`
}

// UploadResult is the per-file record returned by an upload.
type UploadResult struct {
	URL          string       `json:"url"`
	PublicID     string       `json:"public_id"`
	ResourceType ResourceType `json:"resource_type"`
	Bytes        int64        `json:"bytes"`
	Format       string       `json:"format"`
	CreatedAt    time.Time    `json:"created_at"`
}

// UploadItem is one file of a multipart upload. Path is the relative path declared by the client, if any.
type UploadItem struct {
	Filename    string
	Path        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Folder is a provider folder.
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// ResourceRef identifies a resource for deletion.
type ResourceRef struct {
	PublicID     string `json:"publicId"`
	ResourceType string `json:"resourceType"`
}
