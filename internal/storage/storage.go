// Package storage is the media provider: a hosted-media style API (typed assets, folders, cursors)
// implemented on top of an S3-compatible bucket. Implementations stream uploads; no local disk is used.
package storage

import (
	"context"
	"errors"
	"io"

	"mediaapi/internal/model"
)

var (
	ErrReaderNil     = errors.New("reader is nil")
	ErrAssetExists   = errors.New("asset already exists")
	ErrInvalidCursor = errors.New("invalid pagination cursor")
	ErrFolderExists  = errors.New("folder already exists")
)

// UploadOptions mirror the knobs of a hosted media upload call.
// Size should be the exact number of bytes if known; if unknown, set to -1.
type UploadOptions struct {
	Folder      string
	Filename    string
	ContentType string
	Size        int64
	// ResourceType may be model.ResourceAuto to classify the content by sniffing it.
	ResourceType   model.ResourceType
	UseFilename    bool
	UniqueFilename bool
	Overwrite      bool
}

// AssetQuery selects one page of assets of a single type.
type AssetQuery struct {
	ResourceType model.ResourceType
	Prefix       string
	MaxResults   int
	NextCursor   string
}

// AssetPage is one page of a listing. NextCursor is empty on the last page.
type AssetPage struct {
	Assets     []model.MediaResource
	NextCursor string
}

// DestroyResult is the outcome of deleting one asset: "ok" or "not found".
type DestroyResult struct {
	Result string `json:"result"`
}

// DeleteAssetsResult maps each requested public id to "deleted" or "not_found".
type DeleteAssetsResult struct {
	Deleted map[string]string `json:"deleted"`
}

// RenameFolderResult describes a folder move.
type RenameFolderResult struct {
	From  model.Folder `json:"from"`
	To    model.Folder `json:"to"`
	Moved int          `json:"moved"`
}

// DeleteFolderResult lists the deleted folder paths and how many objects went with them.
type DeleteFolderResult struct {
	Deleted []string `json:"deleted"`
	Removed int      `json:"removed"`
}

// Provider is the remote media-storage API consumed by the services.
type Provider interface {
	// Upload stores one file and returns the resulting asset.
	Upload(ctx context.Context, r io.Reader, opt UploadOptions) (model.MediaResource, error)
	// ListAssets returns one page of assets of a single type whose public id starts with the
	// prefix, newest first.
	ListAssets(ctx context.Context, q AssetQuery) (AssetPage, error)
	// Destroy deletes one asset.
	Destroy(ctx context.Context, publicID string, rt model.ResourceType) (DestroyResult, error)
	// DeleteAssets deletes several assets of the same type.
	DeleteAssets(ctx context.Context, publicIDs []string, rt model.ResourceType) (DeleteAssetsResult, error)

	// RootFolders lists top-level folders.
	RootFolders(ctx context.Context) ([]model.Folder, error)
	// SubFolders lists the direct children of a folder.
	SubFolders(ctx context.Context, path string) ([]model.Folder, error)
	// CreateFolder creates a folder; parents are implied.
	CreateFolder(ctx context.Context, path string) (model.Folder, error)
	// RenameFolder moves every asset under from to to. The destination must be empty.
	RenameFolder(ctx context.Context, from, to string) (RenameFolderResult, error)
	// DeleteFolder removes a folder and everything under it.
	DeleteFolder(ctx context.Context, path string) (DeleteFolderResult, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error
}
