package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"mediaapi/internal/model"
	"mediaapi/internal/pathutil"
	"mediaapi/internal/storage"
)

var (
	ErrNoFiles          = errors.New("no files uploaded")
	ErrTooManyFiles     = errors.New("too many files")
	ErrFileTooLarge     = errors.New("file too large")
	ErrPublicIDRequired = errors.New("publicId is required")
	ErrItemsRequired    = errors.New("items are required")
)

const (
	DefaultLimit = 60
	MaxLimit     = 200
)

// ParseLimit parses a page size, falling back to DefaultLimit and clamping to [1, MaxLimit].
func ParseLimit(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultLimit
	}
	return clampLimit(n)
}

func clampLimit(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return n
}

// UploadLimits bound a single upload request.
type UploadLimits struct {
	DefaultFolder string
	MaxFiles      int
	MaxFileBytes  int64
}

// ListQuery is a resource listing request. ResourceType is the raw filter value
// (image, video, raw or all); NextCursor is only honoured for a single type.
type ListQuery struct {
	Prefix       string
	ResourceType string
	Limit        int
	NextCursor   string
}

// ListResult is the listing response. NextCursor is null on the last page and in all-types mode.
type ListResult struct {
	Resources  []model.MediaResource `json:"resources"`
	NextCursor *string               `json:"nextCursor"`
}

// BulkDeleteResult holds one provider result per resource type that had ids to delete.
type BulkDeleteResult map[model.ResourceType]storage.DeleteAssetsResult

// MediaService defines the media use cases.
type MediaService interface {
	// Upload stores every item, one after another, under the resolved base folder.
	// The first failure aborts the request; files already stored are kept.
	Upload(ctx context.Context, folder string, items []model.UploadItem) ([]model.UploadResult, error)

	// List returns resources of one type, or of all types merged newest first.
	List(ctx context.Context, q ListQuery) (*ListResult, error)

	// Delete removes a single resource.
	Delete(ctx context.Context, ref model.ResourceRef) (*storage.DestroyResult, error)

	// BulkDelete removes resources, issuing one provider call per resource type.
	BulkDelete(ctx context.Context, refs []model.ResourceRef) (BulkDeleteResult, error)
}

// mediaService is a concrete implementation of MediaService.
type mediaService struct {
	provider storage.Provider
	limits   UploadLimits
	log      zerolog.Logger
}

// NewMediaService constructs a new MediaService.
func NewMediaService(provider storage.Provider, limits UploadLimits, log zerolog.Logger) MediaService {
	return &mediaService{
		provider: provider,
		limits:   limits,
		log:      log.With().Str("component", "media-service").Logger(),
	}
}

func (s *mediaService) Upload(ctx context.Context, folder string, items []model.UploadItem) ([]model.UploadResult, error) {
	if len(items) == 0 {
		return nil, ErrNoFiles
	}
	if s.limits.MaxFiles > 0 && len(items) > s.limits.MaxFiles {
		return nil, fmt.Errorf("%d files, at most %d allowed: %w", len(items), s.limits.MaxFiles, ErrTooManyFiles)
	}
	for _, it := range items {
		if s.limits.MaxFileBytes > 0 && it.Size > s.limits.MaxFileBytes {
			return nil, fmt.Errorf("%s: %w", it.Filename, ErrFileTooLarge)
		}
	}

	base := pathutil.Sanitize(folder)
	if base == "" {
		base = pathutil.ResolveBaseFolder(s.limits.DefaultFolder)
	}

	results := make([]model.UploadResult, 0, len(items))
	for _, it := range items {
		target := pathutil.FolderForFile(base, it.Path, it.Filename)
		res, err := s.provider.Upload(ctx, it.Body, storage.UploadOptions{
			Folder:         target,
			Filename:       it.Filename,
			ContentType:    it.ContentType,
			Size:           it.Size,
			ResourceType:   model.ResourceAuto,
			UseFilename:    true,
			UniqueFilename: true,
			Overwrite:      false,
		})
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", it.Filename, err)
		}
		results = append(results, model.UploadResult{
			URL:          res.URL,
			PublicID:     res.PublicID,
			ResourceType: res.ResourceType,
			Bytes:        res.Bytes,
			Format:       res.Format,
			CreatedAt:    res.CreatedAt,
		})
	}
	return results, nil
}

func (s *mediaService) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	limit := clampLimit(q.Limit)
	prefix := pathutil.Sanitize(q.Prefix)

	if rt, all := model.ParseTypeFilter(q.ResourceType); !all {
		page, err := s.provider.ListAssets(ctx, storage.AssetQuery{
			ResourceType: rt,
			Prefix:       prefix,
			MaxResults:   limit,
			NextCursor:   q.NextCursor,
		})
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", rt, err)
		}
		res := &ListResult{Resources: page.Assets}
		if res.Resources == nil {
			res.Resources = []model.MediaResource{}
		}
		if page.NextCursor != "" {
			res.NextCursor = &page.NextCursor
		}
		return res, nil
	}

	return &ListResult{Resources: s.listAllTypes(ctx, prefix, limit)}, nil
}

// listAllTypes queries every type concurrently and waits for all of them. A failing type
// contributes nothing; the goroutines never fail the group.
func (s *mediaService) listAllTypes(ctx context.Context, prefix string, limit int) []model.MediaResource {
	pages := make([][]model.MediaResource, len(model.ResourceTypes))

	var g errgroup.Group
	for i, rt := range model.ResourceTypes {
		g.Go(func() error {
			page, err := s.provider.ListAssets(ctx, storage.AssetQuery{
				ResourceType: rt,
				Prefix:       prefix,
				MaxResults:   limit,
			})
			if err != nil {
				s.log.Warn().Err(err).Str("resource_type", string(rt)).Str("prefix", prefix).
					Msg("listing failed, treating as empty")
				return nil
			}
			pages[i] = page.Assets
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]model.MediaResource, 0, limit)
	for _, p := range pages {
		merged = append(merged, p...)
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

func (s *mediaService) Delete(ctx context.Context, ref model.ResourceRef) (*storage.DestroyResult, error) {
	if ref.PublicID == "" {
		return nil, ErrPublicIDRequired
	}
	rt := model.ResolveResourceType(ref.ResourceType)
	res, err := s.provider.Destroy(ctx, ref.PublicID, rt)
	if err != nil {
		return nil, fmt.Errorf("destroy %s/%s: %w", rt, ref.PublicID, err)
	}
	return &res, nil
}

func (s *mediaService) BulkDelete(ctx context.Context, refs []model.ResourceRef) (BulkDeleteResult, error) {
	if len(refs) == 0 {
		return nil, ErrItemsRequired
	}

	buckets := make(map[model.ResourceType][]string, len(model.ResourceTypes))
	for _, ref := range refs {
		if ref.PublicID == "" {
			continue
		}
		rt := model.ResolveResourceType(ref.ResourceType)
		buckets[rt] = append(buckets[rt], ref.PublicID)
	}

	out := make(BulkDeleteResult, len(buckets))
	for _, rt := range model.ResourceTypes {
		ids := buckets[rt]
		if len(ids) == 0 {
			continue
		}
		res, err := s.provider.DeleteAssets(ctx, ids, rt)
		if err != nil {
			return nil, fmt.Errorf("bulk delete %s: %w", rt, err)
		}
		out[rt] = res
	}
	return out, nil
}
