package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"mediaapi/internal/config"
	"mediaapi/internal/model"
	"mediaapi/internal/pathutil"
)

const (
	// folderRoot holds empty-folder markers so folders can exist without assets.
	folderRoot   = ".folders"
	folderMarker = ".keep"
	// sniffLen is how much of an upload is inspected to classify it.
	sniffLen = 3072
	// suffixAttempts bounds the retries when a unique name collides.
	suffixAttempts = 3
)

// Object layout:
//
//	<resourceType>/<publicId>        assets
//	.folders/<path>/.keep            folder markers
var listRoots = []string{
	string(model.ResourceImage),
	string(model.ResourceVideo),
	string(model.ResourceRaw),
	folderRoot,
}

// minioStorage implements Provider using an S3-compatible backend (MinIO, AWS S3, etc.).
// It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
	presignTTL    time.Duration
	newSuffix     func() string
}

// NewMinIO creates a new S3-compatible media provider backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Provider, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return newMinIOStorage(cli, cfg), nil
}

func newMinIOStorage(cli *minio.Client, cfg config.MinIOConfig) *minioStorage {
	ttl := cfg.PresignTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &minioStorage{
		client:        cli,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		presignTTL:    ttl,
		newSuffix:     randomSuffix,
	}
}

// Upload streams r into the bucket. The first bytes are sniffed to pick the resource type
// when opt.ResourceType is auto, and to fill in a missing content type or extension.
func (m *minioStorage) Upload(ctx context.Context, r io.Reader, opt UploadOptions) (model.MediaResource, error) {
	if r == nil {
		return model.MediaResource{}, ErrReaderNil
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return model.MediaResource{}, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	mt := mimetype.Detect(head)

	rt := opt.ResourceType
	if !rt.Valid() {
		rt = classify(mt)
	}
	contentType := opt.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mt.String()
	}
	ext := pathutil.Segment(strings.ToLower(strings.TrimPrefix(path.Ext(pathutil.Base(opt.Filename)), ".")))
	if ext != "" {
		ext = "." + ext
	} else {
		ext = mt.Extension()
	}

	name := ""
	if opt.UseFilename {
		base := pathutil.Base(opt.Filename)
		name = pathutil.Segment(strings.TrimSuffix(base, path.Ext(base)))
	}
	unique := opt.UniqueFilename || name == ""

	var publicID, key string
	for attempt := 0; ; attempt++ {
		suffix := ""
		if unique {
			suffix = m.newSuffix()
		}
		publicID = buildPublicID(opt.Folder, name, suffix, ext)
		key = objectKey(rt, publicID)
		if opt.Overwrite {
			break
		}
		exists, err := m.exists(ctx, key)
		if err != nil {
			return model.MediaResource{}, err
		}
		if !exists {
			break
		}
		if !unique || attempt+1 >= suffixAttempts {
			return model.MediaResource{}, fmt.Errorf("%s: %w", publicID, ErrAssetExists)
		}
	}

	putOpts := minio.PutObjectOptions{
		ContentType: contentType,
		UserMetadata: map[string]string{
			"original-filename": url.PathEscape(opt.Filename),
			"resource-type":     string(rt),
		},
	}
	info, err := m.client.PutObject(ctx, m.bucket, key, io.MultiReader(bytes.NewReader(head), r), opt.Size, putOpts)
	if err != nil {
		return model.MediaResource{}, err
	}

	created := info.LastModified
	if created.IsZero() {
		created = time.Now().UTC() // not every backend reports LastModified on PUT
	}
	return m.toResource(ctx, rt, publicID, info.Size, created)
}

// ListAssets returns assets newest first, ties broken by public id. The whole prefix is read
// so the order holds across pages; the cursor names the last asset returned.
func (m *minioStorage) ListAssets(ctx context.Context, q AssetQuery) (AssetPage, error) {
	if !q.ResourceType.Valid() {
		return AssetPage{}, fmt.Errorf("list assets: unsupported resource type %q", q.ResourceType)
	}
	limit := q.MaxResults
	if limit <= 0 {
		limit = 10
	}
	var after assetCursor
	if q.NextCursor != "" {
		c, err := decodeCursor(q.NextCursor)
		if err != nil {
			return AssetPage{}, err
		}
		after = c
	}

	root := string(q.ResourceType) + "/"
	var objects []minio.ObjectInfo
	err := m.walk(ctx, minio.ListObjectsOptions{Prefix: root + q.Prefix, Recursive: true}, func(obj minio.ObjectInfo) (bool, error) {
		objects = append(objects, obj)
		return true, nil
	})
	if err != nil {
		return AssetPage{}, fmt.Errorf("list %s assets: %w", q.ResourceType, err)
	}
	sort.Slice(objects, func(i, j int) bool {
		return newerThan(objects[i].LastModified, objects[i].Key, objects[j].LastModified, objects[j].Key)
	})

	start := 0
	if q.NextCursor != "" {
		start = sort.Search(len(objects), func(i int) bool {
			return newerThan(after.modified, root+after.publicID, objects[i].LastModified, objects[i].Key)
		})
	}
	end := min(start+limit, len(objects))

	page := AssetPage{Assets: make([]model.MediaResource, 0, end-start)}
	for _, obj := range objects[start:end] {
		res, err := m.toResource(ctx, q.ResourceType, strings.TrimPrefix(obj.Key, root), obj.Size, obj.LastModified)
		if err != nil {
			return AssetPage{}, fmt.Errorf("list %s assets: %w", q.ResourceType, err)
		}
		page.Assets = append(page.Assets, res)
	}
	if end < len(objects) {
		last := objects[end-1]
		page.NextCursor = encodeCursor(last.LastModified, strings.TrimPrefix(last.Key, root))
	}
	return page, nil
}

// newerThan orders listings: later modification first, then key ascending.
func newerThan(at time.Time, aKey string, bt time.Time, bKey string) bool {
	if !at.Equal(bt) {
		return at.After(bt)
	}
	return aKey < bKey
}

// Destroy removes one asset, reporting "not found" when it does not exist.
func (m *minioStorage) Destroy(ctx context.Context, publicID string, rt model.ResourceType) (DestroyResult, error) {
	key := objectKey(rt, publicID)
	exists, err := m.exists(ctx, key)
	if err != nil {
		return DestroyResult{}, err
	}
	if !exists {
		return DestroyResult{Result: "not found"}, nil
	}
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return DestroyResult{}, fmt.Errorf("remove %s: %w", key, err)
	}
	return DestroyResult{Result: "ok"}, nil
}

// DeleteAssets removes the existing assets among publicIDs in one batch.
func (m *minioStorage) DeleteAssets(ctx context.Context, publicIDs []string, rt model.ResourceType) (DeleteAssetsResult, error) {
	res := DeleteAssetsResult{Deleted: make(map[string]string, len(publicIDs))}
	keys := make([]string, 0, len(publicIDs))
	for _, id := range publicIDs {
		key := objectKey(rt, id)
		exists, err := m.exists(ctx, key)
		if err != nil {
			return DeleteAssetsResult{}, err
		}
		if !exists {
			res.Deleted[id] = "not_found"
			continue
		}
		keys = append(keys, key)
		res.Deleted[id] = "deleted"
	}
	if err := m.removeKeys(ctx, keys); err != nil {
		return DeleteAssetsResult{}, err
	}
	return res, nil
}

func (m *minioStorage) RootFolders(ctx context.Context) ([]model.Folder, error) {
	return m.listFolders(ctx, "")
}

func (m *minioStorage) SubFolders(ctx context.Context, p string) ([]model.Folder, error) {
	return m.listFolders(ctx, p)
}

// listFolders unions the delimiter listings of every root so that folders implied by assets
// and folders created empty both show up.
func (m *minioStorage) listFolders(ctx context.Context, parent string) ([]model.Folder, error) {
	seen := make(map[string]struct{})
	folders := make([]model.Folder, 0)
	for _, root := range listRoots {
		prefix := folderPrefix(root, parent)
		err := m.walk(ctx, minio.ListObjectsOptions{Prefix: prefix}, func(obj minio.ObjectInfo) (bool, error) {
			if !strings.HasSuffix(obj.Key, "/") {
				return true, nil
			}
			name := strings.TrimSuffix(strings.TrimPrefix(obj.Key, prefix), "/")
			if name == "" {
				return true, nil
			}
			if _, ok := seen[name]; ok {
				return true, nil
			}
			seen[name] = struct{}{}
			folders = append(folders, model.Folder{Name: name, Path: pathutil.Join(parent, name)})
			return true, nil
		})
		if err != nil {
			return nil, fmt.Errorf("list folders under %q: %w", prefix, err)
		}
	}
	sort.Slice(folders, func(i, j int) bool { return folders[i].Name < folders[j].Name })
	return folders, nil
}

func (m *minioStorage) CreateFolder(ctx context.Context, p string) (model.Folder, error) {
	key := folderPrefix(folderRoot, p) + folderMarker
	_, err := m.client.PutObject(ctx, m.bucket, key, bytes.NewReader(nil), 0, minio.PutObjectOptions{
		ContentType: "application/x-directory",
	})
	if err != nil {
		return model.Folder{}, fmt.Errorf("create folder %s: %w", p, err)
	}
	return model.Folder{Name: pathutil.Leaf(p), Path: p}, nil
}

// RenameFolder copies every object under from into to, root by root, then removes the originals.
// Renaming onto a folder that already holds objects fails with ErrFolderExists.
func (m *minioStorage) RenameFolder(ctx context.Context, from, to string) (RenameFolderResult, error) {
	res := RenameFolderResult{
		From: model.Folder{Name: pathutil.Leaf(from), Path: from},
		To:   model.Folder{Name: pathutil.Leaf(to), Path: to},
	}
	if from == to {
		return res, nil
	}
	for _, root := range listRoots {
		taken, err := m.anyUnder(ctx, folderPrefix(root, to))
		if err != nil {
			return RenameFolderResult{}, err
		}
		if taken {
			return RenameFolderResult{}, fmt.Errorf("%s: %w", to, ErrFolderExists)
		}
	}

	for _, root := range listRoots {
		src := folderPrefix(root, from)
		dst := folderPrefix(root, to)
		keys, err := m.keysUnder(ctx, src)
		if err != nil {
			return RenameFolderResult{}, err
		}
		moved := make([]string, 0, len(keys))
		for _, key := range keys {
			target := dst + strings.TrimPrefix(key, src)
			if target == key {
				continue
			}
			_, err := m.client.CopyObject(ctx,
				minio.CopyDestOptions{Bucket: m.bucket, Object: target},
				minio.CopySrcOptions{Bucket: m.bucket, Object: key},
			)
			if err != nil {
				return RenameFolderResult{}, fmt.Errorf("copy %s: %w", key, err)
			}
			moved = append(moved, key)
		}
		if err := m.removeKeys(ctx, moved); err != nil {
			return RenameFolderResult{}, err
		}
		if root != folderRoot {
			res.Moved += len(moved)
		}
	}
	return res, nil
}

// DeleteFolder removes every object under the folder in every root.
func (m *minioStorage) DeleteFolder(ctx context.Context, p string) (DeleteFolderResult, error) {
	var keys []string
	for _, root := range listRoots {
		k, err := m.keysUnder(ctx, folderPrefix(root, p))
		if err != nil {
			return DeleteFolderResult{}, err
		}
		keys = append(keys, k...)
	}
	if err := m.removeKeys(ctx, keys); err != nil {
		return DeleteFolderResult{}, err
	}
	res := DeleteFolderResult{Deleted: []string{}, Removed: len(keys)}
	if len(keys) > 0 {
		res.Deleted = append(res.Deleted, p)
	}
	return res, nil
}

func (m *minioStorage) Ping(ctx context.Context) error {
	ok, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %s does not exist", m.bucket)
	}
	return nil
}

// walk lists objects and stops as soon as fn returns false or an error.
// The listing goroutine is released by cancelling its context.
func (m *minioStorage) walk(ctx context.Context, opts minio.ListObjectsOptions, fn func(minio.ObjectInfo) (bool, error)) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	for obj := range m.client.ListObjects(ctx, m.bucket, opts) {
		if obj.Err != nil {
			return obj.Err
		}
		more, err := fn(obj)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
	return nil
}

func (m *minioStorage) keysUnder(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	err := m.walk(ctx, minio.ListObjectsOptions{Prefix: prefix, Recursive: true}, func(obj minio.ObjectInfo) (bool, error) {
		keys = append(keys, obj.Key)
		return true, nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", prefix, err)
	}
	return keys, nil
}

func (m *minioStorage) anyUnder(ctx context.Context, prefix string) (bool, error) {
	found := false
	err := m.walk(ctx, minio.ListObjectsOptions{Prefix: prefix, Recursive: true, MaxKeys: 1}, func(minio.ObjectInfo) (bool, error) {
		found = true
		return false, nil
	})
	if err != nil {
		return false, fmt.Errorf("list %s: %w", prefix, err)
	}
	return found, nil
}

func (m *minioStorage) removeKeys(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	objects := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		objects <- minio.ObjectInfo{Key: k}
	}
	close(objects)

	var errs []error
	for rerr := range m.client.RemoveObjects(ctx, m.bucket, objects, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("remove %s: %w", rerr.ObjectName, rerr.Err))
	}
	return errors.Join(errs...)
}

func (m *minioStorage) exists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", key, err)
}

func (m *minioStorage) toResource(ctx context.Context, rt model.ResourceType, publicID string, size int64, created time.Time) (model.MediaResource, error) {
	u, err := m.objectURL(ctx, objectKey(rt, publicID))
	if err != nil {
		return model.MediaResource{}, err
	}
	return model.MediaResource{
		PublicID:     publicID,
		ResourceType: rt,
		URL:          u,
		Bytes:        size,
		Format:       strings.TrimPrefix(path.Ext(publicID), "."),
		Folder:       pathutil.Parent(publicID),
		CreatedAt:    created.UTC(),
	}, nil
}

// objectURL builds a delivery URL: public when a base URL is configured, presigned otherwise.
func (m *minioStorage) objectURL(ctx context.Context, key string) (string, error) {
	if m.publicBaseURL != "" {
		return m.publicBaseURL + "/" + m.bucket + "/" + key, nil
	}
	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, m.presignTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchObject":
		return true
	}
	return false
}

// classify maps sniffed content to a resource type. Audio is stored with video.
func classify(mt *mimetype.MIME) model.ResourceType {
	for m := mt; m != nil; m = m.Parent() {
		switch {
		case strings.HasPrefix(m.String(), "image/"):
			return model.ResourceImage
		case strings.HasPrefix(m.String(), "video/"), strings.HasPrefix(m.String(), "audio/"):
			return model.ResourceVideo
		}
	}
	return model.ResourceRaw
}

func objectKey(rt model.ResourceType, publicID string) string {
	return string(rt) + "/" + publicID
}

func folderPrefix(root, p string) string {
	if p == "" {
		return root + "/"
	}
	return root + "/" + p + "/"
}

func buildPublicID(folder, name, suffix, ext string) string {
	leaf := name
	if suffix != "" {
		if leaf != "" {
			leaf += "_"
		}
		leaf += suffix
	}
	return pathutil.Join(folder, leaf) + ext
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
}

type assetCursor struct {
	modified time.Time
	publicID string
}

// encodeCursor packs the position of the last listed asset as "<unix nanos>|<public id>".
func encodeCursor(modified time.Time, publicID string) string {
	raw := strconv.FormatInt(modified.UnixNano(), 10) + "|" + publicID
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (assetCursor, error) {
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return assetCursor{}, ErrInvalidCursor
	}
	nanos, id, ok := strings.Cut(string(b), "|")
	if !ok || id == "" {
		return assetCursor{}, ErrInvalidCursor
	}
	n, err := strconv.ParseInt(nanos, 10, 64)
	if err != nil {
		return assetCursor{}, ErrInvalidCursor
	}
	return assetCursor{modified: time.Unix(0, n), publicID: id}, nil
}
