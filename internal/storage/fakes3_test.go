package storage

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"

	"mediaapi/internal/config"
)

const testBucket = "media"

type fakeObject struct {
	size     int64
	modified time.Time
}

// fakeS3 is a tiny path-style S3 endpoint covering the calls the provider makes:
// HEAD bucket/object, PUT (incl. copy), DELETE, multi-delete and ListObjectsV2.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]fakeObject
	clock   time.Time
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		objects: make(map[string]fakeObject),
		clock:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// put stores key with a strictly increasing modification time.
func (f *fakeS3) put(key string, size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Minute)
	f.objects[key] = fakeObject{size: size, modified: f.clock}
}

func (f *fakeS3) has(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.objects[key]
	return ok
}

func (f *fakeS3) keys() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.objects))
	for k := range f.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(p, "/")
	if bucket != testBucket {
		http.Error(w, "no such bucket", http.StatusNotFound)
		return
	}
	q := r.URL.Query()

	switch {
	case key == "" && r.Method == http.MethodHead:
		w.WriteHeader(http.StatusOK)
	case key == "" && r.Method == http.MethodGet && q.Has("location"):
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprint(w, `<LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/">us-east-1</LocationConstraint>`)
	case key == "" && r.Method == http.MethodGet:
		f.list(w, q)
	case key == "" && r.Method == http.MethodPost && q.Has("delete"):
		f.multiDelete(w, r)
	case r.Method == http.MethodHead:
		f.mu.Lock()
		obj, ok := f.objects[key]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Last-Modified", obj.modified.Format(http.TimeFormat))
		w.Header().Set("Content-Length", strconv.FormatInt(obj.size, 10))
		w.Header().Set("ETag", `"etag"`)
		w.Header().Set("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && r.Header.Get("x-amz-copy-source") != "":
		src, _ := url.PathUnescape(r.Header.Get("x-amz-copy-source"))
		src = strings.TrimPrefix(strings.TrimPrefix(src, "/"), testBucket+"/")
		f.mu.Lock()
		obj, ok := f.objects[src]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		f.put(key, obj.size)
		w.Header().Set("Content-Type", "application/xml")
		fmt.Fprintf(w, `<CopyObjectResult><LastModified>%s</LastModified><ETag>"etag"</ETag></CopyObjectResult>`,
			time.Now().UTC().Format("2006-01-02T15:04:05.000Z"))
	case r.Method == http.MethodPut:
		size := r.ContentLength
		if d := r.Header.Get("X-Amz-Decoded-Content-Length"); d != "" {
			size, _ = strconv.ParseInt(d, 10, 64)
		}
		_, _ = io.Copy(io.Discard, r.Body)
		f.put(key, size)
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		f.mu.Lock()
		delete(f.objects, key)
		f.mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "unsupported", http.StatusNotImplemented)
	}
}

func (f *fakeS3) multiDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Objects []struct {
			Key string `xml:"Key"`
		} `xml:"Object"`
	}
	if err := xml.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	for _, o := range req.Objects {
		delete(f.objects, o.Key)
	}
	f.mu.Unlock()
	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprint(w, `<DeleteResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></DeleteResult>`)
}

func (f *fakeS3) list(w http.ResponseWriter, q url.Values) {
	prefix := q.Get("prefix")
	delimiter := q.Get("delimiter")
	startAfter := q.Get("start-after")

	var b strings.Builder
	b.WriteString(`<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	fmt.Fprintf(&b, "<Name>%s</Name><Prefix>%s</Prefix><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>", testBucket, prefix)

	seenPrefixes := make(map[string]bool)
	var common []string
	for _, k := range f.keys() {
		if !strings.HasPrefix(k, prefix) || (startAfter != "" && k <= startAfter) {
			continue
		}
		if delimiter != "" {
			rest := strings.TrimPrefix(k, prefix)
			if i := strings.Index(rest, delimiter); i >= 0 {
				cp := prefix + rest[:i+len(delimiter)]
				if !seenPrefixes[cp] {
					seenPrefixes[cp] = true
					common = append(common, cp)
				}
				continue
			}
		}
		f.mu.Lock()
		obj := f.objects[k]
		f.mu.Unlock()
		fmt.Fprintf(&b, `<Contents><Key>%s</Key><LastModified>%s</LastModified><ETag>"etag"</ETag><Size>%d</Size><StorageClass>STANDARD</StorageClass></Contents>`,
			k, obj.modified.Format("2006-01-02T15:04:05.000Z"), obj.size)
	}
	for _, cp := range common {
		fmt.Fprintf(&b, "<CommonPrefixes><Prefix>%s</Prefix></CommonPrefixes>", cp)
	}
	b.WriteString("</ListBucketResult>")

	w.Header().Set("Content-Type", "application/xml")
	fmt.Fprint(w, b.String())
}

// newTestStorage returns a provider talking to a fresh fakeS3 with deterministic suffixes.
func newTestStorage(t *testing.T, suffixes ...string) (*minioStorage, *fakeS3) {
	t.Helper()
	fake := newFakeS3()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	u, err := url.Parse(srv.URL)
	require.NoError(t, err)

	cli, err := minio.New(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4("access", "secret", ""),
		Secure: false,
		Region: "us-east-1",
	})
	require.NoError(t, err)

	m := newMinIOStorage(cli, config.MinIOConfig{
		Bucket:        testBucket,
		PublicBaseURL: "https://cdn.example.com",
	})
	i := 0
	m.newSuffix = func() string {
		if i < len(suffixes) {
			i++
			return suffixes[i-1]
		}
		return "zzzzzz"
	}
	return m, fake
}
