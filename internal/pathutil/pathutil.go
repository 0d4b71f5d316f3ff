// Package pathutil normalizes caller-supplied folder paths into provider-safe values.
package pathutil

import (
	"regexp"
	"strings"
)

// DefaultBaseFolder is the upload root used when the caller does not name one.
const DefaultBaseFolder = "portfolio/uploads"

var (
	traversalSegment = regexp.MustCompile(`([^/.])/\.\./`)
	disallowed       = regexp.MustCompile(`[^a-zA-Z0-9/_-]`)
	repeatedSlashes  = regexp.MustCompile(`/{2,}`)
	segmentReplacer  = strings.NewReplacer("/", "-", `\`, "-")
)

// Sanitize returns a path containing only [a-zA-Z0-9/_-] with no parent traversal and no
// leading, trailing or repeated slashes. It never fails and Sanitize(Sanitize(s)) == Sanitize(s).
//
// A traversal segment sitting between two other segments ("a/../b") is folded into a dash so the
// neighbours stay distinguishable ("a-b"); any other ".." is dropped.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ReplaceAll(s, `\`, "/")
	s = traversalSegment.ReplaceAllString(s, "${1}-")
	s = strings.ReplaceAll(s, "..", "")
	s = disallowed.ReplaceAllString(s, "-")
	s = repeatedSlashes.ReplaceAllString(s, "/")
	return strings.Trim(s, "/")
}

// Segment sanitizes s as a single path segment: separators become dashes.
func Segment(s string) string {
	return Sanitize(segmentReplacer.Replace(s))
}

// ResolveBaseFolder sanitizes the caller's upload folder, defaulting to DefaultBaseFolder.
func ResolveBaseFolder(folder string) string {
	if f := Sanitize(folder); f != "" {
		return f
	}
	return DefaultBaseFolder
}

// Join joins the sanitized, non-empty parts with "/".
func Join(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = Sanitize(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "/")
}

// Dir returns the directory portion of a client-declared relative path, unsanitized.
// Both slash styles are accepted; a bare filename has no directory.
func Dir(rel string) string {
	rel = strings.ReplaceAll(rel, `\`, "/")
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[:i]
	}
	return ""
}

// Base returns the final element of a client-declared relative path.
func Base(rel string) string {
	rel = strings.ReplaceAll(rel, `\`, "/")
	if i := strings.LastIndex(rel, "/"); i >= 0 {
		return rel[i+1:]
	}
	return rel
}

// FolderForFile derives the target folder of one uploaded file: the directory portion of its
// declared path (or of its filename when none was declared), sanitized and appended to base.
func FolderForFile(base, declaredPath, filename string) string {
	rel := declaredPath
	if strings.TrimSpace(rel) == "" {
		rel = filename
	}
	return Join(base, Dir(rel))
}

// Parent returns everything before the final segment of a sanitized path.
func Parent(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[:i]
	}
	return ""
}

// Leaf returns the final segment of a sanitized path.
func Leaf(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}
