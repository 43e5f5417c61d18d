package store

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fetchlink/internal/domain/util"
)

// DefaultFileName is used when the URL path has no usable last segment.
const DefaultFileName = "download"

// DerivePath resolves dest for a download of rawURL. When dest names a
// directory (an existing one, or any path ending in a separator) the file
// name is taken from the URL; otherwise dest is returned unchanged.
func DerivePath(dest, rawURL, contentType string) string {
	if strings.HasPrefix(dest, S3Scheme) {
		if strings.HasSuffix(dest, "/") {
			return dest + FileName(rawURL, contentType)
		}
		return dest
	}

	if strings.HasSuffix(dest, string(filepath.Separator)) || strings.HasSuffix(dest, "/") {
		return filepath.Join(dest, FileName(rawURL, contentType))
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		return filepath.Join(dest, FileName(rawURL, contentType))
	}
	return dest
}

// FileName derives a local file name from the URL path, falling back to
// DefaultFileName with an extension from the content type.
func FileName(rawURL, contentType string) string {
	if u, err := url.Parse(rawURL); err == nil {
		name := path.Base(u.Path)
		if name != "" && name != "/" && name != "." && name != ".." {
			return name
		}
	}
	return DefaultFileName + "." + util.ExtensionFromContentType(contentType)
}
