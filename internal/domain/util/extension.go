package util

import (
	"mime"
	"net/url"
	"path"
	"strings"
)

// DefaultExtension is used when neither the URL nor the content type
// identify the payload.
const DefaultExtension = "bin"

var contentTypeExtensions = map[string]string{
	"application/pdf":          "pdf",
	"application/json":         "json",
	"application/zip":          "zip",
	"application/gzip":         "gz",
	"application/x-tar":        "tar",
	"application/xml":          "xml",
	"application/octet-stream": "bin",
	"text/html":                "html",
	"text/markdown":            "md",
	"text/plain":               "txt",
	"text/csv":                 "csv",
	"image/png":                "png",
	"image/jpeg":               "jpg",
	"image/gif":                "gif",
	"video/mp4":                "mp4",
}

// DetermineExtension returns an extension (without the dot) for a payload,
// preferring the URL path and falling back to the content type.
func DetermineExtension(rawURL, contentType string) string {
	if ext := ExtensionFromURL(rawURL); ext != "" {
		return ext
	}
	return ExtensionFromContentType(contentType)
}

// ExtensionFromURL returns the extension of the URL's last path segment, or "".
func ExtensionFromURL(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	ext := strings.ToLower(path.Ext(p))
	if len(ext) < 2 {
		return ""
	}
	ext = ext[1:]
	if !isValidExtension(ext) {
		return ""
	}
	return ext
}

// ExtensionFromContentType maps a Content-Type header value to an extension.
func ExtensionFromContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.TrimSpace(strings.ToLower(contentType))
	}

	if ext, ok := contentTypeExtensions[mediaType]; ok {
		return ext
	}
	return DefaultExtension
}

// FileType classifies a payload for metrics labels.
func FileType(rawURL, contentType string) string {
	return DetermineExtension(rawURL, contentType)
}

func isValidExtension(ext string) bool {
	if len(ext) > 8 {
		return false
	}
	for _, r := range ext {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}
