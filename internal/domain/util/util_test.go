package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineExtension(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		expected    string
	}{
		{"from url", "https://example.com/files/report.pdf", "", "pdf"},
		{"url with query", "https://example.com/a.tar?sig=abc", "", "tar"},
		{"uppercase url", "https://example.com/IMAGE.PNG", "", "png"},
		{"content type fallback", "https://example.com/download", "application/json; charset=utf-8", "json"},
		{"unknown content type", "https://example.com/download", "application/x-unknown", DefaultExtension},
		{"empty", "https://example.com/", "", DefaultExtension},
		{"invalid url extension", "https://example.com/a.b-c", "text/plain", "txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetermineExtension(tt.url, tt.contentType))
		})
	}
}

func TestExtensionFromURL(t *testing.T) {
	assert.Equal(t, "gz", ExtensionFromURL("https://example.com/archive.tar.gz"))
	assert.Equal(t, "", ExtensionFromURL("https://example.com/dir/"))
	assert.Equal(t, "", ExtensionFromURL("https://example.com/file.toolongextension"))
}

func TestCalculateHash(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		CalculateHash(nil))
	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		CalculateHash([]byte("hello")))
}
