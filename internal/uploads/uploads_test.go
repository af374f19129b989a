package uploads

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestSaveStoresAllowedFile(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, 1<<20)

	url, err := s.Save("user-1", "challenge-1", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/user-1/challenge-1/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, URLPrefix)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, stored)

	pdf, err := s.Save("user-1", "challenge-1", strings.NewReader("%PDF-1.4\n..."))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(pdf, ".pdf"))
	assert.NotEqual(t, url, pdf)
}

func TestSaveRejects(t *testing.T) {
	s := New(t.TempDir(), 16)

	tests := []struct {
		name      string
		user, chl string
		body      []byte
	}{
		{"text file", "u", "c", []byte("hello")},
		{"html claiming nothing", "u", "c", []byte("<html><body>")},
		{"empty", "u", "c", nil},
		{"too large", "u", "c", append(append([]byte{}, pngHeader...), make([]byte, 16)...)},
		{"path traversal", "..", "c", pngHeader},
		{"nested id", "u", "a/b", pngHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Save(tt.user, tt.chl, bytes.NewReader(tt.body))
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}
}

func TestHandlerServesFilesButNotDirectories(t *testing.T) {
	s := New(t.TempDir(), 1<<20)
	url, err := s.Save("user-1", "challenge-1", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	h := s.Handler()

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get(url)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, pngHeader, rec.Body.Bytes())

	for _, dir := range []string{"/uploads/", "/uploads/user-1/", "/uploads/user-1/challenge-1/"} {
		rec := get(dir)
		assert.Equal(t, http.StatusNotFound, rec.Code, dir)
		assert.NotContains(t, rec.Body.String(), "user-1", dir)
	}
}
