// Package uploads stores challenge proof files on the local filesystem
// and hands back the URL they are served from.
package uploads

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Elizabethomito/ecolearn/internal/apperr"
)

// URLPrefix is where the server mounts the upload directory.
const URLPrefix = "/uploads/"

// allowed maps a sniffed content type to the extension it is stored with.
var allowed = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Store writes proof files under a root directory.
type Store struct {
	dir      string
	maxBytes int64
}

// New returns a Store rooted at dir that accepts files up to maxBytes.
func New(dir string, maxBytes int64) *Store {
	return &Store{dir: dir, maxBytes: maxBytes}
}

// Handler serves stored files under URLPrefix. Directory paths get a 404
// so nobody can list which users have uploaded proof.
func (s *Store) Handler() http.Handler {
	files := http.StripPrefix(URLPrefix, http.FileServer(http.Dir(s.dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// MaxBytes is the size limit.
func (s *Store) MaxBytes() int64 { return s.maxBytes }

// Save checks and stores one proof file for userID's attempt at
// challengeID and returns its URL. The type is sniffed from the content,
// whatever the client claimed.
func (s *Store) Save(userID, challengeID string, r io.Reader) (string, error) {
	if !safeSegment(userID) || !safeSegment(challengeID) {
		return "", apperr.Invalid("challengeId", "invalid challenge")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", apperr.Invalid("file", fmt.Sprintf("File is too large. The limit is %d MB.", s.maxBytes>>20))
	}
	if len(data) == 0 {
		return "", apperr.Invalid("file", "File is empty")
	}

	ct := http.DetectContentType(data)
	ext, ok := allowed[strings.TrimSpace(strings.SplitN(ct, ";", 2)[0])]
	if !ok {
		return "", apperr.Invalid("file", "Only images (JPEG, PNG, GIF, WebP) and PDF files are accepted")
	}

	dir := filepath.Join(s.dir, userID, challengeID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	name := uuid.NewString() + ext
	if err := writeFile(filepath.Join(dir, name), data); err != nil {
		return "", err
	}
	return URLPrefix + path.Join(userID, challengeID, name), nil
}

func writeFile(p string, data []byte) error {
	f, err := os.OpenFile(p, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		os.Remove(p)
		return fmt.Errorf("write upload: %w", err)
	}
	return f.Close()
}

// safeSegment accepts ids usable as a single path element.
func safeSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}
