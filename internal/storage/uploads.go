package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ErrFileNotAllowed is returned for files whose extension is not an accepted image type.
var ErrFileNotAllowed = errors.New("file type not allowed")

var allowedExt = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Uploads writes user photos to a local directory served under URLPrefix.
type Uploads struct {
	Dir       string
	URLPrefix string
}

func NewUploads(dir, urlPrefix string) *Uploads {
	return &Uploads{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}
}

// Allowed reports whether filename has an accepted image extension.
func Allowed(filename string) bool {
	return allowedExt[strings.ToLower(filepath.Ext(filename))]
}

// SanitizeFilename keeps the base name and replaces anything outside [A-Za-z0-9._-].
// The extension always survives, so "..png" becomes "file.png".
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	ext = unsafeChars.ReplaceAllString(ext, "_")
	if ext == "." {
		ext = ""
	}
	stem = strings.Trim(unsafeChars.ReplaceAllString(stem, "_"), "._")
	if stem == "" {
		stem = "file"
	}
	return stem + ext
}

// Save stores the uploaded file as <uuid>_<sanitized name> and returns its public URL.
func (u *Uploads) Save(fh *multipart.FileHeader) (string, error) {
	if fh == nil || fh.Filename == "" {
		return "", ErrFileNotAllowed
	}
	if !Allowed(fh.Filename) {
		return "", ErrFileNotAllowed
	}

	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + "_" + SanitizeFilename(fh.Filename)
	path := filepath.Join(u.Dir, name)
	if err := writeFile(path, src); err != nil {
		return "", err
	}

	return u.URLPrefix + "/" + name, nil
}

// writeFile copies src to path. On failure no partial file is left behind.
func writeFile(path string, src io.Reader) error {
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
