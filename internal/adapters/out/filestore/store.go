// Package filestore keeps uploaded images on the local filesystem.
//
// References are slash-separated paths relative to the root, "<scope>/<uuid>.<ext>",
// and are served unchanged under /uploads by the HTTP adapter.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"regexp"

	"shopsecure/internal/pkg/errs"

	"github.com/google/uuid"
)

var scopePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// LocalImageStore implements ports.ImageStore under a root directory.
type LocalImageStore struct {
	root string
}

// NewLocalImageStore creates root if needed.
func NewLocalImageStore(root string) (*LocalImageStore, error) {
	if root == "" {
		return nil, errs.NewValueIsRequiredError("upload directory")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalImageStore{root: root}, nil
}

// Root is the directory served as /uploads.
func (s *LocalImageStore) Root() string {
	return s.root
}

// Save writes data under a fresh random name so concurrent uploads for one
// order never overwrite each other.
func (s *LocalImageStore) Save(ctx context.Context, scope string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !scopePattern.MatchString(scope) {
		return "", errs.NewValueIsInvalidErrorWithCause("image scope", fmt.Errorf("%q", scope))
	}
	if len(data) == 0 {
		return "", errs.NewValueIsRequiredError("image")
	}

	dir := filepath.Join(s.root, scope)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	name := uuid.NewString() + extension(data)
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write image: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	if err = os.Rename(tmp.Name(), filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	return path.Join(scope, name), nil
}

func (s *LocalImageStore) Load(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := s.resolve(ref)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NewObjectNotFoundError("image", ref)
	}
	return data, err
}

func (s *LocalImageStore) Delete(_ context.Context, ref string) error {
	p, err := s.resolve(ref)
	if err != nil {
		return err
	}

	if err = os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// resolve refuses references that would escape the root.
func (s *LocalImageStore) resolve(ref string) (string, error) {
	local := filepath.FromSlash(ref)
	if ref == "" || !filepath.IsLocal(local) {
		return "", errs.NewValueIsInvalidErrorWithCause("image ref", fmt.Errorf("%q", ref))
	}
	return filepath.Join(s.root, local), nil
}

func extension(data []byte) string {
	switch http.DetectContentType(data) {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
