package voucher

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported voucher file type")
	ErrNotFound        = errors.New("voucher not found")
)

// allowedExtensions: payment vouchers are photos or PDF receipts.
var allowedExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".pdf":  {},
}

// Service stores payment voucher files on local disk under a single
// directory, with uuid file names so client uploads cannot collide or
// traverse paths.
type Service struct {
	dir string
}

func NewService(dir string) (*Service, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating voucher directory: %w", err)
	}

	return &Service{dir: dir}, nil
}

// Save writes the uploaded voucher to disk and returns the stored file
// name, which the caller persists as the payment's attachment.
func (s *Service) Save(r io.Reader, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}

	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating voucher file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing voucher file: %w", err)
	}

	return name, nil
}

// Open returns the stored voucher for download.
func (s *Service) Open(name string) (io.ReadCloser, error) {
	// The stored name is always uuid+ext, so anything with a path
	// separator is hostile input.
	if name != filepath.Base(name) {
		return nil, ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("opening voucher: %w", err)
	}

	return f, nil
}

// WriteZip streams the named vouchers as a zip archive, skipping any
// that no longer exist on disk. Returns how many files were written.
func (s *Service) WriteZip(w io.Writer, names []string) (int, error) {
	zw := zip.NewWriter(w)

	written := 0

	for _, name := range names {
		f, err := s.Open(name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}

			return written, err
		}

		entry, err := zw.Create(name)
		if err != nil {
			f.Close()
			return written, fmt.Errorf("creating zip entry: %w", err)
		}

		if _, err := io.Copy(entry, f); err != nil {
			f.Close()
			return written, fmt.Errorf("writing zip entry: %w", err)
		}

		f.Close()
		written++
	}

	if err := zw.Close(); err != nil {
		return written, fmt.Errorf("closing zip: %w", err)
	}

	return written, nil
}
