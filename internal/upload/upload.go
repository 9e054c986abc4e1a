// Package upload stores article images in the public uploads directory.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	// FieldName is the multipart field carrying the image.
	FieldName = "newsImage"
	// FilePrefix starts every stored filename.
	FilePrefix = "newsImage-"

	sniffLen = 3072
)

var (
	ErrNotImage = errors.New("uploaded file is not an image")
	ErrTooLarge = errors.New("uploaded file is too large")
)

// Error reports a failed upload; the article create must be aborted.
type Error struct {
	Filename string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("upload %q: %v", e.Filename, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Handler struct {
	dir       string
	urlPrefix string
	maxSize   int64
	newName   func(ext string) string
}

// New returns a Handler writing into dir and referencing files under
// urlPrefix. maxSize <= 0 disables the size limit.
func New(dir, urlPrefix string, maxSize int64) *Handler {
	return &Handler{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxSize:   maxSize,
		newName:   Filename,
	}
}

func (h *Handler) Dir() string {
	return h.dir
}

func (h *Handler) URLPrefix() string {
	return h.urlPrefix
}

// Filename builds a stored name from the prefix, a random UUID and ext.
func Filename(ext string) string {
	return FilePrefix + uuid.NewString() + ext
}

// Save writes the uploaded file and returns its site-relative path.
func (h *Handler) Save(fh *multipart.FileHeader) (string, error) {
	if h.maxSize > 0 && fh.Size > h.maxSize {
		return "", &Error{Filename: fh.Filename, Err: ErrTooLarge}
	}

	src, err := fh.Open()
	if err != nil {
		return "", &Error{Filename: fh.Filename, Err: err}
	}
	defer src.Close()

	ref, err := h.store(fh.Filename, src)
	if err != nil {
		return "", &Error{Filename: fh.Filename, Err: err}
	}

	return ref, nil
}

func (h *Handler) store(original string, src io.Reader) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	if !strings.HasPrefix(mimetype.Detect(head).String(), "image/") {
		return "", ErrNotImage
	}

	if err := os.MkdirAll(h.dir, 0o755); err != nil {
		return "", fmt.Errorf("create uploads dir: %w", err)
	}

	name := h.newName(filepath.Ext(original))
	dst, err := os.OpenFile(filepath.Join(h.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	body := io.MultiReader(bytes.NewReader(head), src)
	if h.maxSize > 0 {
		body = io.LimitReader(body, h.maxSize+1)
	}

	written, err := io.Copy(dst, body)
	if closeErr := dst.Close(); err == nil {
		err = closeErr
	}
	if err == nil && h.maxSize > 0 && written > h.maxSize {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(dst.Name())
		return "", err
	}

	return path.Join(h.urlPrefix, name), nil
}

// Remove deletes a file previously returned by Save.
func (h *Handler) Remove(ref string) error {
	name := path.Base(ref)
	if path.Dir(ref) != h.urlPrefix || !strings.HasPrefix(name, FilePrefix) {
		return fmt.Errorf("not an upload reference: %q", ref)
	}

	if err := os.Remove(filepath.Join(h.dir, name)); err != nil {
		return fmt.Errorf("remove upload: %w", err)
	}

	return nil
}
