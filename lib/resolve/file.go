// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bureau-foundation/hashlink/lib/hashlink"
)

var (
	// ErrUnsupportedScheme is returned for URLs that are not file://.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")

	// ErrOutsideRoots is returned when a file:// URL points outside
	// every configured root, including via symlinks.
	ErrOutsideRoots = errors.New("path is outside the configured roots")

	// ErrTooLarge is returned when the file exceeds MaxSize.
	ErrTooLarge = errors.New("file exceeds maximum size")
)

// FileResolver resolves file:// URLs to file contents. Only regular
// files under one of Roots are served. The zero value has no roots and
// rejects every URL.
type FileResolver struct {
	// Roots lists the directories URLs may point into.
	Roots []string

	// MaxSize is the largest file, in bytes, Resolve will read. Zero
	// means no limit.
	MaxSize int64

	// Logger receives per-URL outcomes at debug level. Nil discards.
	Logger *slog.Logger
}

var _ hashlink.Resolver = (*FileResolver)(nil)

// Resolve returns the contents of the file rawURL names.
func (r *FileResolver) Resolve(ctx context.Context, rawURL string) ([]byte, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	path, err := filePath(rawURL)
	if err != nil {
		logger.Debug("skipping url", "url", rawURL, "error", err)
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved, err := r.confine(path)
	if err != nil {
		logger.Debug("rejected url", "url", rawURL, "error", err)
		return nil, err
	}

	data, err := r.read(resolved)
	if err != nil {
		logger.Debug("reading url failed", "url", rawURL, "path", resolved, "error", err)
		return nil, err
	}
	logger.Debug("resolved url", "url", rawURL, "path", resolved, "bytes", len(data))
	return data, nil
}

// filePath extracts the local path from a file:// URL. Only an empty
// host or "localhost" is local.
func filePath(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parsing url: %w", err)
	}
	if parsed.Scheme != "file" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, parsed.Scheme)
	}
	if parsed.Host != "" && parsed.Host != "localhost" {
		return "", fmt.Errorf("%w: remote host %q", ErrUnsupportedScheme, parsed.Host)
	}
	if !filepath.IsAbs(parsed.Path) {
		return "", fmt.Errorf("file url path %q is not absolute", parsed.Path)
	}
	return filepath.Clean(parsed.Path), nil
}

// confine resolves symlinks in path and returns the result if it lies
// under one of the roots.
func (r *FileResolver) confine(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return "", err
	}
	for _, root := range r.Roots {
		resolvedRoot, err := filepath.EvalSymlinks(root)
		if err != nil {
			continue
		}
		relative, err := filepath.Rel(resolvedRoot, resolved)
		if err != nil {
			continue
		}
		if relative == ".." || strings.HasPrefix(relative, ".."+string(filepath.Separator)) {
			continue
		}
		return resolved, nil
	}
	return "", fmt.Errorf("%w: %s", ErrOutsideRoots, path)
}

func (r *FileResolver) read(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	if r.MaxSize <= 0 {
		return io.ReadAll(file)
	}
	if info.Size() > r.MaxSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, info.Size(), r.MaxSize)
	}

	// The file can grow between Stat and ReadAll.
	data, err := io.ReadAll(io.LimitReader(file, r.MaxSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > r.MaxSize {
		return nil, fmt.Errorf("%w: %s, limit %d", ErrTooLarge, path, r.MaxSize)
	}
	return data, nil
}
