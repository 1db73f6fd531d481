// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hashlink

import (
	"context"
	"errors"
	"fmt"
)

// Resolver fetches the content a metadata URL points at. This package
// defines the capability but implements none; lib/resolve provides a
// file:// resolver, and callers with network access supply their own.
type Resolver interface {
	Resolve(ctx context.Context, url string) ([]byte, error)
}

// VerifyRemote checks link against content fetched through resolver
// from the URLs in its metadata. URLs are tried in order and the first
// one that resolves decides the result; resolution failures move on to
// the next URL. The returned error is non-nil only when no comparison
// took place: resolver is nil (ErrRemoteUnsupported), link is malformed
// (*DecodeError), the link has no URLs (ErrNoURLs), every URL failed,
// or ctx was cancelled.
func VerifyRemote(ctx context.Context, link string, resolver Resolver) (bool, error) {
	if resolver == nil {
		return false, ErrRemoteUnsupported
	}
	parsed, err := Parse(link)
	if err != nil {
		return false, err
	}
	if len(parsed.Metadata.URL) == 0 {
		return false, ErrNoURLs
	}

	var failures []error
	for _, url := range parsed.Metadata.URL {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		content, err := resolver.Resolve(ctx, url)
		if err != nil {
			failures = append(failures, fmt.Errorf("resolving %s: %w", url, err))
			continue
		}
		return parsed.Matches(content), nil
	}
	return false, errors.Join(failures...)
}
