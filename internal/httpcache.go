/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package internal

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/mikeb26/pbrotation/s3store"
	"go.uber.org/zap"
)

// NewCachedHttpClient returns an http.Client that caches responses for
// maxAge. Entries live in the S3 bucket when one is given and reachable,
// otherwise in memory for the life of the client. Origin cache headers are
// rewritten so sign-up pages that forbid caching are still cached.
func NewCachedHttpClient(ctx context.Context, bucket string,
	maxAge time.Duration, logger *zap.Logger) *http.Client {

	if logger == nil {
		logger = zap.NewNop()
	}

	var hc *httpcache.Transport
	if bucket != "" {
		store := s3store.New(ctx, bucket, true, logger)
		if err := store.Init(); err != nil {
			logger.Warn("httpcache: S3 cache unavailable; using memory cache",
				zap.String("bucket", bucket), zap.Error(err))
		} else {
			hc = httpcache.NewTransport(store)
		}
	}
	if hc == nil {
		hc = httpcache.NewMemoryCacheTransport()
	}

	hc.Transport = &HeaderOverrideTransport{
		wrappedRT: http.DefaultTransport,
		Request: func(req *http.Request) {
			if req.Header.Get("User-Agent") == "" {
				req.Header.Set("User-Agent", UserAgent)
			}
		},
		Response: func(resp *http.Response) error {
			resp.Header.Del("Pragma")
			resp.Header.Del("Expires")
			resp.Header.Del("Cache-Control")
			resp.Header.Set("Cache-Control",
				fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second)))
			return nil
		},
	}

	return &http.Client{Transport: hc}
}

type HeaderOverrideTransport struct {
	Request  func(req *http.Request)
	Response func(resp *http.Response) error

	wrappedRT http.RoundTripper
}

// RoundTrip applies Request and Response hooks around the underlying transport.
func (t *HeaderOverrideTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// clone so we don't stomp on the caller's original
	req2 := req.Clone(req.Context())
	if t.Request != nil {
		t.Request(req2)
	}

	resp, err := t.wrappedRT.RoundTrip(req2)
	if err != nil {
		return nil, err
	}

	if t.Response != nil {
		if err := t.Response(resp); err != nil {
			resp.Body.Close()
			return nil, err
		}
	}
	return resp, nil
}
