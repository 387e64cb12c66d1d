// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/mesh-intelligence/bibtex-autocomplete/internal/entry"
)

// DefaultConnectionTimeout bounds a single request's connect+read time
// when no Runner.ConnectionTimeout is configured.
const DefaultConnectionTimeout = 20 // seconds, see runner.go for the time.Duration conversion

// DefaultUserAgent is the fallback header value (spec.md §6) used when a
// Runner has no UserAgent configured.
const DefaultUserAgent = "bibtex-autocomplete/dev (+https://github.com/mesh-intelligence/bibtex-autocomplete)"

// buildRequest is the Base-lookup layer: it turns a path, params, and an
// optional body from an Adapter into a single well-formed HTTPS request,
// setting the mandatory User-Agent plus the adapter's own headers. ok=false
// (with a nil error) means the adapter declined this shape for this entry.
func buildRequest(ctx context.Context, scheme, domain, userAgent string, a Adapter, e *entry.Entry, shape QueryShape) (*http.Request, bool, error) {
	path, ok := a.Path(e, shape)
	if !ok {
		return nil, false, nil
	}
	params, ok := a.Params(e, shape)
	if !ok {
		return nil, false, nil
	}

	method := a.Method()
	if method == "" {
		method = http.MethodGet
	}

	values := url.Values(params)
	u := &url.URL{Scheme: scheme, Host: domain, Path: path}

	var body io.Reader
	var bodyContentType string
	if method == http.MethodGet {
		u.RawQuery = values.Encode()
	} else if b, ct, hasBody := a.Body(e, shape); hasBody {
		body, bodyContentType = b, ct
	} else {
		u.RawQuery = values.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, true, err
	}

	req.Header.Set("User-Agent", userAgent)
	for k, vals := range a.Headers() {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	if bodyContentType != "" {
		req.Header.Set("Content-Type", bodyContentType)
	}

	return req, true, nil
}
