// Copyright 2020-2021 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package wikiapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// Transport issues one `action=query` GET request and returns the decoded
// JSON body. It is the low-level piece spec.md excludes from the core:
// connection pooling and retry policy are its concern, not HTTPClient's.
type Transport interface {
	Do(ctx context.Context, baseURL string, params url.Values) (json.RawMessage, error)
}

// RetryableTransport is the default Transport, built on
// hashicorp/go-retryablehttp so transient 5xx/network failures are retried
// before the solver ever sees a Transport error.
type RetryableTransport struct {
	client    *retryablehttp.Client
	userAgent string
}

// NewRetryableTransport builds a Transport with the given retry budget,
// per-request timeout and identifying user agent. maxRetries <= 0 disables
// retries (one attempt only).
func NewRetryableTransport(userAgent string, maxRetries int, timeout time.Duration) *RetryableTransport {
	client := retryablehttp.NewClient()
	client.RetryMax = maxRetries
	client.HTTPClient.Timeout = timeout
	client.Logger = nil

	return &RetryableTransport{client: client, userAgent: userAgent}
}

// Do implements Transport.
func (t *RetryableTransport) Do(ctx context.Context, baseURL string, params url.Values) (json.RawMessage, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "wikiapi: building request")
	}
	req.Header.Set("User-Agent", t.userAgent)

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "wikiapi: request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "wikiapi: reading response body")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("wikiapi: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}
	return json.RawMessage(body), nil
}
