/*
 *    Copyright 2023 iFood
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package out

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptrace"
	"net/url"
	"strings"
	"time"
	"vtreport/common"
	"vtreport/domain/entities"
	"vtreport/logging"
)

const defaultTimeout = 30 * time.Second

type HTTPTransport struct {
	client      *http.Client
	diagnostics logging.Logger
}

// NewHTTPTransport creates a transport whose requests give up after timeout.
// A zero timeout falls back to defaultTimeout.
func NewHTTPTransport(timeout time.Duration, diagnostics logging.Logger) *HTTPTransport {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return NewHTTPTransportWithClient(&http.Client{Timeout: timeout}, diagnostics)
}

func NewHTTPTransportWithClient(client *http.Client, diagnostics logging.Logger) *HTTPTransport {
	return &HTTPTransport{client: client, diagnostics: diagnostics}
}

func (h *HTTPTransport) Get(ctx context.Context, rawURL string, diagnostics bool) (entities.HTTPResponse, error) {
	redactedURL := common.RedactURL(rawURL)

	if diagnostics {
		ctx = httptrace.WithClientTrace(ctx, h.clientTrace(redactedURL))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return entities.HTTPResponse{}, fmt.Errorf("%w: failed to encode request for %s. %w", entities.ErrTransportFailure, redactedURL, redactError(err, redactedURL))
	}

	req.Header.Add("accept", "application/json")

	if diagnostics {
		h.diagnostics.Infow("Sending request", "method", req.Method, "url", redactedURL, "headers", req.Header)
	}

	start := time.Now()

	res, err := h.client.Do(req)
	if err != nil {
		return entities.HTTPResponse{}, fmt.Errorf("%w: request failed. %w", entities.ErrTransportFailure, redactError(err, redactedURL))
	}
	defer res.Body.Close()

	accumulator := newBodyAccumulator()
	if _, err := io.Copy(accumulator, res.Body); err != nil {
		return entities.HTTPResponse{}, fmt.Errorf("%w: failed to read response body. %w", entities.ErrTransportFailure, redactError(err, redactedURL))
	}

	bodySize := accumulator.Len()

	response := entities.HTTPResponse{
		Body:       accumulator.Finish(),
		Header:     renderHeader(res),
		StatusCode: res.StatusCode,
	}

	if diagnostics {
		h.diagnostics.Infow("Received response",
			"url", redactedURL,
			"status", res.StatusCode,
			"proto", res.Proto,
			"headers", res.Header,
			"bodySize", bodySize,
			"chunks", accumulator.Chunks(),
			"elapsed", time.Since(start).String())
	}

	return response, nil
}

func (h *HTTPTransport) clientTrace(redactedURL string) *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSStart: func(info httptrace.DNSStartInfo) {
			h.diagnostics.Infow("Resolving host", "host", info.Host, "url", redactedURL)
		},
		DNSDone: func(info httptrace.DNSDoneInfo) {
			h.diagnostics.Infow("Host resolved", "addresses", info.Addrs, "error", info.Err)
		},
		ConnectDone: func(network, addr string, err error) {
			h.diagnostics.Infow("Connection established", "network", network, "address", addr, "error", err)
		},
		TLSHandshakeDone: func(state tls.ConnectionState, err error) {
			h.diagnostics.Infow("TLS handshake done", "version", tls.VersionName(state.Version), "serverName", state.ServerName, "error", err)
		},
		GotConn: func(info httptrace.GotConnInfo) {
			h.diagnostics.Infow("Connection obtained", "reused", info.Reused, "idle", info.WasIdle)
		},
		GotFirstResponseByte: func() {
			h.diagnostics.Infow("First response byte received", "url", redactedURL)
		},
	}
}

func renderHeader(res *http.Response) string {
	var header strings.Builder

	fmt.Fprintf(&header, "%s %s\r\n", res.Proto, res.Status)
	_ = res.Header.Write(&header)

	return header.String()
}

// net/http embeds the full request url, api key included, in its errors.
func redactError(err error, redactedURL string) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: redactedURL, Err: urlErr.Err}
	}

	return err
}
