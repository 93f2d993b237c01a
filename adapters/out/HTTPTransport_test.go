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
	"bytes"
	"context"
	"errors"
	"fmt"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/iotest"
	"time"
	"vtreport/domain/entities"
	"vtreport/logging"
)

const (
	testReportURL = "https://www.virustotal.com/vtapi/v2/file/report"
	testAPIKey    = "DUMMY_KEY"
)

func newMockedTransport(t *testing.T) (*HTTPTransport, *httpmock.MockTransport) {
	t.Helper()

	mock := httpmock.NewMockTransport()
	transport := NewHTTPTransportWithClient(&http.Client{Transport: mock}, logging.NewDiscardLog())

	return transport, mock
}

func TestTransportSuccess(t *testing.T) {
	transport, mock := newMockedTransport(t)
	mock.RegisterResponder("GET", testReportURL, func(req *http.Request) (*http.Response, error) {
		res := httpmock.NewStringResponse(http.StatusOK, `{"response_code":1}`)
		res.Header = http.Header{"Content-Type": []string{"application/json"}}
		return res, nil
	})

	response, err := transport.Get(context.Background(), testReportURL+"?apikey="+testAPIKey+"&resource=abc", false)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, response.StatusCode)
	assert.Equal(t, `{"response_code":1}`, response.Body)
	assert.Contains(t, response.Header, "Content-Type: application/json")
	assert.Equal(t, 1, mock.GetTotalCallCount())
}

func TestTransportNonSuccessStatusIsNotFailure(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "forbidden", status: http.StatusForbidden, body: ""},
		{name: "rate limited", status: http.StatusNoContent, body: ""},
		{name: "server error", status: http.StatusInternalServerError, body: "<html>oops</html>"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			transport, mock := newMockedTransport(t)
			mock.RegisterResponder("GET", testReportURL, httpmock.NewStringResponder(tt.status, tt.body))

			response, err := transport.Get(context.Background(), testReportURL, false)

			require.NoError(t, err)
			assert.Equal(t, tt.status, response.StatusCode)
			assert.Equal(t, tt.body, response.Body)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	transport, mock := newMockedTransport(t)
	mock.RegisterResponder("GET", testReportURL, httpmock.NewErrorResponder(errors.New("dial tcp: lookup www.virustotal.com: no such host")))

	response, err := transport.Get(context.Background(), testReportURL+"?apikey="+testAPIKey+"&resource=abc", false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrTransportFailure))
	assert.NotContains(t, err.Error(), testAPIKey)
	assert.Equal(t, entities.HTTPResponse{}, response)
}

func TestTransportInvalidURL(t *testing.T) {
	transport, _ := newMockedTransport(t)

	_, err := transport.Get(context.Background(), "http://[::1]:namedport/report?apikey="+testAPIKey, false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrTransportFailure))
	assert.Contains(t, err.Error(), "invalid port")
	assert.NotContains(t, err.Error(), testAPIKey)

	var urlErr *url.Error
	assert.ErrorAs(t, err, &urlErr)
}

func TestTransportTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	transport := NewHTTPTransport(50*time.Millisecond, logging.NewDiscardLog())

	_, err := transport.Get(context.Background(), server.URL+"?apikey="+testAPIKey, false)

	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrTransportFailure))
	assert.NotContains(t, err.Error(), testAPIKey)
}

func TestTransportChunkedBody(t *testing.T) {
	chunks := []string{`{"response_code":1,`, `"positives":2,`, `"total":5}`}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flusher, _ := w.(http.Flusher)

		for _, chunk := range chunks {
			_, _ = io.WriteString(w, chunk)
			if flusher != nil {
				flusher.Flush()
			}
		}
	}))
	defer server.Close()

	transport := NewHTTPTransport(time.Second, logging.NewDiscardLog())

	response, err := transport.Get(context.Background(), server.URL, false)

	require.NoError(t, err)
	assert.Equal(t, strings.Join(chunks, ""), response.Body)
	assert.True(t, strings.HasPrefix(response.Header, "HTTP/1.1 200 OK\r\n"))
}

func TestTransportDiagnosticsRedactAPIKey(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	mock := httpmock.NewMockTransport()
	mock.RegisterResponder("GET", testReportURL, httpmock.NewStringResponder(http.StatusOK, "{}"))

	transport := NewHTTPTransportWithClient(&http.Client{Transport: mock}, zap.New(core).Sugar())

	quiet, err := transport.Get(context.Background(), testReportURL+"?apikey="+testAPIKey+"&resource=abc", false)
	require.NoError(t, err)
	assert.Zero(t, logs.Len())

	verbose, err := transport.Get(context.Background(), testReportURL+"?apikey="+testAPIKey+"&resource=abc", true)
	require.NoError(t, err)
	assert.Equal(t, quiet, verbose)
	require.NotZero(t, logs.Len())

	for _, entry := range logs.All() {
		assert.NotContains(t, fmt.Sprint(entry.ContextMap()), testAPIKey)
	}

	assert.NotEmpty(t, logs.FilterField(zap.String("url", testReportURL+"?apikey=REDACTED&resource=abc")).All())
	assert.Len(t, logs.FilterMessage("Received response").FilterField(zap.Int("bodySize", len("{}"))).All(), 1)
}

func TestBodyAccumulator(t *testing.T) {
	t.Run("chunks are kept in order", func(t *testing.T) {
		accumulator := newBodyAccumulator()

		for _, chunk := range []string{"first ", "second ", "", "third"} {
			n, err := accumulator.Write([]byte(chunk))
			require.NoError(t, err)
			assert.Equal(t, len(chunk), n)
		}

		assert.Equal(t, 4, accumulator.Chunks())
		assert.Equal(t, len("first second third"), accumulator.Len())
		assert.Equal(t, "first second third", accumulator.Finish())
	})

	t.Run("single byte deliveries", func(t *testing.T) {
		data := []byte(`{"scans":{"EngineA":{"detected":true}}}`)
		accumulator := newBodyAccumulator()

		_, err := io.Copy(accumulator, iotest.OneByteReader(bytes.NewReader(data)))
		require.NoError(t, err)

		assert.Equal(t, len(data), accumulator.Chunks())
		assert.Equal(t, string(data), accumulator.Finish())
	})

	t.Run("writes after finish are rejected", func(t *testing.T) {
		accumulator := newBodyAccumulator()
		_, _ = accumulator.Write([]byte("body"))
		assert.Equal(t, "body", accumulator.Finish())

		_, err := accumulator.Write([]byte("late"))
		assert.ErrorIs(t, err, errAccumulatorFinished)
		assert.Equal(t, "body", accumulator.Finish())
	})

	t.Run("empty stream", func(t *testing.T) {
		assert.Equal(t, "", newBodyAccumulator().Finish())
	})
}
