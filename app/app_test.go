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

package app

import (
	"context"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	adapterentities "vtreport/adapters/entities"
	"vtreport/common"
	"vtreport/config"
	"vtreport/domain/entities"
	vthttp "vtreport/http"
	"vtreport/logging"
)

const (
	testAPIKey    = "vtkey"
	eicarMd5      = "44d88612fea8a8f36de82e1278abb02f"
	testRequestID = "0b7e6a0b-52a3-4b8a-9f5e-9b3c2a1d0e4f"
)

func newReportService(t *testing.T) *httptest.Server {
	t.Helper()

	found := common.LoadFile(t, "report_found.json")
	notFound := common.LoadFile(t, "report_not_found.json")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != testAPIKey {
			w.WriteHeader(http.StatusForbidden)
			return
		}

		w.Header().Set("Content-Type", "application/json")

		if r.URL.Query().Get("resource") == eicarMd5 {
			_, _ = w.Write(found)
			return
		}

		_, _ = w.Write(notFound)
	}))
	t.Cleanup(server.Close)

	return server
}

func testConfig(baseURL string) config.AppConfig {
	appConfig := *config.NewConfig()
	appConfig.VirusTotal.APIkey = testAPIKey
	appConfig.VirusTotal.BaseURL = baseURL

	return appConfig
}

func TestReportFactory(t *testing.T) {
	server := newReportService(t)

	newReport := NewReportFactory(testConfig(server.URL).VirusTotal, tally.NoopScope, logging.NewDiscardLog())

	first := newReport()
	second := newReport()
	require.NotSame(t, first, second)

	result := first.FetchAndLoadReport(context.Background(), eicarMd5)

	require.True(t, result.Succeeded())
	assert.Equal(t, 3, first.Report().Positives)
	assert.True(t, second.Report().IsEmpty())
}

func TestReportFactoryWrongKey(t *testing.T) {
	server := newReportService(t)

	virusTotal := testConfig(server.URL).VirusTotal
	virusTotal.APIkey = "wrong"

	result := LookupFactory(NewReportFactory(virusTotal, tally.NoopScope, logging.NewDiscardLog()))().FetchAndLoadReport(context.Background(), eicarMd5)

	assert.Equal(t, entities.Success, result.Fetch.Outcome)
	assert.Equal(t, http.StatusForbidden, result.Fetch.Response.StatusCode)
	assert.Equal(t, entities.Skipped, result.Load.Outcome)
}

func TestServer(t *testing.T) {
	server := newReportService(t)

	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	fiberApp, err := NewServer(testConfig(server.URL), tally.NoopScope, ok, logging.NewDiscardLog())
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/v1/reports/"+eicarMd5, http.NoBody)
		request.Header.Set(vthttp.HeaderRequestID, testRequestID)

		response, err := fiberApp.Test(request, -1)
		require.NoError(t, err)
		defer response.Body.Close()

		assert.Equal(t, fiber.StatusOK, response.StatusCode)
		assert.Equal(t, testRequestID, response.Header.Get(vthttp.HeaderRequestID))

		body, err := io.ReadAll(response.Body)
		require.NoError(t, err)

		obtained := common.GetObjectFromJSON[adapterentities.LookupResponse](t, body)
		assert.Equal(t, testRequestID, obtained.RequestID)
		require.NotNil(t, obtained.Report)
		assert.Equal(t, 4, obtained.Report.Total)
	})

	t.Run("not found", func(t *testing.T) {
		request := httptest.NewRequest("GET", "/v1/reports/e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", http.NoBody)

		response, err := fiberApp.Test(request, -1)
		require.NoError(t, err)
		defer response.Body.Close()

		assert.Equal(t, fiber.StatusNotFound, response.StatusCode)
		assert.True(t, common.IsValidUUID(response.Header.Get(vthttp.HeaderRequestID)))
	})

	t.Run("healthcheck", func(t *testing.T) {
		response, err := fiberApp.Test(httptest.NewRequest("GET", "/healthcheck/readiness", http.NoBody), -1)
		require.NoError(t, err)
		defer response.Body.Close()

		assert.Equal(t, fiber.StatusOK, response.StatusCode)
	})
}

func TestServerUnreachableReportService(t *testing.T) {
	server := newReportService(t)
	baseURL := server.URL
	server.Close()

	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) }
	fiberApp, err := NewServer(testConfig(baseURL), tally.NoopScope, ok, logging.NewDiscardLog())
	require.NoError(t, err)

	response, err := fiberApp.Test(httptest.NewRequest("GET", "/v1/reports/"+eicarMd5, http.NoBody), -1)
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Equal(t, fiber.StatusBadGateway, response.StatusCode)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core).Sugar()))
	app.Get("/v1/ping", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTeapot) })
	app.Get("/healthcheck/liveness", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	request := httptest.NewRequest("GET", "/v1/ping", http.NoBody)
	request.Header.Set(vthttp.HeaderRequestID, "not-an-uuid")

	response, err := app.Test(request, -1)
	require.NoError(t, err)
	defer response.Body.Close()

	requestID := response.Header.Get(vthttp.HeaderRequestID)
	assert.True(t, common.IsValidUUID(requestID))

	entries := logs.FilterMessage("Received webapi request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, requestID, entries[0].ContextMap()["request_id"])
	assert.Equal(t, int64(fiber.StatusTeapot), entries[0].ContextMap()["response_status"])

	response, err = app.Test(httptest.NewRequest("GET", "/healthcheck/liveness", http.NoBody), -1)
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Len(t, logs.FilterMessage("Received webapi request").All(), 1)
}
