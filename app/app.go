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
	"fmt"
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/uber-go/tally/v4"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
	"io"
	"net/http"
	"strings"
	"time"
	adaptersin "vtreport/adapters/in"
	adaptersout "vtreport/adapters/out"
	"vtreport/common"
	"vtreport/config"
	"vtreport/domain/services"
	vthttp "vtreport/http"
	"vtreport/logging"
	"vtreport/metrics"
)

const serviceName = "vtreport"

// NewReportFactory shares a single transport, and therefore a single
// connection pool, between every report it creates.
func NewReportFactory(virusTotal config.VirusTotal, scope tally.Scope, logger logging.Logger) func() *services.VirusTotalReport {
	transport := adaptersout.NewHTTPTransport(time.Duration(virusTotal.Timeout)*time.Second, logger)
	reportConfig := services.ReportConfig{
		APIKey:      virusTotal.APIkey,
		ReportURL:   virusTotal.BaseURL,
		Diagnostics: virusTotal.Verbose,
	}

	return func() *services.VirusTotalReport {
		return services.NewVirusTotalReport(reportConfig, transport, scope, logger)
	}
}

func LookupFactory(newReport func() *services.VirusTotalReport) services.ReportLookupFactory {
	return func() services.ReportLookup {
		return newReport()
	}
}

// Start serves the lookup api until ctx is cancelled.
func Start(ctx context.Context, appConfig config.AppConfig) error {
	logger, err := logging.NewZapLogger(appConfig.Log.Debug)
	if err != nil {
		return err
	}

	if appConfig.Datadog.Tracer {
		tracer.Start(tracer.WithService(serviceName))
		defer tracer.Stop()
	}

	if appConfig.Datadog.Profiler {
		if err = profiler.Start(profiler.WithService(serviceName)); err != nil {
			return err
		}
		defer profiler.Stop()
	}

	var metricsHandler http.Handler
	var metricsScope tally.Scope
	var metricsClose io.Closer

	if appConfig.HTTPServer.Metrics {
		metricsScope, metricsHandler, metricsClose = metrics.NewPrometheusScope()
	} else {
		metricsScope, metricsHandler, metricsClose = metrics.NewNoopScope()
	}
	defer metricsClose.Close()

	fiberApp, err := NewServer(appConfig, metricsScope, adaptor.HTTPHandler(metricsHandler), logger)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()

		if err := fiberApp.Shutdown(); err != nil {
			logger.Errorw("Failed to shutdown server", "error", err)
		}
	}()

	logger.Infow("Starting report lookup server", "port", appConfig.HTTPServer.Port, "report_url", appConfig.VirusTotal.BaseURL)

	return fiberApp.Listen(fmt.Sprintf(":%d", appConfig.HTTPServer.Port))
}

func NewServer(appConfig config.AppConfig, metricsScope tally.Scope, metricsHandler fiber.Handler, logger logging.Logger) (*fiber.App, error) {
	newReport := NewReportFactory(appConfig.VirusTotal, metricsScope.SubScope("virustotal"), logger)
	reportController := adaptersin.NewReportController(LookupFactory(newReport), metricsScope.SubScope("http"), logger)

	fiberConfig := vthttp.FiberConfig{
		MaxRequestSize:    appConfig.HTTPServer.MaxRequestSize,
		AuthorizationKeys: appConfig.HTTPServer.AuthorizationKeys,
		Profiler:          appConfig.HTTPServer.Profiler,
		Swagger:           appConfig.HTTPServer.Swagger,
		Metrics:           metricsHandler,
		RequestLogger:     RequestLogger(logger),
		Readiness: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
		Liveness: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
		Handlers: []vthttp.Handler{
			{HTTPMethod: "GET", Path: "/reports/:resource", HandlerFunc: reportController.GetReport},
			{HTTPMethod: "POST", Path: "/files", HandlerFunc: reportController.LookupFile},
		},
	}

	fiberApp, err := vthttp.CreateFiberApp(fiberConfig, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize fiber framework. Error: %w", err)
	}

	return fiberApp, nil
}

// RequestLogger tags every request with an id, reusing the one sent by the
// caller when it is a valid uuid, and logs it once answered.
func RequestLogger(logger logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := common.RequestID(c.Get(vthttp.HeaderRequestID))
		c.Locals(vthttp.LocalsRequestID, requestID)
		c.Set(vthttp.HeaderRequestID, requestID)

		err := c.Next()

		// Prevent generating lots of logs because of healthcheck
		if !strings.HasPrefix(c.Path(), "/healthcheck/") && !strings.HasPrefix(c.Path(), "/metrics") {
			logger.Infow("Received webapi request", "request_id", requestID, "caller", c.Locals(vthttp.LocalsCaller),
				"ip", c.IP(), "method", c.Method(), "path", c.Path(), "response_status", c.Response().StatusCode())
		}

		return err
	}
}
