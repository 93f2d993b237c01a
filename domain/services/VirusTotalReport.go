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

package services

import (
	"context"
	"fmt"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"github.com/uber-go/tally/v4"
	"net/http"
	"net/url"
	"vtreport/domain/entities"
	"vtreport/domain/ports/out"
	"vtreport/logging"
)

const (
	DefaultReportURL = "https://www.virustotal.com/vtapi/v2/file/report"

	apiKeyParameter   = "apikey"
	resourceParameter = "resource"
)

var _ ReportLookup = (*VirusTotalReport)(nil)

type ReportConfig struct {
	APIKey      string
	ReportURL   string
	Diagnostics bool
}

// VirusTotalReport fetches and parses file reports for a single caller.
// The last successfully loaded report is kept and every load starts by
// clearing it, so a failed load never exposes stale fields.
type VirusTotalReport struct {
	config    ReportConfig
	transport out.Transport
	parser    *ReportParser
	scope     tally.Scope
	logger    logging.Logger
	report    entities.Report
}

func NewVirusTotalReport(config ReportConfig, transport out.Transport, scope tally.Scope, logger logging.Logger) *VirusTotalReport {
	if config.ReportURL == "" {
		config.ReportURL = DefaultReportURL
	}

	return &VirusTotalReport{
		config:    config,
		transport: transport,
		parser:    NewReportParser(logger),
		scope:     scope,
		logger:    logger,
	}
}

// FetchReport downloads the raw report of resource. The stored report is left untouched.
func (v *VirusTotalReport) FetchReport(ctx context.Context, resource string) entities.FetchResult {
	stopwatch := v.scope.Timer("fetch_latency").Start()
	defer stopwatch.Stop()

	requestURL, err := v.reportRequestURL(resource)
	if err != nil {
		return v.fetchFailed(resource, fmt.Errorf("%w: %w", entities.ErrTransportFailure, err))
	}

	response, err := v.transport.Get(ctx, requestURL, v.config.Diagnostics)
	if err != nil {
		if !errors.Is(err, entities.ErrTransportFailure) {
			err = fmt.Errorf("%w: %w", entities.ErrTransportFailure, err)
		}

		return v.fetchFailed(resource, err)
	}

	if response.StatusCode != http.StatusOK {
		v.logger.Infow("Report service answered with a non success status", "resource", resource, "status", response.StatusCode)
	}

	v.count("report_fetch", entities.Success)

	return entities.FetchResult{Response: response, Outcome: entities.Success}
}

// FetchDocument downloads the report and also parses the body as a json document.
// The stored report is left untouched.
func (v *VirusTotalReport) FetchDocument(ctx context.Context, resource string) entities.FetchResult {
	result := v.FetchReport(ctx, resource)
	if result.Outcome != entities.Success {
		return result
	}

	if !validJSON(result.Response.Body) {
		result.Outcome = entities.MalformedInput
		result.Error = errors.Wrapf(entities.ErrMalformedInput, "response body with status %d is not valid json", result.Response.StatusCode)

		return result
	}

	result.Document = gjson.Parse(result.Response.Body)

	return result
}

func (v *VirusTotalReport) LoadReport(document gjson.Result) entities.LoadResult {
	v.ResetReportData()

	result := v.parser.Parse(document)
	v.count("report_load", result.Outcome)

	if result.Outcome != entities.Success {
		v.logger.Errorw("Failed to load report", "outcome", result.Outcome.String(), "error", result.Error)
		return result
	}

	v.report = result.Report.Clone()

	return result
}

func (v *VirusTotalReport) LoadRawReport(raw string) entities.LoadResult {
	v.ResetReportData()

	if !validJSON(raw) {
		v.count("report_load", entities.MalformedInput)
		v.logger.Errorw("Failed to load report", "outcome", entities.MalformedInput.String(), "size", len(raw))

		return entities.LoadResult{Outcome: entities.MalformedInput, Error: errors.Wrap(entities.ErrMalformedInput, "report is not valid json")}
	}

	return v.LoadReport(gjson.Parse(raw))
}

// FetchAndLoadReport fetches the report of resource and loads it when the fetch
// produced a body. Each stage reports its own outcome.
func (v *VirusTotalReport) FetchAndLoadReport(ctx context.Context, resource string) entities.LookupResult {
	v.ResetReportData()

	fetch := v.FetchReport(ctx, resource)
	if !fetch.HasUsableBody() {
		return entities.LookupResult{
			Fetch: fetch,
			Load: entities.LoadResult{
				Outcome: entities.Skipped,
				Error:   errors.Wrapf(entities.ErrNothingToLoad, "fetch outcome %s, status %d", fetch.Outcome, fetch.Response.StatusCode),
			},
		}
	}

	return entities.LookupResult{Fetch: fetch, Load: v.LoadRawReport(fetch.Response.Body)}
}

func (v *VirusTotalReport) ResetReportData() {
	v.report.Reset()
}

// Report returns a copy of the last successfully loaded report.
func (v *VirusTotalReport) Report() entities.Report {
	return v.report.Clone()
}

func (v *VirusTotalReport) reportRequestURL(resource string) (string, error) {
	base, err := url.Parse(v.config.ReportURL)
	if err != nil {
		return "", errors.Wrap(err, "invalid report url")
	}

	query := base.Query()
	query.Set(apiKeyParameter, v.config.APIKey)
	query.Set(resourceParameter, resource)
	base.RawQuery = query.Encode()

	return base.String(), nil
}

func (v *VirusTotalReport) fetchFailed(resource string, err error) entities.FetchResult {
	v.logger.Errorw("Failed to fetch report", "resource", resource, "error", err)
	v.count("report_fetch", entities.TransportFailure)

	return entities.FetchResult{Outcome: entities.TransportFailure, Error: err}
}

func (v *VirusTotalReport) count(name string, outcome entities.Outcome) {
	v.scope.Tagged(map[string]string{"outcome": outcome.String()}).Counter(name).Inc(1)
}
