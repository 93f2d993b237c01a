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
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
	"unicode/utf8"
	"vtreport/domain/entities"
	"vtreport/logging"
)

// Field names of the file report document. They are owned by the remote
// service and must match exactly.
const (
	fieldResponseCode   = "response_code"
	fieldVerboseMessage = "verbose_msg"
	fieldResource       = "resource"
	fieldScanID         = "scan_id"
	fieldScanDate       = "scan_date"
	fieldPermalink      = "permalink"
	fieldPositives      = "positives"
	fieldTotal          = "total"
	fieldSha256         = "sha256"
	fieldSha1           = "sha1"
	fieldMd5            = "md5"
	fieldScans          = "scans"

	engineFieldDetected = "detected"
	engineFieldVersion  = "version"
	engineFieldResult   = "result"
	engineFieldUpdate   = "update"
)

type ReportParser struct {
	logger logging.Logger
}

func NewReportParser(logger logging.Logger) *ReportParser {
	return &ReportParser{logger: logger}
}

func (p *ReportParser) ParseRaw(raw string) entities.LoadResult {
	if !validJSON(raw) {
		return entities.LoadResult{Outcome: entities.MalformedInput, Error: errors.Wrap(entities.ErrMalformedInput, "report is not valid json")}
	}

	return p.Parse(gjson.Parse(raw))
}

// Parse copies every recognized field of document into a new report. Missing
// fields keep their zero value. Engine entries that do not have the expected
// shape are skipped, only a non object document fails the parse.
func (p *ReportParser) Parse(document gjson.Result) entities.LoadResult {
	if !document.IsObject() {
		return entities.LoadResult{
			Outcome: entities.MalformedDocument,
			Error:   errors.Wrapf(entities.ErrMalformedDocument, "expected a json object, got %s", document.Type),
		}
	}

	report := entities.Report{
		ResponseCode:        intField(document, fieldResponseCode),
		ErrorMessage:        stringField(document, fieldVerboseMessage),
		Resource:            stringField(document, fieldResource),
		ScanID:              stringField(document, fieldScanID),
		ScanDate:            stringField(document, fieldScanDate),
		ReportLink:          stringField(document, fieldPermalink),
		FileSha256Hexdigest: stringField(document, fieldSha256),
		FileSha1Hexdigest:   stringField(document, fieldSha1),
		FileMd5Hexdigest:    stringField(document, fieldMd5),
	}

	report.SetStatistics(intField(document, fieldTotal), intField(document, fieldPositives))

	engineScans, skipped := parseEngineScans(document.Get(fieldScans))
	report.EngineScans = engineScans

	if skipped != 0 {
		p.logger.Warnw("Skipped malformed engine entries", "resource", report.Resource, "skipped", skipped, "parsed", len(engineScans))
	}

	return entities.LoadResult{Report: report, Outcome: entities.Success}
}

// Entries are visited in document order.
func parseEngineScans(scans gjson.Result) (engineScans []entities.EngineScan, skipped int) {
	if !scans.Exists() || scans.Type == gjson.Null {
		return nil, 0
	}

	if !scans.IsObject() {
		return nil, 1
	}

	scans.ForEach(func(name, entry gjson.Result) bool {
		engineScan, ok := parseEngineScan(name.String(), entry)
		if !ok {
			skipped++
			return true
		}

		engineScans = append(engineScans, engineScan)

		return true
	})

	return engineScans, skipped
}

func parseEngineScan(name string, entry gjson.Result) (entities.EngineScan, bool) {
	if !entry.IsObject() {
		return entities.EngineScan{}, false
	}

	detected := entry.Get(engineFieldDetected)
	if detected.Exists() && !detected.IsBool() {
		return entities.EngineScan{}, false
	}

	return entities.EngineScan{
		EngineName:    name,
		EngineVersion: stringField(entry, engineFieldVersion),
		Description:   stringField(entry, engineFieldResult),
		ScanDate:      stringField(entry, engineFieldUpdate),
		Detected:      detected.Bool(),
	}, true
}

// validJSON also requires utf-8, which gjson.Valid does not check.
func validJSON(raw string) bool {
	return utf8.ValidString(raw) && gjson.Valid(raw)
}

func stringField(document gjson.Result, name string) string {
	value := document.Get(name)

	switch value.Type {
	case gjson.String, gjson.Number:
		return value.String()
	default:
		return ""
	}
}

func intField(document gjson.Result, name string) int {
	value := document.Get(name)

	switch value.Type {
	case gjson.Number, gjson.String:
		return int(value.Int())
	default:
		return 0
	}
}
