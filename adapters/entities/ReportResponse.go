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

package entities

import (
	"vtreport/domain/entities"
	"vtreport/fileutils"
)

type EngineScanResponse struct {
	Engine   string `json:"engine"`
	Version  string `json:"version,omitempty"`
	Result   string `json:"result,omitempty"`
	Update   string `json:"update,omitempty"`
	Detected bool   `json:"detected"`
}

type ReportResponse struct {
	Resource       string               `json:"resource"`
	ResponseCode   int                  `json:"response_code"`
	Message        string               `json:"verbose_msg,omitempty"`
	ScanID         string               `json:"scan_id,omitempty"`
	ScanDate       string               `json:"scan_date,omitempty"`
	Permalink      string               `json:"permalink,omitempty"`
	Sha256         string               `json:"sha256,omitempty"`
	Sha1           string               `json:"sha1,omitempty"`
	Md5            string               `json:"md5,omitempty"`
	Total          int                  `json:"total"`
	Positives      int                  `json:"positives"`
	Negatives      int                  `json:"negatives"`
	DetectionRatio float64              `json:"detection_ratio"`
	Scans          []EngineScanResponse `json:"scans"`
}

type FileResponse struct {
	Name        string `json:"name,omitempty"`
	Size        int64  `json:"size"`
	MimeType    string `json:"mime_type"`
	Filetype    string `json:"filetype"`
	Sha256      string `json:"sha256"`
	Sha1        string `json:"sha1"`
	Md5         string `json:"md5"`
	HashesMatch *bool  `json:"hashes_match,omitempty"`
}

type LookupResponse struct {
	RequestID string          `json:"request_id,omitempty"`
	File      *FileResponse   `json:"file,omitempty"`
	Report    *ReportResponse `json:"report,omitempty"`
	Error     string          `json:"error,omitempty"`
}

func MapToReportResponse(report entities.Report) ReportResponse {
	scans := make([]EngineScanResponse, 0, len(report.EngineScans))
	for _, scan := range report.EngineScans {
		scans = append(scans, EngineScanResponse{
			Engine:   scan.EngineName,
			Version:  scan.EngineVersion,
			Result:   scan.Description,
			Update:   scan.ScanDate,
			Detected: scan.Detected,
		})
	}

	return ReportResponse{
		Resource:       report.Resource,
		ResponseCode:   report.ResponseCode,
		Message:        report.ErrorMessage,
		ScanID:         report.ScanID,
		ScanDate:       report.ScanDate,
		Permalink:      report.ReportLink,
		Sha256:         report.FileSha256Hexdigest,
		Sha1:           report.FileSha1Hexdigest,
		Md5:            report.FileMd5Hexdigest,
		Total:          report.ScanCount,
		Positives:      report.Positives,
		Negatives:      report.Negatives,
		DetectionRatio: report.DetectionRatio,
		Scans:          scans,
	}
}

// MapToFileResponse describes an inspected file. HashesMatch is only set when
// the service returned a report carrying hashes to compare with.
func MapToFileResponse(inspection fileutils.Inspection, report entities.Report) FileResponse {
	response := FileResponse{
		Name:     inspection.Name,
		Size:     inspection.Size,
		MimeType: inspection.MimeType,
		Filetype: inspection.Filetype.String(),
		Sha256:   inspection.Digests.Sha256,
		Sha1:     inspection.Digests.Sha1,
		Md5:      inspection.Digests.Md5,
	}

	if report.FileSha256Hexdigest != "" {
		matches := report.MatchesHash(inspection.Digests.Sha256)
		response.HashesMatch = &matches
	}

	return response
}
