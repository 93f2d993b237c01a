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

import "strings"

// Response codes returned by the reputation service in "response_code".
const (
	ResponseCodeQueued   = -2
	ResponseCodeNotFound = 0
	ResponseCodeFound    = 1
)

// EngineScan is the verdict of a single engine. ScanDate is kept exactly as
// the service sent it.
type EngineScan struct {
	EngineName    string
	EngineVersion string
	Description   string
	ScanDate      string
	Detected      bool
}

// Report mirrors the file report document. Negatives and DetectionRatio are not
// part of the document, they are derived from ScanCount and Positives.
type Report struct {
	EngineScans []EngineScan

	FileSha256Hexdigest string
	FileSha1Hexdigest   string
	FileMd5Hexdigest    string
	ErrorMessage        string
	ReportLink          string
	Resource            string
	ScanDate            string
	ScanID              string

	ResponseCode int
	Positives    int
	Negatives    int
	ScanCount    int

	DetectionRatio float64
}

func (r *Report) Reset() {
	*r = Report{}
}

// SetStatistics stores the engine counts and recomputes the derived fields.
// Negative values are treated as absent and positives never exceed the total,
// so Positives+Negatives == ScanCount and DetectionRatio stays within [0,1].
func (r *Report) SetStatistics(scanCount, positives int) {
	if scanCount < 0 {
		scanCount = 0
	}

	if positives < 0 {
		positives = 0
	}

	if positives > scanCount {
		positives = scanCount
	}

	r.ScanCount = scanCount
	r.Positives = positives
	r.Negatives = scanCount - positives
	r.DetectionRatio = 0

	if scanCount != 0 {
		r.DetectionRatio = float64(positives) / float64(scanCount)
	}
}

// Clone returns a copy that does not share the engine scans slice.
func (r Report) Clone() Report {
	clone := r
	if r.EngineScans != nil {
		clone.EngineScans = make([]EngineScan, len(r.EngineScans))
		copy(clone.EngineScans, r.EngineScans)
	}

	return clone
}

func (r Report) IsEmpty() bool {
	return r.Resource == "" && r.ScanID == "" && r.ResponseCode == 0 && r.ScanCount == 0 && len(r.EngineScans) == 0
}

func (r Report) Found() bool {
	return r.ResponseCode == ResponseCodeFound
}

func (r Report) Queued() bool {
	return r.ResponseCode == ResponseCodeQueued
}

func (r Report) DetectedScans() []EngineScan {
	var detected []EngineScan

	for _, scan := range r.EngineScans {
		if scan.Detected {
			detected = append(detected, scan)
		}
	}

	return detected
}

// MatchesHash reports whether hexdigest is one of the hashes echoed by the service.
func (r Report) MatchesHash(hexdigest string) bool {
	if hexdigest == "" {
		return false
	}

	for _, known := range []string{r.FileSha256Hexdigest, r.FileSha1Hexdigest, r.FileMd5Hexdigest} {
		if strings.EqualFold(known, hexdigest) {
			return true
		}
	}

	return false
}
