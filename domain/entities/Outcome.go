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
	"errors"
	"github.com/tidwall/gjson"
	"strings"
)

type Outcome int8

const (
	Success Outcome = iota + 1
	TransportFailure
	MalformedInput
	MalformedDocument
	// Skipped marks a composed stage that was not attempted because the
	// previous stage produced nothing usable.
	Skipped
)

var (
	ErrTransportFailure  = errors.New("transport failure")
	ErrMalformedInput    = errors.New("malformed input")
	ErrMalformedDocument = errors.New("malformed document")
	ErrNothingToLoad     = errors.New("fetch produced nothing to load")
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case TransportFailure:
		return "transport_failure"
	case MalformedInput:
		return "malformed_input"
	case MalformedDocument:
		return "malformed_document"
	case Skipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// HTTPResponse is produced fresh for every request.
type HTTPResponse struct {
	Body       string
	Header     string
	StatusCode int
}

// FetchResult is the outcome of the network stage. Document is only set when
// the body was requested as a document and parsed as json.
type FetchResult struct {
	Response HTTPResponse
	Document gjson.Result
	Outcome  Outcome
	Error    error
}

func (f FetchResult) HasUsableBody() bool {
	return f.Outcome == Success && strings.TrimSpace(f.Response.Body) != ""
}

// LoadResult is the outcome of the parse stage.
type LoadResult struct {
	Report  Report
	Outcome Outcome
	Error   error
}

// LookupResult keeps one result per stage so callers can tell a network
// failure apart from a malformed report.
type LookupResult struct {
	Fetch FetchResult
	Load  LoadResult
}

func (l LookupResult) Succeeded() bool {
	return l.Fetch.Outcome == Success && l.Load.Outcome == Success
}
