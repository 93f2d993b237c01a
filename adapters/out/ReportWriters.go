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
	"fmt"
	"strings"
	"vtreport/domain/ports/out"
)

const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

var ErrUnsupportedFormat = fmt.Errorf("unsupported report format, expected %s or %s", FormatJSON, FormatMarkdown)

func NewReportWriter(format string) (out.ReportWriter, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return NewJSONReportWriter(true), nil
	case FormatMarkdown, "md":
		return NewMarkdownReportWriter(), nil
	default:
		return nil, fmt.Errorf("%w, got %q", ErrUnsupportedFormat, format)
	}
}
