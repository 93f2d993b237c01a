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
	"encoding/json"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"io"
	adapterentities "vtreport/adapters/entities"
	"vtreport/domain/entities"
	"vtreport/domain/ports/out"
)

var _ out.ReportWriter = (*JSONReportWriter)(nil)

type JSONReportWriter struct {
	indent string
}

func NewJSONReportWriter(pretty bool) *JSONReportWriter {
	writer := &JSONReportWriter{}
	if pretty {
		writer.indent = "  "
	}

	return writer
}

func (j *JSONReportWriter) Write(w io.Writer, report entities.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", j.indent)

	if err := encoder.Encode(adapterentities.MapToReportResponse(report)); err != nil {
		return fmt.Errorf("failed to encode report. %w", err)
	}

	return nil
}

func (j *JSONReportWriter) ContentType() string {
	return fiber.MIMEApplicationJSONCharsetUTF8
}
