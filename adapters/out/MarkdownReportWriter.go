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
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"io"
	"strconv"
	"vtreport/domain/entities"
	"vtreport/domain/ports/out"
)

const MIMETextMarkdown = "text/markdown; charset=utf-8"

var _ out.ReportWriter = (*MarkdownReportWriter)(nil)

// MarkdownReportWriter renders a report for humans, with a mermaid pie chart
// of the engine verdicts.
type MarkdownReportWriter struct{}

func NewMarkdownReportWriter() *MarkdownReportWriter {
	return &MarkdownReportWriter{}
}

func (m *MarkdownReportWriter) Write(w io.Writer, report entities.Report) error {
	md := markdown.NewMarkdown(w)

	md.H1("VirusTotal File Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Resource", "`" + report.Resource + "`"},
			{"Status", statusText(report)},
			{"Scan Date", report.ScanDate},
			{"Detection", detectionText(report)},
			{"Permalink", report.ReportLink},
		},
	})
	md.PlainText("")

	if report.FileSha256Hexdigest != "" || report.FileSha1Hexdigest != "" || report.FileMd5Hexdigest != "" {
		md.H2("Hashes")
		md.PlainText("")
		md.Table(markdown.TableSet{
			Header: []string{"Algorithm", "Digest"},
			Rows: [][]string{
				{"SHA256", "`" + report.FileSha256Hexdigest + "`"},
				{"SHA1", "`" + report.FileSha1Hexdigest + "`"},
				{"MD5", "`" + report.FileMd5Hexdigest + "`"},
			},
		})
		md.PlainText("")
	}

	if report.ScanCount > 0 {
		writeVerdictChart(md, report)
	}

	writeDetections(md, report)
	writeEngines(md, report)

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to render markdown report. %w", err)
	}

	return nil
}

func (m *MarkdownReportWriter) ContentType() string {
	return MIMETextMarkdown
}

func writeVerdictChart(md *markdown.Markdown, report entities.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Engine Verdicts"),
		piechart.WithShowData(true),
	)

	if report.Positives > 0 {
		chart.LabelAndIntValue("Detected", uint64(report.Positives))
	}

	if report.Negatives > 0 {
		chart.LabelAndIntValue("Undetected", uint64(report.Negatives))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writeDetections(md *markdown.Markdown, report entities.Report) {
	detected := report.DetectedScans()
	if len(detected) == 0 {
		return
	}

	items := make([]string, 0, len(detected))
	for _, scan := range detected {
		description := scan.Description
		if description == "" {
			description = "detected"
		}

		items = append(items, fmt.Sprintf("**%s**: %s", scan.EngineName, description))
	}

	md.H2("Detections")
	md.PlainText("")
	md.BulletList(items...)
	md.PlainText("")
}

func writeEngines(md *markdown.Markdown, report entities.Report) {
	md.H2("Engines")
	md.PlainText("")

	if len(report.EngineScans) == 0 {
		md.PlainText("No engine results available.")
		md.PlainText("")

		return
	}

	rows := make([][]string, 0, len(report.EngineScans))
	for _, scan := range report.EngineScans {
		verdict := "clean"
		if scan.Detected {
			verdict = "**detected**"
		}

		rows = append(rows, []string{scan.EngineName, scan.EngineVersion, verdict, scan.Description, scan.ScanDate})
	}

	md.Table(markdown.TableSet{
		Header: []string{"Engine", "Version", "Verdict", "Result", "Updated"},
		Rows:   rows,
	})
	md.PlainText("")
}

func statusText(report entities.Report) string {
	switch {
	case report.Found():
		return "Found"
	case report.Queued():
		return "Queued for analysis"
	case report.ResponseCode == entities.ResponseCodeNotFound:
		return "Not found"
	default:
		return "Response code " + strconv.Itoa(report.ResponseCode)
	}
}

func detectionText(report entities.Report) string {
	if report.ScanCount == 0 {
		return "No engines"
	}

	return fmt.Sprintf("%d/%d (%.2f%%)", report.Positives, report.ScanCount, report.DetectionRatio*100)
}
