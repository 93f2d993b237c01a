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

package cmd

import (
	"errors"
	"fmt"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/uber-go/tally/v4"
	"net/http"
	adaptersin "vtreport/adapters/in"
	adaptersout "vtreport/adapters/out"
	"vtreport/app"
	"vtreport/common"
	"vtreport/domain/entities"
	"vtreport/fileutils"
	"vtreport/logging"
)

const (
	flagFile   = "file"
	flagFormat = "format"
)

var (
	ErrInvalidResource = errors.New("invalid resource, expected a md5, sha1 or sha256 hex digest or a scan id")
	ErrLookupFailed    = errors.New("lookup failed")
	ErrMissingInput    = errors.New("expected either a resource argument or --file")
	ErrNotFound        = errors.New("resource not found")
	ErrHashMismatch    = errors.New("report hashes do not match the local file")
)

type lookupOptions struct {
	fs     afero.Fs
	file   string
	format string
}

func NewLookupCmd() *cobra.Command {
	return newLookupCmd(afero.NewOsFs())
}

func newLookupCmd(fs afero.Fs) *cobra.Command {
	options := lookupOptions{fs: fs}

	cmd := &cobra.Command{
		Use:   "lookup [resource]",
		Short: "Fetch the report of a hash, a scan id or a local file",
		Long: `Lookup fetches a single file report and prints it.

Examples:
  # Look up a hash
  vtreport lookup 44d88612fea8a8f36de82e1278abb02f

  # Hash a local file and look it up, the file is never uploaded
  vtreport lookup --file ./sample.exe --format markdown

The exit status is not zero when the service can not be reached, the report
is malformed or the resource is unknown.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args, options)
		},
	}

	cmd.Flags().StringVarP(&options.file, flagFile, "f", "", "Hash this file and look up its sha256")
	cmd.Flags().StringVarP(&options.format, flagFormat, "o", adaptersout.FormatJSON, "Output format, json or markdown")

	return cmd
}

func runLookup(cmd *cobra.Command, args []string, options lookupOptions) error {
	if (len(args) == 0) == (options.file == "") {
		return ErrMissingInput
	}

	writer, err := adaptersout.NewReportWriter(options.format)
	if err != nil {
		return err
	}

	appConfig, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.NewZapLogger(appConfig.Log.Debug)
	if err != nil {
		return err
	}

	var inspection *fileutils.Inspection

	var resource string
	if options.file != "" {
		inspected, err := fileutils.InspectFile(options.fs, options.file)
		if err != nil {
			return err
		}

		logger.Debugw("Inspected file", "file", inspected.Name, "size", inspected.Size, "mimetype", inspected.MimeType, "sha256", inspected.Digests.Sha256)

		inspection = &inspected
		resource = inspected.Digests.Sha256
	} else {
		resource = args[0]
	}

	if !common.IsResource(resource) {
		return fmt.Errorf("%w, got %q", ErrInvalidResource, resource)
	}

	report := app.NewReportFactory(appConfig.VirusTotal, tally.NoopScope, logger)()
	result := report.FetchAndLoadReport(cmd.Context(), resource)

	status, message := adaptersin.LookupStatus(result)
	if status != http.StatusOK && status != http.StatusAccepted && status != http.StatusNotFound {
		return lookupError(message, result)
	}

	if err := writer.Write(cmd.OutOrStdout(), report.Report()); err != nil {
		return err
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, resource)
	case http.StatusAccepted:
		fmt.Fprintln(cmd.ErrOrStderr(), message)
	}

	if inspection != nil && result.Load.Report.FileSha256Hexdigest != "" && !result.Load.Report.MatchesHash(inspection.Digests.Sha256) {
		return fmt.Errorf("%w: local sha256 %s, report sha256 %s", ErrHashMismatch, inspection.Digests.Sha256, result.Load.Report.FileSha256Hexdigest)
	}

	logger.Debugw("Report written", "resource", resource, "status", status, "format", options.format)

	return nil
}

func lookupError(message string, result entities.LookupResult) error {
	cause := result.Load.Error
	if result.Fetch.Error != nil {
		cause = result.Fetch.Error
	}

	if cause == nil {
		return fmt.Errorf("%w: %s", ErrLookupFailed, message)
	}

	return fmt.Errorf("%w: %s. %w", ErrLookupFailed, message, cause)
}
