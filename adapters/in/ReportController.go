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

package in

import (
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/uber-go/tally/v4"
	"strconv"
	adapterentities "vtreport/adapters/entities"
	adaptersout "vtreport/adapters/out"
	"vtreport/common"
	"vtreport/domain/entities"
	"vtreport/domain/ports/out"
	"vtreport/domain/services"
	"vtreport/fileutils"
	vthttp "vtreport/http"
	"vtreport/logging"
)

const (
	mimeTextMarkdown  = "text/markdown"
	mimeTextXMarkdown = "text/x-markdown"
)

const (
	errInvalidResource       = "invalid resource, expected a md5, sha1 or sha256 hex digest or a scan id"
	errNoFileFound           = "no file found"
	errFailedToOpenFile      = "failed to open file"
	errFailedToInspectFile   = "failed to inspect file"
	errServiceUnreachable    = "report service unreachable"
	errServiceQuotaExceeded  = "report service request rate exceeded"
	errServiceForbidden      = "report service rejected the api key"
	errUnexpectedStatus      = "report service answered with status %d"
	errMalformedReport       = "report service returned a malformed report"
	errResourceNotFound      = "resource not found"
	errResourceQueued        = "resource queued for analysis"
	errUnexpectedCode        = "unexpected response code %d"
	errUnsupportedAcceptType = "unsupported accept type"
)

type resourceRequest struct {
	Resource string `validate:"required,max=128,resource"`
}

type ReportController struct {
	validate *validator.Validate
	lookups  services.ReportLookupFactory
	writers  map[string]out.ReportWriter
	scope    tally.Scope
	logger   logging.Logger
}

func NewReportController(lookups services.ReportLookupFactory, scope tally.Scope, logger logging.Logger) ReportController {
	validate := validator.New()
	_ = validate.RegisterValidation("resource", func(fl validator.FieldLevel) bool {
		return common.IsResource(fl.Field().String())
	})

	markdownWriter := adaptersout.NewMarkdownReportWriter()

	return ReportController{
		validate: validate,
		lookups:  lookups,
		writers:  map[string]out.ReportWriter{mimeTextMarkdown: markdownWriter, mimeTextXMarkdown: markdownWriter},
		scope:    scope,
		logger:   logger,
	}
}

// GetReport
// @Summary		Get the file report of a hash or scan id
// @Tags		reports
// @Produce		json
// @Produce		text/markdown
// @Param		resource	path	string	true	"md5, sha1 or sha256 of the file, or a scan id"
// @Success		200 {object} adapterentities.LookupResponse
// @Success		202 {object} adapterentities.LookupResponse
// @Failure		400 {object} adapterentities.LookupResponse
// @Failure		404 {object} adapterentities.LookupResponse
// @Failure		406 {object} adapterentities.LookupResponse
// @Failure		429 {object} adapterentities.LookupResponse
// @Failure		502 {object} adapterentities.LookupResponse
// @Security	ApiKey
// @Router      /reports/{resource} [get]
func (r *ReportController) GetReport(c *fiber.Ctx) error {
	response := adapterentities.LookupResponse{RequestID: requestID(c)}

	request := resourceRequest{Resource: c.Params("resource")}
	if err := r.validate.Struct(request); err != nil {
		r.logger.Infow("Rejected report request", "resource", request.Resource, "error", err)
		response.Error = errInvalidResource

		return r.respond(c, fiber.StatusBadRequest, response)
	}

	result := r.lookups().FetchAndLoadReport(c.UserContext(), request.Resource)

	return r.sendLookup(c, result, response)
}

// LookupFile
// @Summary		Hash a file locally and get its report
// @Description	The file is never sent to the report service, only its sha256 is looked up
// @Tags		files
// @Accept		mpfd
// @Produce		json
// @Produce		text/markdown
// @Param		file	formData	file	true	"File to be hashed"
// @Success		200 {object} adapterentities.LookupResponse
// @Success		202 {object} adapterentities.LookupResponse
// @Failure		400 {object} adapterentities.LookupResponse
// @Failure		404 {object} adapterentities.LookupResponse
// @Failure		406 {object} adapterentities.LookupResponse
// @Failure		429 {object} adapterentities.LookupResponse
// @Failure		500 {object} adapterentities.LookupResponse
// @Failure		502 {object} adapterentities.LookupResponse
// @Security	ApiKey
// @Router      /files [post]
func (r *ReportController) LookupFile(c *fiber.Ctx) error {
	response := adapterentities.LookupResponse{RequestID: requestID(c)}

	file, err := c.FormFile("file")
	if err != nil {
		r.logger.Errorw("no file found", "error", err)
		response.Error = errNoFileFound

		return r.respond(c, fiber.StatusBadRequest, response)
	}

	tempFile, err := file.Open()
	if err != nil {
		r.logger.Errorw("failed to open file", "error", err)
		response.Error = errFailedToOpenFile

		return r.respond(c, fiber.StatusInternalServerError, response)
	}
	defer tempFile.Close()

	inspection, err := fileutils.Inspect(file.Filename, tempFile)
	if err != nil {
		r.logger.Errorw("failed to inspect file", "error", err, "filename", file.Filename, "filesize", file.Size)
		response.Error = errFailedToInspectFile

		return r.respond(c, fiber.StatusInternalServerError, response)
	}

	result := r.lookups().FetchAndLoadReport(c.UserContext(), inspection.Digests.Sha256)

	fileResponse := adapterentities.MapToFileResponse(inspection, result.Load.Report)
	response.File = &fileResponse

	if fileResponse.HashesMatch != nil && !*fileResponse.HashesMatch {
		r.logger.Warnw("Report hashes do not match the uploaded file", "sha256", inspection.Digests.Sha256, "report_sha256", result.Load.Report.FileSha256Hexdigest)
	}

	return r.sendLookup(c, result, response)
}

func (r *ReportController) sendLookup(c *fiber.Ctx, result entities.LookupResult, response adapterentities.LookupResponse) error {
	status, message := LookupStatus(result)
	response.Error = message

	if result.Load.Outcome == entities.Success {
		report := adapterentities.MapToReportResponse(result.Load.Report)
		response.Report = &report
	}

	if response.Report == nil || c.Get(fiber.HeaderAccept) == "" {
		return r.respond(c, status, response)
	}

	accepted := c.Accepts(fiber.MIMEApplicationJSON, mimeTextMarkdown, mimeTextXMarkdown)

	writer, ok := r.writers[accepted]
	switch {
	case ok:
		r.count(status)
		c.Status(status).Set(fiber.HeaderContentType, writer.ContentType())

		return writer.Write(c, result.Load.Report)
	case accepted == fiber.MIMEApplicationJSON:
		return r.respond(c, status, response)
	default:
		return r.respond(c, fiber.StatusNotAcceptable, adapterentities.LookupResponse{RequestID: response.RequestID, Error: errUnsupportedAcceptType})
	}
}

// LookupStatus maps both stages of a lookup to the http status of the answer
// and an error message, empty when the report was found.
func LookupStatus(result entities.LookupResult) (int, string) {
	switch {
	case result.Fetch.Outcome != entities.Success:
		return fiber.StatusBadGateway, errServiceUnreachable
	case result.Fetch.Response.StatusCode == fiber.StatusNoContent:
		return fiber.StatusTooManyRequests, errServiceQuotaExceeded
	case result.Fetch.Response.StatusCode == fiber.StatusForbidden:
		return fiber.StatusBadGateway, errServiceForbidden
	case result.Fetch.Response.StatusCode != fiber.StatusOK:
		return fiber.StatusBadGateway, fmt.Sprintf(errUnexpectedStatus, result.Fetch.Response.StatusCode)
	case result.Load.Outcome != entities.Success:
		return fiber.StatusBadGateway, errMalformedReport
	}

	report := result.Load.Report

	switch {
	case report.Found():
		return fiber.StatusOK, ""
	case report.Queued():
		return fiber.StatusAccepted, errResourceQueued
	case report.ResponseCode == entities.ResponseCodeNotFound:
		return fiber.StatusNotFound, errResourceNotFound
	default:
		return fiber.StatusBadGateway, fmt.Sprintf(errUnexpectedCode, report.ResponseCode)
	}
}

func (r *ReportController) respond(c *fiber.Ctx, status int, response adapterentities.LookupResponse) error {
	r.count(status)
	return c.Status(status).JSON(response)
}

func (r *ReportController) count(status int) {
	r.scope.Tagged(map[string]string{"status": strconv.Itoa(status)}).Counter("lookup_requests").Inc(1)
}

func requestID(c *fiber.Ctx) string {
	id, _ := c.Locals(vthttp.LocalsRequestID).(string)
	return id
}
