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

package common

import (
	"bytes"
	"encoding/json"
	"github.com/gofiber/fiber/v2"
	"io"
	"mime/multipart"
	"os"
	"path"
	"runtime"
	"testing"
	vthttp "vtreport/http"
	"vtreport/logging"
)

const testMaxRequestSize = 10 * 1024 * 1024

func ChangePathForTesting(t *testing.T) {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		panic("could not get caller")
	}

	dir := path.Join(path.Dir(filename), "..")
	err := os.Chdir(dir)

	if err != nil {
		panic(err)
	}
}

func LoadFile(t *testing.T, filename string) []byte {
	ChangePathForTesting(t)
	baseDir := "resources/testfiles/"
	src, err := os.ReadFile(baseDir + filename)

	if err != nil {
		panic(err)
	}

	return src
}

func GetObjectFromJSON[T any](t *testing.T, data []byte) T {
	t.Helper()

	var objects T
	err := json.Unmarshal(data, &objects)

	if err != nil {
		panic(err)
	}

	return objects
}

func CreateFiberAppForTest(handlers []vthttp.Handler) *fiber.App {
	fiberConfig := vthttp.FiberConfig{
		MaxRequestSize: testMaxRequestSize,
		Profiler:       false,
		RequestLogger: func(c *fiber.Ctx) error {
			return c.Next()
		},
		Readiness: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
		Liveness: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
		Metrics: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusOK)
		},
		Handlers: handlers,
	}
	app, err := vthttp.CreateFiberApp(fiberConfig, logging.NewDiscardLog())

	if err != nil {
		panic(err)
	}

	return app
}

func PrepareRequestBody(t *testing.T, field string, data []byte) (body *bytes.Buffer, format string) {
	t.Helper()

	body = &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	defer writer.Close()

	part, err := writer.CreateFormFile(field, "fakename")
	if err != nil {
		panic(err)
	}

	_, err = io.Copy(part, bytes.NewReader(data))
	if err != nil {
		panic(err)
	}

	return body, writer.FormDataContentType()
}
