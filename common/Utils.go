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
	"encoding/hex"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

const (
	apiKeyParameter = "apikey"
	redactedValue   = "REDACTED"
)

// RedactURL hides the api key carried in the query string so the url can be logged.
func RedactURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "<unparseable url>"
	}

	query := parsed.Query()
	if query.Has(apiKeyParameter) {
		query.Set(apiKeyParameter, redactedValue)
		parsed.RawQuery = query.Encode()
	}

	return parsed.String()
}

// IsHexDigest reports whether resource looks like a md5, sha1 or sha256 hex digest.
func IsHexDigest(resource string) bool {
	switch len(resource) {
	case hex.EncodedLen(16), hex.EncodedLen(20), hex.EncodedLen(32):
		_, err := hex.DecodeString(resource)
		return err == nil
	default:
		return false
	}
}

// IsResource accepts a hex digest or a scan id, which is a sha256 followed by
// a dash and the unix time of the scan.
func IsResource(resource string) bool {
	if IsHexDigest(resource) {
		return true
	}

	digest, timestamp, found := strings.Cut(resource, "-")
	if !found || len(digest) != hex.EncodedLen(32) || !IsHexDigest(digest) {
		return false
	}

	_, err := strconv.ParseUint(timestamp, 10, 64)

	return err == nil
}

func IsValidUUID(u string) bool {
	_, err := uuid.Parse(u)
	return err == nil
}

// RequestID keeps a caller supplied id when it is a valid uuid and generates one otherwise.
func RequestID(candidate string) string {
	if IsValidUUID(candidate) {
		return candidate
	}

	return uuid.New().String()
}
