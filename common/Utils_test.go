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
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestRedactURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "api key is hidden",
			url:      "https://www.virustotal.com/vtapi/v2/file/report?apikey=secret&resource=44d88612fea8a8f36de82e1278abb02f",
			expected: "https://www.virustotal.com/vtapi/v2/file/report?apikey=REDACTED&resource=44d88612fea8a8f36de82e1278abb02f",
		},
		{
			name:     "no api key",
			url:      "https://www.virustotal.com/vtapi/v2/file/report?resource=abc",
			expected: "https://www.virustotal.com/vtapi/v2/file/report?resource=abc",
		},
		{
			name:     "invalid url",
			url:      "http://[::1]:namedport?apikey=secret",
			expected: "<unparseable url>",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			redacted := RedactURL(tt.url)
			assert.Equal(t, tt.expected, redacted)
			assert.NotContains(t, redacted, "secret")
		})
	}
}

func TestIsHexDigest(t *testing.T) {
	assert.True(t, IsHexDigest("44d88612fea8a8f36de82e1278abb02f"))
	assert.True(t, IsHexDigest("3395856ce81f2b7382dee72602f798b642f14140"))
	assert.True(t, IsHexDigest("275a021bbfb6489e54d471899f7db9d1663fc695ec2fe2a2c4538aabf651fd0f"))
	assert.False(t, IsHexDigest("275a021bbfb6489e54d471899f7db9d1663fc695ec2fe2a2c4538aabf651fd0f-1577836800"))
	assert.False(t, IsHexDigest("zz d88612fea8a8f36de82e1278abb02f"))
	assert.False(t, IsHexDigest(""))
}

func TestIsResource(t *testing.T) {
	assert.True(t, IsResource("44d88612fea8a8f36de82e1278abb02f"))
	assert.True(t, IsResource("275a021bbfb6489e54d471899f7db9d1663fc695ec2fe2a2c4538aabf651fd0f-1577836800"))
	assert.False(t, IsResource("44d88612fea8a8f36de82e1278abb02f-1577836800"))
	assert.False(t, IsResource("275a021bbfb6489e54d471899f7db9d1663fc695ec2fe2a2c4538aabf651fd0f-"))
	assert.False(t, IsResource("275a021bbfb6489e54d471899f7db9d1663fc695ec2fe2a2c4538aabf651fd0f-yesterday"))
	assert.False(t, IsResource("44d88612fea8a8f36de82e1278abb02f,3395856ce81f2b7382dee72602f798b642f14140"))
	assert.False(t, IsResource(""))
}

func TestRequestID(t *testing.T) {
	const existing = "0b7e6a0b-52a3-4b8a-9f5e-9b3c2a1d0e4f"

	assert.Equal(t, existing, RequestID(existing))
	assert.True(t, IsValidUUID(RequestID("")))
	assert.True(t, IsValidUUID(RequestID("not-an-uuid")))
}
