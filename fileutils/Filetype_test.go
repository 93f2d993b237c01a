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

package fileutils

import (
	"bytes"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
	"testing/iotest"
	"vtreport/crypto"
)

const eicar = "X5O!P%@AP[4\\PZX54(P^)7CC)7}$EICAR-STANDARD-ANTIVIRUS-TEST-FILE!$H+H*"

func TestImageTypes(t *testing.T) {
	table := []struct {
		name         string
		fileBytes    []byte
		expectedType Filetype
	}{
		{name: "bmp", fileBytes: []byte{0x42, 0x4d}, expectedType: Multimedia},
		{name: "jpg", fileBytes: []byte{0xff, 0xd8, 0xff, 0xe0}, expectedType: Multimedia},
		{name: "png", fileBytes: []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}, expectedType: Multimedia},
		{name: "gif87a", fileBytes: []byte{0x47, 0x49, 0x46, 0x38, 0x37, 0x61}, expectedType: Multimedia},
		{name: "gif89a", fileBytes: []byte{0x47, 0x49, 0x46, 0x38, 0x39, 0x61}, expectedType: Multimedia},
	}

	for _, v := range table {
		v := v
		t.Run(v.name, func(t *testing.T) {
			actualType, err := GetType(bytes.NewReader(v.fileBytes))
			assert.NoError(t, err)
			assert.Equal(t, v.expectedType, actualType)
		})
	}
}

func TestArchiveTypes(t *testing.T) {
	tarbytes := make([]byte, 512)
	copy(tarbytes[257:], []byte{0x75, 0x73, 0x74, 0x61, 0x72})

	table := []struct {
		name      string
		fileBytes []byte
	}{
		{name: "zipfile", fileBytes: []byte{0x50, 0x4B, 0x03, 0x04}},
		{name: "gzfile", fileBytes: []byte{0x1f, 0x8b}},
		{name: "tarfile", fileBytes: tarbytes},
	}

	for _, v := range table {
		v := v
		t.Run(v.name, func(t *testing.T) {
			actualType, err := GetType(bytes.NewReader(v.fileBytes))
			assert.NoError(t, err)
			assert.Equal(t, Archive, actualType)
		})
	}
}

func TestExecutables(t *testing.T) {
	table := []struct {
		name       string
		fileBytes  []byte
		executable bool
	}{
		{name: "eicar sample", fileBytes: []byte(eicar), executable: true},
		{name: "windows executable", fileBytes: []byte{0x4d, 0x5a}, executable: true},
		{name: "linux executable", fileBytes: []byte{0x7f, 0x45, 0x4c, 0x46, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, executable: true},
		{name: "Mach-O 32 bit", fileBytes: []byte{0xce, 0xfa, 0xed, 0xfe}, executable: true},
		{name: "Mach-O 64 bit", fileBytes: []byte{0xcf, 0xfa, 0xed, 0xfe}, executable: true},
		{name: "not an executable", fileBytes: []byte("not an executable"), executable: false},
	}

	for _, v := range table {
		v := v
		t.Run(v.name, func(t *testing.T) {
			actualType, err := GetType(bytes.NewReader(v.fileBytes))
			assert.NoError(t, err)
			assert.Equal(t, v.executable, actualType == Executable)
		})
	}
}

func TestInspect(t *testing.T) {
	inspection, err := Inspect("eicar.com", strings.NewReader(eicar))
	require.NoError(t, err)

	assert.Equal(t, "eicar.com", inspection.Name)
	assert.Equal(t, int64(len(eicar)), inspection.Size)
	assert.Equal(t, "application/x-eicar", inspection.MimeType)
	assert.Equal(t, Executable, inspection.Filetype)
	assert.Equal(t, crypto.Digests{
		Sha256: "275a021bbfb6489e54d471899f7db9d1663fc695ec2fe2a2c4538aabf651fd0f",
		Sha1:   "3395856ce81f2b7382dee72602f798b642f14140",
		Md5:    "44d88612fea8a8f36de82e1278abb02f",
	}, inspection.Digests)
}

func TestInspectLargeContent(t *testing.T) {
	content := bytes.Repeat([]byte("vtreport"), maxHeaderBuffer)

	inspection, err := Inspect("large", iotest.OneByteReader(bytes.NewReader(content)))
	require.NoError(t, err)

	assert.Equal(t, int64(len(content)), inspection.Size)
	assert.Equal(t, crypto.Sha256Hexdigest(content), inspection.Digests.Sha256)
	assert.Equal(t, Unclassified, inspection.Filetype)
}

func TestInspectEmptyContent(t *testing.T) {
	inspection, err := Inspect("empty", bytes.NewReader(nil))
	require.NoError(t, err)

	assert.Zero(t, inspection.Size)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", inspection.Digests.Sha256)
}

func TestInspectFailingReader(t *testing.T) {
	_, err := Inspect("broken", iotest.ErrReader(assert.AnError))

	assert.ErrorIs(t, err, ErrCantReadHeader)
}

func TestInspectFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/samples/eicar.com", []byte(eicar), 0o600))

	inspection, err := InspectFile(fs, "/samples/eicar.com")
	require.NoError(t, err)
	assert.Equal(t, "/samples/eicar.com", inspection.Name)
	assert.Equal(t, "44d88612fea8a8f36de82e1278abb02f", inspection.Digests.Md5)

	_, err = InspectFile(fs, "/samples/missing")
	assert.Error(t, err)
}

func TestFiletypeString(t *testing.T) {
	assert.Equal(t, "executable", Executable.String())
	assert.Equal(t, "archive", Archive.String())
	assert.Equal(t, "multimedia", Multimedia.String())
	assert.Equal(t, "unclassified", Unclassified.String())
	assert.Equal(t, "unclassified", Filetype(0).String())
}
