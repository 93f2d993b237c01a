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
	"errors"
	"fmt"
	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	"io"
	"strings"
	"sync"
	"vtreport/crypto"
)

type Filetype int8

const (
	Unclassified Filetype = iota + 1
	Executable
	Archive
	Multimedia
)

const maxHeaderBuffer = 1024
const mimeApplicationType = "application"

var ErrCantReadHeader = errors.New("cant read file header")

//nolint:gochecknoglobals
var once sync.Once

// Inspection describes local content before it is looked up remotely.
type Inspection struct {
	Name     string
	Size     int64
	MimeType string
	Filetype Filetype
	Digests  crypto.Digests
}

func (f Filetype) String() string {
	switch f {
	case Executable:
		return "executable"
	case Archive:
		return "archive"
	case Multimedia:
		return "multimedia"
	default:
		return "unclassified"
	}
}

func prefix(preffix []byte) func([]byte, uint32) bool {
	return func(raw []byte, limit uint32) bool {
		if limit < uint32(len(preffix)) || len(raw) < len(preffix) {
			return false
		}

		return bytes.Equal(raw[:len(preffix)], preffix)
	}
}

func registerAdditionalTypes() {
	// Support for Eicar
	mimetype.Extend(prefix([]byte{0x58, 0x35, 0x4f, 0x21}), "application/x-eicar", ".com")
}

// Inspect detects the content type of reader from its header and hashes the
// whole content in the same pass.
func Inspect(name string, reader io.Reader) (Inspection, error) {
	once.Do(registerAdditionalTypes)

	head := make([]byte, maxHeaderBuffer)

	read, err := io.ReadFull(reader, head)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return Inspection{}, fmt.Errorf("%w. %w", ErrCantReadHeader, err)
	}

	head = head[:read]
	mtype := mimetype.Detect(head)

	counter := &countingReader{reader: io.MultiReader(bytes.NewReader(head), reader)}

	digests, err := crypto.Hexdigests(counter)
	if err != nil {
		return Inspection{}, err
	}

	return Inspection{
		Name:     name,
		Size:     counter.read,
		MimeType: mtype.String(),
		Filetype: classify(mtype.String()),
		Digests:  digests,
	}, nil
}

func InspectFile(fs afero.Fs, path string) (Inspection, error) {
	file, err := fs.Open(path)
	if err != nil {
		return Inspection{}, fmt.Errorf("failed to open %s. %w", path, err)
	}
	defer file.Close()

	return Inspect(path, file)
}

func GetType(reader io.Reader) (Filetype, error) {
	inspection, err := Inspect("", reader)
	if err != nil {
		return 0, err
	}

	return inspection.Filetype, nil
}

func classify(mime string) Filetype {
	identifiedType := strings.Split(strings.Split(mime, ";")[0], "/")
	if len(identifiedType) != 2 {
		return Unclassified
	}

	switch {
	case isMultimedia(identifiedType):
		return Multimedia
	case isArchive(identifiedType):
		return Archive
	case isBinaryApp(identifiedType):
		return Executable
	default:
		return Unclassified
	}
}

func isArchive(identifiedType []string) bool {
	if identifiedType[0] != mimeApplicationType {
		return false
	}

	switch identifiedType[1] {
	case "zip", "gzip", "x-tar", "x-7z-compressed", "x-rar-compressed", "x-bzip2", "x-xz":
		return true
	default:
		return false
	}
}

func isBinaryApp(identifiedType []string) bool {
	return identifiedType[0] == mimeApplicationType &&
		(identifiedType[1] == "x-elf" ||
			identifiedType[1] == "vnd.microsoft.portable-executable" ||
			identifiedType[1] == "x-msdownload" ||
			identifiedType[1] == "x-executable" ||
			identifiedType[1] == "x-sharedlib" ||
			identifiedType[1] == "x-mach-binary" ||
			identifiedType[1] == "x-eicar")
}

func isMultimedia(identifiedType []string) bool {
	return identifiedType[0] == "audio" ||
		identifiedType[0] == "video" ||
		identifiedType[0] == "image"
}

type countingReader struct {
	reader io.Reader
	read   int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.reader.Read(p)
	c.read += int64(n)

	return n, err
}
