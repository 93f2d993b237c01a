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

package crypto

import (
	"crypto/md5"  //nolint:gosec
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
)

// Digests holds the three hex digests the reputation service echoes back in
// a report, so they can be cross-checked against local content.
type Digests struct {
	Sha256 string
	Sha1   string
	Md5    string
}

// Sha256Hexdigest returns the lowercase hex sha256 of data. The result is
// always 64 characters long, including for empty input.
func Sha256Hexdigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Hexdigests computes every digest in a single pass over reader. It is used
// for file content, which is streamed instead of loaded in memory.
func Hexdigests(reader io.Reader) (Digests, error) {
	sha256Hash := sha256.New()
	sha1Hash := sha1.New() //nolint:gosec
	md5Hash := md5.New()   //nolint:gosec

	writer := io.MultiWriter(sha256Hash, sha1Hash, md5Hash)
	if _, err := io.Copy(writer, reader); err != nil {
		return Digests{}, fmt.Errorf("failed to hash content. %w", err)
	}

	return Digests{
		Sha256: hexSum(sha256Hash),
		Sha1:   hexSum(sha1Hash),
		Md5:    hexSum(md5Hash),
	}, nil
}

func hexSum(h hash.Hash) string {
	return hex.EncodeToString(h.Sum(nil))
}
