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
	"bytes"
	"errors"
)

var errAccumulatorFinished = errors.New("body accumulator already finished")

// bodyAccumulator collects a response body delivered in any number of chunks.
// The assembled body is only handed out by Finish, once the stream is over.
type bodyAccumulator struct {
	buffer   bytes.Buffer
	chunks   int
	finished bool
}

func newBodyAccumulator() *bodyAccumulator {
	return &bodyAccumulator{}
}

func (b *bodyAccumulator) Write(chunk []byte) (int, error) {
	if b.finished {
		return 0, errAccumulatorFinished
	}

	b.chunks++

	return b.buffer.Write(chunk)
}

func (b *bodyAccumulator) Chunks() int {
	return b.chunks
}

func (b *bodyAccumulator) Len() int {
	return b.buffer.Len()
}

func (b *bodyAccumulator) Finish() string {
	b.finished = true
	return b.buffer.String()
}
