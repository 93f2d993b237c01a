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
	"context"
	"vtreport/domain/entities"
)

/*
Transport performs a single GET and hands back everything the service sent.
Assumptions:
- (i) only transport level problems are errors, a non-2xx status is returned as is
- (ii) there is no retry, the caller decides what to do with a failure
- (iii) diagnostics only add tracing, they never change what is returned
*/
//go:generate go run -mod=mod github.com/golang/mock/mockgen -destination=../../../mocks/mock_transport.go -package=mocks -source=Transport.go
type Transport interface {
	Get(ctx context.Context, url string, diagnostics bool) (entities.HTTPResponse, error)
}
