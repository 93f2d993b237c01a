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

package http

import (
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/keyauth/v2"
	"strings"
	"vtreport/crypto"
)

// LocalsCaller is the fiber locals key holding the alias of the authenticated caller.
const LocalsCaller = "caller"

func invalidCredentials(index int) error {
	return fmt.Errorf("failed to parse access credentials at index %d. "+
		"Credentials should have format <alias>:<secret>, where secret must be prehashed with SHA256. "+
		"Recommended method is to generate a secret with openssl, like `openssl rand -hex 32`, then hash it with sha256sum", index)
}

// PrepareAuthorizationKeys maps every alias to its SHA256 secret as lowercase hex.
func PrepareAuthorizationKeys(authorizationKeys []string) (map[string]string, error) {
	const (
		accessKeyParts           = 2
		sha256ExpectedOutputSize = 64
	)

	keys := make(map[string]string, len(authorizationKeys))

	for index, access := range authorizationKeys {
		parts := strings.Split(access, ":")
		if len(parts) != accessKeyParts || parts[0] == "" || len(parts[1]) != sha256ExpectedOutputSize {
			return nil, invalidCredentials(index)
		}

		if _, err := hex.DecodeString(parts[1]); err != nil {
			return nil, invalidCredentials(index)
		}

		keys[parts[0]] = strings.ToLower(parts[1])
	}

	return keys, nil
}

// FiberAuthFilter skips authentication for health checks and metrics.
func FiberAuthFilter(ctx *fiber.Ctx) bool {
	return !strings.HasPrefix(ctx.OriginalURL(), currentVersion) &&
		!strings.HasPrefix(ctx.OriginalURL(), debugPath)
}

func FiberAuthValidator(authorizationKeys map[string]string) func(c *fiber.Ctx, key string) (bool, error) {
	return func(c *fiber.Ctx, key string) (bool, error) {
		const equalContents = 1

		hashedKey := []byte(crypto.Sha256Hexdigest([]byte(key)))

		for caller, secret := range authorizationKeys {
			if subtle.ConstantTimeCompare(hashedKey, []byte(secret)) == equalContents {
				c.Locals(LocalsCaller, caller)
				return true, nil
			}
		}

		return false, keyauth.ErrMissingOrMalformedAPIKey
	}
}
