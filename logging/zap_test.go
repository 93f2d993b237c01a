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

package logging

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"testing"
)

func TestNewZapLogger(t *testing.T) {
	t.Run("debug level enabled", func(t *testing.T) {
		logger, err := NewZapLogger(true)
		require.NoError(t, err)

		sugared, ok := logger.(*zap.SugaredLogger)
		require.True(t, ok)
		assert.True(t, sugared.Desugar().Core().Enabled(zap.DebugLevel))
	})

	t.Run("info level by default", func(t *testing.T) {
		logger, err := NewZapLogger(false)
		require.NoError(t, err)

		sugared, ok := logger.(*zap.SugaredLogger)
		require.True(t, ok)
		assert.False(t, sugared.Desugar().Core().Enabled(zap.DebugLevel))
		assert.True(t, sugared.Desugar().Core().Enabled(zap.InfoLevel))
	})
}
