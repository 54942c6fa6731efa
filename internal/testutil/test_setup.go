/*
 * © 2026 Beacon Limited
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package testutil

import (
	"testing"

	"github.com/beaconhq/beacon-go/application/config"
)

// UnitTest installs a fresh configuration with error reporting disabled,
// so tests never send events to a real backend.
func UnitTest(t *testing.T) *config.Config {
	t.Helper()
	c := config.New()
	c.SetErrorReportingEnabled(false)
	config.SetCurrentConfig(c)
	t.Cleanup(func() {
		config.SetCurrentConfig(nil)
	})
	return c
}
